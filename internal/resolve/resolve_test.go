package resolve_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mira-lang/mira/internal/ast"
	"github.com/mira-lang/mira/internal/diag"
	"github.com/mira-lang/mira/internal/module"
	"github.com/mira-lang/mira/internal/resolve"
	"github.com/mira-lang/mira/internal/source"
)

func TestResolveImportChain(t *testing.T) {
	// Module A exports Foo (a struct); B imports Foo from A; C imports
	// Foo from B. resolve_import(C, ["Foo"]) must return Struct(Foo@A).
	c := module.NewContext()
	a := c.AddModule("a.mr", "/")
	b := c.AddModule("b.mr", "/")
	cc := c.AddModule("c.mr", "/")

	require.NoError(t, c.PushStatement(a, &ast.StructStatement{Name: "Foo"}))
	require.NoError(t, c.PushStatement(a, &ast.ExportStatement{Key: "Foo", ExportedKey: "Foo"}))

	c.Modules[b].Imports["Foo"] = module.Import{Module: a, Path: []string{"Foo"}}
	c.Modules[b].Exports["Foo"] = "Foo"

	c.Modules[cc].Imports["Foo"] = module.Import{Module: b, Path: []string{"Foo"}}

	var visited []resolve.VisitedKey
	got, err := resolve.ResolveImport(c, cc, []string{"Foo"}, source.Dummy, &visited)
	require.NoError(t, err)
	require.Equal(t, module.ScopeStruct, got.Kind)
	require.Equal(t, module.StructValue(0), got)
}

func TestResolveImportCycleDetected(t *testing.T) {
	// A imports x from B, B imports x from A.
	c := module.NewContext()
	a := c.AddModule("a.mr", "/")
	b := c.AddModule("b.mr", "/")
	c.Modules[a].Imports["x"] = module.Import{Module: b, Path: []string{"x"}}
	c.Modules[a].Exports["x"] = "x"
	c.Modules[b].Imports["x"] = module.Import{Module: a, Path: []string{"x"}}
	c.Modules[b].Exports["x"] = "x"

	var visited []resolve.VisitedKey
	_, err := resolve.ResolveImport(c, a, []string{"x"}, source.Dummy, &visited)
	require.Error(t, err)
	de, ok := err.(*diag.Error)
	require.True(t, ok)
	require.Equal(t, diag.CyclicDependency, de.Kind)
}

func TestResolveImportEmptyPathYieldsHomeModule(t *testing.T) {
	c := module.NewContext()
	a := c.AddModule("a.mr", "/")
	var visited []resolve.VisitedKey
	got, err := resolve.ResolveImport(c, a, nil, source.Dummy, &visited)
	require.NoError(t, err)
	require.Equal(t, module.ModuleValue(a), got)
}

func TestResolveImportWithinHomeModuleScopeFallback(t *testing.T) {
	// Within the home module (depth < 2), a name missing from exports
	// still resolves via scope.
	c := module.NewContext()
	a := c.AddModule("a.mr", "/")
	require.NoError(t, c.PushStatement(a, &ast.StructStatement{Name: "Local"}))

	var visited []resolve.VisitedKey
	got, err := resolve.ResolveImport(c, a, []string{"Local"}, source.Dummy, &visited)
	require.NoError(t, err)
	require.Equal(t, module.ScopeStruct, got.Kind)
}

func TestResolveImportStructMethod(t *testing.T) {
	c := module.NewContext()
	a := c.AddModule("a.mr", "/")
	require.NoError(t, c.PushStatement(a, &ast.StructStatement{
		Name:       "S",
		GlobalImpl: map[string]*ast.FunctionStatement{"method": {Name: "method"}},
	}))

	var visited []resolve.VisitedKey
	got, err := resolve.ResolveImport(c, a, []string{"S", "method"}, source.Dummy, &visited)
	require.NoError(t, err)
	require.Equal(t, module.ScopeFunction, got.Kind)
}
