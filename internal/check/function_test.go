package check_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mira-lang/mira/internal/ast"
	"github.com/mira-lang/mira/internal/check"
	"github.com/mira-lang/mira/internal/module"
)

func TestResolveFunctionContractResolvesParamsAndReturn(t *testing.T) {
	mc := module.NewContext()
	a := mc.AddModule("a.mr", "/")
	require.NoError(t, mc.PushStatement(a, &ast.StructStatement{Name: "S"}))
	require.NoError(t, mc.PushStatement(a, &ast.FunctionStatement{
		Name: "f",
		Contract: ast.FunctionContract{
			Name:       "f",
			Parameters: []ast.Field{field("s", ref("S", 1))},
			ReturnType: ref("i32", 0),
		},
	}))

	tc := check.NewContext(mc, nil)
	require.Empty(t, tc.ResolveFunction(mc, 0))

	fn := tc.Function(0)
	require.Len(t, fn.Contract.Parameters, 1)
	st, ok := fn.Contract.Parameters[0].Type.(*check.Struct)
	require.True(t, ok)
	require.Equal(t, module.StructId(0), st.StructID)

	prim, ok := fn.Contract.ReturnType.(*check.Primitive)
	require.True(t, ok)
	require.Equal(t, check.PrimitiveI32, prim.Kind)
}

func TestResolveFunctionDefaultsMissingReturnTypeToVoid(t *testing.T) {
	mc := module.NewContext()
	a := mc.AddModule("a.mr", "/")
	require.NoError(t, mc.PushStatement(a, &ast.FunctionStatement{
		Name:     "f",
		Contract: ast.FunctionContract{Name: "f"},
	}))

	tc := check.NewContext(mc, nil)
	require.Empty(t, tc.ResolveFunction(mc, 0))

	prim, ok := tc.Function(0).Contract.ReturnType.(*check.Primitive)
	require.True(t, ok)
	require.Equal(t, check.PrimitiveVoid, prim.Kind)
}

func TestResolveExternalFunctionHasNoBody(t *testing.T) {
	mc := module.NewContext()
	a := mc.AddModule("a.mr", "/")
	require.NoError(t, mc.PushStatement(a, &ast.ExternalFunctionStatement{
		Name:     "puts",
		Contract: ast.FunctionContract{Name: "puts", Parameters: []ast.Field{field("s", ref("str", 1))}},
	}))

	tc := check.NewContext(mc, nil)
	require.Empty(t, tc.ResolveExternalFunction(mc, 0))
	require.Nil(t, tc.ExternalFunction(0).Body)
}

func TestResolveStaticResolvesType(t *testing.T) {
	mc := module.NewContext()
	a := mc.AddModule("a.mr", "/")
	require.NoError(t, mc.PushStatement(a, &ast.VariableStatement{
		Name:      "count",
		Type:      ref("i32", 0),
		IsLiteral: true,
	}))

	tc := check.NewContext(mc, nil)
	require.Empty(t, tc.ResolveStatic(mc, 0))

	prim, ok := tc.Static(0).Type.(*check.Primitive)
	require.True(t, ok)
	require.Equal(t, check.PrimitiveI32, prim.Kind)
}

func TestResolveTraitResolvesMethodSignatures(t *testing.T) {
	mc := module.NewContext()
	a := mc.AddModule("a.mr", "/")
	require.NoError(t, mc.PushStatement(a, &ast.TraitStatement{
		Name: "Show",
		Methods: []ast.FunctionContract{
			{Name: "show", ReturnType: ref("str", 1)},
		},
	}))

	tc := check.NewContext(mc, nil)
	require.Empty(t, tc.ResolveTrait(mc, 0))

	tr := tc.Trait(0)
	require.Len(t, tr.Methods, 1)
	require.Equal(t, "show", tr.Methods[0].Name)
}

func TestResolveAllPopulatesMainLangItem(t *testing.T) {
	mc := module.NewContext()
	root := mc.AddModule("main.mr", "/")
	require.NoError(t, mc.PushStatement(root, &ast.FunctionStatement{
		Name:     "main",
		Contract: ast.FunctionContract{Name: "main"},
	}))
	require.NoError(t, mc.PushStatement(root, &ast.ExportStatement{Key: "main", ExportedKey: "main"}))

	tc := check.NewContext(mc, nil)
	errs := tc.ResolveAll(mc, root)
	require.Empty(t, errs)

	items := tc.LangItems()
	require.True(t, items.HasMain)
	require.Equal(t, module.FunctionId(0), items.Main)
	require.False(t, items.HasStrSlice)
}

func TestResolveFunctionWarnsOnEmptyTraitBound(t *testing.T) {
	mc := module.NewContext()
	a := mc.AddModule("a.mr", "/")
	require.NoError(t, mc.PushStatement(a, &ast.TraitStatement{Name: "Marker"}))
	require.NoError(t, mc.PushStatement(a, &ast.FunctionStatement{
		Name: "f",
		Contract: ast.FunctionContract{
			Name: "f",
			Generics: []ast.GenericParam{
				{Name: "T", Bounds: []ast.Path{{Segments: []ast.PathSegment{{Name: "Marker"}}}}},
			},
		},
	}))

	tc := check.NewContext(mc, nil)
	require.Empty(t, tc.ResolveFunction(mc, 0))

	warnings := tc.Warnings()
	require.Len(t, warnings, 1)
	require.Equal(t, "empty-trait-bound", warnings[0].Code)
}

func TestResolveAllIgnoresMainWithParameters(t *testing.T) {
	mc := module.NewContext()
	root := mc.AddModule("main.mr", "/")
	require.NoError(t, mc.PushStatement(root, &ast.FunctionStatement{
		Name: "main",
		Contract: ast.FunctionContract{
			Name:       "main",
			Parameters: []ast.Field{field("argc", ref("i32", 0))},
		},
	}))
	require.NoError(t, mc.PushStatement(root, &ast.ExportStatement{Key: "main", ExportedKey: "main"}))

	tc := check.NewContext(mc, nil)
	require.Empty(t, tc.ResolveAll(mc, root))
	require.False(t, tc.LangItems().HasMain)
}
