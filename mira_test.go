package mira_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mira-lang/mira"
	"github.com/mira-lang/mira/internal/ast"
)

func refType(name string, numRefs uint8) *ast.Reference {
	return &ast.Reference{
		NumReferences: numRefs,
		TypeName:      ast.Path{Segments: []ast.PathSegment{{Name: name}}},
	}
}

func TestCompileNoSources(t *testing.T) {
	_, err := mira.Compile()
	require.ErrorIs(t, err, mira.ErrNoSources)
}

func TestCompileSingleModule(t *testing.T) {
	prog, err := mira.Compile(mira.WithSource(mira.Source{
		Path: "main",
		Root: "main",
		Statements: []ast.Statement{
			&ast.StructStatement{Name: "Point", Fields: []ast.Field{
				{Name: "x", Type: refType("i32", 0)},
				{Name: "y", Type: refType("i32", 0)},
			}},
			&ast.FunctionStatement{Name: "main", Contract: ast.FunctionContract{Name: "main"}},
			&ast.ExportStatement{Key: "main", ExportedKey: "main"},
		},
	}))
	require.NoError(t, err)
	require.Empty(t, prog.Errors)
	require.True(t, prog.LangItems().HasMain)

	pointStruct := prog.Typed.Struct(0)
	require.Equal(t, "Point", pointStruct.Name)
	require.Len(t, pointStruct.Elements, 2)
}

func TestCompileCrossModuleImport(t *testing.T) {
	prog, err := mira.Compile(
		mira.WithRoot("main"),
		mira.WithSource(
			mira.Source{
				Path: "geometry",
				Root: "main",
				Statements: []ast.Statement{
					&ast.StructStatement{Name: "Point"},
					&ast.ExportStatement{Key: "Point", ExportedKey: "Point"},
				},
			},
			mira.Source{
				Path: "main",
				Root: "main",
				Statements: []ast.Statement{
					&ast.FunctionStatement{
						Name: "origin",
						Contract: ast.FunctionContract{
							Name:       "origin",
							ReturnType: refType("Point", 1),
						},
					},
				},
				Imports: map[string]mira.SourceImport{
					"Point": {ModulePath: "geometry", Path: []string{"Point"}},
				},
			},
		),
	)
	require.NoError(t, err)
	require.Empty(t, prog.Errors)

	fn := prog.Typed.Function(0)
	require.Equal(t, "origin", fn.Contract.Name)
}

func TestCompileUnknownRoot(t *testing.T) {
	_, err := mira.Compile(
		mira.WithRoot("nope"),
		mira.WithSource(mira.Source{Path: "main", Root: "main"}),
	)
	require.ErrorIs(t, err, mira.ErrUnknownRoot)
}
