package check_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mira-lang/mira/internal/ast"
	"github.com/mira-lang/mira/internal/check"
	"github.com/mira-lang/mira/internal/diag"
	"github.com/mira-lang/mira/internal/module"
	"github.com/mira-lang/mira/internal/source"
)

func ref(name string, numRefs uint8) *ast.Reference {
	return &ast.Reference{
		NumReferences: numRefs,
		TypeName:      ast.Path{Segments: []ast.PathSegment{{Name: name}}},
	}
}

func field(name string, typ ast.TypeRef) ast.Field {
	return ast.Field{Name: name, Type: typ}
}

func TestResolveStructSelfRecursionByValueDetected(t *testing.T) {
	// struct A { x: i32, y: A } — A is reached by value through y, so
	// resolution must fail with exactly one RecursiveTypeDetected.
	mc := module.NewContext()
	a := mc.AddModule("a.mr", "/")
	require.NoError(t, mc.PushStatement(a, &ast.StructStatement{
		Name: "A",
		Fields: []ast.Field{
			field("x", ref("i32", 0)),
			field("y", ref("A", 0)),
		},
	}))

	tc := check.NewContext(mc, nil)
	errs := tc.ResolveAllStructs(mc)
	require.Len(t, errs, 1)
	de, ok := errs[0].(*diag.Error)
	require.True(t, ok)
	require.Equal(t, diag.RecursiveTypeDetected, de.Kind)

	got := tc.Struct(0)
	require.Equal(t, check.StructFailed, got.State)
}

func TestResolveStructReferenceCycleAccepted(t *testing.T) {
	// struct S { next: &S } — next is behind a reference, so resolving S
	// must succeed with no errors at all.
	mc := module.NewContext()
	a := mc.AddModule("a.mr", "/")
	require.NoError(t, mc.PushStatement(a, &ast.StructStatement{
		Name: "S",
		Fields: []ast.Field{
			field("next", ref("S", 1)),
		},
	}))

	tc := check.NewContext(mc, nil)
	errs := tc.ResolveAllStructs(mc)
	require.Empty(t, errs)

	got := tc.Struct(0)
	require.Equal(t, check.StructResolved, got.State)
	require.Len(t, got.Elements, 1)
	st, ok := got.Elements[0].Type.(*check.Struct)
	require.True(t, ok)
	require.Equal(t, module.StructId(0), st.StructID)
	require.Equal(t, uint8(1), st.NumReferences)
}

func TestResolveStructValueMutualRecursionRejected(t *testing.T) {
	// struct A { b: B }; struct B { a: A } — mutual by-value recursion
	// must be rejected.
	mc := module.NewContext()
	m := mc.AddModule("m.mr", "/")
	require.NoError(t, mc.PushStatement(m, &ast.StructStatement{
		Name:   "A",
		Fields: []ast.Field{field("b", ref("B", 0))},
	}))
	require.NoError(t, mc.PushStatement(m, &ast.StructStatement{
		Name:   "B",
		Fields: []ast.Field{field("a", ref("A", 0))},
	}))

	// Both A's and B's field loops independently observe the cycle (A's
	// field b sees B fail because B's field a saw A in progress), so two
	// RecursiveTypeDetected diagnostics are recorded, one per struct.
	tc := check.NewContext(mc, nil)
	errs := tc.ResolveAllStructs(mc)
	require.Len(t, errs, 2)
	for _, e := range errs {
		de, ok := e.(*diag.Error)
		require.True(t, ok)
		require.Equal(t, diag.RecursiveTypeDetected, de.Kind)
	}
}

func TestResolveStructValueThenReferenceAccepted(t *testing.T) {
	// struct A { b: B }; struct B { a: &A } — B only needs A's identity,
	// not its layout, so the cycle is legal.
	mc := module.NewContext()
	m := mc.AddModule("m.mr", "/")
	require.NoError(t, mc.PushStatement(m, &ast.StructStatement{
		Name:   "A",
		Fields: []ast.Field{field("b", ref("B", 0))},
	}))
	require.NoError(t, mc.PushStatement(m, &ast.StructStatement{
		Name:   "B",
		Fields: []ast.Field{field("a", ref("A", 1))},
	}))

	tc := check.NewContext(mc, nil)
	errs := tc.ResolveAllStructs(mc)
	require.Empty(t, errs)
	require.Equal(t, check.StructResolved, tc.Struct(0).State)
	require.Equal(t, check.StructResolved, tc.Struct(1).State)
}

func TestResolveStructIsIdempotentAcrossRepeatedCalls(t *testing.T) {
	mc := module.NewContext()
	a := mc.AddModule("a.mr", "/")
	require.NoError(t, mc.PushStatement(a, &ast.StructStatement{Name: "S"}))

	tc := check.NewContext(mc, nil)
	require.Empty(t, tc.ResolveStruct(mc, 0))
	require.Empty(t, tc.ResolveStruct(mc, 0))
}

func TestResolveStructGenericBoundPromotesToTrait(t *testing.T) {
	// struct Box<T: Show> { value: T } — a field of generic type T, where
	// T is bound by trait Show, is promoted from Generic to Trait.
	mc := module.NewContext()
	m := mc.AddModule("m.mr", "/")
	require.NoError(t, mc.PushStatement(m, &ast.TraitStatement{Name: "Show"}))
	require.NoError(t, mc.PushStatement(m, &ast.StructStatement{
		Name: "Box",
		Generics: []ast.GenericParam{
			{Name: "T", Bounds: []ast.Path{{Segments: []ast.PathSegment{{Name: "Show"}}}}},
		},
		Fields: []ast.Field{field("value", ref("T", 0))},
	}))

	tc := check.NewContext(mc, nil)
	errs := tc.ResolveAllStructs(mc)
	require.Empty(t, errs)

	got := tc.Struct(0)
	require.Len(t, got.Elements, 1)
	tr, ok := got.Elements[0].Type.(*check.Trait)
	require.True(t, ok)
	require.Equal(t, "T", tr.RealName)
	require.Equal(t, []module.TraitId{0}, tr.TraitRefs)
}

func TestResolveStructUnboundGenericStaysGeneric(t *testing.T) {
	mc := module.NewContext()
	m := mc.AddModule("m.mr", "/")
	require.NoError(t, mc.PushStatement(m, &ast.StructStatement{
		Name:     "Box",
		Generics: []ast.GenericParam{{Name: "T"}},
		Fields:   []ast.Field{field("value", ref("T", 0))},
	}))

	tc := check.NewContext(mc, nil)
	errs := tc.ResolveAllStructs(mc)
	require.Empty(t, errs)

	got := tc.Struct(0)
	_, ok := got.Elements[0].Type.(*check.Generic)
	require.True(t, ok)
}

func TestResolveTypeUnknownNameErrors(t *testing.T) {
	mc := module.NewContext()
	a := mc.AddModule("a.mr", "/")
	tc := check.NewContext(mc, nil)

	_, err := tc.ResolveType(mc, a, ref("Nonexistent", 0), nil)
	require.Error(t, err)
	de, ok := err.(*diag.Error)
	require.True(t, ok)
	require.Equal(t, diag.ExportNotFound, de.Kind)
}

func TestResolveTypeDynReferenceUnsupported(t *testing.T) {
	mc := module.NewContext()
	a := mc.AddModule("a.mr", "/")
	tc := check.NewContext(mc, nil)

	_, err := tc.ResolveType(mc, a, &ast.DynReference{Loc: source.Dummy}, nil)
	require.Error(t, err)
	var dynErr *check.ErrUnsupportedDynReference
	require.ErrorAs(t, err, &dynErr)
}
