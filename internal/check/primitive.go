package check

import "github.com/mira-lang/mira/internal/ast"

var primitiveByName = map[string]PrimitiveKind{
	"!": PrimitiveNever, "void": PrimitiveVoid,
	"str": PrimitiveStr, "bool": PrimitiveBool, "char": PrimitiveChar,
	"i8": PrimitiveI8, "i16": PrimitiveI16, "i32": PrimitiveI32, "i64": PrimitiveI64, "isize": PrimitiveISize,
	"u8": PrimitiveU8, "u16": PrimitiveU16, "u32": PrimitiveU32, "u64": PrimitiveU64, "usize": PrimitiveUSize,
	"f16": PrimitiveF16, "f32": PrimitiveF32, "f64": PrimitiveF64,
}

// resolvePrimitiveType matches typ against the reserved primitive names
// (§4.5). It must be tried before any name-resolution lookup so a
// primitive name can never be shadowed by a user-defined identifier
// (invariant: primitives always win, P5).
func resolvePrimitiveType(typ ast.TypeRef) (Type, bool) {
	switch t := typ.(type) {
	case *ast.Void:
		return &Primitive{Kind: PrimitiveVoid, NumReferences: t.NumReferences}, true
	case *ast.Never:
		return &Primitive{Kind: PrimitiveNever}, true
	case *ast.Reference:
		if len(t.TypeName.Segments) != 1 || len(t.TypeName.Segments[0].Generics) != 0 {
			return nil, false
		}
		kind, ok := primitiveByName[t.TypeName.First()]
		if !ok {
			return nil, false
		}
		if kind == PrimitiveNever {
			return &Primitive{Kind: PrimitiveNever}, true
		}
		return &Primitive{Kind: kind, NumReferences: t.NumReferences}, true
	default:
		return nil, false
	}
}
