package check

import "github.com/mira-lang/mira/internal/module"

// Type is a semantic type: a TypeRef after name resolution, carrying
// handles instead of names. Implementations carry an unexported marker
// method so the set is closed to this package, mirroring the ast.TypeRef
// idiom.
type Type interface {
	typ()
}

// PrimitiveKind enumerates the reserved primitive type names.
type PrimitiveKind uint8

const (
	PrimitiveNever PrimitiveKind = iota
	PrimitiveVoid
	PrimitiveBool
	PrimitiveChar
	PrimitiveStr
	PrimitiveI8
	PrimitiveI16
	PrimitiveI32
	PrimitiveI64
	PrimitiveISize
	PrimitiveU8
	PrimitiveU16
	PrimitiveU32
	PrimitiveU64
	PrimitiveUSize
	PrimitiveF16
	PrimitiveF32
	PrimitiveF64
)

func (k PrimitiveKind) String() string {
	switch k {
	case PrimitiveNever:
		return "!"
	case PrimitiveVoid:
		return "void"
	case PrimitiveBool:
		return "bool"
	case PrimitiveChar:
		return "char"
	case PrimitiveStr:
		return "str"
	case PrimitiveI8:
		return "i8"
	case PrimitiveI16:
		return "i16"
	case PrimitiveI32:
		return "i32"
	case PrimitiveI64:
		return "i64"
	case PrimitiveISize:
		return "isize"
	case PrimitiveU8:
		return "u8"
	case PrimitiveU16:
		return "u16"
	case PrimitiveU32:
		return "u32"
	case PrimitiveU64:
		return "u64"
	case PrimitiveUSize:
		return "usize"
	case PrimitiveF16:
		return "f16"
	case PrimitiveF32:
		return "f32"
	case PrimitiveF64:
		return "f64"
	default:
		return "unknown"
	}
}

// Primitive is a built-in type, possibly behind references. Never carries
// no reference count (it cannot be dereferenced, per ast.Never).
type Primitive struct {
	Kind          PrimitiveKind
	NumReferences uint8
}

func (*Primitive) typ() {}

// Struct is a resolved nominal struct type.
type Struct struct {
	StructID      module.StructId
	Name          string
	NumReferences uint8
}

func (*Struct) typ() {}

// Generic is an unresolved type parameter reference.
type Generic struct {
	Name          string
	NumReferences uint8
}

func (*Generic) typ() {}

// Trait is a trait-constrained generic: a Generic whose bounds resolved to
// at least one trait, promoted during struct/function generic processing.
type Trait struct {
	TraitRefs     []module.TraitId
	NumReferences uint8
	RealName      string
}

func (*Trait) typ() {}

// UnsizedArray is `[T]` behind however many references.
type UnsizedArray struct {
	Elem          Type
	NumReferences uint8
}

func (*UnsizedArray) typ() {}

// SizedArray is `[T; N]`.
type SizedArray struct {
	Elem           Type
	NumReferences  uint8
	NumberElements uint64
}

func (*SizedArray) typ() {}

// NumReferences returns the reference depth common to every Type variant.
func NumReferences(t Type) uint8 {
	switch v := t.(type) {
	case *Primitive:
		return v.NumReferences
	case *Struct:
		return v.NumReferences
	case *Generic:
		return v.NumReferences
	case *Trait:
		return v.NumReferences
	case *UnsizedArray:
		return v.NumReferences
	case *SizedArray:
		return v.NumReferences
	default:
		return 0
	}
}
