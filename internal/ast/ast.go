// Package ast holds the untyped parse-tree shapes handed to this module by
// the (out of scope) parser: paths, type references, and top-level
// statements.
package ast

import "github.com/mira-lang/mira/internal/source"

// ReservedTypeNames lists the identifiers that name a primitive type.
// Module assembly does not reject them as user-defined names; type
// resolution always resolves them to the primitive, so a user-defined item
// with one of these names is never reached through a type reference.
var ReservedTypeNames = map[string]bool{
	"str": true, "bool": true, "char": true, "void": true,
	"i8": true, "i16": true, "i32": true, "i64": true, "isize": true,
	"u8": true, "u16": true, "u32": true, "u64": true, "usize": true,
	"f16": true, "f32": true, "f64": true,
	"!": true,
}

// PathSegment is one dotted component of a Path, with its own generic
// argument list (e.g. the `<T>` in `container.Box<T>.value`).
type PathSegment struct {
	Name     string
	Generics []TypeRef
}

// Path is an ordered, dotted sequence of segments.
type Path struct {
	Segments []PathSegment
}

// IsEmpty reports whether the path has no segments, the sentinel meaning
// "resolve to the home module itself".
func (p Path) IsEmpty() bool { return len(p.Segments) == 0 }

// First returns the name of the path's first segment. Panics if empty;
// callers must check IsEmpty first.
func (p Path) First() string { return p.Segments[0].Name }

// TypeRef is a syntactic type reference, one of Reference, DynReference,
// Void, Never, UnsizedArray, or SizedArray. Implementations carry an
// unexported marker method so the set is closed to this package.
type TypeRef interface {
	Location() source.Location
	typeRef()
}

// Reference is a named type, possibly behind any number of references
// (`&&T` has NumReferences == 2).
type Reference struct {
	NumReferences uint8
	TypeName      Path
	Loc           source.Location
}

func (r *Reference) Location() source.Location { return r.Loc }
func (*Reference) typeRef()                    {}

// DynReference is a trait-object type (`&dyn Trait`). Resolution of this
// variant is not implemented; see check.ErrUnsupportedDynReference.
type DynReference struct {
	NumReferences uint8
	Traits        []Path
	Loc           source.Location
}

func (r *DynReference) Location() source.Location { return r.Loc }
func (*DynReference) typeRef()                    {}

// Void is the `void` primitive, itself referenceable.
type Void struct {
	NumReferences uint8
	Loc           source.Location
}

func (v *Void) Location() source.Location { return v.Loc }
func (*Void) typeRef()                    {}

// Never is the `!` primitive; it cannot be dereferenced and carries no
// reference count.
type Never struct {
	Loc source.Location
}

func (n *Never) Location() source.Location { return n.Loc }
func (*Never) typeRef()                    {}

// UnsizedArray is `[T]` (behind however many references).
type UnsizedArray struct {
	NumReferences uint8
	Child         TypeRef
	Loc           source.Location
}

func (a *UnsizedArray) Location() source.Location { return a.Loc }
func (*UnsizedArray) typeRef()                    {}

// SizedArray is `[T; N]`. NumberElements is already an evaluated count: the
// parser is responsible for reducing whatever literal token it saw (the
// original grammar accepts a float-literal token here and destructures it
// as an unsigned integer regardless) down to a plain count before handing
// us the tree.
type SizedArray struct {
	NumReferences  uint8
	Child          TypeRef
	NumberElements uint64
	Loc            source.Location
}

func (a *SizedArray) Location() source.Location { return a.Loc }
func (*SizedArray) typeRef()                    {}

// GenericParam is a struct- or function-level generic parameter together
// with its (untyped, not-yet-resolved) trait bounds.
type GenericParam struct {
	Name   string
	Bounds []Path
}

// Field is one member of a parsed Struct.
type Field struct {
	Name string
	Type TypeRef
	Loc  source.Location
}

// FunctionContract is the parser's opaque carrier for a function's
// signature: parameter names/types and return type. The resolver
// translates this into a check.TypecheckedFunctionContract; the parameter
// and return TypeRefs are the only parts it looks inside.
type FunctionContract struct {
	Name       string
	Parameters []Field
	ReturnType TypeRef
	Generics   []GenericParam
	Loc        source.Location
}

// Expression is an opaque carrier for a parsed expression; this module
// never inspects it.
type Expression interface{}

// Statement is the parser's opaque carrier for one parsed statement. This
// package defines only the shapes module assembly must dispatch on: the
// rest (loops, expressions, blocks) are represented as Other and are never
// interpreted here.
type Statement interface {
	Location() source.Location
	statement()
}

// FunctionStatement declares a function with a body.
type FunctionStatement struct {
	Name        string // empty means anonymous
	IsAnonymous bool
	Contract    FunctionContract
	Body        []Statement
	Loc         source.Location
}

func (s *FunctionStatement) Location() source.Location { return s.Loc }
func (*FunctionStatement) statement()                  {}

// TraitImpl is one `impl Trait for Self { ... }` block inside a Struct.
type TraitImpl struct {
	Trait     Path
	Functions map[string]*FunctionStatement
}

// StructStatement declares a struct type.
type StructStatement struct {
	Name        string
	Fields      []Field
	GlobalImpl  map[string]*FunctionStatement
	TraitImpls  []TraitImpl
	Annotations []string
	Generics    []GenericParam
	Loc         source.Location
}

func (s *StructStatement) Location() source.Location { return s.Loc }
func (*StructStatement) statement()                  {}

// VariableStatement declares a global `static`-like value: a typed name
// bound to a literal.
type VariableStatement struct {
	Name        string
	Type        TypeRef // nil if omitted
	Initializer Expression
	IsLiteral   bool
	Loc         source.Location
}

func (s *VariableStatement) Location() source.Location { return s.Loc }
func (*VariableStatement) statement()                  {}

// ExternalFunctionStatement declares an extern function (no body, no
// generics).
type ExternalFunctionStatement struct {
	Name       string
	Contract   FunctionContract
	LinkedName string
	Loc        source.Location
}

func (s *ExternalFunctionStatement) Location() source.Location { return s.Loc }
func (*ExternalFunctionStatement) statement()                  {}

// ExportStatement re-exposes an already-defined name under a new name.
type ExportStatement struct {
	Key         string
	ExportedKey string
	Loc         source.Location
}

func (s *ExportStatement) Location() source.Location { return s.Loc }
func (*ExportStatement) statement()                  {}

// OtherStatement is any statement shape module assembly does not
// recognize as a top-level item (e.g. a bare expression statement). It is
// always illegal at module scope.
type OtherStatement struct {
	Loc source.Location
}

func (s *OtherStatement) Location() source.Location { return s.Loc }
func (*OtherStatement) statement()                  {}
