package ast

import "github.com/mira-lang/mira/internal/source"

// TraitStatement declares a trait: a named set of method signatures other
// structs can bind generics against. The base module assembly algorithm
// documented for Function/Struct/Variable/ExternalFunction/Export does not
// mention traits explicitly, but the typed context requires a traits table
// to resolve generic bounds against (see check.TypedTrait), so trait
// declarations are assembled the same way a struct declaration is: by
// name, rejecting duplicates.
type TraitStatement struct {
	Name    string
	Methods []FunctionContract
	Loc     source.Location
}

func (s *TraitStatement) Location() source.Location { return s.Loc }
func (*TraitStatement) statement()                  {}
