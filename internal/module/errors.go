package module

import (
	"fmt"

	"github.com/mira-lang/mira/internal/source"
)

// ErrorKind tags the program-forming error taxonomy produced during
// assembly.
type ErrorKind int

const (
	AnonymousFunctionAtGlobalLevel ErrorKind = iota
	IdentAlreadyDefined
	IdentNotDefined
	GlobalValueNoType
	GlobalValueNoLiteral
	NoCodeOutsideOfFunctions
)

func (k ErrorKind) String() string {
	switch k {
	case AnonymousFunctionAtGlobalLevel:
		return "anonymous function at global level"
	case IdentAlreadyDefined:
		return "identifier already defined"
	case IdentNotDefined:
		return "identifier not defined"
	case GlobalValueNoType:
		return "global value has no declared type"
	case GlobalValueNoLiteral:
		return "global value initializer is not a literal"
	case NoCodeOutsideOfFunctions:
		return "no code is allowed outside of functions"
	default:
		return "unknown assembly error"
	}
}

// Error is a single program-forming error raised while assembling a
// module's statements into its untyped tables.
type Error struct {
	Kind ErrorKind
	Loc  source.Location
	Name string // set for IdentAlreadyDefined / IdentNotDefined
}

func (e *Error) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s: %s (at %v)", e.Kind, e.Name, e.Loc)
	}
	return fmt.Sprintf("%s (at %v)", e.Kind, e.Loc)
}
