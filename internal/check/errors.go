package check

import (
	"fmt"

	"github.com/mira-lang/mira/internal/source"
)

// ErrUnsupportedDynReference is returned when a TypeRef is a DynReference
// (trait-object type). Resolution of this variant is not implemented;
// per §9 this is reported explicitly rather than silently stubbed or
// misresolved.
type ErrUnsupportedDynReference struct {
	Loc source.Location
}

func (e *ErrUnsupportedDynReference) Error() string {
	return fmt.Sprintf("trait-object types are not yet supported (at %v)", e.Loc)
}
