// Package diag holds the typechecking-phase error taxonomy shared by the
// name resolver and the type resolver, plus a small standalone error
// accumulator, List.
package diag

import (
	"fmt"
	"strings"

	"github.com/mira-lang/mira/internal/source"
)

// ErrorKind tags a typechecking error.
type ErrorKind int

const (
	ExportNotFound ErrorKind = iota
	UnboundIdent
	CyclicDependency
	MismatchingScopeType
	RecursiveTypeDetected
	UnexpectedGenerics
)

func (k ErrorKind) String() string {
	switch k {
	case ExportNotFound:
		return "export not found"
	case UnboundIdent:
		return "unbound identifier"
	case CyclicDependency:
		return "cyclic dependency"
	case MismatchingScopeType:
		return "mismatching scope type"
	case RecursiveTypeDetected:
		return "recursive value type detected"
	case UnexpectedGenerics:
		return "unexpected generic arguments"
	default:
		return "unknown typechecking error"
	}
}

// Error is a single typechecking error. Expected/Found are free-form
// descriptions (e.g. "struct", "function") rather than full Type values,
// so this package has no dependency on the check package's type model.
type Error struct {
	Kind     ErrorKind
	Loc      source.Location
	Name     string
	Expected string
	Found    string
}

func (e *Error) Error() string {
	switch e.Kind {
	case ExportNotFound, UnboundIdent:
		return fmt.Sprintf("%s: %q (at %v)", e.Kind, e.Name, e.Loc)
	case MismatchingScopeType:
		return fmt.Sprintf("%s: expected %s, found %s (at %v)", e.Kind, e.Expected, e.Found, e.Loc)
	default:
		return fmt.Sprintf("%s (at %v)", e.Kind, e.Loc)
	}
}

// List accumulates errors for a phase that continues past individual
// failures. Module assembly and resolution currently collect their errors
// in plain []error slices instead. The zero value is ready to use.
type List struct {
	errs []error
}

// Add appends err to the list if non-nil.
func (l *List) Add(err error) {
	if err != nil {
		l.errs = append(l.errs, err)
	}
}

// Errs returns the accumulated errors, nil if none were added.
func (l *List) Errs() []error { return l.errs }

// Empty reports whether no errors were accumulated.
func (l *List) Empty() bool { return len(l.errs) == 0 }

// Error implements the error interface by joining every accumulated
// message, so a List can itself be returned wherever a single error is
// expected.
func (l *List) Error() string {
	msgs := make([]string, len(l.errs))
	for i, e := range l.errs {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}
