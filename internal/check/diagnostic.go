package check

import (
	"fmt"

	"github.com/mira-lang/mira/internal/source"
)

// Severity ranks a Diagnostic. Unlike the teacher's MIB dialect, this
// language has exactly one compilation mode, so there is no
// DiagnosticConfig/strictness-level spectrum to carry over — only the
// severities a resolution pass can actually emit.
type Severity uint8

const (
	SeverityInfo Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "info"
}

// Diagnostic is a non-fatal observation surfaced alongside the hard
// diag.Error/check error values: something the code generator does not
// need blocked on, but a caller may want to display. The typed error
// values returned from ResolveType and friends remain the authoritative
// accumulation mechanism for anything that should actually fail
// resolution.
type Diagnostic struct {
	Severity Severity
	Code     string
	Message  string
	Loc      source.Location
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[%s] %s: %s (at %v)", d.Severity, d.Code, d.Message, d.Loc)
}
