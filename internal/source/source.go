// Package source provides the location model and structured-logging
// helper shared across the module assembly, resolver, and typechecker.
package source

import (
	"context"
	"log/slog"

	"github.com/mira-lang/mira/internal/intern"
)

// LevelTrace is a custom log level more verbose than Debug, used for
// per-item iteration logging (field resolution, import chasing).
const LevelTrace = slog.Level(-8)

var noCtx = context.Background() //nolint:gochecknoglobals

// Logger wraps slog.Logger with nil-safe convenience methods so callers do
// not need to guard every call site with a nil check.
type Logger struct {
	L *slog.Logger
}

// Enabled reports whether logging is active at the given level.
func (l *Logger) Enabled(level slog.Level) bool {
	return l.L != nil && l.L.Enabled(noCtx, level)
}

// Log emits a structured log message at the given level. No-op if nil.
func (l *Logger) Log(level slog.Level, msg string, attrs ...slog.Attr) {
	if l.L != nil && l.L.Enabled(noCtx, level) {
		l.L.LogAttrs(noCtx, level, msg, attrs...)
	}
}

// TraceEnabled reports whether trace-level logging is active.
func (l *Logger) TraceEnabled() bool { return l.Enabled(LevelTrace) }

// Trace emits a log message at the custom trace level.
func (l *Logger) Trace(msg string, attrs ...slog.Attr) { l.Log(LevelTrace, msg, attrs...) }

// Debug emits a log message at debug level.
func (l *Logger) Debug(msg string, attrs ...slog.Attr) { l.Log(slog.LevelDebug, msg, attrs...) }

// Warn emits a log message at warn level.
func (l *Logger) Warn(msg string, attrs ...slog.Attr) { l.Log(slog.LevelWarn, msg, attrs...) }

// Location identifies a point in source text: an interned file path plus a
// 1-based line and column.
type Location struct {
	File   intern.Str
	Line   uint32
	Column uint32
}

// Dummy is the sentinel meaning "slot reserved but not yet populated".
var Dummy = Location{}

// IsDummy reports whether loc is the Dummy sentinel.
func (loc Location) IsDummy() bool { return loc == Dummy }

// New constructs a populated Location.
func New(file intern.Str, line, column uint32) Location {
	return Location{File: file, Line: line, Column: column}
}
