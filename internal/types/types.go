// Package types provides internal types shared across oslc's compiler
// packages: source spans and a nil-safe logger. Diagnostics live in
// diagnostic.go.
package types

import (
	"context"
	"log/slog"
)

// LevelTrace is a custom log level more verbose than Debug.
// Use for per-item iteration logging (tokens, scope entry/exit, type-checker
// visits). Enable with: &slog.HandlerOptions{Level: slog.Level(-8)}
const LevelTrace = slog.Level(-8)

// noCtx is a background context used for slog calls that don't need cancellation.
var noCtx = context.Background() //nolint:gochecknoglobals

// Logger wraps slog.Logger with nil-safe convenience methods.
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
func (l *Logger) TraceEnabled() bool {
	return l.Enabled(LevelTrace)
}

// Trace emits a log message at the custom trace level.
func (l *Logger) Trace(msg string, attrs ...slog.Attr) {
	l.Log(LevelTrace, msg, attrs...)
}

// ByteOffset is a byte position in source text.
type ByteOffset uint32

// Span represents a half-open byte range in source text, plus the 1-based
// source line the range starts on.
type Span struct {
	Start ByteOffset // inclusive
	End   ByteOffset // exclusive
	Line  int        // 1-based; 0 marks a synthetic span
}

// Synthetic is the sentinel span for built-in symbols and other
// compiler-generated constructs with no source text of their own.
var Synthetic = Span{Start: 0, End: 0, Line: 0}

// NewSpan creates a Span from start/end byte offsets and a starting line.
func NewSpan(start, end ByteOffset, line int) Span {
	return Span{Start: start, End: end, Line: line}
}

// Union returns the smallest span covering both s and other. The result
// keeps s's Line, since callers always combine spans left-to-right.
func (s Span) Union(other Span) Span {
	start, end := s.Start, s.End
	if other.Start < start {
		start = other.Start
	}
	if other.End > end {
		end = other.End
	}
	return Span{Start: start, End: end, Line: s.Line}
}

// IsSynthetic reports whether s carries no real source position.
func (s Span) IsSynthetic() bool {
	return s == Synthetic
}
