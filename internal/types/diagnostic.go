package types

import (
	"fmt"
	"strings"
)

// Severity classifies a Diagnostic.
type Severity int

const (
	// SeverityError marks a diagnostic that fails compilation.
	SeverityError Severity = iota
	// SeverityWarning marks a diagnostic that does not fail compilation.
	SeverityWarning
)

// String returns the lowercase name of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// LabelKind distinguishes a Label that points at the root cause of a
// Diagnostic from one that only adds context.
type LabelKind int

const (
	// LabelPrimary marks the span the diagnostic is fundamentally about.
	LabelPrimary LabelKind = iota
	// LabelSecondary marks a related span offered as extra context.
	LabelSecondary
)

// Label attaches a message to a span within a Diagnostic. A Diagnostic
// normally carries exactly one primary label and zero or more secondary
// ones (e.g. "declared here" pointing at an earlier symbol definition).
type Label struct {
	Kind    LabelKind
	Span    Span
	Message string
}

// Diagnostic is a structured compiler error or warning, produced by the
// lexer, parser, symbol table builder, or type checker.
type Diagnostic struct {
	Severity Severity
	Message  string
	Labels   []Label
}

// NewError builds an Error-severity diagnostic with a single primary label.
func NewError(span Span, message string) Diagnostic {
	return Diagnostic{
		Severity: SeverityError,
		Message:  message,
		Labels:   []Label{{Kind: LabelPrimary, Span: span, Message: message}},
	}
}

// WithSecondary appends a secondary label to d and returns it.
func (d Diagnostic) WithSecondary(span Span, message string) Diagnostic {
	d.Labels = append(d.Labels, Label{Kind: LabelSecondary, Span: span, Message: message})
	return d
}

// Primary returns the diagnostic's primary label, if any.
func (d Diagnostic) Primary() (Label, bool) {
	for _, l := range d.Labels {
		if l.Kind == LabelPrimary {
			return l, true
		}
	}
	return Label{}, false
}

// String renders the diagnostic as a single line:
// "error: message (line 12)" with secondary labels appended on their own
// indented lines. A synthetic primary span omits the line reference.
func (d Diagnostic) String() string {
	var b strings.Builder
	b.WriteString(d.Severity.String())
	b.WriteString(": ")
	b.WriteString(d.Message)
	if p, ok := d.Primary(); ok && !p.Span.IsSynthetic() {
		fmt.Fprintf(&b, " (line %d)", p.Span.Line)
	}
	for _, l := range d.Labels {
		if l.Kind == LabelPrimary {
			continue
		}
		b.WriteString("\n  note: ")
		b.WriteString(l.Message)
		if !l.Span.IsSynthetic() {
			fmt.Fprintf(&b, " (line %d)", l.Span.Line)
		}
	}
	return b.String()
}
