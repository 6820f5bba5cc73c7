package oslc

import (
	"github.com/openshading/oslc/internal/backend"
	"github.com/openshading/oslc/internal/types"
)

// Diagnostic is a structured compiler error or warning.
type Diagnostic = types.Diagnostic

// Severity classifies a Diagnostic.
type Severity = types.Severity

const (
	SeverityError   = types.SeverityError
	SeverityWarning = types.SeverityWarning
)

// Span is a byte range within source text, plus its 1-based source line.
type Span = types.Span

// Label attaches a message to a span within a Diagnostic.
type Label = types.Label

const (
	LabelPrimary   = types.LabelPrimary
	LabelSecondary = types.LabelSecondary
)

// Backend names a code generation target accepted by WithBackend.
type Backend = backend.Backend

const (
	OSO   = backend.OSO
	LLVM  = backend.LLVM
	SPIRV = backend.SPIRV
)
