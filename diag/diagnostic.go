package diag

import "github.com/solidity-analyzer/solidity-analyzer/span"

// Diagnostic is a single issue reported against a span of a file's text:
// a severity, the span it covers, a free-form code, and a human-readable
// message. Codes are passed through verbatim — they originate from the
// parser or the external type checker and are never interpreted by this
// package.
//
// Diagnostic is immutable after construction; build one with [New].
type Diagnostic struct {
	span     span.Span
	severity Severity
	code     string
	message  string
}

// New constructs a Diagnostic.
func New(sp span.Span, severity Severity, code, message string) Diagnostic {
	return Diagnostic{span: sp, severity: severity, code: code, message: message}
}

// Span returns the diagnostic's source span.
func (d Diagnostic) Span() span.Span { return d.span }

// Severity returns the diagnostic's severity.
func (d Diagnostic) Severity() Severity { return d.severity }

// Code returns the diagnostic's free-form code string.
func (d Diagnostic) Code() string { return d.code }

// Message returns the human-readable description.
func (d Diagnostic) Message() string { return d.message }
