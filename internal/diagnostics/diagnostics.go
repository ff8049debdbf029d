// Package diagnostics provides the typed error/warning vocabulary shared
// by every preprocessor component, following the phase-tagged
// DiagnosticError shape the rest of this codebase's ancestry uses for its
// own compiler pipeline.
package diagnostics

import (
	"fmt"

	"github.com/cprep/cprep/internal/cpptoken"
)

// Phase identifies which component raised a diagnostic.
type Phase string

const (
	PhaseCursor      Phase = "cursor"
	PhaseDefinitions Phase = "definitions"
	PhaseExpr        Phase = "expr"
	PhaseDirectives  Phase = "directives"
	PhaseConditional Phase = "conditional"
	PhaseDriver      Phase = "driver"
)

// Code identifies the specific diagnostic template.
type Code string

const (
	ErrUnsupportedOperator Code = "E001" // operator not supported by the constant-expression evaluator
	ErrDivisionByZero      Code = "E002"
	ErrNonNumericBody      Code = "E003" // definition does not hold a number value
	ErrMalformedParams     Code = "E004" // incomplete sequence for macro arguments
	ErrMissingIdentifier   Code = "E005" // #ifdef / #ifndef with no identifier
	ErrUnbalancedEndif     Code = "E006"
	ErrExplicitDirective   Code = "E007" // #error
	ErrUnexpectedToken     Code = "E008"
	ErrBareEndif           Code = "E009" // #endif with no matching opening

	WarnExplicitDirective Code = "W001" // #warning
	WarnUnimplemented     Code = "W002" // include/typedef/elif/else recognized but not implemented
)

var templates = map[Code]string{
	ErrUnsupportedOperator: "unsupported operator in constant expression: %q",
	ErrDivisionByZero:      "division by zero in constant expression",
	ErrNonNumericBody:      "definition does not hold a number value",
	ErrMalformedParams:     "incomplete sequence for macro arguments",
	ErrMissingIdentifier:   "no identifier provided for %s",
	ErrUnbalancedEndif:     "unbalanced %s: missing #endif",
	ErrExplicitDirective:   "#error %s",
	ErrUnexpectedToken:     "unexpected token %q",
	ErrBareEndif:           "#endif with no matching #if/#ifdef/#ifndef",
	WarnExplicitDirective:  "#warning %s",
	WarnUnimplemented:      "#%s is recognized but not implemented; skipping to end of line",
}

// Diagnostic is a single warning or fatal error, carrying enough context
// (phase, code, source token) to render a useful message without any
// rendering logic living in the core itself — rendering is left to the
// embedder, per spec.md's "diagnostic rendering is out of scope".
type Diagnostic struct {
	Phase Phase
	Code  Code
	Token cpptoken.Token
	Args  []any
}

func (d *Diagnostic) Error() string {
	template, ok := templates[d.Code]
	if !ok {
		return fmt.Sprintf("unknown diagnostic code: %s", d.Code)
	}
	message := fmt.Sprintf(template, d.Args...)
	if d.Token.Line > 0 {
		return fmt.Sprintf("[%s] %d:%d: %s (%s)", d.Phase, d.Token.Line, d.Token.Column, message, d.Code)
	}
	return fmt.Sprintf("[%s] %s (%s)", d.Phase, message, d.Code)
}

// New builds a Diagnostic for the given phase/code/token.
func New(phase Phase, code Code, tok cpptoken.Token, args ...any) *Diagnostic {
	return &Diagnostic{Phase: phase, Code: code, Token: tok, Args: args}
}

// IsWarning reports whether code identifies a recoverable warning as
// opposed to a fatal diagnostic.
func IsWarning(code Code) bool {
	return len(code) > 0 && code[0] == 'W'
}
