// Package preprocessor implements the Directive Dispatcher (D), Conditional
// Engine (E) and Driver (F) of spec.md §4, plus the Context that wires A–E
// together for one preprocessing run. D, E and F are mutually recursive by
// the spec's own design — the driver hands '#' tokens to the dispatcher,
// the dispatcher hands #if/#ifdef/#ifndef to the conditional engine, and
// the conditional engine recursively hands taken-branch tokens back to the
// driver — so the three live in one package as separate files rather than
// behind an import-breaking interface.
package preprocessor

import (
	"fmt"
	"io"
	"os"

	"github.com/cprep/cprep/internal/cppexpr"
)

// Host is the strategy the driver calls out to for anything outside the
// token-transformation core itself: surfacing warnings, turning an explicit
// #error into a run-ending failure, and supplying the integer arithmetic
// primitive the expression evaluator folds Binary nodes with. It takes the
// place of the reference source's global write-to-stderr-and-keep-going
// behavior (spec.md §6), following this codebase's ancestry's preference
// for injected strategies over global state (see pipeline.Processor).
type Host interface {
	// Warn surfaces a non-fatal diagnostic (e.g. #warning). It never
	// returns an error: warnings never stop a run.
	Warn(msg string)

	// Error turns a fatal diagnostic (e.g. #error, a malformed directive)
	// into the error the driver returns. Implementations are free to log
	// msg before returning it wrapped.
	Error(msg string) error

	// Arithmetic applies op to left and right, mirroring
	// cppexpr.ArithmeticFunc. ok is false for an operator the host does
	// not support.
	Arithmetic(left, right int64, op string) (int64, bool)
}

// StderrHost is the default Host: it writes warnings to an io.Writer
// (os.Stderr unless overridden), turns every fatal condition into a plain
// error, and delegates arithmetic to cppexpr.DefaultArithmetic.
type StderrHost struct {
	Writer io.Writer
}

// NewStderrHost returns a StderrHost writing warnings to os.Stderr.
func NewStderrHost() *StderrHost {
	return &StderrHost{Writer: os.Stderr}
}

func (h *StderrHost) Warn(msg string) {
	w := h.Writer
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintln(w, msg)
}

func (h *StderrHost) Error(msg string) error {
	return fmt.Errorf("%s", msg)
}

func (h *StderrHost) Arithmetic(left, right int64, op string) (int64, bool) {
	return cppexpr.DefaultArithmetic(left, right, op)
}

// arithmeticFunc adapts a Host's Arithmetic method to cppexpr.ArithmeticFunc
// without requiring callers outside this package to know the shape.
func arithmeticFunc(h Host) cppexpr.ArithmeticFunc {
	return func(left, right int64, op string) (int64, bool) {
		return h.Arithmetic(left, right, op)
	}
}
