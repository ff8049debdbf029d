package preprocessor

import (
	"errors"

	"github.com/cprep/cprep/internal/cpptoken"
	"github.com/cprep/cprep/internal/diagnostics"
)

// Run drives ctx's cursor to completion, the Driver of spec.md §4.F.
// Newlines are discarded, a '#' symbol is handed to the dispatcher, and
// every other token is copied to ctx.Output. A fatal diagnostic raised by
// any component is passed through ctx.Host.Error, and the error it returns
// ends the run. Grounded on preprocessor_run and preprocessor_handle_token.
func Run(ctx *Context) error {
	for {
		tok, ok := ctx.Cursor.Next()
		if !ok {
			return nil
		}
		if err := ctx.handleToken(tok); err != nil {
			var d *diagnostics.Diagnostic
			if errors.As(err, &d) {
				return ctx.Host.Error(d.Error())
			}
			return err
		}
	}
}

// handleToken is the per-token dispatch preprocessor_handle_token
// performs, also the tokenHandler the conditional engine calls back into
// for a taken branch's body (preprocessor_read_to_end_if's call to
// preprocessor_handle_token) — the recursive heart of D, E and F's
// mutual dependency.
func (ctx *Context) handleToken(tok cpptoken.Token) error {
	switch {
	case tok.Type == cpptoken.Newline:
		return nil

	case tok.IsSymbol('#'):
		handled, err := dispatch(ctx)
		if err != nil {
			return err
		}
		if !handled {
			ctx.emit(tok)
		}
		return nil

	default:
		ctx.emit(tok)
		return nil
	}
}
