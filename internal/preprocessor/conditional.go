package preprocessor

import (
	"github.com/cprep/cprep/internal/cpptoken"
	"github.com/cprep/cprep/internal/cursor"
	"github.com/cprep/cprep/internal/diagnostics"
)

// tokenHandler is how the conditional engine hands a taken-branch token
// back to the driver, mirroring preprocessor_read_to_end_if's call to
// preprocessor_handle_token: the token may itself be a '#' that opens a
// nested directive, so the handler recurses into the dispatcher rather
// than just copying the token to the output.
type tokenHandler func(tok cpptoken.Token) error

// hashtagAndIdentifier reports whether the cursor is positioned at a '#'
// token immediately followed by an Identifier or Keyword token spelled
// name, consuming both if so and leaving the cursor untouched otherwise.
// Grounded on preprocessor_hashtag_and_identifier.
func hashtagAndIdentifier(cur *cursor.Cursor, name string) bool {
	tok, ok := cur.Peek()
	if !ok || !tok.IsSymbol('#') {
		return false
	}

	cur.Save()
	cur.Next() // consume '#'

	target, ok := cur.Peek()
	if ok && (target.IsIdentifier(name) || target.IsKeyword(name)) {
		cur.Next()
		cur.SavePurge()
		return true
	}

	cur.Restore()
	return false
}

// startsNestedConditional reports whether the cursor sits at the opening
// '#if', '#ifdef' or '#ifndef' of a nested conditional block, consuming it
// if so. Grounded on preprocessor_is_hashtag_and_any_starting_if.
func startsNestedConditional(cur *cursor.Cursor) bool {
	return hashtagAndIdentifier(cur, "if") ||
		hashtagAndIdentifier(cur, "ifdef") ||
		hashtagAndIdentifier(cur, "ifndef")
}

// SkipToEndif discards tokens until the matching '#endif', recursing over
// any nested conditional blocks it encounters along the way. Grounded on
// preprocessor_skip_to_endif, with one deliberate departure: the reference
// source loops forever on an unbalanced conditional that runs off the end
// of input, where this returns ErrUnbalancedEndif instead.
func SkipToEndif(cur *cursor.Cursor) error {
	for {
		if hashtagAndIdentifier(cur, "endif") {
			return nil
		}
		if cur.AtEOF() {
			return diagnostics.New(diagnostics.PhaseConditional, diagnostics.ErrUnbalancedEndif, cpptoken.Token{}, "#if/#ifdef/#ifndef")
		}
		if startsNestedConditional(cur) {
			if err := SkipToEndif(cur); err != nil {
				return err
			}
			continue
		}
		cur.Next()
	}
}

// ReadToEndif reads the body of a conditional block up to its matching
// '#endif'. When taken is true, every token in the block is handed to
// handle (which copies it to the output and re-enters the dispatcher for
// any nested directive); when false, the block is discarded, with any
// nested conditional skipped wholesale rather than walked token by token.
// Grounded on preprocessor_read_to_end_if, with the same unbalanced-endif
// fix as SkipToEndif, and with the untaken branch's nested-conditional
// check moved ahead of the token skip it shares a position with — the
// reference source checks for a nested '#if' only after unconditionally
// consuming one token, which (since the token it just consumed is the
// very '#' a nested conditional would start with) means the check can
// never actually fire and an inner '#endif' is mistaken for the outer
// one's.
func ReadToEndif(cur *cursor.Cursor, taken bool, handle tokenHandler) error {
	for {
		if _, ok := cur.Peek(); !ok {
			return diagnostics.New(diagnostics.PhaseConditional, diagnostics.ErrUnbalancedEndif, cpptoken.Token{}, "#if/#ifdef/#ifndef")
		}
		if hashtagAndIdentifier(cur, "endif") {
			return nil
		}

		if taken {
			tok, _ := cur.Next()
			if err := handle(tok); err != nil {
				return err
			}
			continue
		}

		if startsNestedConditional(cur) {
			if err := SkipToEndif(cur); err != nil {
				return err
			}
			continue
		}
		cur.Next()
	}
}
