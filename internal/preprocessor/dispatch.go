package preprocessor

import (
	"strconv"
	"strings"

	"github.com/cprep/cprep/internal/cppexpr"
	"github.com/cprep/cprep/internal/cpptoken"
	"github.com/cprep/cprep/internal/cursor"
	"github.com/cprep/cprep/internal/diagnostics"
)

// directiveNames is the preprocessor keyword vocabulary. Grounded on
// preprocessor_is_preprocessor_keyword, minus its "eleif" entry — spec.md
// treats that as a typo in the reference source, not a directive to
// support — plus "else", which the reference never recognized at all but
// which belongs in the same "acknowledge, don't implement" bucket as
// "elif", "include" and "typedef".
var directiveNames = map[string]bool{
	"define":  true,
	"undef":   true,
	"warning": true,
	"error":   true,
	"if":      true,
	"ifdef":   true,
	"ifndef":  true,
	"endif":   true,
	"include": true,
	"typedef": true,
	"elif":    true,
	"else":    true,
}

// isDirectiveToken reports whether tok spells a recognized directive
// keyword. Grounded on preprocessor_token_is_preprocessor_keyword, with
// its operator-precedence bug fixed: the reference source's
// `type == IDENTIFIER || type == KEYWORD && is_keyword(sval)` binds `&&`
// tighter than `||`, so it treats every identifier whatsoever as a
// preprocessor keyword regardless of spelling. Here the vocabulary check
// applies to both token types uniformly.
func isDirectiveToken(tok cpptoken.Token) bool {
	return (tok.Type == cpptoken.Identifier || tok.Type == cpptoken.Keyword) && directiveNames[tok.Lexeme]
}

// dispatch consumes the keyword token following a '#' (already consumed by
// the driver) and runs the matching directive handler. handled is false
// when the token after '#' is not a recognized directive keyword, in
// which case dispatch leaves it unconsumed: the driver falls back to
// emitting the bare '#' token, mirroring preprocessor_handle_hashtag_token.
func dispatch(ctx *Context) (handled bool, err error) {
	tok, ok := ctx.Cursor.Peek()
	if !ok || !isDirectiveToken(tok) {
		return false, nil
	}
	ctx.Cursor.Next()

	switch tok.Lexeme {
	case "define":
		return true, handleDefine(ctx)
	case "undef":
		return true, handleUndef(ctx)
	case "warning":
		return true, handleWarning(ctx)
	case "error":
		return true, handleError(ctx)
	case "if":
		return true, handleIf(ctx)
	case "ifdef":
		return true, handleIfdef(ctx)
	case "ifndef":
		return true, handleIfndef(ctx)
	case "endif":
		// Reached only when no open #if/#ifdef/#ifndef consumed this
		// #endif first (ReadToEndif and SkipToEndif absorb every
		// matched one), so any #endif the dispatcher itself sees is
		// unbalanced.
		return true, diagnostics.New(diagnostics.PhaseDirectives, diagnostics.ErrBareEndif, tok)
	case "include", "typedef", "elif", "else":
		skipToEndOfLine(ctx.Cursor)
		ctx.Host.Warn(diagnostics.New(diagnostics.PhaseDirectives, diagnostics.WarnUnimplemented, tok, tok.Lexeme).Error())
		return true, nil
	}
	return false, nil
}

// handleDefine installs or replaces a definition. Grounded on
// preprocessor_handle_definition_token.
func handleDefine(ctx *Context) error {
	nameTok, ok := ctx.Cursor.Next()
	if !ok || nameTok.Type != cpptoken.Identifier {
		return diagnostics.New(diagnostics.PhaseDirectives, diagnostics.ErrMissingIdentifier, nameTok, "#define")
	}

	var params []string
	if isNextMacroArguments(ctx.Cursor) {
		p, err := parseMacroArgumentDeclaration(ctx.Cursor)
		if err != nil {
			return err
		}
		params = p
	}

	body := captureLineBody(ctx.Cursor)
	ctx.Defs.Insert(nameTok.Lexeme, body, params)
	return nil
}

// handleUndef removes a definition, a no-op if it was never defined.
// Grounded on preprocessor_handle_undef_token.
func handleUndef(ctx *Context) error {
	nameTok, ok := ctx.Cursor.Next()
	if !ok || nameTok.Type != cpptoken.Identifier {
		return diagnostics.New(diagnostics.PhaseDirectives, diagnostics.ErrMissingIdentifier, nameTok, "#undef")
	}
	ctx.Defs.Remove(nameTok.Lexeme)
	return nil
}

// handleWarning surfaces the rest of the line as a non-fatal diagnostic.
// Grounded on preprocessor_handle_warning_token.
func handleWarning(ctx *Context) error {
	msg := captureLineText(ctx.Cursor)
	ctx.Host.Warn(diagnostics.New(diagnostics.PhaseDirectives, diagnostics.WarnExplicitDirective, cpptoken.Token{}, msg).Error())
	return nil
}

// handleError turns the rest of the line into a run-ending error.
// Grounded on preprocessor_handle_error_token.
func handleError(ctx *Context) error {
	msg := captureLineText(ctx.Cursor)
	d := diagnostics.New(diagnostics.PhaseDirectives, diagnostics.ErrExplicitDirective, cpptoken.Token{}, msg)
	return ctx.Host.Error(d.Error())
}

// handleIf evaluates the remaining tokens on the line as a constant
// expression and reads the block accordingly. Grounded on
// preprocessor_handle_if_token.
func handleIf(ctx *Context) error {
	node, err := cppexpr.Parse(ctx.Cursor)
	if err != nil {
		return err
	}
	value, err := cppexpr.Fold(node, ctx.Defs, arithmeticFunc(ctx.Host))
	if err != nil {
		return err
	}
	return ReadToEndif(ctx.Cursor, value > 0, ctx.handleToken)
}

// handleIfdef reads the block only if its condition identifier is
// defined. Grounded on preprocessor_handle_ifdef_token.
func handleIfdef(ctx *Context) error {
	condTok, ok := ctx.Cursor.Next()
	if !ok || condTok.Type != cpptoken.Identifier {
		return diagnostics.New(diagnostics.PhaseDirectives, diagnostics.ErrMissingIdentifier, condTok, "#ifdef")
	}
	_, defined := ctx.Defs.Get(condTok.Lexeme)
	return ReadToEndif(ctx.Cursor, defined, ctx.handleToken)
}

// handleIfndef reads the block only if its condition identifier is NOT
// defined. Grounded on preprocessor_handle_ifndef_token.
func handleIfndef(ctx *Context) error {
	condTok, ok := ctx.Cursor.Next()
	if !ok || condTok.Type != cpptoken.Identifier {
		return diagnostics.New(diagnostics.PhaseDirectives, diagnostics.ErrMissingIdentifier, condTok, "#ifndef")
	}
	_, defined := ctx.Defs.Get(condTok.Lexeme)
	return ReadToEndif(ctx.Cursor, !defined, ctx.handleToken)
}

// isNextMacroArguments reports whether a '(' with no leading whitespace
// immediately follows the cursor, the boundary rule that tells a
// function-like macro's parameter list apart from an object-like macro
// whose body happens to start with a parenthesized expression. Grounded
// on preprocessor_is_next_macro_arguments, re-based on the candidate '('
// token's own leading-whitespace flag rather than the already-consumed
// name token's, since that is the token the rule is actually about.
func isNextMacroArguments(cur *cursor.Cursor) bool {
	tok, ok := cur.Peek()
	return ok && tok.IsSymbol('(') && !tok.LeadingWhitespace
}

// parseMacroArgumentDeclaration reads a parenthesized, comma-separated
// parameter list. Grounded on preprocessor_parse_macro_argument_declaration.
func parseMacroArgumentDeclaration(cur *cursor.Cursor) ([]string, error) {
	cur.Next() // consume '('

	var params []string
	tok, ok := cur.Next()
	for ok && !tok.IsSymbol(')') {
		if tok.Type != cpptoken.Identifier {
			return nil, diagnostics.New(diagnostics.PhaseDirectives, diagnostics.ErrMalformedParams, tok)
		}
		params = append(params, tok.Lexeme)

		sep, sepOk := cur.Next()
		if !sepOk || (!sep.IsOperator(",") && !sep.IsSymbol(')')) {
			return nil, diagnostics.New(diagnostics.PhaseDirectives, diagnostics.ErrMalformedParams, sep)
		}
		if sep.IsSymbol(')') {
			break
		}
		tok, ok = cur.Next()
	}
	return params, nil
}

// captureLineBody collects the tokens making up a definition's replacement
// list, up to (not including) the closing Newline, treating a '\'
// immediately followed by a newline as a line continuation rather than
// end of the body. Elsewhere '\' is an ordinary token (spec.md §6).
// Grounded on preprocessor_multi_value_insert_to_vector.
func captureLineBody(cur *cursor.Cursor) []cpptoken.Token {
	var body []cpptoken.Token
	for {
		tok, ok := cur.Peek()
		if !ok || tok.Type == cpptoken.Newline {
			return body
		}
		if tok.IsSymbol('\\') && nextIsNewline(cur) {
			cur.Next() // consume '\'
			cur.Next() // consume the newline it escapes
			continue
		}
		cur.Next()
		body = append(body, tok)
	}
}

// nextIsNewline reports whether the token immediately after the cursor's
// current position (a '\' the caller has not yet consumed) is a Newline.
func nextIsNewline(cur *cursor.Cursor) bool {
	cur.Save()
	cur.Next() // step past the '\'
	tok, ok := cur.Peek()
	cur.Restore()
	return ok && tok.Type == cpptoken.Newline
}

// captureLineText renders the rest of the line to a string for #warning
// and #error, honoring the same line-continuation rule as captureLineBody.
// Grounded on preprocessor_multi_value_string.
func captureLineText(cur *cursor.Cursor) string {
	var b strings.Builder
	first := true
	for {
		tok, ok := cur.Peek()
		if !ok || tok.Type == cpptoken.Newline {
			return b.String()
		}
		if tok.IsSymbol('\\') && nextIsNewline(cur) {
			cur.Next()
			cur.Next()
			continue
		}
		cur.Next()
		if !first {
			b.WriteByte(' ')
		}
		first = false
		b.WriteString(tokenText(tok))
	}
}

func tokenText(tok cpptoken.Token) string {
	if tok.Type == cpptoken.Number {
		return strconv.FormatInt(tok.Value, 10)
	}
	return tok.Lexeme
}

// skipToEndOfLine discards tokens up to (not including) the closing
// Newline, used for directives this core recognizes but does not
// implement.
func skipToEndOfLine(cur *cursor.Cursor) {
	for {
		tok, ok := cur.Peek()
		if !ok || tok.Type == cpptoken.Newline {
			return
		}
		cur.Next()
	}
}
