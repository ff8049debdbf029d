// Package cursor implements the single forward-reading token cursor shared
// by every preprocessor component: the Token Cursor of spec.md §4.A.
package cursor

import "github.com/cprep/cprep/internal/cpptoken"

// Cursor is a forward iterator over a token vector with a checkpoint stack
// for bounded lookahead. It is single-reader: every component that walks
// the input token vector shares exactly one Cursor.
type Cursor struct {
	tokens      []cpptoken.Token
	pos         int
	checkpoints []int
}

// New creates a Cursor over tokens, positioned before the first token.
func New(tokens []cpptoken.Token) *Cursor {
	return &Cursor{tokens: tokens}
}

// Peek returns the next token without advancing. ok is false at end of input.
func (c *Cursor) Peek() (cpptoken.Token, bool) {
	if c.pos >= len(c.tokens) {
		return cpptoken.Token{}, false
	}
	return c.tokens[c.pos], true
}

// Next returns and consumes the next token. ok is false at end of input.
func (c *Cursor) Next() (cpptoken.Token, bool) {
	tok, ok := c.Peek()
	if ok {
		c.pos++
	}
	return tok, ok
}

// Previous returns the token at position cursor-1, used to inspect
// LeadingWhitespace on a following '('.
func (c *Cursor) Previous() (cpptoken.Token, bool) {
	if c.pos-1 < 0 || c.pos-1 >= len(c.tokens) {
		return cpptoken.Token{}, false
	}
	return c.tokens[c.pos-1], true
}

// PeekSkipNewline advances past consecutive newline tokens, then peeks.
func (c *Cursor) PeekSkipNewline() (cpptoken.Token, bool) {
	for {
		tok, ok := c.Peek()
		if !ok || tok.Type != cpptoken.Newline {
			return tok, ok
		}
		c.pos++
	}
}

// AtEOF reports whether the cursor has consumed every token.
func (c *Cursor) AtEOF() bool {
	return c.pos >= len(c.tokens)
}

// Save pushes a checkpoint of the current position. Nested saves form a
// stack.
func (c *Cursor) Save() {
	c.checkpoints = append(c.checkpoints, c.pos)
}

// Restore pops the most recent checkpoint and resets the position to it.
// Calling Restore without a matching Save is a programming error in the
// caller, not a malformed-input condition, so it panics rather than
// returning a diagnostic.
func (c *Cursor) Restore() {
	n := len(c.checkpoints)
	if n == 0 {
		panic("cursor: Restore without matching Save")
	}
	c.pos = c.checkpoints[n-1]
	c.checkpoints = c.checkpoints[:n-1]
}

// SavePurge pops the most recent checkpoint without moving the position,
// committing to everything consumed since the matching Save.
func (c *Cursor) SavePurge() {
	n := len(c.checkpoints)
	if n == 0 {
		panic("cursor: SavePurge without matching Save")
	}
	c.checkpoints = c.checkpoints[:n-1]
}
