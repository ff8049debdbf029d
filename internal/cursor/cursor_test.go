package cursor

import (
	"testing"

	"github.com/cprep/cprep/internal/cpptoken"
)

func toks(names ...string) []cpptoken.Token {
	out := make([]cpptoken.Token, len(names))
	for i, n := range names {
		out[i] = cpptoken.Ident(n)
	}
	return out
}

func TestPeekNextAdvance(t *testing.T) {
	c := New(toks("a", "b", "c"))

	peeked, ok := c.Peek()
	if !ok || peeked.Lexeme != "a" {
		t.Fatalf("Peek() = %v, %v", peeked, ok)
	}

	next, ok := c.Next()
	if !ok || next.Lexeme != "a" {
		t.Fatalf("Next() = %v, %v", next, ok)
	}

	next, ok = c.Next()
	if !ok || next.Lexeme != "b" {
		t.Fatalf("Next() = %v, %v", next, ok)
	}
}

func TestPreviousTracksConsumedToken(t *testing.T) {
	c := New(toks("a", "b"))
	if _, ok := c.Previous(); ok {
		t.Fatal("Previous() before any Next() should be absent")
	}
	c.Next()
	prev, ok := c.Previous()
	if !ok || prev.Lexeme != "a" {
		t.Fatalf("Previous() = %v, %v", prev, ok)
	}
}

func TestPeekAtEOF(t *testing.T) {
	c := New(toks("a"))
	c.Next()
	if _, ok := c.Peek(); ok {
		t.Fatal("Peek() at EOF should be absent")
	}
	if !c.AtEOF() {
		t.Fatal("AtEOF() should be true")
	}
}

func TestPeekSkipNewline(t *testing.T) {
	tokens := []cpptoken.Token{cpptoken.NL(), cpptoken.NL(), cpptoken.Ident("x")}
	c := New(tokens)
	tok, ok := c.PeekSkipNewline()
	if !ok || tok.Lexeme != "x" {
		t.Fatalf("PeekSkipNewline() = %v, %v", tok, ok)
	}
	// The newlines were consumed; x is still there to Next() past.
	tok, ok = c.Next()
	if !ok || tok.Lexeme != "x" {
		t.Fatalf("Next() after PeekSkipNewline = %v, %v", tok, ok)
	}
}

func TestSaveRestore(t *testing.T) {
	c := New(toks("a", "b", "c"))
	c.Next()
	c.Save()
	c.Next()
	c.Next()
	if !c.AtEOF() {
		t.Fatal("expected EOF after consuming all tokens")
	}
	c.Restore()
	tok, ok := c.Next()
	if !ok || tok.Lexeme != "b" {
		t.Fatalf("after Restore, Next() = %v, %v", tok, ok)
	}
}

func TestNestedSaveRestore(t *testing.T) {
	c := New(toks("a", "b", "c", "d"))
	c.Save()
	c.Next() // a
	c.Save()
	c.Next() // b
	c.Restore()
	tok, _ := c.Next()
	if tok.Lexeme != "b" {
		t.Fatalf("inner restore: Next() = %v", tok)
	}
	c.Restore()
	tok, _ = c.Next()
	if tok.Lexeme != "a" {
		t.Fatalf("outer restore: Next() = %v", tok)
	}
}

func TestSavePurgeCommits(t *testing.T) {
	c := New(toks("a", "b"))
	c.Save()
	c.Next()
	c.SavePurge()
	// no checkpoint left to restore to
	tok, _ := c.Next()
	if tok.Lexeme != "b" {
		t.Fatalf("Next() after SavePurge = %v", tok)
	}
}

func TestRestoreWithoutSavePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic from Restore without Save")
		}
	}()
	c := New(toks("a"))
	c.Restore()
}

func TestSavePurgeWithoutSavePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic from SavePurge without Save")
		}
	}()
	c := New(toks("a"))
	c.SavePurge()
}
