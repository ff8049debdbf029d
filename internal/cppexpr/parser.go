package cppexpr

import (
	"github.com/cprep/cprep/internal/cpptoken"
	"github.com/cprep/cprep/internal/cursor"
	"github.com/cprep/cprep/internal/diagnostics"
)

// Precedence levels, lowest to highest, mirroring C's constant-expression
// grammar per spec.md §4.C. The named precedence constants and the
// operator-spelling-to-precedence map are carried over from this
// codebase's ancestry's Pratt-style expression parser, narrowed to this
// fixed grammar; prefix forms are dispatched by a switch in parsePrefix.
const (
	lowest = iota
	precTernary
	precLogicOr
	precLogicAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
	precUnary
)

var infixPrecedence = map[string]int{
	"?":  precTernary,
	"||": precLogicOr,
	"&&": precLogicAnd,
	"|":  precBitOr,
	"^":  precBitXor,
	"&":  precBitAnd,
	"==": precEquality,
	"!=": precEquality,
	"<":  precRelational,
	"<=": precRelational,
	">":  precRelational,
	">=": precRelational,
	"<<": precShift,
	">>": precShift,
	"+":  precAdditive,
	"-":  precAdditive,
	"*":  precMultiplicative,
	"/":  precMultiplicative,
	"%":  precMultiplicative,
}

var unaryOps = map[string]bool{"+": true, "-": true, "!": true, "~": true}

// Parser builds an expression tree from tokens pulled off a shared
// cursor.Cursor. It stops at the first Newline token or at end of input
// without consuming the Newline, so a `#if` handler can hand it the
// shared cursor directly and resume reading the line afterward, and body
// re-evaluation (spec.md §4.C's fold rules) can hand it a cursor built
// over an isolated definition body (whose capture already strips
// newlines, per spec.md §4.B).
type Parser struct {
	cur *cursor.Cursor
}

// NewParser wraps cur for expression parsing.
func NewParser(cur *cursor.Cursor) *Parser {
	return &Parser{cur: cur}
}

// Parse parses exactly one constant expression and returns its root node.
func Parse(cur *cursor.Cursor) (Node, error) {
	return NewParser(cur).Parse()
}

// Parse parses exactly one constant expression off p's cursor.
func (p *Parser) Parse() (Node, error) {
	return p.parseExpression(lowest)
}

func (p *Parser) atStop() bool {
	tok, ok := p.cur.Peek()
	return !ok || tok.Type == cpptoken.Newline
}

func (p *Parser) parseExpression(minPrec int) (Node, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}

	for {
		if p.atStop() {
			return left, nil
		}
		tok, _ := p.cur.Peek()
		op := operatorSpelling(tok)
		prec, ok := infixPrecedence[op]
		if !ok || prec <= minPrec {
			return left, nil
		}
		p.cur.Next() // consume operator

		if op == "?" {
			left, err = p.parseTernary(left)
		} else {
			left, err = p.parseBinary(left, op, prec)
		}
		if err != nil {
			return nil, err
		}
	}
}

func (p *Parser) parseBinary(left Node, op string, prec int) (Node, error) {
	right, err := p.parseExpression(prec)
	if err != nil {
		return nil, err
	}
	return &Binary{Op: op, Left: left, Right: right}, nil
}

func (p *Parser) parseTernary(cond Node) (Node, error) {
	trueNode, err := p.parseExpression(lowest)
	if err != nil {
		return nil, err
	}
	tok, ok := p.cur.Next()
	if !ok || !tok.IsOperator(":") {
		return nil, diagnostics.New(diagnostics.PhaseExpr, diagnostics.ErrUnexpectedToken, tok, "expected ':' in ternary expression")
	}
	// Right-associative: a ? b : c ? d : e == a ? b : (c ? d : e)
	falseNode, err := p.parseExpression(precTernary - 1)
	if err != nil {
		return nil, err
	}
	return &Ternary{Cond: cond, True: trueNode, False: falseNode}, nil
}

func (p *Parser) parsePrefix() (Node, error) {
	tok, ok := p.cur.Peek()
	if !ok || tok.Type == cpptoken.Newline {
		return nil, diagnostics.New(diagnostics.PhaseExpr, diagnostics.ErrUnexpectedToken, tok, "end of expression")
	}

	op := operatorSpelling(tok)
	if unaryOps[op] {
		p.cur.Next()
		operand, err := p.parseExpression(precUnary)
		if err != nil {
			return nil, err
		}
		return &Unary{Op: op, Operand: operand}, nil
	}

	switch {
	case tok.Type == cpptoken.Number:
		p.cur.Next()
		return &Number{Value: tok.Value}, nil

	case tok.IsSymbol('('):
		p.cur.Next()
		inner, err := p.parseExpression(lowest)
		if err != nil {
			return nil, err
		}
		closeTok, ok := p.cur.Next()
		if !ok || !closeTok.IsSymbol(')') {
			return nil, diagnostics.New(diagnostics.PhaseExpr, diagnostics.ErrUnexpectedToken, closeTok, "expected ')'")
		}
		return &Parenthesized{Inner: inner}, nil

	case isDefinedKeyword(tok):
		return p.parseDefined()

	case tok.Type == cpptoken.Identifier || tok.Type == cpptoken.Keyword:
		p.cur.Next()
		return &Identifier{Name: tok.Lexeme}, nil
	}

	return nil, diagnostics.New(diagnostics.PhaseExpr, diagnostics.ErrUnexpectedToken, tok, tok.Lexeme)
}

// parseDefined handles `defined X` and `defined(X)`. It consumes the
// following identifier (and the parentheses around it, if present) and
// attaches it as the Keyword node's argument, so the identifier is never
// parsed as an operand on its own.
func (p *Parser) parseDefined() (Node, error) {
	p.cur.Next() // consume 'defined'

	hasParen := false
	if tok, ok := p.cur.Peek(); ok && tok.IsSymbol('(') {
		hasParen = true
		p.cur.Next()
	}

	idTok, ok := p.cur.Next()
	if !ok || (idTok.Type != cpptoken.Identifier && idTok.Type != cpptoken.Keyword) {
		return nil, diagnostics.New(diagnostics.PhaseExpr, diagnostics.ErrUnexpectedToken, idTok, "expected identifier after 'defined'")
	}

	if hasParen {
		closeTok, ok := p.cur.Next()
		if !ok || !closeTok.IsSymbol(')') {
			return nil, diagnostics.New(diagnostics.PhaseExpr, diagnostics.ErrUnexpectedToken, closeTok, "expected ')' after 'defined('")
		}
	}

	return &Keyword{Name: "defined", Arg: &Identifier{Name: idTok.Lexeme}}, nil
}

func isDefinedKeyword(tok cpptoken.Token) bool {
	return (tok.Type == cpptoken.Identifier || tok.Type == cpptoken.Keyword) && tok.Lexeme == "defined"
}

// operatorSpelling returns the canonical operator spelling of tok if it
// is an Operator token, or "" otherwise.
func operatorSpelling(tok cpptoken.Token) string {
	if tok.Type != cpptoken.Operator {
		return ""
	}
	return tok.Lexeme
}
