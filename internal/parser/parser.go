package parser

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// TokenType distinguishes the handful of lexical categories the grammar
// needs; kept as a small closed enum rather than reusing the lexer's
// dynamically-assigned rule IDs so the Pratt parser below reads the same
// way regardless of how formulaLexer's rules are ordered.
type TokenType int

const (
	ILLEGAL TokenType = iota
	EOF
	IDENT
	RATIONAL
	COMPARE
	PLUS
	MINUS
	STAR
	LPAREN
	RPAREN
	COMMA
)

type Token struct {
	Type     TokenType
	Lexeme   string
	Position lexer.Position
}

// ParseError reports a single malformed-input failure with its source
// position, mirroring kanso's parser error shape.
type ParseError struct {
	Message  string
	Position lexer.Position
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Position.Line, e.Position.Column, e.Message)
}

func tokenize(input string) ([]Token, error) {
	lex, err := formulaLexer.Lex("formula", strings.NewReader(input))
	if err != nil {
		return nil, fmt.Errorf("lex: %w", err)
	}

	var out []Token
	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, fmt.Errorf("lex: %w", err)
		}
		if tok.EOF() {
			out = append(out, Token{Type: EOF, Position: tok.Pos})
			return out, nil
		}

		switch tok.Type {
		case formulaLexer.Symbols()["Whitespace"]:
			continue
		case formulaLexer.Symbols()["Ident"]:
			out = append(out, Token{Type: IDENT, Lexeme: tok.Value, Position: tok.Pos})
		case formulaLexer.Symbols()["Rational"]:
			out = append(out, Token{Type: RATIONAL, Lexeme: tok.Value, Position: tok.Pos})
		case formulaLexer.Symbols()["Op"]:
			out = append(out, Token{Type: COMPARE, Lexeme: tok.Value, Position: tok.Pos})
		case formulaLexer.Symbols()["Plus"]:
			out = append(out, Token{Type: PLUS, Lexeme: tok.Value, Position: tok.Pos})
		case formulaLexer.Symbols()["Minus"]:
			out = append(out, Token{Type: MINUS, Lexeme: tok.Value, Position: tok.Pos})
		case formulaLexer.Symbols()["Star"]:
			out = append(out, Token{Type: STAR, Lexeme: tok.Value, Position: tok.Pos})
		case formulaLexer.Symbols()["LParen"]:
			out = append(out, Token{Type: LPAREN, Lexeme: tok.Value, Position: tok.Pos})
		case formulaLexer.Symbols()["RParen"]:
			out = append(out, Token{Type: RPAREN, Lexeme: tok.Value, Position: tok.Pos})
		case formulaLexer.Symbols()["Comma"]:
			out = append(out, Token{Type: COMMA, Lexeme: tok.Value, Position: tok.Pos})
		default:
			out = append(out, Token{Type: ILLEGAL, Lexeme: tok.Value, Position: tok.Pos})
		}
	}
}

// Parser is a hand-written recursive-descent/Pratt parser over the token
// stream produced by formulaLexer.
type Parser struct {
	tokens  []Token
	current int
	errs    []ParseError
}

// Parse converts formula text into a neutral Formula AST. It returns every
// parse error it collected, joined, rather than stopping at the first one.
func Parse(input string) (*Formula, error) {
	tokens, err := tokenize(input)
	if err != nil {
		return nil, err
	}

	p := &Parser{tokens: tokens}
	f := p.parseFormula()
	if len(p.errs) > 0 {
		msgs := make([]string, len(p.errs))
		for i, e := range p.errs {
			msgs[i] = e.Error()
		}
		return nil, fmt.Errorf("parse error(s): %s", strings.Join(msgs, "; "))
	}
	return f, nil
}

func (p *Parser) parseFormula() *Formula {
	and := p.consume(IDENT, "expected 'AND'")
	if !strings.EqualFold(and.Lexeme, "AND") {
		p.errorAt(and, "expected 'AND'")
	}
	p.consume(LPAREN, "expected '(' after 'AND'")

	f := &Formula{}
	if !p.check(RPAREN) {
		f.Atoms = append(f.Atoms, p.parseAtom())
		for p.match(COMMA) {
			f.Atoms = append(f.Atoms, p.parseAtom())
		}
	}
	p.consume(RPAREN, "expected ')' to close 'AND(...)'")
	return f
}

func (p *Parser) parseAtom() *Atom {
	lhs := p.parseTerm(0)
	op := p.consume(COMPARE, "expected a comparison operator")
	rhs := p.parseTerm(0)
	return &Atom{Lhs: lhs, Op: op.Lexeme, Rhs: rhs}
}

// termPrecedence gives "+"/"-" the lowest binding power; "*" binds tighter
// but only ever appears as RATIONAL "*" VAR, handled in parsePrimaryTerm.
var termPrecedence = map[TokenType]int{
	PLUS:  1,
	MINUS: 1,
}

func (p *Parser) parseTerm(minPrec int) *Term {
	left := p.parseUnaryTerm()

	for {
		tok := p.peek()
		prec, ok := termPrecedence[tok.Type]
		if !ok || prec < minPrec {
			break
		}
		p.advance()
		right := p.parseTerm(prec + 1)
		if tok.Type == PLUS {
			left = left.add(right)
		} else {
			left = left.sub(right)
		}
	}

	return left
}

func (p *Parser) parseUnaryTerm() *Term {
	if p.match(MINUS) {
		return p.parseUnaryTerm().neg()
	}
	return p.parsePrimaryTerm()
}

func (p *Parser) parsePrimaryTerm() *Term {
	if p.check(RATIONAL) {
		tok := p.advance()
		val, ok := parseRat(tok.Lexeme)
		if !ok {
			p.errorAt(tok, "malformed rational literal "+tok.Lexeme)
			return newTerm()
		}
		if p.match(STAR) {
			name := p.consume(IDENT, "expected a variable name after '*'")
			return variableTerm(name.Lexeme).scale(val)
		}
		return constantTerm(val)
	}

	if p.check(IDENT) {
		tok := p.advance()
		return variableTerm(tok.Lexeme)
	}

	if p.match(LPAREN) {
		inner := p.parseTerm(0)
		p.consume(RPAREN, "expected ')'")
		return inner
	}

	tok := p.peek()
	p.errorAt(tok, "expected a term (rational, variable, or parenthesized expression)")
	p.advance()
	return newTerm()
}

func parseRat(s string) (*big.Rat, bool) {
	r := new(big.Rat)
	_, ok := r.SetString(s)
	return r, ok
}

// --- token stream helpers, mirroring the recursive-descent idiom used
// throughout kanso's internal/parser package. ---

func (p *Parser) advance() Token {
	tok := p.peek()
	if tok.Type != EOF {
		p.current++
	}
	return tok
}

func (p *Parser) peek() Token {
	return p.tokens[p.current]
}

func (p *Parser) check(tt TokenType) bool {
	return p.peek().Type == tt
}

func (p *Parser) match(types ...TokenType) bool {
	for _, tt := range types {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(tt TokenType, message string) Token {
	if p.check(tt) {
		return p.advance()
	}
	tok := p.peek()
	p.errorAt(tok, message)
	return tok
}

func (p *Parser) errorAt(tok Token, message string) {
	p.errs = append(p.errs, ParseError{Message: message, Position: tok.Position})
}
