package parser

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// formulaLexer tokenizes the formula grammar:
//
//	formula := "AND" "(" atom ("," atom)* ")"
//	atom    := term OP term
//	term    := term ("+"|"-") term | RATIONAL "*" VAR | RATIONAL | VAR | "(" term ")"
//
// Rationals are scanned unsigned; a leading "-" is handled by the Pratt
// parser as a unary operator, matching how kanso's grammar lexer leaves
// sign-handling to the parser rather than the lexer.
var formulaLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Whitespace", `[ \t\r\n]+`, nil},
		{"Ident", `[A-Za-z][A-Za-z0-9]*`, nil},
		{"Rational", `[0-9]+(/[0-9]+)?`, nil},
		{"Op", `>=|<=|>|<|=`, nil},
		{"Plus", `\+`, nil},
		{"Minus", `-`, nil},
		{"Star", `\*`, nil},
		{"LParen", `\(`, nil},
		{"RParen", `\)`, nil},
		{"Comma", `,`, nil},
	},
})
