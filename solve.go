package ineqsolve

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/Chaibot97/Inequality-Checker/internal/parser"
)

// Solve parses formula text, builds and canonicalizes the Formula, runs the
// two-phase simplex engine, and renders either "UNSAT" or one
// "x=<rational>" line per original variable, sorted by name.
func Solve(input string) (string, error) {
	ast, err := parser.Parse(input)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrParse, err)
	}

	atoms := make([]*Atom, 0, len(ast.Atoms))
	for _, a := range ast.Atoms {
		op, ok := parseOp(a.Op)
		if !ok {
			return "", fmt.Errorf("%w: unknown operator %q", ErrParse, a.Op)
		}
		atoms = append(atoms, NewAtom(toTerm(a.Lhs), toTerm(a.Rhs), op))
	}

	f, err := NewFormula(atoms)
	if err != nil {
		return "", err
	}

	o := NewOpti(f)
	if !o.Simplex() {
		return "UNSAT", nil
	}

	witness := o.Witness()
	lines := make([]string, 0, len(f.Targets))
	for _, v := range f.SortedTargets() {
		lines = append(lines, fmt.Sprintf("%s=%s", v, witness[v].String()))
	}
	return strings.Join(lines, "\n"), nil
}

func parseOp(s string) (Op, bool) {
	switch s {
	case "<=":
		return OpLE, true
	case ">=":
		return OpGE, true
	case "<":
		return OpLT, true
	case ">":
		return OpGT, true
	case "=":
		return OpEQ, true
	default:
		return 0, false
	}
}

// toTerm lowers a parser.Term (backed by *big.Rat) into an ineqsolve.Term
// (backed by Rational), keeping the two packages' types independent so
// internal/parser never needs to import the root package.
func toTerm(t *parser.Term) Term {
	out := ConstantTerm(ratFromBig(t.Const))
	for name, coeff := range t.Vars {
		out = out.Add(ScaledVarTerm(ratFromBig(coeff), VarName(name)))
	}
	return out
}

func ratFromBig(r *big.Rat) Rational {
	v, ok := ParseRational(r.RatString())
	if !ok {
		panic(fmt.Errorf("%w: malformed rational from parser %s", ErrInvariant, r.RatString()))
	}
	return v
}
