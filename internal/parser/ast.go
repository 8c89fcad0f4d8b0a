// Package parser turns the surface syntax of a formula into a neutral AST.
// It deliberately does not import the root ineqsolve package — solve.go is
// responsible for lowering this AST into ineqsolve.Atom/Term values, which
// keeps the dependency edge one-directional.
package parser

import "math/big"

// Term is a linear combination of variables plus a constant, e.g. 2*x - y + 3.
type Term struct {
	Const *big.Rat
	Vars  map[string]*big.Rat
}

func newTerm() *Term {
	return &Term{Const: new(big.Rat), Vars: map[string]*big.Rat{}}
}

func constantTerm(v *big.Rat) *Term {
	t := newTerm()
	t.Const.Set(v)
	return t
}

func variableTerm(name string) *Term {
	t := newTerm()
	t.Vars[name] = big.NewRat(1, 1)
	return t
}

func (t *Term) clone() *Term {
	out := newTerm()
	out.Const.Set(t.Const)
	for k, v := range t.Vars {
		out.Vars[k] = new(big.Rat).Set(v)
	}
	return out
}

func (t *Term) add(other *Term) *Term {
	out := t.clone()
	out.Const.Add(out.Const, other.Const)
	for k, v := range other.Vars {
		if cur, ok := out.Vars[k]; ok {
			cur.Add(cur, v)
		} else {
			out.Vars[k] = new(big.Rat).Set(v)
		}
		if out.Vars[k].Sign() == 0 {
			delete(out.Vars, k)
		}
	}
	return out
}

func (t *Term) neg() *Term {
	out := newTerm()
	out.Const.Neg(t.Const)
	for k, v := range t.Vars {
		out.Vars[k] = new(big.Rat).Neg(v)
	}
	return out
}

func (t *Term) sub(other *Term) *Term {
	return t.add(other.neg())
}

func (t *Term) scale(c *big.Rat) *Term {
	out := newTerm()
	out.Const.Mul(t.Const, c)
	for k, v := range t.Vars {
		out.Vars[k] = new(big.Rat).Mul(v, c)
	}
	return out
}

// Atom is a single parsed linear (in)equality, `lhs OP rhs`.
type Atom struct {
	Lhs *Term
	Op  string // one of ">=", "<=", ">", "<", "="
	Rhs *Term
}

// Formula is the top-level AND(...) of parsed atoms, in source order.
type Formula struct {
	Atoms []*Atom
}
