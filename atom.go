package ineqsolve

import (
	"fmt"
	"sort"
)

// Op tags the relation between an atom's two sides. After canonicalization
// every atom's Op is OpEQ regardless of what it started as.
type Op int

const (
	OpLE Op = iota
	OpGE
	OpLT
	OpGT
	OpEQ
)

func (o Op) String() string {
	switch o {
	case OpLE:
		return "<="
	case OpGE:
		return ">="
	case OpLT:
		return "<"
	case OpGT:
		return ">"
	case OpEQ:
		return "="
	default:
		return "?"
	}
}

// Atom is one (in)equality constraint. Before canonicalization lhs/rhs hold
// the original two sides of the relation; after NewFormula canonicalizes it
// (ClearNegation then ToSlack) it is always of the form "basic = expression",
// i.e. lhs is 1*b for the atom's unique basic variable and rhs is a linear
// expression over non-basics.
type Atom struct {
	lhs     Term
	rhs     Term
	op      Op
	targets map[VarName]struct{}
	strict  bool
}

// NewAtom builds an atom from its two original sides and its operator.
// targets records every variable that appeared in either side before
// canonicalization - the original, user-visible variables a witness must
// eventually report a value for.
func NewAtom(lhs, rhs Term, op Op) *Atom {
	targets := make(map[VarName]struct{})
	for _, v := range lhs.Vars() {
		targets[v] = struct{}{}
	}
	for _, v := range rhs.Vars() {
		targets[v] = struct{}{}
	}
	return &Atom{
		lhs:     lhs,
		rhs:     rhs,
		op:      op,
		targets: targets,
		strict:  op == OpLT || op == OpGT,
	}
}

// pinnedAtom builds an already-canonical atom basic = val, used by the
// pivot loop to record an unbounded variable pinned to a finite value.
func pinnedAtom(basic VarName, val Term) *Atom {
	return &Atom{
		lhs:     VariableTerm(basic),
		rhs:     val,
		op:      OpEQ,
		targets: map[VarName]struct{}{basic: {}},
		strict:  false,
	}
}

func (a *Atom) sortedTargets() []VarName {
	out := make([]VarName, 0, len(a.targets))
	for v := range a.targets {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ClearNegation sign-splits every original variable x into x_f - x_ff so
// the tableau only ever needs non-negative variables: the simplex method
// requires every variable to be restricted to be >= 0, and input variables
// carry no such restriction, so each one is rewritten as the difference of
// two fresh non-negative variables before canonicalization continues.
func (a *Atom) ClearNegation() {
	for _, x := range a.sortedTargets() {
		split := VariableTerm(posSplitName(x)).Sub(VariableTerm(negSplitName(x)))
		a.lhs = a.lhs.Substitute(x, split)
		a.rhs = a.rhs.Substitute(x, split)
	}
}

// ToSlack converts the atom to slack form: basic = expression + aux, with
// index naming the fresh slack variable s_<index>. The receiver must
// already be one of OpLE/OpGE/OpLT/OpGT - OpEQ atoms are split into an
// OpLE/OpGE pair by Formula's constructor before ToSlack ever sees them, so
// ToSlack panics on OpEQ as an internal-invariant guard.
func (a *Atom) ToSlack(index int) {
	slack := VariableTerm(slackVarName(index))
	switch a.op {
	case OpLE:
		a.rhs = a.rhs.Sub(a.lhs)
		a.lhs = slack
	case OpGE:
		a.rhs = a.lhs.Sub(a.rhs)
		a.lhs = slack
	case OpLT:
		lhsPlusPos := a.lhs.Add(VariableTerm(PosVar))
		a.rhs = a.rhs.Sub(lhsPlusPos)
		a.lhs = slack
	case OpGT:
		rhsPlusPos := a.rhs.Add(VariableTerm(PosVar))
		a.rhs = a.lhs.Sub(rhsPlusPos)
		a.lhs = slack
	default:
		panic(fmt.Errorf("%w: ToSlack called on a non-inequality atom", ErrInvariant))
	}
	a.rhs = a.rhs.Add(VariableTerm(AuxVar))
	a.op = OpEQ
}

// Basic returns the atom's unique basic variable. Pre-canonicalization
// callers never call this; post-canonicalization lhs is always 1*b.
func (a *Atom) Basic() VarName {
	vs := a.lhs.Vars()
	if len(vs) != 1 {
		panic(fmt.Errorf("%w: atom lhs %s is not a single basic variable", ErrInvariant, a.lhs))
	}
	return vs[0]
}

// NonBasic returns the non-basic variables appearing in rhs, sorted.
func (a *Atom) NonBasic() []VarName { return a.rhs.Vars() }

// CoeffOf returns rhs's coefficient of v.
func (a *Atom) CoeffOf(v VarName) Rational { return a.rhs.CoeffOf(v) }

// Constrain returns rhs.Constrain(v).
func (a *Atom) Constrain(v VarName) (Rational, bool) { return a.rhs.Constrain(v) }

// Evaluate computes rhs's value under sigma.
func (a *Atom) Evaluate(sigma map[VarName]Rational) Rational { return a.rhs.Evaluate(sigma) }

// Represent rewrites "b = rhs" so that v becomes the new basic variable,
// returning the new rhs so the caller can broadcast the substitution to
// every other atom and the objective - this is the algebraic heart of a
// pivot: solve the row for the entering variable, then propagate.
func (a *Atom) Represent(v VarName) Term {
	rest, alpha := a.rhs.Remove(v)
	newRhs := rest.Sub(a.lhs)
	newRhs = newRhs.Scale(alpha.Neg().Inv())
	a.lhs = VariableTerm(v)
	a.rhs = newRhs
	return a.rhs
}

// Substitute replaces old with oldCoeff*newTerm inside rhs.
func (a *Atom) Substitute(old VarName, newTerm Term) {
	a.rhs = a.rhs.Substitute(old, newTerm)
}

func (a *Atom) String() string {
	return fmt.Sprintf("%s %s %s", a.lhs, a.op, a.rhs)
}
