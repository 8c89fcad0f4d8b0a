package ineqsolve

import (
	"sort"
	"strings"
)

// Formula is an ordered conjunction of canonicalized atoms, plus the set of
// original (user-visible) variables and whether any input atom was a
// strict inequality.
type Formula struct {
	Atoms         []*Atom
	Targets       map[VarName]Term
	HasStrictIneq bool
}

// NewFormula builds a Formula from the parser's uncanonicalized atoms,
// rejecting any atom that references a reserved variable name, then
// canonicalizes in place: OpEQ atoms are split into an OpLE/OpGE pair, since
// ToSlack's cases only know how to slacken an inequality, not an equality,
// and every resulting atom is sign-split and slackened exactly once.
func NewFormula(rawAtoms []*Atom) (*Formula, error) {
	expanded := make([]*Atom, 0, len(rawAtoms))
	for _, a := range rawAtoms {
		for v := range a.targets {
			if err := checkReservedName(v); err != nil {
				return nil, err
			}
		}
		if a.op == OpEQ {
			expanded = append(expanded,
				NewAtom(a.lhs, a.rhs, OpLE),
				NewAtom(a.lhs, a.rhs, OpGE),
			)
		} else {
			expanded = append(expanded, a)
		}
	}

	f := &Formula{Targets: make(map[VarName]Term)}
	allTargets := make(map[VarName]struct{})
	for i, a := range expanded {
		allTargets = union(allTargets, a.targets)
		a.ClearNegation()
		a.ToSlack(i + 1)
		f.Atoms = append(f.Atoms, a)
		f.HasStrictIneq = f.HasStrictIneq || a.strict
	}
	for v := range allTargets {
		f.Targets[v] = VariableTerm(v)
	}
	return f, nil
}

func union(a, b map[VarName]struct{}) map[VarName]struct{} {
	for v := range b {
		a[v] = struct{}{}
	}
	return a
}

// SortedTargets returns the original variable names in sorted order, the
// order witness output follows so repeated solves of the same input produce
// byte-identical output.
func (f *Formula) SortedTargets() []VarName {
	out := make([]VarName, 0, len(f.Targets))
	for v := range f.Targets {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (f *Formula) String() string {
	parts := make([]string, 0, len(f.Atoms))
	for _, a := range f.Atoms {
		parts = append(parts, a.String())
	}
	return "AND(" + strings.Join(parts, ", ") + ")"
}
