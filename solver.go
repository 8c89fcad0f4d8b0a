package ineqsolve

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Chaibot97/Inequality-Checker/internal/obslog"
)

// Opti is the two-phase simplex engine: it owns a Formula and the current
// objective term, and mutates the formula's atoms in place as it pivots. A
// solve call owns its Opti exclusively; nothing escapes and nothing
// persists across solves, so concurrent solves never share state.
type Opti struct {
	formula *Formula
	objFun  Term
	vars    map[VarName]Rational
	value   Rational
}

// NewOpti wraps a canonicalized Formula in a fresh engine.
func NewOpti(f *Formula) *Opti {
	return &Opti{formula: f, vars: make(map[VarName]Rational)}
}

// evaluate rebuilds the current basic solution: every non-basic variable
// is 0, every basic variable is its atom's rhs evaluated under that
// assignment, and value is the objective read under the same assignment.
func (o *Opti) evaluate() {
	for _, a := range o.formula.Atoms {
		for _, nb := range a.NonBasic() {
			o.vars[nb] = RatZero()
		}
		o.vars[a.Basic()] = a.Evaluate(o.vars)
	}
	o.value = o.objFun.Evaluate(o.vars)
}

// Simplex runs the full two-phase procedure and reports satisfiability.
func (o *Opti) Simplex() bool {
	if !o.simplexPhase1() {
		return false
	}
	if o.formula.HasStrictIneq {
		return o.simplexPhase2()
	}
	return true
}

// simplexPhase1 maximizes -aux to find a feasible basis for the original
// constraints. Returns true iff the optimum is exactly 0, i.e. aux could be
// driven all the way to zero.
func (o *Opti) simplexPhase1() bool {
	o.objFun = ScaledVarTerm(RatFromInt64(-1), AuxVar)
	obslog.L().Debugw("phase1 start", "formula", o.formula.String())

	feasible := true
	for _, a := range o.formula.Atoms {
		if a.rhs.Constant().Sign() < 0 {
			feasible = false
			break
		}
	}

	if !feasible {
		minIdx := -1
		var minVal Rational
		for i, a := range o.formula.Atoms {
			cons, ok := a.Constrain(AuxVar)
			if !ok {
				continue
			}
			if minIdx == -1 || cons.LessThan(minVal) {
				minIdx, minVal = i, cons
			}
		}
		if minIdx == -1 {
			panic(ErrInvariant)
		}

		pivot := o.formula.Atoms[minIdx]
		newRhs := pivot.Represent(AuxVar)
		for i, a := range o.formula.Atoms {
			if i != minIdx {
				a.Substitute(AuxVar, newRhs)
			}
		}
		o.objFun = o.objFun.Substitute(AuxVar, newRhs)
	}

	o.pivotLoop()
	obslog.L().Debugw("phase1 done", "value", o.value.String())
	return o.value.IsZero()
}

// simplexPhase2 maximizes pos, the strict-inequality margin, after
// eliminating aux from the tableau. Returns true iff the optimum is
// strictly positive.
func (o *Opti) simplexPhase2() bool {
	o.objFun = ScaledVarTerm(RatOne(), PosVar)
	obslog.L().Debugw("phase2 start", "formula", o.formula.String())

	auxIdx := -1
	for i, a := range o.formula.Atoms {
		if a.Basic() == AuxVar {
			auxIdx = i
			break
		}
	}

	if auxIdx != -1 {
		eqn := o.formula.Atoms[auxIdx]
		nb := eqn.NonBasic()
		if len(nb) > 0 {
			xi := nb[0]
			eqn.Represent(xi)
			eqn.Substitute(AuxVar, ConstantTerm(RatZero()))
			propagated := eqn.rhs
			for j, other := range o.formula.Atoms {
				if j != auxIdx {
					other.Substitute(xi, propagated)
				}
			}
			o.objFun = o.objFun.Substitute(xi, propagated)
		} else {
			// trivial aux = 0 atom: drop it by the position we just found,
			// never by re-deriving an index after further mutation (see
			// SPEC_FULL.md's note on the source's ambiguous removal-by-index).
			o.formula.Atoms = append(o.formula.Atoms[:auxIdx], o.formula.Atoms[auxIdx+1:]...)
		}
	} else {
		zero := ConstantTerm(RatZero())
		for _, a := range o.formula.Atoms {
			a.Substitute(AuxVar, zero)
		}
	}

	o.pivotLoop()
	obslog.L().Debugw("phase2 done", "value", o.value.String())
	return o.value.Sign() > 0
}

// pivotLoop is the generic Bland's-rule maximization loop. It is written as
// an explicit loop rather than recursion so it can't overflow the Go call
// stack on a long pivot sequence: scan entering candidates sorted by name,
// perform the first pivot that makes progress, then restart the whole scan.
func (o *Opti) pivotLoop() {
	for {
		o.evaluate()
		positives := o.objFun.PositiveVars()
		if len(positives) == 0 {
			return
		}

		progressed := false
		for _, x := range positives {
			unbounded := true
			for _, a := range o.formula.Atoms {
				if a.CoeffOf(x).Sign() < 0 {
					unbounded = false
					break
				}
			}

			if unbounded {
				var xVal Term
				if o.objFun.Constant().Sign() <= 0 {
					xVal = ConstantTerm(RatOne().Sub(o.objFun.Constant()))
				} else {
					xVal = ConstantTerm(RatZero())
				}
				for _, a := range o.formula.Atoms {
					a.Substitute(x, xVal)
				}
				o.objFun = o.objFun.Substitute(x, xVal)
				o.formula.Atoms = append(o.formula.Atoms, pinnedAtom(x, xVal))
				o.evaluate()
				return
			}

			minIdx := -1
			var minVal Rational
			for i, a := range o.formula.Atoms {
				if a.CoeffOf(x).Sign() >= 0 {
					continue
				}
				cons, ok := a.Constrain(x)
				if !ok {
					continue
				}
				negCons := cons.Neg()
				if negCons.Sign() < 0 {
					continue
				}
				if minIdx == -1 || negCons.LessThan(minVal) {
					minIdx, minVal = i, negCons
				}
			}

			if minIdx != -1 {
				pivot := o.formula.Atoms[minIdx]
				obslog.L().Debugw("pivot", "entering", x, "leaving", pivot.Basic(), "atom", minIdx)
				newRhs := pivot.Represent(x)
				for i, a := range o.formula.Atoms {
					if i != minIdx {
						a.Substitute(x, newRhs)
					}
				}
				o.objFun = o.objFun.Substitute(x, newRhs)
				progressed = true
				break
			}
		}

		if !progressed {
			return
		}
	}
}

// String renders the engine's current state the way the Python reference's
// Opti.__str__ does - purely diagnostic, never part of a solved answer.
func (o *Opti) String() string {
	names := make([]VarName, 0, len(o.vars))
	for v := range o.vars {
		names = append(names, v)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	vertices := make([]string, len(names))
	for i, v := range names {
		vertices[i] = o.vars[v].String()
	}

	return fmt.Sprintf("OPT(%s, %s, (%s), %s)", o.objFun, o.formula, strings.Join(vertices, ", "), o.value)
}

// Witness extracts each original variable's satisfying value as
// (x_f - x_ff).Evaluate(vars), after a SAT verdict.
func (o *Opti) Witness() map[VarName]Rational {
	out := make(map[VarName]Rational, len(o.formula.Targets))
	for x := range o.formula.Targets {
		split := VariableTerm(posSplitName(x)).Sub(VariableTerm(negSplitName(x)))
		out[x] = split.Evaluate(o.vars)
	}
	return out
}
