package ineqsolve

import (
	"fmt"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

// boundsCase is a random small-integer single-variable range lo <= x <= hi:
// a small instance, cheap to generate, with a cross-checkable SAT/UNSAT
// answer (lo <= hi iff SAT).
type boundsCase struct {
	lo, hi int64
}

func genBoundsCase() gopter.Gen {
	return func(genParams *gopter.GenParameters) *gopter.GenResult {
		lo := int64(genParams.NextUint64()%21) - 10
		hi := int64(genParams.NextUint64()%21) - 10
		return gopter.NewGenResult(boundsCase{lo: lo, hi: hi}, gopter.NoShrinker)
	}
}

// singleWitness parses a one-variable "x=<rational>" Solve() result.
func singleWitness(out string) (VarName, Rational, bool) {
	name, val, found := strings.Cut(out, "=")
	if !found {
		return "", Rational{}, false
	}
	r, ok := ParseRational(val)
	return VarName(name), r, ok
}

func TestSimplexRandomRangesCrossCheckSatisfiability(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("x >= lo, x <= hi is SAT iff lo <= hi, and any SAT witness lies in [lo, hi]", prop.ForAll(
		func(c boundsCase) bool {
			input := fmt.Sprintf("AND(x >= %d, x <= %d)", c.lo, c.hi)
			out, err := Solve(input)
			if err != nil {
				return false
			}

			if c.lo > c.hi {
				return out == "UNSAT"
			}
			if out == "UNSAT" {
				return false
			}

			_, x, ok := singleWitness(out)
			if !ok {
				return false
			}
			return x.Cmp(RatFromInt64(c.lo)) >= 0 && x.Cmp(RatFromInt64(c.hi)) <= 0
		},
		genBoundsCase(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// scaledCase is a random small-integer two-variable LP a*x + b*y >= c, x,y
// >= 0, exercising scaled-coefficient pivoting across many random
// coefficients rather than one fixed input.
type scaledCase struct {
	a, b, c int64
}

func genScaledCase() gopter.Gen {
	return func(genParams *gopter.GenParameters) *gopter.GenResult {
		a := int64(genParams.NextUint64()%5) + 1
		b := int64(genParams.NextUint64()%5) + 1
		c := int64(genParams.NextUint64() % 20)
		return gopter.NewGenResult(scaledCase{a: a, b: b, c: c}, gopter.NoShrinker)
	}
}

func TestSimplexRandomScaledConstraintsSoundness(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("a*x + b*y >= c with x,y >= 0 is always SAT, and the witness satisfies every atom", prop.ForAll(
		func(c scaledCase) bool {
			atoms := []*Atom{
				NewAtom(ScaledVarTerm(RatFromInt64(c.a), "x").Add(ScaledVarTerm(RatFromInt64(c.b), "y")), ConstantTerm(RatFromInt64(c.c)), OpGE),
				NewAtom(VariableTerm("x"), ConstantTerm(RatZero()), OpGE),
				NewAtom(VariableTerm("y"), ConstantTerm(RatZero()), OpGE),
			}
			f, err := NewFormula(atoms)
			if err != nil {
				return false
			}
			o := NewOpti(f)
			if !o.Simplex() {
				return false
			}

			w := o.Witness()
			lhs := RatFromInt64(c.a).Mul(w["x"]).Add(RatFromInt64(c.b).Mul(w["y"]))
			return lhs.Cmp(RatFromInt64(c.c)) >= 0 && w["x"].Sign() >= 0 && w["y"].Sign() >= 0
		},
		genScaledCase(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestSimplexIdempotentPhase1OnFeasibleInput(t *testing.T) {
	atoms := []*Atom{
		NewAtom(VariableTerm("x"), ConstantTerm(RatZero()), OpGE),
		NewAtom(VariableTerm("y"), ConstantTerm(RatZero()), OpGE),
	}
	f, err := NewFormula(atoms)
	require.NoError(t, err)
	for _, a := range f.Atoms {
		require.True(t, a.rhs.Constant().Sign() >= 0, "every atom already feasible at the origin")
	}

	o := NewOpti(f)
	require.True(t, o.simplexPhase1())
	require.True(t, o.value.IsZero())
}

// fmConstraint is one linear constraint normalized to "expr <= 0" (strict
// false) or "expr < 0" (strict true), the form Fourier-Motzkin elimination
// operates on.
type fmConstraint struct {
	expr   Term
	strict bool
}

// fmEliminate removes v from cs by Fourier-Motzkin elimination: constraints
// not mentioning v pass through unchanged, and every (upper, lower) pair of
// bounds on v is combined into a new constraint over the remaining
// variables. This is a different algorithm from the simplex tableau pivots
// in solver.go, so it serves as an independent cross-check on
// satisfiability rather than re-exercising the same code path.
func fmEliminate(cs []fmConstraint, v VarName) []fmConstraint {
	var zero, pos, neg []fmConstraint
	for _, c := range cs {
		switch coeff := c.expr.CoeffOf(v); {
		case coeff.IsZero():
			zero = append(zero, c)
		case coeff.Sign() > 0:
			pos = append(pos, c)
		default:
			neg = append(neg, c)
		}
	}

	out := zero
	for _, u := range pos {
		restU, coeffU := u.expr.Remove(v)
		boundU := restU.Scale(coeffU.Neg().Inv())
		for _, l := range neg {
			restL, coeffL := l.expr.Remove(v)
			boundL := restL.Scale(coeffL.Neg().Inv())
			out = append(out, fmConstraint{expr: boundL.Sub(boundU), strict: u.strict || l.strict})
		}
	}
	return out
}

// fourierMotzkinSAT decides satisfiability of a conjunction of fmConstraints
// over vars by eliminating every variable in turn and checking whether the
// surviving constant constraints all hold.
func fourierMotzkinSAT(cs []fmConstraint, vars []VarName) bool {
	for _, v := range vars {
		cs = fmEliminate(cs, v)
	}
	for _, c := range cs {
		v := c.expr.Constant()
		if c.strict {
			if v.Sign() >= 0 {
				return false
			}
		} else if v.Sign() > 0 {
			return false
		}
	}
	return true
}

// randomLP is a random conjunction of linear atoms over up to 6 variables
// and up to 10 atoms with small integer coefficients, carried both as
// Solve()-ready formula text and as the fmConstraint form fed to the
// independent Fourier-Motzkin check - both views are built from the same
// random atoms, so the two solvers are checked against a common instance
// rather than against each other's parsing.
type randomLP struct {
	text        string
	constraints []fmConstraint
	vars        []VarName
}

func pickDistinctIndices(genParams *gopter.GenParameters, n, k int) []int {
	if k >= n {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out
	}
	seen := make(map[int]bool, k)
	out := make([]int, 0, k)
	for len(out) < k {
		idx := int(genParams.NextUint64() % uint64(n))
		if !seen[idx] {
			seen[idx] = true
			out = append(out, idx)
		}
	}
	return out
}

// formatLhsText renders the chosen (name -> coefficient) pairs as
// "c1 * v0 + c2 * v1" source text, in a fixed variable order so the
// rendering is deterministic for a given random draw.
func formatLhsText(order []string, coeffs map[string]int64) string {
	var sb strings.Builder
	first := true
	for _, name := range order {
		c, ok := coeffs[name]
		if !ok || c == 0 {
			continue
		}
		abs, sign := c, "+"
		if c < 0 {
			abs, sign = -c, "-"
		}
		if first {
			if sign == "-" {
				sb.WriteString("- ")
			}
			first = false
		} else {
			sb.WriteString(" " + sign + " ")
		}
		if abs == 1 {
			sb.WriteString(name)
		} else {
			fmt.Fprintf(&sb, "%d * %s", abs, name)
		}
	}
	return sb.String()
}

func genRandomLP() gopter.Gen {
	ops := [...]string{"<=", ">=", "<", ">"}

	return func(genParams *gopter.GenParameters) *gopter.GenResult {
		nVars := 1 + int(genParams.NextUint64()%6)
		nAtoms := 1 + int(genParams.NextUint64()%10)

		names := make([]string, nVars)
		vars := make([]VarName, nVars)
		for i := range names {
			names[i] = fmt.Sprintf("v%d", i)
			vars[i] = VarName(names[i])
		}

		atomTexts := make([]string, 0, nAtoms)
		constraints := make([]fmConstraint, 0, nAtoms)

		for i := 0; i < nAtoms; i++ {
			nChosen := 1 + int(genParams.NextUint64()%2)
			if nChosen > nVars {
				nChosen = nVars
			}
			chosen := pickDistinctIndices(genParams, nVars, nChosen)

			coeffs := make(map[string]int64, nChosen)
			lhs := ConstantTerm(RatZero())
			for _, idx := range chosen {
				c := int64(genParams.NextUint64()%20) - 10
				if c == 0 {
					c = 1
				}
				coeffs[names[idx]] = c
				lhs = lhs.Add(ScaledVarTerm(RatFromInt64(c), vars[idx]))
			}

			rhsConst := int64(genParams.NextUint64()%21) - 10
			op := ops[genParams.NextUint64()%uint64(len(ops))]
			atomTexts = append(atomTexts, fmt.Sprintf("%s %s %d", formatLhsText(names, coeffs), op, rhsConst))

			rhs := ConstantTerm(RatFromInt64(rhsConst))
			strict := op == "<" || op == ">"
			var expr Term
			if op == "<=" || op == "<" {
				expr = lhs.Sub(rhs)
			} else {
				expr = rhs.Sub(lhs)
			}
			constraints = append(constraints, fmConstraint{expr: expr, strict: strict})
		}

		lp := randomLP{
			text:        "AND(" + strings.Join(atomTexts, ", ") + ")",
			constraints: constraints,
			vars:        vars,
		}
		return gopter.NewGenResult(lp, gopter.NoShrinker)
	}
}

// parseWitnessLines parses Solve()'s "x=<rational>" lines into a value map.
func parseWitnessLines(out string) (map[VarName]Rational, bool) {
	witness := make(map[VarName]Rational)
	for _, line := range strings.Split(out, "\n") {
		name, val, found := strings.Cut(line, "=")
		if !found {
			return nil, false
		}
		r, ok := ParseRational(val)
		if !ok {
			return nil, false
		}
		witness[VarName(name)] = r
	}
	return witness, true
}

func TestSimplexRandomMultiVariableLPsCrossCheckAgainstFourierMotzkin(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("Solve's SAT/UNSAT verdict on a random LP of up to 6 variables and 10 atoms matches Fourier-Motzkin elimination, and any SAT witness satisfies every atom", prop.ForAll(
		func(lp randomLP) bool {
			out, err := Solve(lp.text)
			if err != nil {
				return false
			}

			want := fourierMotzkinSAT(lp.constraints, lp.vars)
			if out == "UNSAT" {
				return !want
			}
			if !want {
				return false
			}

			witness, ok := parseWitnessLines(out)
			if !ok {
				return false
			}
			for _, c := range lp.constraints {
				val := c.expr.Evaluate(witness)
				if c.strict {
					if val.Sign() >= 0 {
						return false
					}
				} else if val.Sign() > 0 {
					return false
				}
			}
			return true
		},
		genRandomLP(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
