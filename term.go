package ineqsolve

import "sort"

// VarName is an interned variable name. The names aux, pos, sN and V_f/V_ff
// are synthesized by the engine during canonicalization, so input formulas
// must not use aux, pos, s followed by digits, or any name ending in _f or
// _ff (see checkReservedName); other names such as "auxiliary" are allowed.
type VarName string

// Term is c + Sum(coeff_v * v), a linear combination of variables plus a
// constant. It is treated as an immutable value: every operation below
// returns a fresh Term rather than mutating the receiver, so atoms can
// freely share a Term's backing map between pivots without aliasing bugs.
// Entries with a zero coefficient never persist past the operation that
// would create one.
type Term struct {
	c    Rational
	vars map[VarName]Rational
}

// ConstantTerm builds the constant term c.
func ConstantTerm(c Rational) Term {
	return Term{c: c, vars: map[VarName]Rational{}}
}

// VariableTerm builds the term 1*v.
func VariableTerm(v VarName) Term {
	return ScaledVarTerm(RatOne(), v)
}

// ScaledVarTerm builds the term coeff*v, or the constant 0 if coeff is 0.
func ScaledVarTerm(coeff Rational, v VarName) Term {
	t := Term{c: RatZero(), vars: map[VarName]Rational{}}
	if !coeff.IsZero() {
		t.vars[v] = coeff
	}
	return t
}

func (t Term) clone() Term {
	nv := make(map[VarName]Rational, len(t.vars))
	for k, v := range t.vars {
		nv[k] = v
	}
	return Term{c: t.c, vars: nv}
}

// Vars returns the variables referenced by this term, sorted by
// name so callers iterate deterministically (Bland's rule relies on this).
func (t Term) Vars() []VarName {
	out := make([]VarName, 0, len(t.vars))
	for v := range t.vars {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Constant returns the constant part c.
func (t Term) Constant() Rational { return t.c }

// CoeffOf returns the coefficient of v, or 0 if v does not appear.
func (t Term) CoeffOf(v VarName) Rational {
	if c, ok := t.vars[v]; ok {
		return c
	}
	return RatZero()
}

func (t Term) addScaled(k Rational, o Term) Term {
	out := t.clone()
	out.c = out.c.Add(k.Mul(o.c))
	for v, coeff := range o.vars {
		nc := out.CoeffOf(v).Add(k.Mul(coeff))
		if nc.IsZero() {
			delete(out.vars, v)
		} else {
			out.vars[v] = nc
		}
	}
	return out
}

// Add returns t + o.
func (t Term) Add(o Term) Term { return t.addScaled(RatOne(), o) }

// Sub returns t - o.
func (t Term) Sub(o Term) Term { return t.addScaled(RatFromInt64(-1), o) }

// Scale returns k*t.
func (t Term) Scale(k Rational) Term {
	out := Term{c: t.c.Mul(k), vars: make(map[VarName]Rational, len(t.vars))}
	if k.IsZero() {
		return out
	}
	for v, coeff := range t.vars {
		out.vars[v] = coeff.Mul(k)
	}
	return out
}

// Remove deletes v from t and returns the resulting term along with v's
// prior coefficient. The caller guarantees v is present.
func (t Term) Remove(v VarName) (Term, Rational) {
	coeff := t.CoeffOf(v)
	out := t.clone()
	delete(out.vars, v)
	return out, coeff
}

// Substitute replaces every occurrence of old with old's coefficient times
// newTerm. A no-op if old does not appear in t.
func (t Term) Substitute(old VarName, newTerm Term) Term {
	coeff, ok := t.vars[old]
	if !ok {
		return t
	}
	rest, _ := t.Remove(old)
	return rest.addScaled(coeff, newTerm)
}

// Evaluate computes c + Sum(coeff_v * sigma[v]). A variable absent from
// sigma contributes 0 - by the engine's invariants this only happens for
// variables that have been fully pivoted away and are truly zero.
func (t Term) Evaluate(sigma map[VarName]Rational) Rational {
	sum := t.c
	for v, coeff := range t.vars {
		val, ok := sigma[v]
		if !ok {
			val = RatZero()
		}
		sum = sum.Add(coeff.Mul(val))
	}
	return sum
}

// PositiveVars returns the variables with a strictly positive coefficient,
// sorted by name.
func (t Term) PositiveVars() []VarName {
	var out []VarName
	for v, coeff := range t.vars {
		if coeff.Sign() > 0 {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Constrain returns c / vars[v] and true, or (zero, false) if v is absent
// or has a zero coefficient (the "unconstrained"/+infinity case); callers
// treat false as +infinity, so an absent or zero coefficient never bounds
// the ratio test during a pivot.
func (t Term) Constrain(v VarName) (Rational, bool) {
	coeff, ok := t.vars[v]
	if !ok || coeff.IsZero() {
		return RatZero(), false
	}
	return t.c.Div(coeff), true
}

// String renders t as "c + v1 + 2 * v2 + ..." the way the Python reference
// this was distilled from does, for debug tracing only.
func (t Term) String() string {
	s := ""
	if !t.c.IsZero() || len(t.vars) == 0 {
		s += t.c.String()
	}
	for _, v := range t.Vars() {
		coeff := t.vars[v]
		if s != "" {
			s += " + "
		}
		switch {
		case coeff.Cmp(RatOne()) == 0:
			s += string(v)
		case coeff.Cmp(RatFromInt64(-1)) == 0:
			s += "-" + string(v)
		default:
			s += coeff.String() + " * " + string(v)
		}
	}
	return s
}
