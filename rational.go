package ineqsolve

import "math/big"

// Rational is an arbitrary-precision rational number, always kept in lowest
// terms by the underlying *big.Rat. The zero value behaves as 0; construct
// other values with RatZero, RatFromInt64, RatFromFrac64, or ParseRational.
type Rational struct {
	r *big.Rat
}

// RatZero returns the rational 0.
func RatZero() Rational { return Rational{r: new(big.Rat)} }

// RatOne returns the rational 1.
func RatOne() Rational { return RatFromInt64(1) }

// RatFromInt64 builds an integer-valued rational.
func RatFromInt64(n int64) Rational { return Rational{r: new(big.Rat).SetInt64(n)} }

// RatFromFrac64 builds num/den, reduced to lowest terms.
func RatFromFrac64(num, den int64) Rational { return Rational{r: new(big.Rat).SetFrac64(num, den)} }

// ParseRational parses a signed integer or a signed-integer/unsigned-integer
// fraction exactly, with no floating-point intermediate (e.g. "3", "-3",
// "3/4", "-3/4"). It rejects a zero denominator.
func ParseRational(s string) (Rational, bool) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return Rational{}, false
	}
	return Rational{r: r}, true
}

func (a Rational) ensure() *big.Rat {
	if a.r == nil {
		return new(big.Rat)
	}
	return a.r
}

func (a Rational) Add(b Rational) Rational { return Rational{r: new(big.Rat).Add(a.ensure(), b.ensure())} }
func (a Rational) Sub(b Rational) Rational { return Rational{r: new(big.Rat).Sub(a.ensure(), b.ensure())} }
func (a Rational) Mul(b Rational) Rational { return Rational{r: new(big.Rat).Mul(a.ensure(), b.ensure())} }

// Div divides a by b. The caller guarantees b is non-zero; callers on the
// pivoting hot path only ever divide by a coefficient already known non-zero.
func (a Rational) Div(b Rational) Rational { return Rational{r: new(big.Rat).Quo(a.ensure(), b.ensure())} }

func (a Rational) Neg() Rational { return Rational{r: new(big.Rat).Neg(a.ensure())} }

// Inv returns the reciprocal. The caller guarantees a is non-zero.
func (a Rational) Inv() Rational { return Rational{r: new(big.Rat).Inv(a.ensure())} }

// Cmp returns -1, 0, or +1 as a is less than, equal to, or greater than b.
func (a Rational) Cmp(b Rational) int { return a.ensure().Cmp(b.ensure()) }

func (a Rational) LessThan(b Rational) bool { return a.Cmp(b) < 0 }
func (a Rational) LessEqual(b Rational) bool { return a.Cmp(b) <= 0 }

// Sign returns -1, 0, or +1.
func (a Rational) Sign() int { return a.ensure().Sign() }

func (a Rational) IsZero() bool { return a.Sign() == 0 }

// String renders a in lowest terms: "p/q" if q != 1, else "p".
func (a Rational) String() string { return a.ensure().RatString() }
