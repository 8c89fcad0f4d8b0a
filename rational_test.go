package ineqsolve

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRationalArithmetic(t *testing.T) {
	a := RatFromFrac64(1, 2)
	b := RatFromFrac64(1, 3)

	require.Equal(t, "5/6", a.Add(b).String())
	require.Equal(t, "1/6", a.Sub(b).String())
	require.Equal(t, "1/6", a.Mul(b).String())
	require.Equal(t, "3/2", a.Div(b).String())
	require.Equal(t, "-1/2", a.Neg().String())
	require.Equal(t, "2", a.Inv().String())
}

func TestRationalLowestTerms(t *testing.T) {
	r := RatFromFrac64(4, 8)
	require.Equal(t, "1/2", r.String())

	whole := RatFromFrac64(6, 3)
	require.Equal(t, "2", whole.String())
}

func TestRationalZeroAndSign(t *testing.T) {
	require.True(t, RatZero().IsZero())
	require.False(t, RatOne().IsZero())
	require.Equal(t, -1, RatFromInt64(-5).Sign())
	require.Equal(t, 1, RatFromInt64(5).Sign())
	require.Equal(t, 0, RatZero().Sign())
}

func TestRationalCompare(t *testing.T) {
	require.True(t, RatFromInt64(1).LessThan(RatFromInt64(2)))
	require.False(t, RatFromInt64(2).LessThan(RatFromInt64(2)))
	require.True(t, RatFromInt64(2).LessEqual(RatFromInt64(2)))
}

func TestParseRational(t *testing.T) {
	r, ok := ParseRational("3/4")
	require.True(t, ok)
	require.Equal(t, "3/4", r.String())

	r, ok = ParseRational("-3/4")
	require.True(t, ok)
	require.Equal(t, "-3/4", r.String())

	r, ok = ParseRational("5")
	require.True(t, ok)
	require.Equal(t, "5", r.String())

	_, ok = ParseRational("3/0")
	require.False(t, ok)

	_, ok = ParseRational("not-a-number")
	require.False(t, ok)
}
