package ineqsolve

import "errors"

var (
	// ErrParse is returned when the input text is not a well-formed formula.
	ErrParse = errors.New("malformed formula")

	// ErrReservedName is returned when an input variable has one of the
	// name shapes the engine reserves for synthesized variables.
	ErrReservedName = errors.New("variable name collides with a reserved engine prefix")

	// ErrInvariant marks a bug: an internal invariant the canonicalization
	// or pivoting is supposed to uphold was violated. Never returned for
	// ordinary UNSAT or unbounded-objective cases, only for states the
	// algorithm should be unable to reach.
	ErrInvariant = errors.New("internal invariant violation")
)
