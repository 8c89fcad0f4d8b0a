package ineqsolve

import (
	"fmt"
	"regexp"
)

// AuxVar is the single auxiliary variable Phase 1 drives to zero to find a
// feasible basis.
const AuxVar VarName = "aux"

// PosVar is the single shared positive-margin variable Phase 2 maximizes to
// witness every strict inequality at once.
const PosVar VarName = "pos"

func slackVarName(atomIndex int) VarName { return VarName(fmt.Sprintf("s%d", atomIndex)) }

func posSplitName(v VarName) VarName { return v + "_f" }
func negSplitName(v VarName) VarName { return v + "_ff" }

// reservedName matches any variable name the engine reserves for itself:
// aux, pos, sN for any digit string N (s0 included), and V_f/V_ff for any V.
var reservedName = regexp.MustCompile(`^(aux|pos|s[0-9]+|.+_f|.+_ff)$`)

func checkReservedName(v VarName) error {
	if reservedName.MatchString(string(v)) {
		return fmt.Errorf("%w: %q", ErrReservedName, v)
	}
	return nil
}
