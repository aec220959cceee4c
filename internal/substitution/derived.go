package substitution

import (
	"fmt"

	"substeval/internal/assignment"
	apperrors "substeval/internal/platform/errors"
)

// Pair is the output of the derived strategies: a symbolic H value selected
// from the truth table and a K value computed from the numeric variables.
type Pair struct {
	H string  `json:"h"`
	K float64 `json:"k"`
}

// hRow is the (A, B, C) combination that selects an H value.
type hRow struct {
	a, b, c bool
}

// hOrder fixes the evaluation order of truth-table rows. Rows within a table
// are disjoint, so the order only affects determinism of error-free lookups.
var hOrder = []string{"M", "P", "T"}

var baseRows = map[string]hRow{
	"M": {true, true, false},
	"P": {true, true, true},
	"T": {false, true, true},
}

// custom2Rows overrides the M and T rows of the base table.
var custom2Rows = map[string]hRow{
	"M": {true, false, true},
	"P": {true, true, true},
	"T": {true, true, false},
}

// derivedStrategy computes a Pair from variables A, B, C (booleans) and
// D, E, F (numbers).
type derivedStrategy struct {
	name string
	rows map[string]hRow
}

func (s derivedStrategy) Name() string { return s.name }

func (s derivedStrategy) Apply(set *assignment.Set) (Result, error) {
	h, err := s.hValue(set)
	if err != nil {
		return nil, err
	}
	k, err := s.kValue(set, h)
	if err != nil {
		return nil, err
	}
	return Pair{H: h, K: k}, nil
}

// hValue selects the H symbol whose row matches the (A, B, C) assignment.
func (s derivedStrategy) hValue(set *assignment.Set) (string, error) {
	a, err := boolVar(set, "A")
	if err != nil {
		return "", err
	}
	b, err := boolVar(set, "B")
	if err != nil {
		return "", err
	}
	c, err := boolVar(set, "C")
	if err != nil {
		return "", err
	}

	for _, h := range hOrder {
		if s.rows[h] == (hRow{a, b, c}) {
			return h, nil
		}
	}
	return "", apperrors.New(apperrors.CodeSubstitutionNoMatch,
		fmt.Sprintf("no %s rule matches A=%t B=%t C=%t", s.name, a, b, c))
}

// kValue computes K from D, E and F. custom1 and custom2 override single
// formulas and fall back to the base formulas otherwise.
func (s derivedStrategy) kValue(set *assignment.Set, h string) (float64, error) {
	d, err := numberVar(set, "D")
	if err != nil {
		return 0, err
	}
	e, err := numberVar(set, "E")
	if err != nil {
		return 0, err
	}
	f, err := numberVar(set, "F")
	if err != nil {
		return 0, err
	}

	switch {
	case s.name == "custom2" && h == "M":
		return f + d + d*e/100, nil
	case s.name == "custom1" && h == "P":
		return 2*d + d*e/100, nil
	}

	switch h {
	case "M":
		return d + d*e/10, nil
	case "P":
		return d + d*(e-f)/25.5, nil
	default:
		return d - d*f/30, nil
	}
}
