// Package assignment parses line-oriented variable assignments into an
// ordered set of named values.
package assignment

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	apperrors "substeval/internal/platform/errors"
)

// Kind discriminates assignment value types.
type Kind int

const (
	// KindBool marks a boolean value.
	KindBool Kind = iota
	// KindNumber marks a numeric value.
	KindNumber
)

// Value is a parsed assignment value, either a boolean or a number.
type Value struct {
	Kind   Kind
	Bool   bool
	Number float64
}

// String renders the value in its canonical input form.
func (v Value) String() string {
	if v.Kind == KindBool {
		return strconv.FormatBool(v.Bool)
	}
	return strconv.FormatFloat(v.Number, 'f', -1, 64)
}

// MarshalJSON encodes booleans as JSON booleans and numbers as JSON numbers.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.Kind == KindBool {
		return json.Marshal(v.Bool)
	}
	return json.Marshal(v.Number)
}

// Assignment pairs a variable name with its value.
type Assignment struct {
	Name  string `json:"name"`
	Value Value  `json:"value"`
}

// Set is an ordered collection of assignments. Names are unique within a
// set and insertion order follows the input text.
type Set struct {
	entries []Assignment
	index   map[string]int
}

// Parse converts raw line-oriented text into a Set.
//
// Each non-blank line must have the form "<name>: <value>" where <value> is
// a boolean literal (true/false, case-insensitive) or a numeric literal.
// Whitespace around names and values is trimmed and blank lines are skipped.
// A variable assigned twice is rejected rather than overwritten.
func Parse(raw string) (*Set, error) {
	set := &Set{index: make(map[string]int)}
	for number, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		name, token, found := strings.Cut(line, ":")
		name = strings.TrimSpace(name)
		token = strings.TrimSpace(token)
		if !found || name == "" || token == "" {
			return nil, apperrors.New(apperrors.CodeParseMalformedLine,
				fmt.Sprintf("line %d: %q does not match \"name: value\"", number+1, line))
		}

		value, err := parseValue(token)
		if err != nil {
			return nil, apperrors.New(apperrors.CodeParseInvalidBoolean,
				fmt.Sprintf("line %d: %q is not a boolean or numeric literal", number+1, token))
		}

		if _, exists := set.index[name]; exists {
			return nil, apperrors.New(apperrors.CodeParseDuplicateName,
				fmt.Sprintf("line %d: duplicate assignment for %q", number+1, name))
		}
		set.index[name] = len(set.entries)
		set.entries = append(set.entries, Assignment{Name: name, Value: value})
	}
	return set, nil
}

func parseValue(token string) (Value, error) {
	switch {
	case strings.EqualFold(token, "true"):
		return Value{Kind: KindBool, Bool: true}, nil
	case strings.EqualFold(token, "false"):
		return Value{Kind: KindBool, Bool: false}, nil
	}
	number, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return Value{}, err
	}
	// ParseFloat accepts NaN and Inf, which cannot be serialized back out.
	if math.IsNaN(number) || math.IsInf(number, 0) {
		return Value{}, fmt.Errorf("non-finite number %q", token)
	}
	return Value{Kind: KindNumber, Number: number}, nil
}

// Len returns the number of assignments in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Get returns the value assigned to name.
func (s *Set) Get(name string) (Value, bool) {
	if s == nil {
		return Value{}, false
	}
	idx, ok := s.index[name]
	if !ok {
		return Value{}, false
	}
	return s.entries[idx].Value, true
}

// Entries returns the assignments in insertion order.
func (s *Set) Entries() []Assignment {
	if s == nil {
		return nil
	}
	return append([]Assignment(nil), s.entries...)
}

// String re-serializes the set into the canonical line format. Parsing the
// output yields an equal set.
func (s *Set) String() string {
	if s == nil {
		return ""
	}
	var b strings.Builder
	for _, entry := range s.entries {
		fmt.Fprintf(&b, "%s: %s\n", entry.Name, entry.Value)
	}
	return b.String()
}

// MarshalJSON encodes the set as an array of {name, value} objects so that
// insertion order survives serialization.
func (s *Set) MarshalJSON() ([]byte, error) {
	if s == nil || len(s.entries) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(s.entries)
}
