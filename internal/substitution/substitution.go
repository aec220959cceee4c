// Package substitution implements the catalog of named substitution
// strategies applied to parsed assignment sets.
package substitution

import (
	"fmt"
	"sort"

	"substeval/internal/assignment"
	apperrors "substeval/internal/platform/errors"
)

// Result is a transport-serializable strategy output. The concrete shape
// depends on the strategy: the assignment set itself, a count, or a derived
// value pair.
type Result any

// Strategy derives a result from an assignment set. Implementations are pure
// and must return a typed error instead of panicking on unusable input.
type Strategy interface {
	// Name returns the registry key for the strategy.
	Name() string
	// Apply derives the strategy result from the assignment set.
	Apply(set *assignment.Set) (Result, error)
}

// Registry is the immutable catalog of named strategies. It is built once at
// startup and read-only afterwards.
type Registry struct {
	strategies map[string]Strategy
}

// NewRegistry builds the fixed strategy catalog.
func NewRegistry() *Registry {
	registry := &Registry{strategies: make(map[string]Strategy)}
	for _, strategy := range []Strategy{
		baseStrategy{},
		countStrategy{},
		derivedStrategy{name: "derived", rows: baseRows},
		derivedStrategy{name: "custom1", rows: baseRows},
		derivedStrategy{name: "custom2", rows: custom2Rows},
	} {
		registry.strategies[strategy.Name()] = strategy
	}
	return registry
}

// Lookup resolves a strategy by exact, case-sensitive name.
func (r *Registry) Lookup(name string) (Strategy, bool) {
	if r == nil {
		return nil, false
	}
	strategy, ok := r.strategies[name]
	return strategy, ok
}

// Names lists the registered strategy names in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// baseStrategy returns the assignment set unchanged. It is the default
// substitution.
type baseStrategy struct{}

func (baseStrategy) Name() string { return "base" }

func (baseStrategy) Apply(set *assignment.Set) (Result, error) {
	return set, nil
}

// countStrategy counts the variables assigned true.
type countStrategy struct{}

func (countStrategy) Name() string { return "count" }

func (countStrategy) Apply(set *assignment.Set) (Result, error) {
	count := 0
	for _, entry := range set.Entries() {
		if entry.Value.Kind == assignment.KindBool && entry.Value.Bool {
			count++
		}
	}
	return count, nil
}

// boolVar reads a required boolean variable from the set.
func boolVar(set *assignment.Set, name string) (bool, error) {
	value, ok := set.Get(name)
	if !ok {
		return false, apperrors.New(apperrors.CodeSubstitutionMissingVariable,
			fmt.Sprintf("variable %s is not assigned", name))
	}
	if value.Kind != assignment.KindBool {
		return false, apperrors.New(apperrors.CodeSubstitutionWrongKind,
			fmt.Sprintf("variable %s must be a boolean", name))
	}
	return value.Bool, nil
}

// numberVar reads a required numeric variable from the set.
func numberVar(set *assignment.Set, name string) (float64, error) {
	value, ok := set.Get(name)
	if !ok {
		return 0, apperrors.New(apperrors.CodeSubstitutionMissingVariable,
			fmt.Sprintf("variable %s is not assigned", name))
	}
	if value.Kind != assignment.KindNumber {
		return 0, apperrors.New(apperrors.CodeSubstitutionWrongKind,
			fmt.Sprintf("variable %s must be a number", name))
	}
	return value.Number, nil
}
