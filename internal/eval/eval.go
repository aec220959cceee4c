// Package eval resolves substitution strategies and applies them to parsed
// assignment text.
package eval

import (
	"fmt"

	"substeval/internal/assignment"
	apperrors "substeval/internal/platform/errors"
	"substeval/internal/substitution"
)

// Evaluator dispatches substitution strategies over assignment input. It
// holds only the immutable registry, so a single Evaluator is safe for
// concurrent use.
type Evaluator struct {
	registry *substitution.Registry
}

// New creates an Evaluator backed by the given registry.
func New(registry *substitution.Registry) *Evaluator {
	return &Evaluator{registry: registry}
}

// Substitutions lists the available strategy names.
func (e *Evaluator) Substitutions() []string {
	if e == nil {
		return nil
	}
	return e.registry.Names()
}

// Evaluate parses rawInput and applies the named substitution strategy.
// Every failure carries a domain error code; evaluation is deterministic, so
// callers should surface failures rather than retry.
func (e *Evaluator) Evaluate(rawInput, substitutionName string) (substitution.Result, error) {
	set, err := assignment.Parse(rawInput)
	if err != nil {
		return nil, fmt.Errorf("parse input: %w", err)
	}

	strategy, ok := e.registry.Lookup(substitutionName)
	if !ok {
		return nil, apperrors.New(apperrors.CodeUnknownSubstitution,
			fmt.Sprintf("unknown substitution %q", substitutionName))
	}

	result, err := strategy.Apply(set)
	if err != nil {
		return nil, fmt.Errorf("apply %s: %w", strategy.Name(), err)
	}
	return result, nil
}
