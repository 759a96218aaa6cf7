package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownOperator signals an operator name outside the fixed set.
	ErrUnknownOperator = errors.New("unknown search operator")
	// ErrInvalidWeight signals a weight code outside A-D.
	ErrInvalidWeight = errors.New("invalid search weight")
	// ErrEmptyFieldSet signals a scope configured with no searchable fields.
	ErrEmptyFieldSet = errors.New("no searchable fields configured")
	// ErrScopeNotFound signals a missing search scope.
	ErrScopeNotFound = errors.New("search scope not found")
	// ErrInvalidScope signals a misconfigured search scope.
	ErrInvalidScope = errors.New("invalid search scope")
)

// InvalidWeightError wraps ErrInvalidWeight with the offending field.
type InvalidWeightError struct {
	Relation string // "" for the primary entity
	Column   string
	Value    string
}

func (e *InvalidWeightError) Error() string {
	rel := e.Relation
	if rel == "" {
		rel = "self"
	}
	return fmt.Sprintf("%s: %q for %s.%s (want A, B, C, or D)",
		ErrInvalidWeight.Error(), e.Value, rel, e.Column)
}

func (e *InvalidWeightError) Unwrap() error { return ErrInvalidWeight }

// NewInvalidWeight creates an invalid weight error for one field.
func NewInvalidWeight(relation, column, value string) error {
	return &InvalidWeightError{Relation: relation, Column: column, Value: value}
}

// UnknownOperatorError wraps ErrUnknownOperator with the rejected name.
type UnknownOperatorError struct {
	Name string
}

func (e *UnknownOperatorError) Error() string {
	return fmt.Sprintf("%s: %q (want and, or, not)", ErrUnknownOperator.Error(), e.Name)
}

func (e *UnknownOperatorError) Unwrap() error { return ErrUnknownOperator }

// NewUnknownOperator creates an unknown operator error.
func NewUnknownOperator(name string) error {
	return &UnknownOperatorError{Name: name}
}
