// Package operator defines how the tokens of a compiled search query are
// joined in the generated tsquery expression.
package operator

import (
	"strings"

	"github.com/kailas-cloud/pgsearch/internal/domain"
)

// Operator is the logical connective placed between query tokens.
type Operator string

// Operator constants.
const (
	And Operator = "and"
	Or  Operator = "or"
	Not Operator = "not"
)

// Default is used when no operator is specified.
const Default = And

// symbols maps each operator to its tsquery connective. The mapping is
// total over the declared set and has no runtime mutation path.
var symbols = map[Operator]string{
	And: "&",
	Or:  "|",
	Not: "!",
}

// Parse resolves a raw operator name, case-insensitively.
// Empty input yields Default; unrecognized names fail with
// domain.ErrUnknownOperator rather than silently defaulting.
func Parse(raw string) (Operator, error) {
	if raw == "" {
		return Default, nil
	}
	op := Operator(strings.ToLower(raw))
	if !op.IsValid() {
		return "", domain.NewUnknownOperator(raw)
	}
	return op, nil
}

// IsValid checks if the operator is one of the supported values.
func (o Operator) IsValid() bool {
	_, ok := symbols[o]
	return ok
}

// Symbol returns the tsquery connective for the operator.
// Invalid operators yield the empty string; callers parse first.
func (o Operator) Symbol() string {
	return symbols[o]
}
