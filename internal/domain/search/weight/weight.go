// Package weight defines the four relevance weight tiers Postgres assigns
// to tsvector lexemes and the per-field lookup table that resolves them.
package weight

import "strings"

// Code is one of the four Postgres tsvector weight classes.
type Code string

// Weight class constants, highest relevance first.
const (
	A Code = "A"
	B Code = "B"
	C Code = "C"
	D Code = "D"
)

// Default is the weight assigned to fields with no explicit entry.
const Default = A

// Parse canonicalizes a raw weight code to uppercase.
// Accepts exactly one of a-d in either case; ok is false otherwise.
func Parse(raw string) (Code, bool) {
	c := Code(strings.ToUpper(raw))
	if !c.IsValid() {
		return "", false
	}
	return c, true
}

// IsValid checks if the code is one of the four canonical classes.
func (c Code) IsValid() bool {
	return c == A || c == B || c == C || c == D
}

// Table maps relation name to column name to a raw weight code.
// The empty relation key covers the primary entity's own columns.
// Values are validated when resolved fields are assembled, not on insert.
type Table map[string]map[string]string

// Resolve looks up the raw weight for a column in two tiers: per-relation,
// then per-column. Absent entries fall back to Default.
func (t Table) Resolve(relation, column string) string {
	cols, ok := t[relation]
	if !ok {
		return string(Default)
	}
	raw, ok := cols[column]
	if !ok {
		return string(Default)
	}
	return raw
}
