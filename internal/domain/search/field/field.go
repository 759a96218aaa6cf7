// Package field identifies searchable columns and the relations that own them.
package field

import (
	"fmt"
	"strings"
)

// Reference is an immutable value object naming one searchable column,
// tagged with its owning relation. An empty relation means the column
// belongs to the primary entity itself.
type Reference struct {
	relation string
	column   string
}

// New validates and creates a Reference.
func New(relation, column string) (Reference, error) {
	if column == "" {
		return Reference{}, fmt.Errorf("field column is required")
	}
	return Reference{relation: relation, column: column}, nil
}

// Self creates a Reference on the primary entity.
func Self(column string) (Reference, error) {
	return New("", column)
}

// Relation returns the owning relation name ("" for the primary entity).
func (r Reference) Relation() string { return r.relation }

// Column returns the column name.
func (r Reference) Column() string { return r.column }

// OnPrimary reports whether the column belongs to the primary entity.
func (r Reference) OnPrimary() bool { return r.relation == "" }

// Prequalified reports whether the column name already carries a
// relation qualifier and must be embedded verbatim. Only primary-entity
// references may be pre-qualified.
func (r Reference) Prequalified() bool {
	return r.OnPrimary() && strings.Contains(r.column, ".")
}
