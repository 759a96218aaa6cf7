package db

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/pgsearch/internal/domain"
	"github.com/kailas-cloud/pgsearch/internal/domain/search/field"
	"github.com/kailas-cloud/pgsearch/internal/domain/search/weight"
)

// AssembleVector combines every field's column expression into one
// weighted, concatenated tsvector expression, in declaration order.
// Order does not affect ranking mathematically but keeps output
// deterministic and query plans stable.
//
// tables maps each relation name to its rendered table identifier; the
// empty key is the primary entity's table. Weights resolve through the
// two-tier table with weight.Default as fallback and are validated here,
// failing with domain.ErrInvalidWeight naming the offending field.
func AssembleVector(
	fields []field.Reference, tables map[string]string,
	weights weight.Table, dictionary string, d Dialect,
) (string, error) {
	if len(fields) == 0 {
		return "", domain.ErrEmptyFieldSet
	}

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		locator, err := Locator(f, tables, d)
		if err != nil {
			return "", err
		}

		raw := weights.Resolve(f.Relation(), f.Column())
		code, ok := weight.Parse(raw)
		if !ok {
			return "", domain.NewInvalidWeight(f.Relation(), f.Column(), raw)
		}

		// coalesce guards null columns from breaking vector construction.
		vector := fmt.Sprintf("to_tsvector(%s, coalesce(%s::text, ''))",
			d.QuoteLiteral(dictionary), locator)
		parts = append(parts, fmt.Sprintf("setweight(%s, %s)",
			vector, d.QuoteLiteral(string(code))))
	}

	return strings.Join(parts, " || "), nil
}

// Locator resolves the textual locator for one field: pre-qualified
// primary-entity columns pass through verbatim (supports cross-relation
// references without forcing a join); everything else is qualified with
// the owning relation's table identifier and quoted.
func Locator(f field.Reference, tables map[string]string, d Dialect) (string, error) {
	if f.Prequalified() {
		return f.Column(), nil
	}
	table, ok := tables[f.Relation()]
	if !ok || table == "" {
		return "", fmt.Errorf("%w: no table identifier for relation %q",
			domain.ErrInvalidScope, f.Relation())
	}
	return table + "." + d.QuoteIdentifier(f.Column()), nil
}
