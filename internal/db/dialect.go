// Package db generates the engine-side search expressions: tsquery
// compilation, weighted tsvector assembly, and rank/grouping selection.
// All generation is pure string work; quoting of identifiers and literals
// is delegated to a Dialect so no raw text is ever embedded unquoted.
package db

// Dialect quotes identifiers and literals for the target engine.
// Every string embedded in a generated expression is routed through it.
type Dialect interface {
	// QuoteLiteral renders s as an engine string literal.
	QuoteLiteral(s string) string
	// QuoteIdentifier renders s as an engine identifier.
	QuoteIdentifier(s string) string
}
