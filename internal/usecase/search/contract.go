package search

// Dialect quotes identifiers and literals for the target engine.
// The service never embeds raw text without routing it through here.
type Dialect interface {
	QuoteLiteral(s string) string
	QuoteIdentifier(s string) string
	// TableIdent renders a (possibly schema-qualified) table name.
	TableIdent(name string) string
}
