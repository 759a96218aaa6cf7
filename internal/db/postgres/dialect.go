// Package postgres backs the expression generators with a real Postgres
// dialect and executes compiled search plans on a pgx pool.
package postgres

import (
	"strings"

	"github.com/jackc/pgx/v5"
)

// Dialect implements db.Dialect for PostgreSQL.
type Dialect struct{}

// QuoteIdentifier renders s as a double-quoted Postgres identifier.
func (Dialect) QuoteIdentifier(s string) string {
	return pgx.Identifier{s}.Sanitize()
}

// QuoteLiteral renders s as a single-quoted Postgres string literal.
// Backslashes stay verbatim: standard_conforming_strings is on by
// default since PostgreSQL 9.1, so only single quotes need doubling.
func (Dialect) QuoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// TableIdent renders a (possibly schema-qualified) table name as a
// quoted identifier.
func (Dialect) TableIdent(name string) string {
	parts := strings.Split(name, ".")
	return pgx.Identifier(parts).Sanitize()
}
