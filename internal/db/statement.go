package db

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/pgsearch/internal/domain/search/plan"
)

// Statement is a fully rendered search SELECT: the compiled plan plus the
// scope's projection, join, and pagination clauses. Every identifier and
// literal inside it has already been quoted.
type Statement struct {
	Table    string   // rendered table identifier
	Columns  []string // rendered select expressions; empty selects <table>.*
	Joins    []string // rendered JOIN clauses, declaration order
	Plan     plan.Plan
	Headline string // optional rendered headline expression
	Limit    int
	Offset   int
}

// SQL renders the statement. Selecting <table>.* under GROUP BY is valid
// because the grouping key is the table's primary key, which functionally
// determines the remaining columns.
func (s Statement) SQL() string {
	var b strings.Builder

	b.WriteString("SELECT ")
	if len(s.Columns) == 0 {
		b.WriteString(s.Table + ".*")
	} else {
		b.WriteString(strings.Join(s.Columns, ", "))
	}
	if s.Headline != "" {
		b.WriteString(", " + s.Headline + " AS pg_search_highlight")
	}

	b.WriteString(" FROM " + s.Table)
	for _, j := range s.Joins {
		b.WriteString(" " + j)
	}

	b.WriteString(" WHERE " + s.Plan.Predicate())
	if groupBy, ok := s.Plan.GroupBy(); ok {
		b.WriteString(" GROUP BY " + groupBy)
	}
	b.WriteString(" ORDER BY " + s.Plan.Order())

	if s.Limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", s.Limit)
	}
	if s.Offset > 0 {
		fmt.Fprintf(&b, " OFFSET %d", s.Offset)
	}

	return b.String()
}

// Headline renders a ts_headline call highlighting query matches in the
// given column locator.
func Headline(dictionary, locator, query string, d Dialect) string {
	return fmt.Sprintf("ts_headline(%s, %s::text, %s)",
		d.QuoteLiteral(dictionary), locator, query)
}
