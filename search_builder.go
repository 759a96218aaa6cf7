package pgsearch

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/pgsearch/internal/db"
	"github.com/kailas-cloud/pgsearch/internal/domain/search/plan"
)

// SearchBuilder is a fluent builder for one search invocation. Zero
// values fall back to the scope's configuration.
type SearchBuilder struct {
	client *Client
	scope  *Scope
	text   string

	operator   string
	dictionary string
	limit      int
	offset     int
	headline   bool
}

// Operator overrides the scope's term-combining operator for this
// search: "and", "or" or "not".
func (b *SearchBuilder) Operator(op string) *SearchBuilder {
	b.operator = op
	return b
}

// Dictionary overrides the scope's text search configuration.
func (b *SearchBuilder) Dictionary(dictionary string) *SearchBuilder {
	b.dictionary = dictionary
	return b
}

// Limit caps the number of returned rows.
func (b *SearchBuilder) Limit(n int) *SearchBuilder {
	b.limit = n
	return b
}

// Offset skips the first n rows.
func (b *SearchBuilder) Offset(n int) *SearchBuilder {
	b.offset = n
	return b
}

// WithHeadline adds a ts_headline fragment over the scope's first
// search column, returned under HighlightColumn. Ignored when the plan
// aggregates join-duplicated rows.
func (b *SearchBuilder) WithHeadline() *SearchBuilder {
	b.headline = true
	return b
}

// Plan compiles the search without touching the database.
func (b *SearchBuilder) Plan() (SearchPlan, error) {
	stmt, err := b.compile()
	if err != nil {
		return SearchPlan{}, err
	}
	groupBy, _ := stmt.Plan.GroupBy()
	return SearchPlan{
		Predicate: stmt.Plan.Predicate(),
		Order:     stmt.Plan.Order(),
		GroupBy:   groupBy,
		SQL:       stmt.SQL(),
	}, nil
}

// Do compiles and executes the search.
func (b *SearchBuilder) Do(ctx context.Context) ([]Row, error) {
	stmt, err := b.compile()
	if err != nil {
		return nil, err
	}
	rows, err := b.client.repo.Run(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("pgsearch: %w", err)
	}
	return fromRepoRows(rows), nil
}

// compile builds the statement. Blank query text compiles to an
// unfiltered scan ordered by primary key so pagination stays stable.
func (b *SearchBuilder) compile() (db.Statement, error) {
	def := b.scope.def
	if b.operator != "" {
		def.Operator = b.operator
	}
	if b.dictionary != "" {
		def.Dictionary = b.dictionary
	}

	inv, ok, err := b.client.search.Compile(def, b.text)
	if err != nil {
		return db.Statement{}, fmt.Errorf("pgsearch: %w", err)
	}

	if !ok {
		table := b.client.dialect.TableIdent(def.Table)
		pk := table + "." + b.client.dialect.QuoteIdentifier(def.PrimaryKey)
		return db.Statement{
			Table:  table,
			Plan:   plan.New("TRUE", pk+" ASC", ""),
			Limit:  b.limit,
			Offset: b.offset,
		}, nil
	}

	stmt := db.Statement{
		Table:  inv.Table,
		Joins:  inv.Joins,
		Plan:   inv.Plan,
		Limit:  b.limit,
		Offset: b.offset,
	}
	if b.headline && !inv.Plan.Grouped() {
		stmt.Headline = inv.Headline
	}
	return stmt, nil
}
