package pgsearch

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Model is a generic, schema-first search handle. The scope is inferred
// from T's struct tags at construction time and results scan directly
// into T.
type Model[T any] struct {
	client *Client
	scope  *Scope
	meta   *schemaMeta
}

// NewModel creates a typed search handle for T. T must be a struct
// implementing Searchable with at least one `pgsearch:"against"` field.
// The schema is parsed once and cached.
func NewModel[T any](client *Client) (*Model[T], error) {
	meta, err := parseSchema[T]()
	if err != nil {
		return nil, err
	}
	scope, err := NewScope(meta.table, meta.scopeOptions()...)
	if err != nil {
		return nil, err
	}
	return &Model[T]{client: client, scope: scope, meta: meta}, nil
}

// Scope returns the scope inferred from T's struct tags.
func (m *Model[T]) Scope() *Scope { return m.scope }

// Search returns a fluent typed search builder.
func (m *Model[T]) Search(text string) *ModelBuilder[T] {
	return &ModelBuilder[T]{
		model: m,
		b:     m.client.Search(m.scope, text),
	}
}

// ModelBuilder is the typed counterpart of SearchBuilder. It selects
// the schema's columns explicitly so rows scan into T by name; highlight
// fragments are only available through the untyped path.
type ModelBuilder[T any] struct {
	model *Model[T]
	b     *SearchBuilder
}

// Operator overrides the scope's term-combining operator.
func (b *ModelBuilder[T]) Operator(op string) *ModelBuilder[T] {
	b.b.Operator(op)
	return b
}

// Dictionary overrides the scope's text search configuration.
func (b *ModelBuilder[T]) Dictionary(dictionary string) *ModelBuilder[T] {
	b.b.Dictionary(dictionary)
	return b
}

// Limit caps the number of returned rows.
func (b *ModelBuilder[T]) Limit(n int) *ModelBuilder[T] {
	b.b.Limit(n)
	return b
}

// Offset skips the first n rows.
func (b *ModelBuilder[T]) Offset(n int) *ModelBuilder[T] {
	b.b.Offset(n)
	return b
}

// Plan compiles the search without touching the database.
func (b *ModelBuilder[T]) Plan() (SearchPlan, error) {
	stmt, err := b.b.compile()
	if err != nil {
		return SearchPlan{}, err
	}
	stmt.Columns = b.model.selectColumns()
	groupBy, _ := stmt.Plan.GroupBy()
	return SearchPlan{
		Predicate: stmt.Plan.Predicate(),
		Order:     stmt.Plan.Order(),
		GroupBy:   groupBy,
		SQL:       stmt.SQL(),
	}, nil
}

// Do compiles and executes the search, scanning rows into T.
func (b *ModelBuilder[T]) Do(ctx context.Context) ([]T, error) {
	stmt, err := b.b.compile()
	if err != nil {
		return nil, err
	}
	stmt.Columns = b.model.selectColumns()

	c := b.model.client
	rows, err := c.pool.Query(ctx, stmt.SQL())
	if err != nil {
		return nil, fmt.Errorf("pgsearch: search query: %w", err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		return nil, fmt.Errorf("pgsearch: scan results: %w", err)
	}
	return items, nil
}

// selectColumns renders the schema's columns qualified by the scope
// table. Explicit columns keep scanning stable when the table grows
// columns the struct does not carry.
func (m *Model[T]) selectColumns() []string {
	d := m.client.dialect
	table := d.TableIdent(m.meta.table)
	cols := make([]string, len(m.meta.columns))
	for i, c := range m.meta.columns {
		cols[i] = table + "." + d.QuoteIdentifier(c)
	}
	return cols
}
