// Package search materializes compiled search statements into rows.
package search

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/kailas-cloud/pgsearch/internal/db"
)

// Row is one result row keyed by column name.
type Row map[string]any

// Repo executes search statements against a pgx pool.
type Repo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// New creates a search repository.
func New(pool *pgxpool.Pool, logger *zap.Logger) *Repo {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repo{pool: pool, logger: logger}
}

// Run renders and executes the statement, returning rows keyed by
// column name. The statement carries no bind parameters: every embedded
// value has already passed through dialect quoting.
func (r *Repo) Run(ctx context.Context, stmt db.Statement) ([]Row, error) {
	sql := stmt.SQL()
	r.logger.Debug("executing search", zap.String("sql", sql))

	rows, err := r.pool.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	out := []Row{}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("read search row: %w", err)
		}
		row := make(Row, len(fields))
		for i, fd := range fields {
			row[fd.Name] = values[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate search rows: %w", err)
	}

	return out, nil
}

// Ping checks database availability.
func (r *Repo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
