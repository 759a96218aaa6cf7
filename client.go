package pgsearch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/kailas-cloud/pgsearch/internal/db/postgres"
	searchrepo "github.com/kailas-cloud/pgsearch/internal/repository/search"
	searchuc "github.com/kailas-cloud/pgsearch/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the pgsearch SDK entry point.
type Client struct {
	pool     *pgxpool.Pool
	ownsPool bool
	logger   *zap.Logger
	dialect  postgres.Dialect
	search   *searchuc.Service
	repo     *searchrepo.Repo
}

type clientConfig struct {
	dsn              string
	pool             *pgxpool.Pool
	logger           *zap.Logger
	readinessTimeout time.Duration
}

// Option configures client creation.
type Option func(*clientConfig)

// WithDSN sets the PostgreSQL connection string. The client owns the
// resulting pool and closes it on Close.
func WithDSN(dsn string) Option {
	return func(c *clientConfig) { c.dsn = dsn }
}

// WithPool reuses an existing pgx pool. The caller keeps ownership;
// Close will not close it.
func WithPool(pool *pgxpool.Pool) Option {
	return func(c *clientConfig) { c.pool = pool }
}

// WithLogger sets the logger for query-level debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(c *clientConfig) { c.logger = logger }
}

// WithReadinessTimeout bounds how long New waits for the database to
// answer pings when connecting via WithDSN.
func WithReadinessTimeout(d time.Duration) Option {
	return func(c *clientConfig) { c.readinessTimeout = d }
}

// New creates a pgsearch Client and connects to the database.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{readinessTimeout: defaultReadinessTimeout}
	for _, o := range opts {
		o(cfg)
	}

	if cfg.pool == nil && cfg.dsn == "" {
		return nil, errors.New("pgsearch: database required (use WithDSN or WithPool)")
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	pool := cfg.pool
	ownsPool := false
	if pool == nil {
		var err error
		pool, err = postgres.Connect(context.Background(), cfg.dsn, cfg.readinessTimeout)
		if err != nil {
			return nil, fmt.Errorf("pgsearch: connect: %w", err)
		}
		ownsPool = true
	}

	dialect := postgres.Dialect{}
	return &Client{
		pool:     pool,
		ownsPool: ownsPool,
		logger:   cfg.logger,
		dialect:  dialect,
		search:   searchuc.New(dialect),
		repo:     searchrepo.New(pool, cfg.logger),
	}, nil
}

// Close releases the connection pool if the client owns it.
func (c *Client) Close() {
	if c.ownsPool && c.pool != nil {
		c.pool.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Search returns a fluent builder for one search over the given scope.
func (c *Client) Search(scope *Scope, text string) *SearchBuilder {
	return &SearchBuilder{client: c, scope: scope, text: text}
}
