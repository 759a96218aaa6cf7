package pgsearch

import (
	"fmt"

	"github.com/kailas-cloud/pgsearch/internal/domain/search/field"
	"github.com/kailas-cloud/pgsearch/internal/domain/search/weight"
	searchuc "github.com/kailas-cloud/pgsearch/internal/usecase/search"
)

// Scope describes one searchable table: its primary key, the columns the
// query matches against, and the joined relations contributing columns.
// A Scope is validated once at construction and immutable afterwards.
type Scope struct {
	def searchuc.Definition
}

type scopeConfig struct {
	def searchuc.Definition
	err error
}

// ScopeOption configures scope creation.
type ScopeOption func(*scopeConfig)

// NewScope creates a search scope over the given table. The primary key
// defaults to "id"; at least one Against column is required.
func NewScope(table string, opts ...ScopeOption) (*Scope, error) {
	cfg := &scopeConfig{def: searchuc.Definition{
		Table:      table,
		PrimaryKey: "id",
	}}
	for _, o := range opts {
		o(cfg)
	}
	if cfg.err != nil {
		return nil, fmt.Errorf("pgsearch: scope %q: %w", table, cfg.err)
	}
	if err := cfg.def.Validate(); err != nil {
		return nil, fmt.Errorf("pgsearch: scope %q: %w", table, err)
	}
	return &Scope{def: cfg.def}, nil
}

// Against adds searchable columns on the scope's own table, in match
// declaration order. A column containing a dot is embedded verbatim.
func Against(columns ...string) ScopeOption {
	return func(c *scopeConfig) {
		for _, col := range columns {
			f, err := field.Self(col)
			if err != nil {
				c.err = err
				return
			}
			c.def.Fields = append(c.def.Fields, f)
		}
	}
}

// AgainstWeighted adds one searchable column on the scope's own table
// with an explicit tsvector weight label (A, B, C or D).
func AgainstWeighted(column, label string) ScopeOption {
	return func(c *scopeConfig) {
		f, err := field.Self(column)
		if err != nil {
			c.err = err
			return
		}
		c.def.Fields = append(c.def.Fields, f)
		setWeight(&c.def, "", column, label)
	}
}

// AssociatedAgainst declares a joined relation and adds its searchable
// columns. The join clause is rendered into the statement verbatim.
func AssociatedAgainst(relation, table, join string, columns ...string) ScopeOption {
	return func(c *scopeConfig) {
		c.def.Relations = append(c.def.Relations, searchuc.Relation{
			Name:  relation,
			Table: table,
			Join:  join,
		})
		for _, col := range columns {
			f, err := field.New(relation, col)
			if err != nil {
				c.err = err
				return
			}
			c.def.Fields = append(c.def.Fields, f)
		}
	}
}

// WithWeights sets weight labels per relation and column. The outer key
// is the relation name ("" for the scope's own table).
func WithWeights(weights map[string]map[string]string) ScopeOption {
	return func(c *scopeConfig) {
		for relation, cols := range weights {
			for col, label := range cols {
				setWeight(&c.def, relation, col, label)
			}
		}
	}
}

// WithOperator sets how multi-word queries combine terms: "and", "or"
// or "not". Unset defaults to "and".
func WithOperator(op string) ScopeOption {
	return func(c *scopeConfig) { c.def.Operator = op }
}

// WithDictionary sets the text search configuration, e.g. "spanish".
// Unset defaults to "english".
func WithDictionary(dictionary string) ScopeOption {
	return func(c *scopeConfig) { c.def.Dictionary = dictionary }
}

// WithPrimaryKey overrides the default "id" primary key column.
func WithPrimaryKey(column string) ScopeOption {
	return func(c *scopeConfig) { c.def.PrimaryKey = column }
}

func setWeight(def *searchuc.Definition, relation, column, label string) {
	if def.Weights == nil {
		def.Weights = weight.Table{}
	}
	if def.Weights[relation] == nil {
		def.Weights[relation] = map[string]string{}
	}
	def.Weights[relation][column] = label
}
