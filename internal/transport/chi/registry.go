package chi

import (
	"fmt"

	"github.com/kailas-cloud/pgsearch/internal/config"
	"github.com/kailas-cloud/pgsearch/internal/domain/search/field"
	"github.com/kailas-cloud/pgsearch/internal/domain/search/weight"
	searchuc "github.com/kailas-cloud/pgsearch/internal/usecase/search"
)

// Registry holds the named search scopes the server exposes.
// It is populated once at startup and read-only afterwards.
type Registry struct {
	defs map[string]searchuc.Definition
}

// NewRegistry creates a registry from pre-built definitions.
func NewRegistry(defs map[string]searchuc.Definition) *Registry {
	return &Registry{defs: defs}
}

// RegistryFromConfig builds and validates scope definitions from
// configuration, failing fast on any misconfigured scope.
func RegistryFromConfig(scopes map[string]config.ScopeConfig) (*Registry, error) {
	defs := make(map[string]searchuc.Definition, len(scopes))
	for name, sc := range scopes {
		def, err := definitionFromScope(sc)
		if err != nil {
			return nil, fmt.Errorf("scope %s: %w", name, err)
		}
		if err := def.Validate(); err != nil {
			return nil, fmt.Errorf("scope %s: %w", name, err)
		}
		defs[name] = def
	}
	return NewRegistry(defs), nil
}

// Get returns the definition for a named scope.
func (r *Registry) Get(name string) (searchuc.Definition, bool) {
	def, ok := r.defs[name]
	return def, ok
}

func definitionFromScope(sc config.ScopeConfig) (searchuc.Definition, error) {
	def := searchuc.Definition{
		Table:      sc.Table,
		PrimaryKey: sc.PrimaryKey,
		Weights:    scopeWeights(sc),
		Operator:   sc.Operator,
		Dictionary: sc.Dictionary,
	}

	for _, col := range sc.Against {
		f, err := field.Self(col)
		if err != nil {
			return searchuc.Definition{}, err
		}
		def.Fields = append(def.Fields, f)
	}
	for _, assoc := range sc.Associated {
		def.Relations = append(def.Relations, searchuc.Relation{
			Name:  assoc.Relation,
			Table: assoc.Table,
			Join:  assoc.Join,
		})
		for _, col := range assoc.Against {
			f, err := field.New(assoc.Relation, col)
			if err != nil {
				return searchuc.Definition{}, err
			}
			def.Fields = append(def.Fields, f)
		}
	}

	return def, nil
}

// scopeWeights converts config weights to the internal table. In
// configuration the scope's own columns sit under the table name;
// internally the primary entity is the empty relation.
func scopeWeights(sc config.ScopeConfig) weight.Table {
	if len(sc.Weights) == 0 {
		return nil
	}
	w := make(weight.Table, len(sc.Weights))
	for relation, cols := range sc.Weights {
		if relation == sc.Table {
			relation = ""
		}
		w[relation] = cols
	}
	return w
}
