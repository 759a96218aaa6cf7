// Package search coordinates one search invocation: it compiles the
// query term and the weighted vector, selects the rank and grouping
// strategy, and packages the result for the host query builder. The
// service is stateless and purely functional; invocations are
// independent and may run in parallel without coordination.
package search

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/pgsearch/internal/db"
	"github.com/kailas-cloud/pgsearch/internal/domain"
	"github.com/kailas-cloud/pgsearch/internal/domain/search/field"
	"github.com/kailas-cloud/pgsearch/internal/domain/search/operator"
	"github.com/kailas-cloud/pgsearch/internal/domain/search/plan"
	"github.com/kailas-cloud/pgsearch/internal/domain/search/weight"
)

// DefaultDictionary is the text search configuration used when the
// scope does not name one.
const DefaultDictionary = "english"

// Relation names a joined relation participating in a search scope.
type Relation struct {
	Name  string // relation name, matches field references and weights
	Table string // table name (possibly schema-qualified)
	Join  string // rendered JOIN clause supplied by the join collaborator
}

// Definition describes one searchable scope: the primary table and key,
// the searchable fields, and the search options. Field order is a
// first-class input — the vector is assembled in declaration order;
// weights are the only map-keyed lookup.
type Definition struct {
	Table      string
	PrimaryKey string
	Fields     []field.Reference
	Relations  []Relation
	Weights    weight.Table
	Operator   string // raw operator name; "" defaults to and
	Dictionary string // "" defaults to DefaultDictionary
}

// Validate fails fast on configuration errors that would otherwise
// surface at request time.
func (d Definition) Validate() error {
	if d.Table == "" {
		return fmt.Errorf("%w: table is required", domain.ErrInvalidScope)
	}
	if d.PrimaryKey == "" {
		return fmt.Errorf("%w: primary key is required", domain.ErrInvalidScope)
	}
	if len(d.Fields) == 0 {
		return domain.ErrEmptyFieldSet
	}
	if _, err := operator.Parse(d.Operator); err != nil {
		return err
	}
	declared := make(map[string]bool, len(d.Relations))
	for _, r := range d.Relations {
		declared[r.Name] = true
	}
	for _, f := range d.Fields {
		if !f.OnPrimary() && !declared[f.Relation()] {
			return fmt.Errorf("%w: field %s.%s references an undeclared relation",
				domain.ErrInvalidScope, f.Relation(), f.Column())
		}
	}
	return nil
}

// Invocation is the compiled output of one search call, ready for the
// executing query builder.
type Invocation struct {
	Table      string   // rendered primary table identifier
	Joins      []string // JOIN clauses, declaration order
	Plan       plan.Plan
	Query      string // compiled tsquery expression
	Vector     string // weighted tsvector expression
	Headline   string // ts_headline over the first field, optional to use
	Dictionary string
}

// Service compiles search invocations. It performs no I/O.
type Service struct {
	dialect Dialect
}

// New creates a search service.
func New(dialect Dialect) *Service {
	return &Service{dialect: dialect}
}

// Compile builds the invocation for one search call. ok is false when
// the text is blank: the search is a no-op and the host should return
// the unfiltered result set.
func (s *Service) Compile(def Definition, text string) (Invocation, bool, error) {
	if strings.TrimSpace(text) == "" {
		return Invocation{}, false, nil
	}
	if err := def.Validate(); err != nil {
		return Invocation{}, false, err
	}

	op, err := operator.Parse(def.Operator)
	if err != nil {
		return Invocation{}, false, err
	}
	dict := def.Dictionary
	if dict == "" {
		dict = DefaultDictionary
	}

	tables := map[string]string{"": s.dialect.TableIdent(def.Table)}
	joins := make([]string, 0, len(def.Relations))
	for _, r := range def.Relations {
		tables[r.Name] = s.dialect.TableIdent(r.Table)
		joins = append(joins, r.Join)
	}

	query, err := db.CompileQuery(text, op, dict, s.dialect)
	if err != nil {
		return Invocation{}, false, err
	}

	vector, err := db.AssembleVector(def.Fields, tables, def.Weights, dict, s.dialect)
	if err != nil {
		return Invocation{}, false, err
	}

	joined := false
	for _, f := range def.Fields {
		if !f.OnPrimary() {
			joined = true
			break
		}
	}

	p := db.RankPlan(vector, query, joined, tables[""], def.PrimaryKey, s.dialect)

	headline := ""
	if locator, lerr := db.Locator(def.Fields[0], tables, s.dialect); lerr == nil {
		headline = db.Headline(dict, locator, query, s.dialect)
	}

	return Invocation{
		Table:      tables[""],
		Joins:      joins,
		Plan:       p,
		Query:      query,
		Vector:     vector,
		Headline:   headline,
		Dictionary: dict,
	}, true, nil
}
