// Package plan holds the compiled output of one search invocation.
package plan

// Plan is the immutable result of compiling a search: a predicate to
// filter rows, an order expression to rank them, and an optional grouping
// key when joined relations can duplicate the primary entity. It is
// constructed fresh per invocation and consumed immediately by the host
// query builder.
type Plan struct {
	predicate string
	order     string
	groupBy   string
}

// New creates a Plan. groupBy may be empty for single-relation searches.
func New(predicate, order, groupBy string) Plan {
	return Plan{predicate: predicate, order: order, groupBy: groupBy}
}

// Predicate returns the WHERE expression matching rows against the query.
func (p Plan) Predicate() string { return p.predicate }

// Order returns the relevance order expression, tie-break included.
func (p Plan) Order() string { return p.order }

// GroupBy returns the grouping key and whether grouping is required.
func (p Plan) GroupBy() (string, bool) {
	return p.groupBy, p.groupBy != ""
}

// Grouped reports whether the plan aggregates join-duplicated rows.
func (p Plan) Grouped() bool { return p.groupBy != "" }
