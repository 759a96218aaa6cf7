package pgsearch

import (
	searchrepo "github.com/kailas-cloud/pgsearch/internal/repository/search"
)

// HighlightColumn is the alias under which the optional ts_headline
// fragment appears in result rows.
const HighlightColumn = "pg_search_highlight"

// Row is one search result keyed by column name.
type Row map[string]any

// SearchPlan is the compiled output of one search: the SQL fragments a
// host query builder needs, plus the fully rendered statement. Every
// identifier and literal inside it is already quoted.
type SearchPlan struct {
	Predicate string // WHERE expression matching rows against the query
	Order     string // relevance order, primary-key tie-break included
	GroupBy   string // grouping key; empty when no joins duplicate rows
	SQL       string // complete rendered SELECT
}

func fromRepoRows(in []searchrepo.Row) []Row {
	out := make([]Row, len(in))
	for i, r := range in {
		out[i] = Row(r)
	}
	return out
}
