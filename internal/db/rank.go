package db

import (
	"fmt"

	"github.com/kailas-cloud/pgsearch/internal/domain/search/plan"
)

// ts_rank_cd normalization constants. The aggregate mode doubles the
// constant relative to simple mode; this is a bit-exact contract with
// the engine's ranking function, not a tunable.
const (
	rankNormalization          = 4
	aggregateRankNormalization = rankNormalization * 2
)

// RankPlan selects the ranking and grouping strategy for a compiled
// search. The predicate is the same in both modes. When joined relations
// participate, each joined row can duplicate the primary entity, so the
// plan groups by the primary key and sums per-row ranks to approximate
// combined relevance across matched joined rows.
//
// Both modes carry a primary-key-ascending tie-break so equal-relevance
// rows keep a stable total order across invocations.
func RankPlan(
	vector, query string, joinedRelationsPresent bool,
	tableIdent, primaryKeyColumn string, d Dialect,
) plan.Plan {
	predicate := fmt.Sprintf("%s @@ %s", vector, query)
	pk := tableIdent + "." + d.QuoteIdentifier(primaryKeyColumn)

	if !joinedRelationsPresent {
		order := fmt.Sprintf("ts_rank_cd(%s, %s, %d) DESC, %s ASC",
			vector, query, rankNormalization, pk)
		return plan.New(predicate, order, "")
	}

	order := fmt.Sprintf("SUM(ts_rank_cd(%s, %s, %d)) DESC, %s ASC",
		vector, query, aggregateRankNormalization, pk)
	return plan.New(predicate, order, pk)
}
