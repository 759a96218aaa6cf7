package db

import (
	"strings"
	"testing"
)

const (
	testVector = "setweight(to_tsvector('english', coalesce(\"posts\".\"title\"::text, '')), 'A')"
	testQuery  = "to_tsquery('english', 'fox:*')"
)

func TestRankPlan_SimpleMode(t *testing.T) {
	p := RankPlan(testVector, testQuery, false, `"posts"`, "id", fakeDialect{})

	wantPredicate := testVector + " @@ " + testQuery
	if p.Predicate() != wantPredicate {
		t.Errorf("Predicate() = %q, want %q", p.Predicate(), wantPredicate)
	}

	wantOrder := "ts_rank_cd(" + testVector + ", " + testQuery + ", 4) DESC, \"posts\".\"id\" ASC"
	if p.Order() != wantOrder {
		t.Errorf("Order() = %q, want %q", p.Order(), wantOrder)
	}

	if _, ok := p.GroupBy(); ok {
		t.Error("simple mode must not group")
	}
}

func TestRankPlan_AggregateMode(t *testing.T) {
	p := RankPlan(testVector, testQuery, true, `"posts"`, "id", fakeDialect{})

	wantPredicate := testVector + " @@ " + testQuery
	if p.Predicate() != wantPredicate {
		t.Errorf("Predicate() = %q, want %q", p.Predicate(), wantPredicate)
	}

	wantOrder := "SUM(ts_rank_cd(" + testVector + ", " + testQuery + ", 8)) DESC, \"posts\".\"id\" ASC"
	if p.Order() != wantOrder {
		t.Errorf("Order() = %q, want %q", p.Order(), wantOrder)
	}

	groupBy, ok := p.GroupBy()
	if !ok {
		t.Fatal("aggregate mode must group")
	}
	if groupBy != `"posts"."id"` {
		t.Errorf("GroupBy() = %q, want %q", groupBy, `"posts"."id"`)
	}
}

func TestRankPlan_NormalizationConstants(t *testing.T) {
	simple := RankPlan(testVector, testQuery, false, `"posts"`, "id", fakeDialect{})
	if strings.Contains(simple.Order(), ", 8)") {
		t.Errorf("simple mode uses aggregate constant: %q", simple.Order())
	}

	aggregate := RankPlan(testVector, testQuery, true, `"posts"`, "id", fakeDialect{})
	if strings.Contains(aggregate.Order(), ", 4)") {
		t.Errorf("aggregate mode uses simple constant: %q", aggregate.Order())
	}
}

func TestRankPlan_TieBreakAlwaysPresent(t *testing.T) {
	for _, joined := range []bool{false, true} {
		p := RankPlan(testVector, testQuery, joined, `"posts"`, "id", fakeDialect{})
		if !strings.HasSuffix(p.Order(), `"posts"."id" ASC`) {
			t.Errorf("joined=%v: missing primary key tie-break: %q", joined, p.Order())
		}
	}
}
