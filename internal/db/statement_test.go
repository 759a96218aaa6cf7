package db

import (
	"strings"
	"testing"

	"github.com/kailas-cloud/pgsearch/internal/domain/search/plan"
)

func TestStatementSQL_Simple(t *testing.T) {
	stmt := Statement{
		Table: `"posts"`,
		Plan:  plan.New(`v @@ q`, `ts_rank_cd(v, q, 4) DESC, "posts"."id" ASC`, ""),
		Limit: 20,
	}

	want := `SELECT "posts".* FROM "posts" WHERE v @@ q` +
		` ORDER BY ts_rank_cd(v, q, 4) DESC, "posts"."id" ASC LIMIT 20`
	if got := stmt.SQL(); got != want {
		t.Errorf("SQL() =\n%q\nwant\n%q", got, want)
	}
}

func TestStatementSQL_GroupedWithJoins(t *testing.T) {
	stmt := Statement{
		Table: `"posts"`,
		Joins: []string{`LEFT OUTER JOIN "comments" ON "comments"."post_id" = "posts"."id"`},
		Plan: plan.New(`v @@ q`,
			`SUM(ts_rank_cd(v, q, 8)) DESC, "posts"."id" ASC`, `"posts"."id"`),
		Limit:  10,
		Offset: 30,
	}

	got := stmt.SQL()
	for _, part := range []string{
		`FROM "posts" LEFT OUTER JOIN "comments"`,
		`GROUP BY "posts"."id"`,
		`ORDER BY SUM(ts_rank_cd(v, q, 8)) DESC`,
		`LIMIT 10 OFFSET 30`,
	} {
		if !strings.Contains(got, part) {
			t.Errorf("SQL() missing %q:\n%q", part, got)
		}
	}
}

func TestStatementSQL_ExplicitColumnsAndHeadline(t *testing.T) {
	stmt := Statement{
		Table:    `"posts"`,
		Columns:  []string{`"posts"."id"`, `"posts"."title"`},
		Plan:     plan.New(`v @@ q`, `r DESC`, ""),
		Headline: `ts_headline('english', "posts"."title"::text, q)`,
	}

	got := stmt.SQL()
	if !strings.HasPrefix(got, `SELECT "posts"."id", "posts"."title", ts_headline`) {
		t.Errorf("unexpected projection: %q", got)
	}
	if !strings.Contains(got, `AS pg_search_highlight`) {
		t.Errorf("missing highlight alias: %q", got)
	}
}

func TestHeadline(t *testing.T) {
	got := Headline("english", `"posts"."title"`, "to_tsquery('english', 'fox:*')", fakeDialect{})
	want := `ts_headline('english', "posts"."title"::text, to_tsquery('english', 'fox:*'))`
	if got != want {
		t.Errorf("Headline = %q, want %q", got, want)
	}
}
