package chi

import (
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/pgsearch/internal/config"
	"github.com/kailas-cloud/pgsearch/internal/domain"
)

func TestRegistryFromConfig(t *testing.T) {
	reg, err := RegistryFromConfig(map[string]config.ScopeConfig{
		"posts": {
			Table:      "posts",
			PrimaryKey: "id",
			Against:    []string{"title"},
			// The scope's own columns sit under the table name.
			Weights: map[string]map[string]string{"posts": {"title": "A"}},
			Associated: []config.AssociatedConfig{{
				Relation: "comments",
				Table:    "comments",
				Join:     `INNER JOIN "comments" ON "comments"."post_id" = "posts"."id"`,
				Against:  []string{"body"},
			}},
		},
	})
	if err != nil {
		t.Fatalf("RegistryFromConfig: %v", err)
	}

	def, ok := reg.Get("posts")
	if !ok {
		t.Fatal("posts scope not registered")
	}
	if def.Weights[""]["title"] != "A" {
		t.Errorf("weights = %v, want table key remapped to primary entity", def.Weights)
	}
	if len(def.Fields) != 2 {
		t.Errorf("fields = %d, want 2", len(def.Fields))
	}

	if _, ok := reg.Get("missing"); ok {
		t.Error("Get(missing) should report absence")
	}
}

func TestRegistryFromConfigInvalid(t *testing.T) {
	_, err := RegistryFromConfig(map[string]config.ScopeConfig{
		"broken": {Table: "posts", PrimaryKey: "id"},
	})
	if !errors.Is(err, domain.ErrEmptyFieldSet) {
		t.Errorf("error = %v, want ErrEmptyFieldSet", err)
	}
	if err == nil || !strings.Contains(err.Error(), "scope broken") {
		t.Errorf("error %v should name the scope", err)
	}
}
