package field

import (
	"strings"
	"testing"
)

func TestNew_Valid(t *testing.T) {
	tests := []struct {
		relation, column string
	}{
		{"", "title"},
		{"comments", "body"},
		{"", "other_table.column"},
	}

	for _, tt := range tests {
		r, err := New(tt.relation, tt.column)
		if err != nil {
			t.Errorf("New(%q, %q) unexpected error: %v", tt.relation, tt.column, err)
			continue
		}
		if r.Relation() != tt.relation {
			t.Errorf("Relation() = %q, want %q", r.Relation(), tt.relation)
		}
		if r.Column() != tt.column {
			t.Errorf("Column() = %q, want %q", r.Column(), tt.column)
		}
	}
}

func TestNew_EmptyColumn(t *testing.T) {
	_, err := New("comments", "")
	if err == nil {
		t.Fatal("expected error for empty column")
	}
	if !strings.Contains(err.Error(), "required") {
		t.Errorf("error = %q, want 'required'", err)
	}
}

func TestOnPrimary(t *testing.T) {
	self, _ := Self("title")
	if !self.OnPrimary() {
		t.Error("Self reference OnPrimary() = false, want true")
	}

	assoc, _ := New("comments", "body")
	if assoc.OnPrimary() {
		t.Error("associated reference OnPrimary() = true, want false")
	}
}

func TestPrequalified(t *testing.T) {
	tests := []struct {
		relation, column string
		want             bool
	}{
		{"", "title", false},
		{"", "blog_posts.title", true},
		// Qualifier detection applies to primary-entity references only.
		{"comments", "comments.body", false},
	}

	for _, tt := range tests {
		r, err := New(tt.relation, tt.column)
		if err != nil {
			t.Fatalf("New(%q, %q): %v", tt.relation, tt.column, err)
		}
		if got := r.Prequalified(); got != tt.want {
			t.Errorf("New(%q, %q).Prequalified() = %v, want %v",
				tt.relation, tt.column, got, tt.want)
		}
	}
}
