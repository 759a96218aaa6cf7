package operator

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/pgsearch/internal/domain"
)

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		raw  string
		want Operator
	}{
		{"and", And},
		{"AND", And},
		{"And", And},
		{"or", Or},
		{"OR", Or},
		{"not", Not},
		{"NOT", Not},
	}

	for _, tt := range tests {
		got, err := Parse(tt.raw)
		if err != nil {
			t.Errorf("Parse(%q) unexpected error: %v", tt.raw, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestParse_EmptyDefaultsToAnd(t *testing.T) {
	got, err := Parse("")
	if err != nil {
		t.Fatalf("Parse(\"\") unexpected error: %v", err)
	}
	if got != And {
		t.Errorf("Parse(\"\") = %q, want %q", got, And)
	}
}

func TestParse_Unknown(t *testing.T) {
	for _, raw := range []string{"xor", "nand", "&", "and ", "andor"} {
		_, err := Parse(raw)
		if err == nil {
			t.Errorf("Parse(%q) expected error", raw)
			continue
		}
		if !errors.Is(err, domain.ErrUnknownOperator) {
			t.Errorf("Parse(%q) error = %v, want ErrUnknownOperator", raw, err)
		}
	}
}

func TestSymbol(t *testing.T) {
	tests := []struct {
		op   Operator
		want string
	}{
		{And, "&"},
		{Or, "|"},
		{Not, "!"},
	}

	for _, tt := range tests {
		if got := tt.op.Symbol(); got != tt.want {
			t.Errorf("%q.Symbol() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestIsValid(t *testing.T) {
	for _, op := range []Operator{And, Or, Not} {
		if !op.IsValid() {
			t.Errorf("%q.IsValid() = false, want true", op)
		}
	}
	if Operator("xor").IsValid() {
		t.Error(`"xor".IsValid() = true, want false`)
	}
}
