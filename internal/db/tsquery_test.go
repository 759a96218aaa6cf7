package db

import (
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/pgsearch/internal/domain"
	"github.com/kailas-cloud/pgsearch/internal/domain/search/operator"
)

// fakeDialect quotes the way Postgres does, without pulling in the driver.
type fakeDialect struct{}

func (fakeDialect) QuoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func (fakeDialect) QuoteIdentifier(s string) string {
	return `"` + s + `"`
}

func TestEscapeQueryText(t *testing.T) {
	tests := []struct {
		name string
		text string
		op   operator.Operator
		want string
	}{
		{"single token", "cat", operator.And, "cat:*"},
		{"two tokens and", "cat dog", operator.And, "cat&dog:*"},
		{"two tokens or", "cat dog", operator.Or, "cat|dog:*"},
		{"two tokens not", "cat dog", operator.Not, "cat!dog:*"},
		{"whitespace collapsing", "  cat   dog  ", operator.And, "cat&dog:*"},
		{"tab separated", "cat\tdog", operator.And, "cat&dog:*"},
		{"ampersand escaped", "cat&dog", operator.And, `cat\&dog:*`},
		{"bang escaped", "!important", operator.And, `\!important:*`},
		{"pipe escaped", "a|b", operator.And, `a\|b:*`},
		{"parens escaped", "(group)", operator.And, `\(group\):*`},
		{"backslash escaped", `a\b`, operator.And, `a\\b:*`},
		{"colon escaped", "12:30", operator.And, `12\:30:*`},
		{"leading quote stripped", "'hello", operator.And, "hello:*"},
		{"leading quote run stripped", "''hello", operator.And, "hello:*"},
		{"quote after space stripped", "hello 'world", operator.And, "hello&world:*"},
		{"internal quote preserved", "it's", operator.And, "it's:*"},
		{"mixed specials", "a&b:c", operator.And, `a\&b\:c:*`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EscapeQueryText(tt.text, tt.op)
			if err != nil {
				t.Fatalf("EscapeQueryText(%q, %q): %v", tt.text, tt.op, err)
			}
			if got != tt.want {
				t.Errorf("EscapeQueryText(%q, %q) = %q, want %q", tt.text, tt.op, got, tt.want)
			}
		})
	}
}

func TestEscapeQueryText_Deterministic(t *testing.T) {
	first, err := EscapeQueryText("  the quick (brown) fox!  ", operator.Or)
	if err != nil {
		t.Fatal(err)
	}
	second, err := EscapeQueryText("  the quick (brown) fox!  ", operator.Or)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("compiling twice differs: %q vs %q", first, second)
	}
}

func TestEscapeQueryText_EverySpecialEscaped(t *testing.T) {
	term, err := EscapeQueryText(`!&|():\`, operator.And)
	if err != nil {
		t.Fatal(err)
	}
	// Strip the prefix-match suffix, then check every special character
	// is preceded by exactly one backslash.
	body := strings.TrimSuffix(term, ":*")
	for i := 0; i < len(body); i++ {
		c := body[i]
		if strings.ContainsRune(`!&|():`, rune(c)) {
			if i == 0 || body[i-1] != '\\' {
				t.Errorf("special %q at %d not escaped in %q", c, i, body)
			}
		}
	}
}

func TestEscapeQueryText_UnknownOperator(t *testing.T) {
	_, err := EscapeQueryText("cat", operator.Operator("xor"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, domain.ErrUnknownOperator) {
		t.Errorf("error = %v, want ErrUnknownOperator", err)
	}
}

func TestCompileQuery(t *testing.T) {
	got, err := CompileQuery("quick fox", operator.And, "english", fakeDialect{})
	if err != nil {
		t.Fatal(err)
	}
	want := "to_tsquery('english', 'quick&fox:*')"
	if got != want {
		t.Errorf("CompileQuery = %q, want %q", got, want)
	}
}

func TestCompileQuery_QuotesLiteral(t *testing.T) {
	got, err := CompileQuery("it's", operator.And, "english", fakeDialect{})
	if err != nil {
		t.Fatal(err)
	}
	want := "to_tsquery('english', 'it''s:*')"
	if got != want {
		t.Errorf("CompileQuery = %q, want %q", got, want)
	}
}
