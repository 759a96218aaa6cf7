package db

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kailas-cloud/pgsearch/internal/domain"
	"github.com/kailas-cloud/pgsearch/internal/domain/search/operator"
)

// operatorChars backslash-escapes the fixed tsquery operator alphabet.
// Single pass, non-overlapping; inserted backslashes are never rescanned.
var operatorChars = strings.NewReplacer(
	`!`, `\!`,
	`&`, `\&`,
	`|`, `\|`,
	`(`, `\(`,
	`)`, `\)`,
	`\`, `\\`,
)

// colons runs after operatorChars; ':' is not in that alphabet.
var colons = strings.NewReplacer(`:`, `\:`)

var (
	// Runs of single quotes at the start of the text or after whitespace
	// are dropped. Word-internal quotes (contractions) survive.
	leadingQuotes = regexp.MustCompile(`(^|\s)'+`)
	// Only ASCII space runs collapse here; remaining whitespace kinds are
	// consumed by the operator substitution step.
	spaceRuns  = regexp.MustCompile(` +`)
	whitespace = regexp.MustCompile(`\s`)
)

// EscapeQueryText turns raw user text into a bare tsquery term:
// operator-joined escaped tokens with a trailing prefix matcher.
//
// The pipeline runs in a fixed order — operator-character escaping,
// colon escaping, leading-quote stripping, trim, space collapsing,
// operator substitution, ":*" suffix. The order is a correctness
// contract: reordering changes output and can reopen injection.
// Escaping is total over all input; only an invalid operator fails.
func EscapeQueryText(text string, op operator.Operator) (string, error) {
	if !op.IsValid() {
		return "", domain.NewUnknownOperator(string(op))
	}

	s := operatorChars.Replace(text)
	s = colons.Replace(s)
	s = leadingQuotes.ReplaceAllString(s, "$1")
	s = strings.TrimSpace(s)
	s = spaceRuns.ReplaceAllString(s, " ")
	s = whitespace.ReplaceAllString(s, op.Symbol())
	return s + ":*", nil
}

// CompileQuery wraps the escaped term in a to_tsquery call for the given
// dictionary. Both the dictionary and the term pass through the dialect's
// literal quoting before being embedded.
func CompileQuery(text string, op operator.Operator, dictionary string, d Dialect) (string, error) {
	term, err := EscapeQueryText(text, op)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("to_tsquery(%s, %s)",
		d.QuoteLiteral(dictionary), d.QuoteLiteral(term)), nil
}
