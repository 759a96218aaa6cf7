package pgsearch

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"
)

const tagKey = "pgsearch"

// Searchable is implemented by model types to name their backing table.
type Searchable interface {
	TableName() string
}

// schemaMeta holds parsed struct tag metadata, cached per Model.
type schemaMeta struct {
	table   string
	pk      string   // primary key column, "id" unless tagged
	columns []string // every mapped column, struct declaration order
	against []string // searchable columns, struct declaration order
	weights map[string]string
}

// parseSchema reflects on T and extracts pgsearch struct tag metadata.
// Column names come from the db tag when present, otherwise from the
// snake-cased field name, matching pgx struct scanning.
func parseSchema[T any]() (*schemaMeta, error) {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		return nil, fmt.Errorf("pgsearch: type parameter must be a struct")
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("pgsearch: type %s is not a struct", t)
	}

	s, ok := reflect.New(t).Interface().(Searchable)
	if !ok {
		return nil, fmt.Errorf("pgsearch: type %s does not implement Searchable", t)
	}

	meta := &schemaMeta{
		table:   s.TableName(),
		pk:      "id",
		weights: map[string]string{},
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := f.Tag.Get(tagKey)
		if tag == "-" {
			continue
		}
		col := columnName(f)
		meta.columns = append(meta.columns, col)
		if tag == "" {
			continue
		}
		if err := applyTag(meta, f.Name, col, tag); err != nil {
			return nil, err
		}
	}

	if meta.table == "" {
		return nil, fmt.Errorf("pgsearch: type %s returns an empty table name", t)
	}
	return meta, nil
}

// applyTag processes a single struct field's pgsearch tag.
func applyTag(meta *schemaMeta, fieldName, col, tag string) error {
	parts := strings.Split(tag, ",")
	switch parts[0] {
	case "pk":
		meta.pk = col
	case "against":
		meta.against = append(meta.against, col)
		for _, mod := range parts[1:] {
			label, ok := strings.CutPrefix(mod, "weight=")
			if !ok {
				return fmt.Errorf("pgsearch: unknown modifier %q on field %s", mod, fieldName)
			}
			meta.weights[col] = label
		}
	default:
		return fmt.Errorf("pgsearch: unknown tag %q on field %s", parts[0], fieldName)
	}
	return nil
}

func columnName(f reflect.StructField) string {
	if db := f.Tag.Get("db"); db != "" {
		name, _, _ := strings.Cut(db, ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return snakeCase(f.Name)
}

func snakeCase(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if !unicode.IsUpper(r) {
			b.WriteRune(r)
			continue
		}
		// Break before an upper rune unless it continues an acronym run
		// ("UserID" -> user_id, "HTMLBody" -> html_body).
		if i > 0 && (!unicode.IsUpper(runes[i-1]) ||
			(i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// scopeOptions builds the ScopeOption slice equivalent to the parsed
// schema.
func (m *schemaMeta) scopeOptions() []ScopeOption {
	opts := []ScopeOption{
		WithPrimaryKey(m.pk),
		Against(m.against...),
	}
	if len(m.weights) > 0 {
		opts = append(opts, WithWeights(map[string]map[string]string{"": m.weights}))
	}
	return opts
}
