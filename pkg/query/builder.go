package query

import (
	"fmt"
	"reflect"
	"strings"
)

const placeholder = "$%d"

type condition struct {
	clause string
	args   []any
}

// SortField is one ORDER BY term. Field is a projected view name or
// column name.
type SortField struct {
	Field      string
	Descending bool
}

// Builder assembles SELECT statements over a ProjectionMap. Conditions
// are joined with AND and parameters are numbered in the order added.
type Builder struct {
	projection  *ProjectionMap
	conditions  []condition
	sort        []SortField
	defaultSort []SortField
}

func NewBuilder(projection *ProjectionMap, defaultSort ...SortField) *Builder {
	return &Builder{
		projection:  projection,
		defaultSort: defaultSort,
	}
}

// ParseSortFields parses "title,-created_at" into ascending title then
// descending created_at. Empty input returns nil.
func ParseSortFields(s string) []SortField {
	if s == "" {
		return nil
	}

	var fields []SortField
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		field, desc := strings.CutPrefix(part, "-")
		fields = append(fields, SortField{Field: field, Descending: desc})
	}
	return fields
}

func (b *Builder) Build() (string, []any) {
	where, args := b.where()
	return b.selectSQL(where + b.orderBy()), args
}

func (b *Builder) BuildCount() (string, []any) {
	where, args := b.where()
	return fmt.Sprintf("SELECT COUNT(*) FROM %s%s", b.projection.From(), where), args
}

// BuildPage returns the ordered SELECT for a 1-based page. Pages below 1
// are treated as the first page.
func (b *Builder) BuildPage(page, pageSize int) (string, []any) {
	page = max(page, 1)
	where, args := b.where()
	tail := fmt.Sprintf("%s%s LIMIT %d OFFSET %d", where, b.orderBy(), pageSize, (page-1)*pageSize)
	return b.selectSQL(tail), args
}

// BuildSingle selects the row whose idField equals id. Other conditions
// on the builder are ignored.
func (b *Builder) BuildSingle(idField string, id any) (string, []any) {
	return b.selectSQL(fmt.Sprintf(" WHERE %s = $1", b.projection.Column(idField))), []any{id}
}

// OrderByFields replaces the default sort. Fields the projection does not
// know are dropped so client input never reaches the ORDER BY clause
// verbatim. When nothing survives the default sort applies.
func (b *Builder) OrderByFields(fields []SortField) *Builder {
	b.sort = b.sort[:0]
	for _, f := range fields {
		if col, ok := b.projection.Lookup(f.Field); ok {
			b.sort = append(b.sort, SortField{Field: col, Descending: f.Descending})
		}
	}
	return b
}

// Where adds a raw condition. Each "$%d" in clause is bound to the next
// arg. Empty clauses are ignored.
func (b *Builder) Where(clause string, args ...any) *Builder {
	if clause == "" {
		return b
	}
	b.conditions = append(b.conditions, condition{clause: clause, args: args})
	return b
}

// WhereEquals adds field = value, skipping nil values and nil pointers.
func (b *Builder) WhereEquals(field string, value any) *Builder {
	if isNil(value) {
		return b
	}
	return b.Where(b.projection.Column(field)+" = "+placeholder, value)
}

// WhereContains adds a case-insensitive substring match. LIKE wildcards
// in value match literally.
func (b *Builder) WhereContains(field string, value *string) *Builder {
	if value == nil || *value == "" {
		return b
	}
	return b.Where(b.projection.Column(field)+" ILIKE "+placeholder, containsPattern(*value))
}

// WhereIn adds field IN (...). An empty set adds nothing.
func (b *Builder) WhereIn(field string, values []any) *Builder {
	if len(values) == 0 {
		return b
	}
	marks := strings.TrimSuffix(strings.Repeat(placeholder+", ", len(values)), ", ")
	return b.Where(fmt.Sprintf("%s IN (%s)", b.projection.Column(field), marks), values...)
}

// WhereSearch matches search as a substring of any of fields.
func (b *Builder) WhereSearch(search *string, fields ...string) *Builder {
	if search == nil || *search == "" || len(fields) == 0 {
		return b
	}

	pattern := containsPattern(*search)
	clauses := make([]string, len(fields))
	args := make([]any, len(fields))
	for i, field := range fields {
		clauses[i] = b.projection.Column(field) + " ILIKE " + placeholder
		args[i] = pattern
	}
	return b.Where("("+strings.Join(clauses, " OR ")+")", args...)
}

func (b *Builder) selectSQL(tail string) string {
	return fmt.Sprintf("SELECT %s FROM %s%s", b.projection.Columns(), b.projection.From(), tail)
}

func (b *Builder) orderBy() string {
	fields := b.sort
	if len(fields) == 0 {
		fields = b.defaultSort
	}
	if len(fields) == 0 {
		return ""
	}

	parts := make([]string, len(fields))
	for i, f := range fields {
		dir := "ASC"
		if f.Descending {
			dir = "DESC"
		}
		parts[i] = b.projection.Column(f.Field) + " " + dir
	}
	return " ORDER BY " + strings.Join(parts, ", ")
}

func (b *Builder) where() (string, []any) {
	if len(b.conditions) == 0 {
		return "", nil
	}

	clauses := make([]string, len(b.conditions))
	var args []any
	for i, cond := range b.conditions {
		clause := cond.clause
		for _, arg := range cond.args {
			args = append(args, arg)
			clause = strings.Replace(clause, placeholder, fmt.Sprintf("$%d", len(args)), 1)
		}
		clauses[i] = clause
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return v.IsNil()
	}
	return false
}
