// Package query builds parameterized PostgreSQL SELECT statements from a
// mapping of view field names to table columns.
package query

import (
	"fmt"
	"strings"
)

type join struct {
	kind   string
	schema string
	table  string
	alias  string
	on     string
}

// ProjectionMap maps view field names to qualified columns (alias.column)
// for one base table and any joined tables.
type ProjectionMap struct {
	schema  string
	table   string
	alias   string
	current string
	joins   []join
	byView  map[string]string
	byLower map[string]string
	columns []string
}

func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema:  schema,
		table:   table,
		alias:   alias,
		current: alias,
		byView:  make(map[string]string),
		byLower: make(map[string]string),
	}
}

// Project maps column to viewName. The column belongs to the most recently
// joined table, or the base table before any Join.
func (p *ProjectionMap) Project(column, viewName string) *ProjectionMap {
	qualified := p.current + "." + column
	p.byView[viewName] = qualified
	p.byLower[strings.ToLower(viewName)] = qualified
	if _, taken := p.byLower[column]; !taken {
		p.byLower[column] = qualified
	}
	p.columns = append(p.columns, qualified)
	return p
}

// Join adds a joined table. Later Project calls qualify with alias.
func (p *ProjectionMap) Join(schema, table, alias, kind, on string) *ProjectionMap {
	p.joins = append(p.joins, join{kind: kind, schema: schema, table: table, alias: alias, on: on})
	p.current = alias
	return p
}

// Table is the base table reference, "schema.table alias".
func (p *ProjectionMap) Table() string {
	return fmt.Sprintf("%s.%s %s", p.schema, p.table, p.alias)
}

// From is the base table followed by every join clause.
func (p *ProjectionMap) From() string {
	var b strings.Builder
	b.WriteString(p.Table())
	for _, j := range p.joins {
		fmt.Fprintf(&b, " %s %s.%s %s ON %s", j.kind, j.schema, j.table, j.alias, j.on)
	}
	return b.String()
}

// Column returns the qualified column for viewName. Unmapped names are
// returned unchanged so trusted callers can pass raw expressions.
func (p *ProjectionMap) Column(viewName string) string {
	if col, ok := p.byView[viewName]; ok {
		return col
	}
	return viewName
}

// Lookup resolves client-supplied field names. It accepts a view name in
// any case or the bare column name, and reports false for anything else.
func (p *ProjectionMap) Lookup(name string) (string, bool) {
	if col, ok := p.byView[name]; ok {
		return col, true
	}
	col, ok := p.byLower[strings.ToLower(name)]
	return col, ok
}

// Columns is the projected column list for a SELECT.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.columns, ", ")
}
