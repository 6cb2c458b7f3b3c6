// Package query provides SQL query building utilities with projection mapping.
package query

import (
	"fmt"
	"strings"
)

// ProjectionMap binds the field names callers filter and sort by to the
// columns of one aliased table.
type ProjectionMap struct {
	schema  string
	table   string
	alias   string
	columns map[string]string
	order   []string
}

// NewProjectionMap starts a projection over schema.table referenced as alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema:  schema,
		table:   table,
		alias:   alias,
		columns: make(map[string]string),
	}
}

// Project appends column to the select list under the name field.
// Columns are selected in the order they are projected.
func (p *ProjectionMap) Project(column, field string) *ProjectionMap {
	p.columns[field] = p.alias + "." + column
	p.order = append(p.order, column)
	return p
}

// From returns "schema.table alias".
func (p *ProjectionMap) From() string {
	return fmt.Sprintf("%s.%s %s", p.schema, p.table, p.alias)
}

// Column returns the alias-qualified column for field. Unknown names pass
// through unchanged.
func (p *ProjectionMap) Column(field string) string {
	if col, ok := p.columns[field]; ok {
		return col
	}
	return field
}

// Columns returns the qualified select list.
func (p *ProjectionMap) Columns() string {
	qualified := make([]string, len(p.order))
	for i, col := range p.order {
		qualified[i] = p.alias + "." + col
	}
	return strings.Join(qualified, ", ")
}

// Returning returns the unqualified column list for INSERT and UPDATE
// RETURNING clauses, in the same order as Columns.
func (p *ProjectionMap) Returning() string {
	return strings.Join(p.order, ", ")
}
