// Package table flattens API records into rows and columns and renders them.
package table

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Row is one flattened record keyed by column name.
type Row map[string]any

// Table holds rows and the order in which their columns were first seen.
type Table struct {
	Columns []string
	Rows    []Row
}

// New creates an empty table with the given leading columns.
func New(columns ...string) *Table {
	return &Table{Columns: slices.Clone(columns), Rows: []Row{}}
}

// FromRows builds a table from rows. Columns of a row that are not known yet
// are added in sorted order.
func FromRows(rows ...Row) *Table {
	t := New()
	for _, r := range rows {
		t.Append(r)
	}
	return t
}

// Append adds a row. order lists the row's columns in the order they should
// be added to the table; columns missing from order follow sorted.
func (t *Table) Append(row Row, order ...string) {
	known := make(map[string]struct{}, len(t.Columns))
	for _, c := range t.Columns {
		known[c] = struct{}{}
	}

	add := func(col string) {
		if _, ok := row[col]; !ok {
			return
		}
		if _, ok := known[col]; ok {
			return
		}
		known[col] = struct{}{}
		t.Columns = append(t.Columns, col)
	}

	for _, col := range order {
		add(col)
	}
	for _, col := range sortedKeys(row) {
		add(col)
	}

	t.Rows = append(t.Rows, row)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Value returns the cell at row i and column col, or nil.
func (t *Table) Value(i int, col string) any {
	if i < 0 || i >= len(t.Rows) {
		return nil
	}
	return t.Rows[i][col]
}

// HasColumn reports whether col is one of the table's columns.
func (t *Table) HasColumn(col string) bool {
	return slices.Contains(t.Columns, col)
}

// Rename moves column from to column to, keeping its position. When to
// already exists the from column is dropped instead.
func (t *Table) Rename(from, to string) {
	idx := slices.Index(t.Columns, from)
	if idx < 0 || from == to {
		return
	}
	if t.HasColumn(to) {
		t.Drop(from)
		return
	}

	t.Columns[idx] = to
	for _, r := range t.Rows {
		if v, ok := r[from]; ok {
			r[to] = v
			delete(r, from)
		}
	}
}

// Map replaces every value of col with fn(value).
func (t *Table) Map(col string, fn func(any) any) {
	for _, r := range t.Rows {
		if v, ok := r[col]; ok {
			r[col] = fn(v)
		}
	}
}

// Drop removes columns and their values.
func (t *Table) Drop(cols ...string) {
	t.Columns = slices.DeleteFunc(t.Columns, func(c string) bool {
		return slices.Contains(cols, c)
	})
	for _, r := range t.Rows {
		for _, c := range cols {
			delete(r, c)
		}
	}
}

// Select projects the table onto cols in the given order.
func (t *Table) Select(cols ...string) (*Table, error) {
	var unknown []string
	for _, c := range cols {
		if !t.HasColumn(c) {
			unknown = append(unknown, c)
		}
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown columns: %s", strings.Join(unknown, ", "))
	}

	out := New(cols...)
	for _, r := range t.Rows {
		row := make(Row, len(cols))
		for _, c := range cols {
			if v, ok := r[c]; ok {
				row[c] = v
			}
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

// Filter returns a table with the rows for which keep is true.
func (t *Table) Filter(keep []bool) *Table {
	out := New(t.Columns...)
	for i, r := range t.Rows {
		if i < len(keep) && keep[i] {
			out.Rows = append(out.Rows, r)
		}
	}
	return out
}

// Concat stacks tables, merging their columns in first-seen order.
func Concat(tables ...*Table) *Table {
	out := New()
	seen := map[string]struct{}{}
	for _, t := range tables {
		if t == nil {
			continue
		}
		for _, c := range t.Columns {
			if _, ok := seen[c]; !ok {
				seen[c] = struct{}{}
				out.Columns = append(out.Columns, c)
			}
		}
		out.Rows = append(out.Rows, t.Rows...)
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
