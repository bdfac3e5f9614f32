// Package table provides the in-memory tabular representation shared by all
// wrangling steps: an ordered set of named columns over string-valued rows.
// Empty cells stand for missing values.
package table

import (
	"github.com/rotisserie/eris"
)

// Table holds rows of string cells under insertion-ordered column names.
type Table struct {
	Columns []string
	Rows    [][]string
}

// New creates an empty table with the given columns.
func New(columns ...string) *Table {
	return &Table{Columns: append([]string(nil), columns...)}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Cell returns the value at (row, column name). Missing columns and
// short rows read as the empty string.
func (t *Table) Cell(row int, column string) string {
	i := t.ColumnIndex(column)
	if i < 0 || row < 0 || row >= len(t.Rows) || i >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][i]
}

// SetCell writes a value at (row, column name), growing the row if needed.
func (t *Table) SetCell(row int, column, value string) error {
	i := t.ColumnIndex(column)
	if i < 0 {
		return eris.Errorf("table: no column %q", column)
	}
	if row < 0 || row >= len(t.Rows) {
		return eris.Errorf("table: row %d out of range", row)
	}
	for len(t.Rows[row]) <= i {
		t.Rows[row] = append(t.Rows[row], "")
	}
	t.Rows[row][i] = value
	return nil
}

// AppendRow adds a row, padded or truncated to the column count.
func (t *Table) AppendRow(cells ...string) {
	row := make([]string, len(t.Columns))
	copy(row, cells)
	t.Rows = append(t.Rows, row)
}

// AddColumn appends a new column filled with the given value.
// Adding an existing column name is an error.
func (t *Table) AddColumn(name, fill string) error {
	if t.HasColumn(name) {
		return eris.Errorf("table: column %q already exists", name)
	}
	t.Columns = append(t.Columns, name)
	for i := range t.Rows {
		for len(t.Rows[i]) < len(t.Columns) {
			t.Rows[i] = append(t.Rows[i], fill)
		}
	}
	return nil
}

// ColumnValues returns a copy of the named column's cells, one per row.
func (t *Table) ColumnValues(name string) []string {
	values := make([]string, len(t.Rows))
	for i := range t.Rows {
		values[i] = t.Cell(i, name)
	}
	return values
}

// DropColumns removes the named columns. Unknown names are ignored.
func (t *Table) DropColumns(names ...string) {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}

	var keep []int
	var columns []string
	for i, c := range t.Columns {
		if !drop[c] {
			keep = append(keep, i)
			columns = append(columns, c)
		}
	}

	for r, row := range t.Rows {
		next := make([]string, 0, len(keep))
		for _, i := range keep {
			if i < len(row) {
				next = append(next, row[i])
			} else {
				next = append(next, "")
			}
		}
		t.Rows[r] = next
	}
	t.Columns = columns
}

// Filter returns a new table containing only rows accepted by keep.
// Row order is preserved.
func (t *Table) Filter(keep func(row int) bool) *Table {
	out := New(t.Columns...)
	for i := range t.Rows {
		if keep(i) {
			out.AppendRow(t.Rows[i]...)
		}
	}
	return out
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	out := New(t.Columns...)
	for _, row := range t.Rows {
		out.AppendRow(row...)
	}
	return out
}

// Normalize pads or truncates every row to the column count.
func (t *Table) Normalize() {
	for i, row := range t.Rows {
		if len(row) == len(t.Columns) {
			continue
		}
		next := make([]string, len(t.Columns))
		copy(next, row)
		t.Rows[i] = next
	}
}

// Concat combines tables into one. Columns are unioned in first-seen order;
// cells for columns absent from a source table are empty.
func Concat(tables ...*Table) *Table {
	out := New()
	for _, t := range tables {
		for _, c := range t.Columns {
			if !out.HasColumn(c) {
				out.Columns = append(out.Columns, c)
			}
		}
	}

	for _, t := range tables {
		for i := range t.Rows {
			row := make([]string, len(out.Columns))
			for j, c := range out.Columns {
				if t.HasColumn(c) {
					row[j] = t.Cell(i, c)
				}
			}
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}
