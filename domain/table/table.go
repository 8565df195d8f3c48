// Package table provides the in-memory working table that flows through the
// mapping, cleaning, and KPI stages. Tables are value-oriented: every
// transforming operation returns a new, independent table and leaves its
// receiver untouched.
package table

import (
	"sort"
	"time"
)

// Row is a single record keyed by column name
type Row map[string]Value

// Table is an ordered set of columns plus rows of typed values
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// New creates an empty table with the given column order
func New(columns ...string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Columns: cols, Rows: []Row{}}
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColumnCount returns the number of columns
func (t *Table) ColumnCount() int {
	return len(t.Columns)
}

// HasColumn checks whether a column is present
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// AppendRow adds a row. Cells for columns absent from the row are treated as
// missing when read back.
func (t *Table) AppendRow(row Row) {
	t.Rows = append(t.Rows, row)
}

// Cell returns the value at (row, column), missing if the column was never set
func (t *Table) Cell(row int, column string) Value {
	if row < 0 || row >= len(t.Rows) {
		return NewMissingValue()
	}
	if v, ok := t.Rows[row][column]; ok {
		return v
	}
	return NewMissingValue()
}

// Clone returns a deep, independent copy of the table
func (t *Table) Clone() *Table {
	out := New(t.Columns...)
	out.Rows = make([]Row, len(t.Rows))
	for i, row := range t.Rows {
		copied := make(Row, len(row))
		for k, v := range row {
			copied[k] = v
		}
		out.Rows[i] = copied
	}
	return out
}

// Filter returns a new table containing only the rows the predicate keeps
func (t *Table) Filter(keep func(Row) bool) *Table {
	out := New(t.Columns...)
	for _, row := range t.Rows {
		if keep(row) {
			copied := make(Row, len(row))
			for k, v := range row {
				copied[k] = v
			}
			out.Rows = append(out.Rows, copied)
		}
	}
	return out
}

// RenameColumns returns a new table with columns renamed per the given
// old→new association. Columns absent from the association keep their name.
func (t *Table) RenameColumns(renames map[string]string) *Table {
	out := &Table{Columns: make([]string, len(t.Columns))}
	for i, c := range t.Columns {
		if renamed, ok := renames[c]; ok {
			out.Columns[i] = renamed
		} else {
			out.Columns[i] = c
		}
	}
	out.Rows = make([]Row, len(t.Rows))
	for i, row := range t.Rows {
		copied := make(Row, len(row))
		for k, v := range row {
			if renamed, ok := renames[k]; ok {
				copied[renamed] = v
			} else {
				copied[k] = v
			}
		}
		out.Rows[i] = copied
	}
	return out
}

// MapColumn returns a new table with the named column rewritten cell by cell
func (t *Table) MapColumn(column string, fn func(Value) Value) *Table {
	out := t.Clone()
	for _, row := range out.Rows {
		if v, ok := row[column]; ok {
			row[column] = fn(v)
		} else {
			row[column] = fn(NewMissingValue())
		}
	}
	return out
}

// Column returns all values of a column in row order
func (t *Table) Column(name string) []Value {
	values := make([]Value, len(t.Rows))
	for i, row := range t.Rows {
		if v, ok := row[name]; ok {
			values[i] = v
		} else {
			values[i] = NewMissingValue()
		}
	}
	return values
}

// NumericColumn returns the non-missing numeric values of a column in row order
func (t *Table) NumericColumn(name string) []float64 {
	var values []float64
	for _, row := range t.Rows {
		if v, ok := row[name]; ok && v.IsNumeric() {
			values = append(values, v.AsFloat64())
		}
	}
	return values
}

// TimeColumn returns the non-missing timestamp values of a column in row order
func (t *Table) TimeColumn(name string) []time.Time {
	var values []time.Time
	for _, row := range t.Rows {
		if v, ok := row[name]; ok && v.IsTimestamp() {
			values = append(values, v.AsTime())
		}
	}
	return values
}

// DistinctStrings returns the sorted distinct non-missing string values of a column
func (t *Table) DistinctStrings(name string) []string {
	seen := make(map[string]bool)
	for _, row := range t.Rows {
		if v, ok := row[name]; ok && v.IsString() {
			seen[v.AsString()] = true
		}
	}
	distinct := make([]string, 0, len(seen))
	for s := range seen {
		distinct = append(distinct, s)
	}
	sort.Strings(distinct)
	return distinct
}

// MissingCount counts missing cells in a column
func (t *Table) MissingCount(name string) int {
	count := 0
	for _, row := range t.Rows {
		v, ok := row[name]
		if !ok || v.IsMissing {
			count++
		}
	}
	return count
}

// TimeRange returns the earliest and latest timestamps in a column.
// ok is false when the column holds no timestamps.
func (t *Table) TimeRange(name string) (min, max time.Time, ok bool) {
	for _, row := range t.Rows {
		v, present := row[name]
		if !present || !v.IsTimestamp() {
			continue
		}
		ts := v.AsTime()
		if !ok {
			min, max, ok = ts, ts, true
			continue
		}
		if ts.Before(min) {
			min = ts
		}
		if ts.After(max) {
			max = ts
		}
	}
	return min, max, ok
}
