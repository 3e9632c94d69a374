// Package table holds the in-memory tabular data loaded from an input file.
package table

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// ErrMissingValue marks an NA cell where a number was required.
var ErrMissingValue = errors.New("missing value")

// naValues are the cell spellings treated as missing.
var naValues = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// IsMissing reports whether a raw cell is NA.
func IsMissing(cell string) bool {
	_, ok := naValues[strings.TrimSpace(cell)]
	return ok
}

// ColumnMissingError is returned when a lookup names a column the table does not have.
type ColumnMissingError struct {
	Name string
}

func (e *ColumnMissingError) Error() string {
	return fmt.Sprintf("column %q not found", e.Name)
}

// CellError reports a cell that could not be converted.
type CellError struct {
	Row    int // 0-based data row
	Column string
	Value  string
	Err    error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("column %q row %d: cannot use %q as a number: %v", e.Column, e.Row+1, e.Value, e.Err)
}

func (e *CellError) Unwrap() error { return e.Err }

// Table is an immutable grid of string cells with named columns.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// New builds a table. Duplicate column names get ".1", ".2" suffixes.
// Every row must have exactly len(columns) cells.
func New(columns []string, rows [][]string) (*Table, error) {
	t := &Table{
		columns: dedupe(columns),
		index:   make(map[string]int, len(columns)),
	}
	for i, name := range t.columns {
		t.index[name] = i
	}
	for i, row := range rows {
		if len(row) != len(t.columns) {
			return nil, fmt.Errorf("row %d has %d fields, expected %d", i+1, len(row), len(t.columns))
		}
		t.rows = append(t.rows, append([]string(nil), row...))
	}
	return t, nil
}

func dedupe(columns []string) []string {
	out := make([]string, len(columns))
	seen := make(map[string]int, len(columns))
	taken := make(map[string]bool, len(columns))
	for _, c := range columns {
		taken[c] = true
	}
	for i, c := range columns {
		n := seen[c]
		seen[c] = n + 1
		if n == 0 {
			out[i] = c
			continue
		}
		name := c + "." + strconv.Itoa(n)
		for taken[name] {
			n++
			name = c + "." + strconv.Itoa(n)
		}
		seen[c] = n + 1
		taken[name] = true
		out[i] = name
	}
	return out
}

// Columns returns the column names in file order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

func (t *Table) NumRows() int    { return len(t.rows) }
func (t *Table) NumColumns() int { return len(t.columns) }

// HasColumns reports whether every name is an exact, case-sensitive column match.
func (t *Table) HasColumns(names ...string) bool {
	for _, n := range names {
		if _, ok := t.index[n]; !ok {
			return false
		}
	}
	return true
}

// Head returns copies of the first n rows, or all rows when there are fewer.
func (t *Table) Head(n int) [][]string {
	if n > len(t.rows) {
		n = len(t.rows)
	}
	if n < 0 {
		n = 0
	}
	out := make([][]string, n)
	for r := range out {
		out[r] = append([]string(nil), t.rows[r]...)
	}
	return out
}

// Column returns a copy of the named column's cells.
func (t *Table) Column(name string) ([]string, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, &ColumnMissingError{Name: name}
	}
	out := make([]string, len(t.rows))
	for r, row := range t.rows {
		out[r] = row[i]
	}
	return out, nil
}

// Floats converts the named column to numbers. NA cells and non-numeric
// cells fail with a *CellError.
func (t *Table) Floats(name string) ([]float64, error) {
	cells, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(cells))
	for r, cell := range cells {
		if IsMissing(cell) {
			return nil, &CellError{Row: r, Column: name, Value: cell, Err: ErrMissingValue}
		}
		v, err := cast.ToFloat64E(strings.TrimSpace(cell))
		if err != nil {
			return nil, &CellError{Row: r, Column: name, Value: cell, Err: err}
		}
		out[r] = v
	}
	return out, nil
}
