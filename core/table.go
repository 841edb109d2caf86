// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "fmt"

// Column is one named column of a table. Cells are nullable: a nil value
// is a null cell.
type Column struct {
	Name   string
	Values []any
}

// Table is the in-memory tabular value produced by extraction: an ordered
// sequence of named columns of equal length.
//
// The zero number of columns and the zero number of rows are both valid
// states; validation decides what may proceed.
type Table struct {
	cols []Column
}

// NewTable returns an empty table with no columns and no rows.
func NewTable() *Table {
	return &Table{}
}

// NumRows returns the row count. A table with no columns has zero rows.
func (t *Table) NumRows() int {
	if len(t.cols) == 0 {
		return 0
	}
	return len(t.cols[0].Values)
}

// NumColumns returns the column count.
func (t *Table) NumColumns() int {
	return len(t.cols)
}

// Columns returns the table's columns in order. The returned slice shares
// storage with the table and must not be mutated.
func (t *Table) Columns() []Column {
	return t.cols
}

// ColumnNames returns the ordered column names.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// Column returns the column with the given name.
func (t *Table) Column(name string) (Column, bool) {
	for _, c := range t.cols {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// AppendColumn appends a column to the table. The first column fixes the
// row count; every later column must match it.
func (t *Table) AppendColumn(name string, values []any) error {
	if _, ok := t.Column(name); ok {
		return fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
	}
	if len(t.cols) > 0 && len(values) != t.NumRows() {
		return fmt.Errorf("%w: column %q has %d values, table has %d rows",
			ErrColumnLength, name, len(values), t.NumRows())
	}
	t.cols = append(t.cols, Column{Name: name, Values: values})
	return nil
}

// AppendConstant appends a column holding the same value in every row.
func (t *Table) AppendConstant(name string, value any) error {
	values := make([]any, t.NumRows())
	for i := range values {
		values[i] = value
	}
	return t.AppendColumn(name, values)
}

// Row materializes row i as a slice of cells in column order.
func (t *Table) Row(i int) []any {
	row := make([]any, len(t.cols))
	for c, col := range t.cols {
		row[c] = col.Values[i]
	}
	return row
}
