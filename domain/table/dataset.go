package table

import (
	"fmt"
)

// Dataset is an immutable in-memory table with typed columns
type Dataset struct {
	columns []Column
	rows    []Row
	index   map[string]int
}

// New builds a dataset, checking that every row covers every column exactly once
func New(columns []Column, rows []Row) (*Dataset, error) {
	index := make(map[string]int, len(columns))
	for i, col := range columns {
		if _, dup := index[col.Name]; dup {
			return nil, fmt.Errorf("duplicate column name %q", col.Name)
		}
		index[col.Name] = i
	}

	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d has %d values, expected %d", i, len(row), len(columns))
		}
	}

	cols := make([]Column, len(columns))
	copy(cols, columns)
	data := make([]Row, len(rows))
	for i, row := range rows {
		data[i] = append(Row(nil), row...)
	}

	return &Dataset{columns: cols, rows: data, index: index}, nil
}

// Columns returns a copy of the column declarations
func (d *Dataset) Columns() []Column {
	cols := make([]Column, len(d.columns))
	copy(cols, d.columns)
	return cols
}

func (d *Dataset) NumColumns() int { return len(d.columns) }
func (d *Dataset) NumRows() int    { return len(d.rows) }

// Column returns the declaration at index i
func (d *Dataset) Column(i int) Column { return d.columns[i] }

// ColumnIndex looks up a column by name
func (d *Dataset) ColumnIndex(name string) (int, bool) {
	i, ok := d.index[name]
	return i, ok
}

// Cell returns the value at row r, column c
func (d *Dataset) Cell(r, c int) Value { return d.rows[r][c] }

// Get returns the value of the named column in row r
func (d *Dataset) Get(r int, name string) (Value, bool) {
	c, ok := d.index[name]
	if !ok {
		return Value{}, false
	}
	return d.rows[r][c], true
}

// ColumnsOfKind returns the indices of columns with the given kind, in column order
func (d *Dataset) ColumnsOfKind(kind ColumnKind) []int {
	var out []int
	for i, col := range d.columns {
		if col.Kind == kind {
			out = append(out, i)
		}
	}
	return out
}

// Floats returns the non-null numbers of column c
func (d *Dataset) Floats(c int) []float64 {
	out := make([]float64, 0, len(d.rows))
	for _, row := range d.rows {
		if !row[c].Null {
			out = append(out, row[c].Num)
		}
	}
	return out
}

// NullCount returns the number of missing cells in column c
func (d *Dataset) NullCount(c int) int {
	n := 0
	for _, row := range d.rows {
		if row[c].Null {
			n++
		}
	}
	return n
}
