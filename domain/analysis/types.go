package analysis

import (
	"autoreport/domain/table"
)

// Result is the structured statistical summary of a dataset
type Result struct {
	BasicStats         BasicStats
	NumericSummary     []NumericSummary     // nil when the dataset has no numeric column
	Correlation        *CorrelationMatrix   // nil with fewer than two numeric columns
	CategoricalSummary []CategoricalSummary // nil when every column is numeric
}

// BasicStats holds whole-table counts
type BasicStats struct {
	RowCount          int
	ColumnCount       int
	MissingValueCount int
	ColumnKinds       map[string]table.ColumnKind
}

// NumericSummary is the describe() row set of one numeric column.
// Fields other than Count are NaN when Count is zero.
type NumericSummary struct {
	Column string
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	P25    float64
	P50    float64
	P75    float64
	Max    float64
}

// CorrelationMatrix holds pairwise Pearson coefficients over numeric columns.
// Undefined coefficients (zero variance, too few pairs) are NaN.
type CorrelationMatrix struct {
	Columns []string
	Values  [][]float64
}

// At returns the coefficient for the named pair
func (m *CorrelationMatrix) At(a, b string) (float64, bool) {
	i, j := -1, -1
	for k, name := range m.Columns {
		if name == a {
			i = k
		}
		if name == b {
			j = k
		}
	}
	if i < 0 || j < 0 {
		return 0, false
	}
	return m.Values[i][j], true
}

// ValueCount is one distinct value and its frequency
type ValueCount struct {
	Value string
	Count int
}

// CategoricalSummary describes one non-numeric column
type CategoricalSummary struct {
	Column      string
	Kind        table.ColumnKind
	UniqueCount int
	TopValues   []ValueCount
}

// Numeric returns the summary for the named column
func (r *Result) Numeric(column string) (NumericSummary, bool) {
	for _, s := range r.NumericSummary {
		if s.Column == column {
			return s, true
		}
	}
	return NumericSummary{}, false
}

// Categorical returns the summary for the named column
func (r *Result) Categorical(column string) (CategoricalSummary, bool) {
	for _, s := range r.CategoricalSummary {
		if s.Column == column {
			return s, true
		}
	}
	return CategoricalSummary{}, false
}
