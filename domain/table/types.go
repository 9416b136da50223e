package table

import (
	"fmt"
	"time"
)

// ColumnKind is the closed set of column types a dataset can hold
type ColumnKind int

const (
	KindNumeric ColumnKind = iota
	KindCategorical
	KindTemporal
	KindOther
)

// Kinds lists every ColumnKind in display order
var Kinds = []ColumnKind{KindNumeric, KindCategorical, KindTemporal, KindOther}

func (k ColumnKind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindCategorical:
		return "categorical"
	case KindTemporal:
		return "temporal"
	case KindOther:
		return "other"
	}
	return fmt.Sprintf("ColumnKind(%d)", int(k))
}

// IsNumeric reports whether the kind takes part in numeric analysis
func (k ColumnKind) IsNumeric() bool {
	return k == KindNumeric
}

// Column is a named, typed column
type Column struct {
	Name string
	Kind ColumnKind
}

// Value is a single cell. Text always carries the display form of a non-null value.
type Value struct {
	Null bool
	Num  float64
	Time time.Time
	Text string
}

// NullValue creates a missing cell
func NullValue() Value {
	return Value{Null: true}
}

// NumberValue creates a numeric cell
func NumberValue(n float64, text string) Value {
	return Value{Num: n, Text: text}
}

// TimeValue creates a temporal cell
func TimeValue(t time.Time, text string) Value {
	return Value{Time: t, Text: text}
}

// TextValue creates a categorical or other cell
func TextValue(s string) Value {
	return Value{Text: s}
}

// Row holds one value per declared column, in column order
type Row []Value

// Format is a declared source file format
type Format string

const (
	FormatAuto  Format = "auto"
	FormatCSV   Format = "csv"
	FormatExcel Format = "excel"
	FormatJSON  Format = "json"
)
