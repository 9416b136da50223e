// Package format holds the display rules shared by charts and documents:
// two-decimal rounding and the literal placeholder for undefined values.
package format

import (
	"math"
	"strconv"

	"autoreport/domain/table"
)

// Placeholder stands in for any absent or undefined value
const Placeholder = "N/A"

// Decimal2 formats f with exactly two decimals
func Decimal2(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Placeholder
	}
	return strconv.FormatFloat(f, 'f', 2, 64)
}

// Round2 rounds f to two decimals and prints it without trailing zeros
func Round2(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Placeholder
	}
	return strconv.FormatFloat(math.Round(f*100)/100, 'f', -1, 64)
}

// Cell renders a dataset value for preview tables
func Cell(v table.Value, kind table.ColumnKind) string {
	if v.Null {
		return Placeholder
	}
	switch kind {
	case table.KindNumeric:
		return Round2(v.Num)
	case table.KindCategorical, table.KindTemporal, table.KindOther:
		return v.Text
	}
	return v.Text
}
