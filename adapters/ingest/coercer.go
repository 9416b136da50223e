package ingest

import (
	"math"
	"strconv"
	"strings"
	"time"

	"autoreport/domain/table"
)

// rawCell is a source cell before typing
type rawCell struct {
	text string
	null bool
}

// TypeCoercer decides column kinds and converts raw cells into typed values
type TypeCoercer struct {
	nullMarkers      map[string]bool
	timestampLayouts []string
}

// NewTypeCoercer creates a coercer with the default null markers and timestamp layouts
func NewTypeCoercer() *TypeCoercer {
	return &TypeCoercer{
		nullMarkers: map[string]bool{
			"":     true,
			"na":   true,
			"n/a":  true,
			"nan":  true,
			"null": true,
			"none": true,
		},
		timestampLayouts: []string{
			time.RFC3339Nano,
			time.RFC3339,
			"2006-01-02T15:04:05",
			"2006-01-02 15:04:05",
			"2006-01-02 15:04",
			"2006-01-02",
			"01/02/2006",
			"2006/01/02",
			"02-Jan-2006",
			"01-02-06", // excel builtin mm-dd-yy
			"1/2/06",
			"1/2/2006",
		},
	}
}

// raw classifies a source string as a null marker or a text cell
func (c *TypeCoercer) raw(s string) rawCell {
	s = strings.TrimSpace(s)
	if c.nullMarkers[strings.ToLower(s)] {
		return rawCell{null: true}
	}
	return rawCell{text: s}
}

// InferKind picks the kind every non-null cell of a column satisfies.
// A column without any value is numeric when the table has rows, categorical otherwise.
func (c *TypeCoercer) InferKind(cells []rawCell, rowCount int) table.ColumnKind {
	allNumeric, allTime, allBool := true, true, true
	seen := 0

	for _, cell := range cells {
		if cell.null {
			continue
		}
		seen++
		if allNumeric {
			if _, ok := c.parseNumeric(cell.text); !ok {
				allNumeric = false
			}
		}
		if allTime {
			if _, ok := c.parseTimestamp(cell.text); !ok {
				allTime = false
			}
		}
		if allBool {
			if !c.isBoolean(cell.text) {
				allBool = false
			}
		}
		if !allNumeric && !allTime && !allBool {
			break
		}
	}

	switch {
	case seen == 0 && rowCount > 0:
		return table.KindNumeric
	case seen == 0:
		return table.KindCategorical
	case allNumeric:
		return table.KindNumeric
	case allTime:
		return table.KindTemporal
	case allBool:
		return table.KindOther
	}
	return table.KindCategorical
}

// Coerce converts a raw cell to a value of the given kind
func (c *TypeCoercer) Coerce(cell rawCell, kind table.ColumnKind) table.Value {
	if cell.null {
		return table.NullValue()
	}

	switch kind {
	case table.KindNumeric:
		if n, ok := c.parseNumeric(cell.text); ok {
			return table.NumberValue(n, cell.text)
		}
		return table.NullValue()
	case table.KindTemporal:
		if t, ok := c.parseTimestamp(cell.text); ok {
			return table.TimeValue(t, cell.text)
		}
		return table.NullValue()
	case table.KindCategorical, table.KindOther:
		return table.TextValue(cell.text)
	}
	return table.TextValue(cell.text)
}

// parseNumeric accepts plain decimal and scientific notation only
func (c *TypeCoercer) parseNumeric(s string) (float64, bool) {
	val, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsInf(val, 0) || math.IsNaN(val) {
		return 0, false
	}
	return val, true
}

func (c *TypeCoercer) isBoolean(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "false", "yes", "no":
		return true
	}
	return false
}

func (c *TypeCoercer) parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range c.timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
