package format

import (
	"math"
	"testing"

	"autoreport/domain/table"

	"github.com/stretchr/testify/assert"
)

func TestDecimal2(t *testing.T) {
	assert.Equal(t, "3.14", Decimal2(3.14159))
	assert.Equal(t, "-0.50", Decimal2(-0.5))
	assert.Equal(t, "1200.00", Decimal2(1200))
	assert.Equal(t, Placeholder, Decimal2(math.NaN()))
	assert.Equal(t, Placeholder, Decimal2(math.Inf(1)))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, "3", Round2(3))
	assert.Equal(t, "2.35", Round2(2.3456))
	assert.Equal(t, "0.1", Round2(0.1))
	assert.Equal(t, Placeholder, Round2(math.NaN()))
}

func TestCell(t *testing.T) {
	assert.Equal(t, "1.23", Cell(table.NumberValue(1.234, "1.234"), table.KindNumeric))
	assert.Equal(t, "North", Cell(table.TextValue("North"), table.KindCategorical))
	assert.Equal(t, Placeholder, Cell(table.NullValue(), table.KindTemporal))
}
