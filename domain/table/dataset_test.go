package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsRaggedRows(t *testing.T) {
	cols := []Column{{Name: "a", Kind: KindNumeric}, {Name: "b", Kind: KindCategorical}}
	_, err := New(cols, []Row{{NumberValue(1, "1")}})
	require.Error(t, err)
}

func TestNew_RejectsDuplicateNames(t *testing.T) {
	cols := []Column{{Name: "a", Kind: KindNumeric}, {Name: "a", Kind: KindNumeric}}
	_, err := New(cols, nil)
	require.Error(t, err)
}

func TestDataset_IsolatedFromCallerSlices(t *testing.T) {
	cols := []Column{{Name: "x", Kind: KindNumeric}}
	rows := []Row{{NumberValue(1, "1")}, {NullValue()}}

	ds, err := New(cols, rows)
	require.NoError(t, err)

	rows[0][0] = NumberValue(99, "99")
	cols[0].Name = "changed"

	assert.Equal(t, 1.0, ds.Cell(0, 0).Num)
	assert.Equal(t, "x", ds.Column(0).Name)
	assert.Equal(t, []float64{1}, ds.Floats(0))
	assert.Equal(t, 1, ds.NullCount(0))

	v, ok := ds.Get(1, "x")
	assert.True(t, ok)
	assert.True(t, v.Null)
}

func TestColumnKind_String(t *testing.T) {
	assert.Equal(t, "numeric", KindNumeric.String())
	assert.Equal(t, "temporal", KindTemporal.String())
	assert.Len(t, Kinds, 4)
}
