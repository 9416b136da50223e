package render

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"autoreport/domain/analysis"
	"autoreport/domain/chart"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertImage(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRender_PanelKinds(t *testing.T) {
	tests := []struct {
		name string
		spec chart.PanelSpec
	}{
		{"placeholder", chart.PanelSpec{Kind: chart.PanelPlaceholder, Title: "Missing Values Pattern", Message: "No Missing Values"}},
		{"missing pattern", chart.PanelSpec{Kind: chart.PanelMissingPattern, Title: "Missing", Grid: &chart.Grid{
			ColLabels: []string{"a"},
			Values:    [][]float64{{1}, {0}, {1}},
		}}},
		{"kind distribution", chart.PanelSpec{Kind: chart.PanelKindDistribution, Title: "Kinds", Bars: []analysis.ValueCount{
			{Value: "numeric", Count: 3}, {Value: "categorical", Count: 1},
		}}},
		{"bar", chart.PanelSpec{Kind: chart.PanelBar, Title: "Top Values in Region", Bars: []analysis.ValueCount{
			{Value: "North", Count: 10}, {Value: "a rather long category label", Count: 2},
		}}},
		{"empty bar", chart.PanelSpec{Kind: chart.PanelBar, Title: "Top Values in Empty"}},
		{"single histogram", chart.PanelSpec{Kind: chart.PanelHistograms, Title: "Numeric", Series: []chart.Series{
			{Name: "x", Values: []float64{1, 2, 2, 3, 3, 3, 4}, Bins: 20},
		}}},
		{"four histograms", chart.PanelSpec{Kind: chart.PanelHistograms, Title: "Numeric", Series: []chart.Series{
			{Name: "a", Values: []float64{1, 2, 3}, Bins: 20},
			{Name: "b", Values: []float64{5, 5, 5}, Bins: 20},
			{Name: "c", Values: nil, Bins: 20},
			{Name: "d", Values: []float64{-1, 0, 1}, Bins: 20},
		}}},
		{"table preview", chart.PanelSpec{Kind: chart.PanelTablePreview, Title: "Data Sample", Table: &chart.TableData{
			Header: []string{"Date", "Units"},
			Rows:   [][]string{{"2024-01-01", "3"}, {"2024-01-02", "N/A"}},
		}}},
		{"heatmap", chart.PanelSpec{Kind: chart.PanelHeatmap, Title: "Correlation Matrix", Grid: &chart.Grid{
			RowLabels: []string{"x", "y", "z"},
			ColLabels: []string{"x", "y", "z"},
			Values:    [][]float64{{1, 0.5, math.NaN()}, {0.5, 1, -0.2}, {math.NaN(), -0.2, math.NaN()}},
			Annotate:  true,
		}}},
	}

	r := NewPlotRenderer(576, 432)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := filepath.Join(t.TempDir(), "panel.png")
			require.NoError(t, r.Render(tt.spec, dst))
			assertImage(t, dst)
		})
	}
}

func TestRender_CreatesParentDirectory(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "nested", "run", "panel.png")
	spec := chart.PanelSpec{Kind: chart.PanelPlaceholder, Title: "t", Message: "m"}
	require.NoError(t, NewPlotRenderer(300, 200).Render(spec, dst))
	assertImage(t, dst)
}

func TestRender_Errors(t *testing.T) {
	r := NewPlotRenderer(300, 200)
	dir := t.TempDir()

	err := r.Render(chart.PanelSpec{Kind: chart.PanelBlank}, filepath.Join(dir, "blank.png"))
	assert.Error(t, err)

	err = r.Render(chart.PanelSpec{Kind: chart.PanelHeatmap, Title: "ragged", Grid: &chart.Grid{
		Values: [][]float64{{1, 2}, {3}},
	}}, filepath.Join(dir, "ragged.png"))
	assert.Error(t, err)

	err = r.Render(chart.PanelSpec{Kind: chart.PanelHeatmap, Title: "nil grid"}, filepath.Join(dir, "nil.png"))
	assert.Error(t, err)

	err = r.Render(chart.PanelSpec{Kind: chart.PanelKind(99)}, filepath.Join(dir, "unknown.png"))
	assert.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "blank.png"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRender_UnwritableDestination(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	spec := chart.PanelSpec{Kind: chart.PanelPlaceholder, Title: "t", Message: "m"}
	err := NewPlotRenderer(300, 200).Render(spec, filepath.Join(blocker, "panel.png"))
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short"))
	long := truncate("a rather long category label")
	assert.Equal(t, maxCellText, len([]rune(long)))
	assert.Equal(t, []string{"c", "b", "a"}, reversed([]string{"a", "b", "c"}))
}

func TestMissingCells_RowZeroAtTop(t *testing.T) {
	g, err := newGridXYZ(&chart.Grid{
		ColLabels: []string{"a", "b"},
		Values: [][]float64{
			{1, 0},
			{0, 0},
			{0, 1},
		},
	})
	require.NoError(t, err)

	cells := missingCells(g)
	require.Len(t, cells, 2)

	ticks := rowTicks{rows: 3}.Ticks(-0.5, 2.5)
	labelAt := map[float64]string{}
	for _, tick := range ticks {
		labelAt[tick.Value] = tick.Label
	}

	// dataset row 0 has its null in column a, row 2 in column b
	for _, cell := range cells {
		switch cell.X {
		case 0:
			assert.Equal(t, "0", labelAt[cell.Y])
		case 1:
			assert.Equal(t, "2", labelAt[cell.Y])
		}
	}
}

func TestRowTicks_Thinned(t *testing.T) {
	ticks := rowTicks{rows: 100}.Ticks(-0.5, 99.5)
	assert.LessOrEqual(t, len(ticks), maxRowTicks)
	assert.Equal(t, "0", ticks[0].Label)
	assert.Equal(t, 99.0, ticks[0].Value)
}
