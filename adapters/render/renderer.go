package render

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"autoreport/domain/analysis"
	"autoreport/domain/chart"
	"autoreport/internal/format"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const maxCellText = 14

// PlotRenderer draws panel specifications to PNG files with gonum/plot
type PlotRenderer struct {
	width  vg.Length
	height vg.Length
}

// NewPlotRenderer creates a renderer producing images of the given size in points
func NewPlotRenderer(widthPt, heightPt float64) *PlotRenderer {
	return &PlotRenderer{width: vg.Length(widthPt), height: vg.Length(heightPt)}
}

// Render draws spec to dst. A panic inside the plotting library is returned as an error.
func (r *PlotRenderer) Render(spec chart.PanelSpec, dst string) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("plotting %s panel: %v", spec.Kind, rec)
		}
	}()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create image directory: %w", err)
	}

	switch spec.Kind {
	case chart.PanelBlank:
		return fmt.Errorf("blank panels are not rendered")
	case chart.PanelPlaceholder:
		return r.save(placeholderPlot(spec.Title, spec.Message), dst)
	case chart.PanelMissingPattern:
		p, err := missingPlot(spec)
		if err != nil {
			return err
		}
		return r.save(p, dst)
	case chart.PanelKindDistribution, chart.PanelBar:
		p, err := barPlot(spec)
		if err != nil {
			return err
		}
		return r.save(p, dst)
	case chart.PanelHistograms:
		return r.histograms(spec, dst)
	case chart.PanelTablePreview:
		p, err := tablePlot(spec)
		if err != nil {
			return err
		}
		return r.save(p, dst)
	case chart.PanelHeatmap:
		p, err := heatmapPlot(spec)
		if err != nil {
			return err
		}
		return r.save(p, dst)
	}
	return fmt.Errorf("unknown panel kind %d", spec.Kind)
}

func (r *PlotRenderer) save(p *plot.Plot, dst string) error {
	if err := p.Save(r.width, r.height, dst); err != nil {
		return fmt.Errorf("failed to save %s: %w", filepath.Base(dst), err)
	}
	log.Printf("[PlotRenderer] Wrote %s", filepath.Base(dst))
	return nil
}

// histograms draws one histogram per series as a small multiple on a single image
func (r *PlotRenderer) histograms(spec chart.PanelSpec, dst string) error {
	if len(spec.Series) == 0 {
		return r.save(placeholderPlot(spec.Title, "No Numeric Columns"), dst)
	}

	plots := make([]*plot.Plot, len(spec.Series))
	for i, s := range spec.Series {
		p, err := histogramPlot(s)
		if err != nil {
			return err
		}
		plots[i] = p
	}

	rows, cols := 1, len(plots)
	if len(plots) == 4 {
		rows, cols = 2, 2
	}
	grid := make([][]*plot.Plot, rows)
	for j := range grid {
		grid[j] = plots[j*cols : (j+1)*cols]
	}

	img := vgimg.New(r.width, r.height)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: rows, Cols: cols,
		PadX: vg.Millimeter * 2, PadY: vg.Millimeter * 2,
		PadTop: vg.Millimeter, PadBottom: vg.Millimeter,
		PadLeft: vg.Millimeter, PadRight: vg.Millimeter,
	}
	canvases := plot.Align(grid, tiles, dc)
	for j := range grid {
		for i := range grid[j] {
			grid[j][i].Draw(canvases[j][i])
		}
	}

	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Base(dst), err)
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(dst), err)
	}
	log.Printf("[PlotRenderer] Wrote %s (%d histograms)", filepath.Base(dst), len(plots))
	return nil
}

func histogramPlot(s chart.Series) (*plot.Plot, error) {
	title := fmt.Sprintf("Distribution of %s", s.Name)
	if len(s.Values) == 0 {
		return placeholderPlot(title, "No Values"), nil
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = s.Name
	p.Y.Label.Text = "Frequency"

	h, err := plotter.NewHist(plotter.Values(s.Values), s.Bins)
	if err != nil {
		return nil, fmt.Errorf("histogram of %s: %w", s.Name, err)
	}
	h.FillColor = color.RGBA{R: 70, G: 130, B: 180, A: 200}
	p.Add(h)
	return p, nil
}

func barPlot(spec chart.PanelSpec) (*plot.Plot, error) {
	if len(spec.Bars) == 0 {
		return placeholderPlot(spec.Title, "No Values"), nil
	}

	p := plot.New()
	p.Title.Text = spec.Title
	p.Y.Label.Text = "Count"

	values := make(plotter.Values, len(spec.Bars))
	for i, b := range spec.Bars {
		values[i] = float64(b.Count)
	}
	bars, err := plotter.NewBarChart(values, vg.Points(18))
	if err != nil {
		return nil, fmt.Errorf("bar chart %q: %w", spec.Title, err)
	}
	bars.Color = color.RGBA{R: 46, G: 139, B: 87, A: 255}
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(barLabels(spec.Bars)...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	return p, nil
}

func barLabels(bars []analysis.ValueCount) []string {
	labels := make([]string, len(bars))
	for i, b := range bars {
		labels[i] = truncate(b.Value)
	}
	return labels
}

// gridXYZ adapts a row-major grid to plotter.GridXYZ with row 0 drawn at the top
type gridXYZ struct {
	values [][]float64
	cols   int
}

func (g gridXYZ) Dims() (c, r int)   { return g.cols, len(g.values) }
func (g gridXYZ) Z(c, r int) float64 { return g.values[len(g.values)-1-r][c] }
func (g gridXYZ) X(c int) float64    { return float64(c) }
func (g gridXYZ) Y(r int) float64    { return float64(r) }

func newGridXYZ(grid *chart.Grid) (gridXYZ, error) {
	if grid == nil || len(grid.Values) == 0 || len(grid.Values[0]) == 0 {
		return gridXYZ{}, fmt.Errorf("empty grid")
	}
	cols := len(grid.Values[0])
	for _, row := range grid.Values {
		if len(row) != cols {
			return gridXYZ{}, fmt.Errorf("ragged grid")
		}
	}
	return gridXYZ{values: grid.Values, cols: cols}, nil
}

func heatmapPlot(spec chart.PanelSpec) (*plot.Plot, error) {
	g, err := newGridXYZ(spec.Grid)
	if err != nil {
		return nil, fmt.Errorf("heatmap %q: %w", spec.Title, err)
	}

	p := plot.New()
	p.Title.Text = spec.Title

	hm := plotter.NewHeatMap(g, moreland.SmoothBlueRed().Palette(255))
	hm.Min, hm.Max = -1, 1
	hm.NaN = color.Gray{Y: 200}
	p.Add(hm)

	if spec.Grid.Annotate {
		var xys plotter.XYs
		var texts []string
		cols, rows := g.Dims()
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				xys = append(xys, plotter.XY{X: g.X(c), Y: g.Y(r)})
				texts = append(texts, format.Decimal2(g.Z(c, r)))
			}
		}
		labels, err := centeredLabels(xys, texts)
		if err != nil {
			return nil, err
		}
		p.Add(labels)
	}

	p.NominalX(truncateAll(spec.Grid.ColLabels)...)
	p.NominalY(reversed(truncateAll(spec.Grid.RowLabels))...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	return p, nil
}

// missingPlot marks each null cell; row 0 is drawn at the top
func missingPlot(spec chart.PanelSpec) (*plot.Plot, error) {
	g, err := newGridXYZ(spec.Grid)
	if err != nil {
		return nil, fmt.Errorf("missing pattern: %w", err)
	}

	p := plot.New()
	p.Title.Text = spec.Title
	p.Y.Label.Text = "Row"

	cols, rows := g.Dims()
	if cells := missingCells(g); len(cells) > 0 {
		scatter, err := plotter.NewScatter(cells)
		if err != nil {
			return nil, fmt.Errorf("missing pattern: %w", err)
		}
		scatter.GlyphStyle.Shape = draw.BoxGlyph{}
		scatter.GlyphStyle.Radius = vg.Points(2)
		scatter.GlyphStyle.Color = color.RGBA{R: 220, G: 20, B: 60, A: 255}
		p.Add(scatter)
	}

	p.X.Min, p.X.Max = -0.5, float64(cols)-0.5
	p.Y.Min, p.Y.Max = -0.5, float64(rows)-0.5
	p.Y.Tick.Marker = rowTicks{rows: rows}
	p.NominalX(truncateAll(spec.Grid.ColLabels)...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	return p, nil
}

func missingCells(g gridXYZ) plotter.XYs {
	cols, rows := g.Dims()
	var cells plotter.XYs
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if g.Z(c, r) != 0 {
				cells = append(cells, plotter.XY{X: g.X(c), Y: g.Y(r)})
			}
		}
	}
	return cells
}

const maxRowTicks = 8

// rowTicks labels a flipped grid's y axis with dataset row indices
type rowTicks struct {
	rows int
}

func (t rowTicks) Ticks(min, max float64) []plot.Tick {
	step := (t.rows + maxRowTicks - 1) / maxRowTicks
	if step < 1 {
		step = 1
	}
	var ticks []plot.Tick
	for row := 0; row < t.rows; row += step {
		ticks = append(ticks, plot.Tick{Value: float64(t.rows - 1 - row), Label: strconv.Itoa(row)})
	}
	return ticks
}

// tablePlot lays a small table out as text on hidden axes
func tablePlot(spec chart.PanelSpec) (*plot.Plot, error) {
	if spec.Table == nil || len(spec.Table.Header) == 0 {
		return placeholderPlot(spec.Title, "No Data"), nil
	}

	p := plot.New()
	p.Title.Text = spec.Title
	p.HideAxes()

	cols := len(spec.Table.Header)
	rows := len(spec.Table.Rows) + 1
	p.X.Min, p.X.Max = -0.5, float64(cols)-0.5
	p.Y.Min, p.Y.Max = -float64(rows)+0.5, 0.5

	var xys plotter.XYs
	var texts []string
	for c, h := range spec.Table.Header {
		xys = append(xys, plotter.XY{X: float64(c), Y: 0})
		texts = append(texts, truncate(h))
	}
	for r, row := range spec.Table.Rows {
		for c := 0; c < cols && c < len(row); c++ {
			xys = append(xys, plotter.XY{X: float64(c), Y: -float64(r + 1)})
			texts = append(texts, truncate(row[c]))
		}
	}

	labels, err := centeredLabels(xys, texts)
	if err != nil {
		return nil, err
	}
	for i := 0; i < cols; i++ {
		labels.TextStyle[i].Font.Size = vg.Points(9)
		labels.TextStyle[i].Color = color.RGBA{R: 25, G: 25, B: 112, A: 255}
	}
	for i := cols; i < len(labels.TextStyle); i++ {
		labels.TextStyle[i].Font.Size = vg.Points(8)
	}
	p.Add(labels)
	return p, nil
}

func placeholderPlot(title, message string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.HideAxes()
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1

	labels, err := centeredLabels(plotter.XYs{{X: 0.5, Y: 0.5}}, []string{message})
	if err == nil {
		labels.TextStyle[0].Font.Size = vg.Points(16)
		p.Add(labels)
	}
	return p
}

func centeredLabels(xys plotter.XYs, texts []string) (*plotter.Labels, error) {
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return nil, fmt.Errorf("failed to create labels: %w", err)
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = draw.XCenter
		labels.TextStyle[i].YAlign = draw.YCenter
	}
	return labels, nil
}

func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= maxCellText {
		return s
	}
	return string(runes[:maxCellText-1]) + "…"
}

func truncateAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = truncate(s)
	}
	return out
}

func reversed(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[len(in)-1-i] = s
	}
	return out
}
