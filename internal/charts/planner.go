package charts

import (
	"fmt"
	"log"

	domainAnalysis "autoreport/domain/analysis"
	"autoreport/domain/chart"
	"autoreport/domain/table"
	"autoreport/internal/analysis"
	"autoreport/internal/errors"
	"autoreport/internal/format"
	"autoreport/ports"
)

const (
	maxHistogramColumns   = 4
	maxCategoricalPanels  = 4
	histogramBins         = 20
	previewRows           = 5
	categoricalBarLimit   = 10
	noMissingValuesNotice = "No Missing Values"
)

// Planner decides which chart artifacts apply to a dataset and renders them
type Planner struct {
	renderer ports.ChartRendererPort
}

// NewPlanner creates a planner drawing through renderer
func NewPlanner(renderer ports.ChartRendererPort) *Planner {
	return &Planner{renderer: renderer}
}

// Produce plans and renders the artifacts for a dataset in one step
func (p *Planner) Produce(ds *table.Dataset, result *domainAnalysis.Result, scratch ports.ScratchPort) ([]chart.Artifact, error) {
	plans, err := Plan(ds, result)
	if err != nil {
		return nil, err
	}
	return p.Render(plans, scratch), nil
}

// Plan builds the ordered artifact plans. It depends only on the data, never on rendering.
func Plan(ds *table.Dataset, result *domainAnalysis.Result) ([]chart.Plan, error) {
	if ds == nil || result == nil {
		return nil, errors.NoDataLoaded("no data loaded for charting")
	}

	plans := []chart.Plan{overviewPlan(ds, result)}
	if result.Correlation != nil {
		plans = append(plans, correlationPlan(result.Correlation))
	}
	if cols := ds.ColumnsOfKind(table.KindCategorical); len(cols) > 0 {
		plans = append(plans, categoricalPlan(ds, cols))
	}
	return plans, nil
}

// Render draws each panel into scratch. A failed panel is degraded in place
// and never stops the rest of the artifact.
func (p *Planner) Render(plans []chart.Plan, scratch ports.ScratchPort) []chart.Artifact {
	artifacts := make([]chart.Artifact, 0, len(plans))

	for _, plan := range plans {
		artifact := chart.Artifact{ID: plan.ID, Title: plan.Title, Layout: plan.Layout}

		for i, spec := range plan.Panels {
			if spec.Kind == chart.PanelBlank {
				artifact.Panels = append(artifact.Panels, chart.Blank())
				continue
			}

			dst := scratch.Path(fmt.Sprintf("%s_%d.png", plan.ID, i+1))
			if err := p.renderer.Render(spec, dst); err != nil {
				renderErr := errors.RenderFailure(spec.Title, err)
				log.Printf("[ChartPlanner] %s panel %d degraded: %v", plan.ID, i+1, renderErr)
				artifact.Panels = append(artifact.Panels, chart.Degraded(spec.Title, renderErr.Error()))
				continue
			}
			artifact.Panels = append(artifact.Panels, chart.Rendered(spec.Title, dst))
		}

		log.Printf("[ChartPlanner] %s: %d panels, %d degraded", plan.ID, len(artifact.Panels), artifact.DegradedCount())
		artifacts = append(artifacts, artifact)
	}

	return artifacts
}

func overviewPlan(ds *table.Dataset, result *domainAnalysis.Result) chart.Plan {
	plan := chart.Plan{
		ID:     chart.OverviewDashboard,
		Title:  "Data Overview Dashboard",
		Layout: chart.Layout{Rows: 2, Cols: 2},
	}

	plan.Panels = append(plan.Panels, missingPanel(ds, result.BasicStats.MissingValueCount))
	plan.Panels = append(plan.Panels, kindPanel(ds))
	if cols := ds.ColumnsOfKind(table.KindNumeric); len(cols) > 0 {
		plan.Panels = append(plan.Panels, histogramPanel(ds, cols))
	}
	plan.Panels = append(plan.Panels, previewPanel(ds))

	return plan
}

func missingPanel(ds *table.Dataset, missing int) chart.PanelSpec {
	const title = "Missing Values Pattern"
	if missing == 0 {
		return chart.PanelSpec{Kind: chart.PanelPlaceholder, Title: title, Message: noMissingValuesNotice}
	}

	grid := &chart.Grid{Values: make([][]float64, ds.NumRows())}
	for _, col := range ds.Columns() {
		grid.ColLabels = append(grid.ColLabels, col.Name)
	}
	for r := range grid.Values {
		grid.Values[r] = make([]float64, ds.NumColumns())
		for c := 0; c < ds.NumColumns(); c++ {
			if ds.Cell(r, c).Null {
				grid.Values[r][c] = 1
			}
		}
	}
	return chart.PanelSpec{Kind: chart.PanelMissingPattern, Title: title, Grid: grid}
}

func kindPanel(ds *table.Dataset) chart.PanelSpec {
	const title = "Data Types Distribution"
	if ds.NumColumns() == 0 {
		return chart.PanelSpec{Kind: chart.PanelPlaceholder, Title: title, Message: "No Columns"}
	}

	var bars []domainAnalysis.ValueCount
	for _, kind := range table.Kinds {
		if n := len(ds.ColumnsOfKind(kind)); n > 0 {
			bars = append(bars, domainAnalysis.ValueCount{Value: kind.String(), Count: n})
		}
	}
	return chart.PanelSpec{Kind: chart.PanelKindDistribution, Title: title, Bars: bars}
}

func histogramPanel(ds *table.Dataset, cols []int) chart.PanelSpec {
	if len(cols) > maxHistogramColumns {
		cols = cols[:maxHistogramColumns]
	}
	spec := chart.PanelSpec{Kind: chart.PanelHistograms, Title: "Numeric Distributions"}
	for _, c := range cols {
		spec.Series = append(spec.Series, chart.Series{
			Name:   ds.Column(c).Name,
			Values: ds.Floats(c),
			Bins:   histogramBins,
		})
	}
	return spec
}

func previewPanel(ds *table.Dataset) chart.PanelSpec {
	data := &chart.TableData{}
	for _, col := range ds.Columns() {
		data.Header = append(data.Header, col.Name)
	}

	n := ds.NumRows()
	if n > previewRows {
		n = previewRows
	}
	for r := 0; r < n; r++ {
		row := make([]string, ds.NumColumns())
		for c := range row {
			row[c] = format.Cell(ds.Cell(r, c), ds.Column(c).Kind)
		}
		data.Rows = append(data.Rows, row)
	}
	return chart.PanelSpec{Kind: chart.PanelTablePreview, Title: "Data Sample", Table: data}
}

func correlationPlan(m *domainAnalysis.CorrelationMatrix) chart.Plan {
	grid := &chart.Grid{
		RowLabels: append([]string(nil), m.Columns...),
		ColLabels: append([]string(nil), m.Columns...),
		Values:    make([][]float64, len(m.Values)),
		Annotate:  true,
	}
	for i, row := range m.Values {
		grid.Values[i] = append([]float64(nil), row...)
	}

	return chart.Plan{
		ID:     chart.CorrelationMatrix,
		Title:  "Correlation Matrix",
		Layout: chart.Layout{Rows: 1, Cols: 1},
		Panels: []chart.PanelSpec{{Kind: chart.PanelHeatmap, Title: "Correlation Matrix", Grid: grid}},
	}
}

// categoricalPlan always fills a 2x2 grid; slots without a column stay blank
func categoricalPlan(ds *table.Dataset, cols []int) chart.Plan {
	plan := chart.Plan{
		ID:     chart.CategoricalAnalysis,
		Title:  "Categorical Data Analysis",
		Layout: chart.Layout{Rows: 2, Cols: 2},
	}

	for slot := 0; slot < maxCategoricalPanels; slot++ {
		if slot >= len(cols) {
			plan.Panels = append(plan.Panels, chart.PanelSpec{Kind: chart.PanelBlank})
			continue
		}
		counts := analysis.CountValues(ds, cols[slot])
		if len(counts) > categoricalBarLimit {
			counts = counts[:categoricalBarLimit]
		}
		plan.Panels = append(plan.Panels, chart.PanelSpec{
			Kind:  chart.PanelBar,
			Title: fmt.Sprintf("Top Values in %s", ds.Column(cols[slot]).Name),
			Bars:  counts,
		})
	}
	return plan
}
