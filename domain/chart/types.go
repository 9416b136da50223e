package chart

import (
	"autoreport/domain/analysis"
)

// Artifact identifiers, in planning order
const (
	OverviewDashboard   = "overview_dashboard"
	CorrelationMatrix   = "correlation_matrix"
	CategoricalAnalysis = "categorical_analysis"
)

// PanelKind selects how a panel is drawn
type PanelKind int

const (
	PanelBlank PanelKind = iota
	PanelPlaceholder
	PanelMissingPattern
	PanelKindDistribution
	PanelHistograms
	PanelTablePreview
	PanelHeatmap
	PanelBar
)

func (k PanelKind) String() string {
	switch k {
	case PanelBlank:
		return "blank"
	case PanelPlaceholder:
		return "placeholder"
	case PanelMissingPattern:
		return "missing_pattern"
	case PanelKindDistribution:
		return "kind_distribution"
	case PanelHistograms:
		return "histograms"
	case PanelTablePreview:
		return "table_preview"
	case PanelHeatmap:
		return "heatmap"
	case PanelBar:
		return "bar"
	}
	return "unknown"
}

// Grid is a row-major matrix with labelled axes
type Grid struct {
	RowLabels []string
	ColLabels []string
	Values    [][]float64
	Annotate  bool // print each cell value with two decimals
}

// Series is one named numeric sample
type Series struct {
	Name   string
	Values []float64
	Bins   int
}

// TableData is a header plus pre-formatted cells
type TableData struct {
	Header []string
	Rows   [][]string
}

// PanelSpec describes one panel: what to draw and the data slice to draw it from.
// Only the fields relevant to Kind are set.
type PanelSpec struct {
	Kind    PanelKind
	Title   string
	Message string
	Grid    *Grid
	Series  []Series
	Bars    []analysis.ValueCount
	Table   *TableData
}

// Layout is the fixed grid an artifact's panels occupy
type Layout struct {
	Rows int
	Cols int
}

// Plan is an artifact before rendering
type Plan struct {
	ID     string
	Title  string
	Layout Layout
	Panels []PanelSpec
}

// PanelStatus is the outcome of rendering one panel
type PanelStatus int

const (
	StatusRendered PanelStatus = iota
	StatusDegraded
	StatusBlank
)

func (s PanelStatus) String() string {
	switch s {
	case StatusRendered:
		return "rendered"
	case StatusDegraded:
		return "degraded"
	case StatusBlank:
		return "blank"
	}
	return "unknown"
}

// Panel is a rendered sub-visualization: an image handle, or the reason there is none
type Panel struct {
	Title  string
	Status PanelStatus
	Image  string
	Reason string
}

// Rendered creates a panel backed by an image
func Rendered(title, image string) Panel {
	return Panel{Title: title, Status: StatusRendered, Image: image}
}

// Degraded creates a panel whose render failed
func Degraded(title, reason string) Panel {
	return Panel{Title: title, Status: StatusDegraded, Reason: reason}
}

// Blank creates an unused layout slot
func Blank() Panel {
	return Panel{Status: StatusBlank}
}

// Artifact is a named multi-panel visualization
type Artifact struct {
	ID     string
	Title  string
	Layout Layout
	Panels []Panel
}

// Images returns the image handles of every rendered panel
func (a Artifact) Images() []string {
	var out []string
	for _, p := range a.Panels {
		if p.Status == StatusRendered {
			out = append(out, p.Image)
		}
	}
	return out
}

// DegradedCount returns how many panels fell back to a placeholder
func (a Artifact) DegradedCount() int {
	n := 0
	for _, p := range a.Panels {
		if p.Status == StatusDegraded {
			n++
		}
	}
	return n
}
