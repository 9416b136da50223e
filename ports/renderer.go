package ports

import (
	"autoreport/domain/chart"
)

// ChartRendererPort draws one panel specification to an image file at dst
type ChartRendererPort interface {
	Render(spec chart.PanelSpec, dst string) error
}
