package container

import (
	"fmt"
	"log"

	"autoreport/adapters/ingest"
	"autoreport/adapters/pdf"
	"autoreport/adapters/render"
	"autoreport/app"
	"autoreport/internal/api"
	"autoreport/internal/config"
	"autoreport/internal/storage"
	"autoreport/ports"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config

	// Pipeline adapters
	Reader   ports.DatasetReaderPort
	Renderer ports.ChartRendererPort
	Writer   ports.DocumentWriterPort

	// Services
	ReportService *app.ReportService
}

// New creates a new dependency injection container
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	c := &Container{
		Config:   cfg,
		Reader:   ingest.NewDataReader(),
		Renderer: render.NewPlotRenderer(cfg.Charts.WidthPt, cfg.Charts.HeightPt),
		Writer:   pdf.NewWriter(cfg.Report.Generator),
	}
	c.ReportService = app.NewReportService(c.Reader, c.Renderer, c.Writer, c.newScratch, cfg.Report)

	log.Printf("[Container] Report pipeline initialized (charts %.0fx%.0fpt, scratch %s)",
		cfg.Charts.WidthPt, cfg.Charts.HeightPt, cfg.Report.ScratchDir)
	return c, nil
}

// NewServer creates the HTTP server backed by the report service
func (c *Container) NewServer() *api.Server {
	return api.NewServer(*c.Config, c.ReportService)
}

func (c *Container) newScratch() (ports.ScratchPort, error) {
	return storage.NewLocalScratch(c.Config.Report.ScratchDir)
}
