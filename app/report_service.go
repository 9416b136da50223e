package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"autoreport/domain/chart"
	"autoreport/domain/table"
	"autoreport/internal/analysis"
	"autoreport/internal/charts"
	"autoreport/internal/config"
	"autoreport/internal/errors"
	"autoreport/internal/report"
	"autoreport/ports"
)

// ScratchFactory opens a fresh scratch area for one pipeline run
type ScratchFactory func() (ports.ScratchPort, error)

// ReportRequest describes one report to produce
type ReportRequest struct {
	InputPath  string
	Format     table.Format
	Title      string
	OutputPath string
}

// ReportResult summarizes a finished run
type ReportResult struct {
	OutputPath     string
	Rows           int
	Columns        int
	Artifacts      []string
	DegradedPanels int
	Pages          int
	Duration       time.Duration
}

// ReportService runs the ingest, analyze, chart, assemble and write pipeline
type ReportService struct {
	reader     ports.DatasetReaderPort
	engine     *analysis.Engine
	planner    *charts.Planner
	assembler  *report.Assembler
	writer     ports.DocumentWriterPort
	newScratch ScratchFactory
	cfg        config.ReportConfig
	now        func() time.Time
}

// NewReportService wires the pipeline stages
func NewReportService(
	reader ports.DatasetReaderPort,
	renderer ports.ChartRendererPort,
	writer ports.DocumentWriterPort,
	newScratch ScratchFactory,
	cfg config.ReportConfig,
) *ReportService {
	return &ReportService{
		reader:     reader,
		engine:     analysis.NewEngine(),
		planner:    charts.NewPlanner(renderer),
		assembler:  report.NewAssembler(),
		writer:     writer,
		newScratch: newScratch,
		cfg:        cfg,
		now:        time.Now,
	}
}

// Generate produces the report for req. Ingestion failures abort before analysis;
// chart images are removed when the run ends, whatever the outcome.
func (s *ReportService) Generate(ctx context.Context, req ReportRequest) (*ReportResult, error) {
	start := time.Now()

	if req.InputPath == "" {
		return nil, errors.InvalidInput("input path is required")
	}
	if req.OutputPath == "" {
		return nil, errors.InvalidInput("output path is required")
	}
	if req.Format == "" {
		req.Format = table.FormatAuto
	}
	if req.Title == "" {
		req.Title = s.cfg.DefaultTitle
	}

	log.Printf("[Pipeline] Loading %s (%s)", req.InputPath, req.Format)
	ds, err := s.reader.Read(req.InputPath, req.Format)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "report generation cancelled")
	}

	result, err := s.engine.Analyze(ds)
	if err != nil {
		return nil, err
	}

	scratch, err := s.newScratch()
	if err != nil {
		return nil, errors.Wrap(err, "failed to open scratch area")
	}
	defer func() {
		if err := scratch.Release(); err != nil {
			log.Printf("[Pipeline] Failed to release scratch area: %v", err)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "report generation cancelled")
	}

	artifacts, err := s.planner.Produce(ds, result, scratch)
	if err != nil {
		return nil, err
	}
	degraded := 0
	for _, a := range artifacts {
		degraded += a.DegradedCount()
	}

	doc := s.assembler.Assemble(result, artifacts, report.Meta{
		Title:       req.Title,
		Generator:   s.cfg.Generator,
		GeneratedAt: s.now(),
	})

	if err := s.writer.Write(doc, req.OutputPath); err != nil {
		log.Printf("[Pipeline] Document write failed: %v", err)
		return nil, err
	}

	res := &ReportResult{
		OutputPath:     req.OutputPath,
		Rows:           result.BasicStats.RowCount,
		Columns:        result.BasicStats.ColumnCount,
		Artifacts:      artifactIDs(artifacts),
		DegradedPanels: degraded,
		Pages:          doc.PageCount(),
		Duration:       time.Since(start),
	}
	log.Printf("[Pipeline] Report generated: %s (%d pages, %d degraded panels, %s)",
		res.OutputPath, res.Pages, res.DegradedPanels, res.Duration.Round(time.Millisecond))
	return res, nil
}

func artifactIDs(artifacts []chart.Artifact) []string {
	ids := make([]string, len(artifacts))
	for i, a := range artifacts {
		ids[i] = a.ID
	}
	return ids
}

// String renders a one-line summary for console output
func (r *ReportResult) String() string {
	return fmt.Sprintf("%s: %d rows, %d columns, %d pages, charts %v", r.OutputPath, r.Rows, r.Columns, r.Pages, r.Artifacts)
}
