package container

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"autoreport/app"
	"autoreport/domain/chart"
	"autoreport/internal/config"
	"autoreport/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	cfg := config.Default()
	cfg.Report.ScratchDir = filepath.Join(t.TempDir(), "scratch")
	cfg.Report.OutputDir = t.TempDir()
	cfg.Charts.WidthPt = 288
	cfg.Charts.HeightPt = 216
	return cfg
}

var pageObject = regexp.MustCompile(`/Type /Page[^s]`)

func TestReportService_WideNumericInputKeepsPageCount(t *testing.T) {
	cfg := testConfig(t)
	c, err := New(cfg)
	require.NoError(t, err)

	var b strings.Builder
	header := make([]string, 40)
	for i := range header {
		header[i] = fmt.Sprintf("metric_%02d", i)
	}
	b.WriteString(strings.Join(header, ",") + "\n")
	for r := 0; r < 10; r++ {
		row := make([]string, len(header))
		for i := range row {
			row[i] = fmt.Sprint((r*7 + i*3) % 11)
		}
		b.WriteString(strings.Join(row, ",") + "\n")
	}
	input := filepath.Join(t.TempDir(), "wide.csv")
	require.NoError(t, os.WriteFile(input, []byte(b.String()), 0644))

	out := filepath.Join(cfg.Report.OutputDir, "wide.pdf")
	res, err := c.ReportService.Generate(context.Background(), app.ReportRequest{InputPath: input, OutputPath: out})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Pages)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Len(t, pageObject.FindAll(data, -1), res.Pages)
}

func TestNew_NilConfig(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}

func TestReportService_EndToEnd(t *testing.T) {
	cfg := testConfig(t)
	c, err := New(cfg)
	require.NoError(t, err)

	input := filepath.Join(t.TempDir(), "mixed.csv")
	require.NoError(t, os.WriteFile(input, []byte(
		"region,units,price,when\n"+
			"North,3,9.5,2024-01-02\n"+
			"South,,12.25,2024-01-03\n"+
			"North,7,8,2024-01-04\n"+
			"East,2,,2024-01-05\n"+
			"South,5,11,2024-01-06\n"), 0644))

	out := filepath.Join(cfg.Report.OutputDir, "report.pdf")
	res, err := c.ReportService.Generate(context.Background(), app.ReportRequest{InputPath: input, OutputPath: out})
	require.NoError(t, err)

	assert.Equal(t, 5, res.Rows)
	assert.Equal(t, 4, res.Columns)
	assert.Equal(t, []string{chart.OverviewDashboard, chart.CorrelationMatrix, chart.CategoricalAnalysis}, res.Artifacts)
	assert.Equal(t, 5, res.Pages)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))

	entries, err := os.ReadDir(cfg.Report.ScratchDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "chart images must not outlive the run")
}

func TestReportService_UnsupportedInputWritesNothing(t *testing.T) {
	cfg := testConfig(t)
	c, err := New(cfg)
	require.NoError(t, err)

	input := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(input, []byte("hello"), 0644))

	out := filepath.Join(cfg.Report.OutputDir, "report.pdf")
	_, err = c.ReportService.Generate(context.Background(), app.ReportRequest{InputPath: input, OutputPath: out})
	require.Error(t, err)
	assert.Equal(t, errors.CodeUnsupportedFormat, errors.GetCode(err))
	assert.NoFileExists(t, out)
}

func TestNewServer(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.GinMode = "test"
	c, err := New(cfg)
	require.NoError(t, err)
	assert.NotNil(t, c.NewServer().Handler())
}
