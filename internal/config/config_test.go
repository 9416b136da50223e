package config

import (
	"testing"

	"autoreport/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("REPORT_OUTPUT_DIR", "")
	t.Setenv("REPORT_DEFAULT_TITLE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.Report.OutputDir)
	assert.Equal(t, DefaultTitle, cfg.Report.DefaultTitle)
	assert.Equal(t, DefaultGenerator, cfg.Report.Generator)
	assert.Equal(t, 576.0, cfg.Charts.WidthPt)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("REPORT_OUTPUT_DIR", "/tmp/reports")
	t.Setenv("REPORT_CHART_WIDTH_PT", "300")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("REPORT_MAX_UPLOAD_MB", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/reports", cfg.Report.OutputDir)
	assert.Equal(t, 300.0, cfg.Charts.WidthPt)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 32, cfg.Server.MaxUploadMB)
}

func TestLoad_RejectsNonPositiveChartSize(t *testing.T) {
	t.Setenv("REPORT_CHART_HEIGHT_PT", "-1")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeConfigInvalid))
}
