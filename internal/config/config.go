package config

import (
	"os"
	"strconv"

	"autoreport/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Report ReportConfig
	Charts ChartConfig
	Server ServerConfig
}

// ReportConfig holds document generation settings
type ReportConfig struct {
	OutputDir    string
	ScratchDir   string
	DefaultTitle string
	Generator    string
}

// ChartConfig holds chart rendering settings, sizes in points
type ChartConfig struct {
	WidthPt  float64
	HeightPt float64
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port        string
	GinMode     string
	MaxUploadMB int
}

const (
	DefaultTitle     = "Automated Data Analysis Report"
	DefaultGenerator = "Automated Report Generator"
)

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Report: *loadReportConfig(),
		Charts: *loadChartConfig(),
		Server: *loadServerConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// Default returns the configuration used when no environment overrides exist
func Default() *Config {
	return &Config{
		Report: ReportConfig{
			OutputDir:    ".",
			ScratchDir:   os.TempDir(),
			DefaultTitle: DefaultTitle,
			Generator:    DefaultGenerator,
		},
		Charts: ChartConfig{WidthPt: 576, HeightPt: 432},
		Server: ServerConfig{Port: "8080", GinMode: "release", MaxUploadMB: 32},
	}
}

func loadReportConfig() *ReportConfig {
	defaults := Default().Report
	return &ReportConfig{
		OutputDir:    getEnvOrDefault("REPORT_OUTPUT_DIR", defaults.OutputDir),
		ScratchDir:   getEnvOrDefault("REPORT_SCRATCH_DIR", defaults.ScratchDir),
		DefaultTitle: getEnvOrDefault("REPORT_DEFAULT_TITLE", defaults.DefaultTitle),
		Generator:    getEnvOrDefault("REPORT_GENERATOR", defaults.Generator),
	}
}

func loadChartConfig() *ChartConfig {
	defaults := Default().Charts
	return &ChartConfig{
		WidthPt:  getEnvFloatOrDefault("REPORT_CHART_WIDTH_PT", defaults.WidthPt),
		HeightPt: getEnvFloatOrDefault("REPORT_CHART_HEIGHT_PT", defaults.HeightPt),
	}
}

func loadServerConfig() *ServerConfig {
	defaults := Default().Server
	return &ServerConfig{
		Port:        getEnvOrDefault("SERVER_PORT", defaults.Port),
		GinMode:     getEnvOrDefault("GIN_MODE", defaults.GinMode),
		MaxUploadMB: getEnvIntOrDefault("REPORT_MAX_UPLOAD_MB", defaults.MaxUploadMB),
	}
}

func validateConfig(config *Config) error {
	if config.Report.OutputDir == "" {
		return errors.ConfigInvalid("output directory is required")
	}
	if config.Report.ScratchDir == "" {
		return errors.ConfigInvalid("scratch directory is required")
	}
	if config.Charts.WidthPt <= 0 || config.Charts.HeightPt <= 0 {
		return errors.ConfigInvalid("chart dimensions must be positive")
	}
	if config.Server.MaxUploadMB <= 0 {
		return errors.ConfigInvalid("upload limit must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
