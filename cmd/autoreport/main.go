package main

import (
	"context"
	"fmt"
	"os"

	"autoreport/internal"
	"autoreport/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var logger = internal.NewDefaultLogger()

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found, using system environment variables")
	}

	rootCmd := &cobra.Command{
		Use:           "autoreport",
		Short:         "Automated data analysis reports from CSV, Excel and JSON files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newGenerateCmd(),
		newSampleCmd(),
		newServeCmd(),
	)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
