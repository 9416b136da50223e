package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"autoreport/app"
	"autoreport/domain/table"
	"autoreport/internal/config"
	"autoreport/internal/container"
	"autoreport/internal/errors"
	"autoreport/internal/sample"

	"github.com/spf13/cobra"
)

const loadFailureMessage = "Failed to load data. Please check your file path and format."

type generateOptions struct {
	file   string
	format string
	title  string
	output string
}

func newGenerateCmd() *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Analyze a dataset and write a PDF report",
		Long: `Analyze a CSV, Excel or JSON dataset and write a paginated PDF report.

Missing --file and --title values are prompted for. When no valid file is given the
bundled sample sales dataset is used instead.

Example: autoreport generate --file sales.csv --title "Q3 Sales"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			res, err := runGenerate(cmd.Context(), cfg, opts, cmd.InOrStdin(), cmd.OutOrStdout(), time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report generated successfully: %s\n", res.OutputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Path to the data file")
	cmd.Flags().StringVar(&opts.format, "format", string(table.FormatAuto), "Input format: auto, csv, excel or json")
	cmd.Flags().StringVarP(&opts.title, "title", "t", "", "Report title")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output PDF path (default report_<timestamp>.pdf in the output directory)")
	return cmd
}

func runGenerate(ctx context.Context, cfg *config.Config, opts generateOptions, in io.Reader, out io.Writer, now time.Time) (*app.ReportResult, error) {
	prompts := bufio.NewReader(in)

	path := strings.TrimSpace(opts.file)
	if path == "" {
		path = prompt(prompts, out, "Enter the path to your data file (CSV, Excel, or JSON), or press Enter for sample data: ")
	}
	format := table.Format(opts.format)

	if !fileExists(path) {
		if path != "" {
			fmt.Fprintf(out, "File not found: %s\n", path)
		}
		fmt.Fprintln(out, "Using sample data...")
		samplePath, cleanup, err := writeSampleData()
		if err != nil {
			return nil, err
		}
		defer cleanup()
		path = samplePath
		format = table.FormatCSV
	}

	title := strings.TrimSpace(opts.title)
	if title == "" {
		title = prompt(prompts, out, "Enter report title (press Enter for default): ")
	}
	if title == "" {
		title = cfg.Report.DefaultTitle
	}

	output := opts.output
	if output == "" {
		output = filepath.Join(cfg.Report.OutputDir, fmt.Sprintf("report_%s.pdf", now.Format("20060102_150405")))
	}

	c, err := container.New(cfg)
	if err != nil {
		return nil, err
	}

	res, err := c.ReportService.Generate(ctx, app.ReportRequest{
		InputPath:  path,
		Format:     format,
		Title:      title,
		OutputPath: output,
	})
	if err != nil {
		if isLoadFailure(err) {
			fmt.Fprintln(out, loadFailureMessage)
		}
		return nil, err
	}
	logger.Info("%s", res.String())
	return res, nil
}

// writeSampleData writes the demonstration dataset to a temporary CSV
func writeSampleData() (string, func(), error) {
	f, err := os.CreateTemp("", "autoreport_sample_*.csv")
	if err != nil {
		return "", nil, errors.Wrap(err, "failed to create sample data file")
	}
	path := f.Name()
	f.Close()

	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logger.Warn("Failed to remove sample data file %s: %v", path, err)
		}
	}

	if err := sample.NewGenerator(sample.DefaultGeneratorConfig()).WriteSimpleSalesCSV(path); err != nil {
		cleanup()
		return "", nil, errors.Wrap(err, "failed to write sample data")
	}
	return path, cleanup, nil
}

func prompt(r *bufio.Reader, out io.Writer, question string) string {
	fmt.Fprint(out, question)
	line, _ := r.ReadString('\n')
	return strings.TrimSpace(line)
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func isLoadFailure(err error) bool {
	switch errors.GetCode(err) {
	case errors.CodeUnsupportedFormat, errors.CodeParseFailure, errors.CodeNoDataLoaded:
		return true
	}
	return false
}
