package sample

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"
)

const (
	dateLayout   = "2006-01-02"
	jsonHeadRows = 100
)

// Output file names of the bundled sample datasets
const (
	SalesCSVFile       = "sample_sales_comprehensive.csv"
	SalesExcelFile     = "sample_sales_comprehensive.xlsx"
	HRCSVFile          = "sample_hr_analytics.csv"
	SalesJSONFile      = "sample_sales_data.json"
	SimpleSalesCSVFile = "sample_sales_data.csv"
)

// WriteAll writes every sample dataset into dir and returns the written paths in a fixed order
func (g *Generator) WriteAll(ctx context.Context, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create sample directory: %w", err)
	}

	sales := g.Sales()
	hr := g.HR()

	jobs := []struct {
		file  string
		write func(path string) error
	}{
		{SalesCSVFile, func(p string) error { return WriteCSV(sales, p) }},
		{SalesExcelFile, func(p string) error { return WriteExcel(sales, p) }},
		{HRCSVFile, func(p string) error { return WriteCSV(hr, p) }},
		{SalesJSONFile, func(p string) error { return WriteJSON(sales.Head(jsonHeadRows), p) }},
	}

	paths := make([]string, len(jobs))
	group, ctx := errgroup.WithContext(ctx)
	for i, job := range jobs {
		i, job := i, job
		paths[i] = filepath.Join(dir, job.file)
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := job.write(paths[i]); err != nil {
				return fmt.Errorf("failed to write %s: %w", job.file, err)
			}
			log.Printf("[SampleWriter] Wrote %s", paths[i])
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

// WriteSimpleSalesCSV writes the demonstration dataset to path
func (g *Generator) WriteSimpleSalesCSV(path string) error {
	return WriteCSV(g.SimpleSales(), path)
}

// WriteCSV writes the sheet as comma separated text with a header row
func WriteCSV(s *Sheet, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(s.Header); err != nil {
		return err
	}
	record := make([]string, len(s.Header))
	for _, row := range s.Rows {
		for i, v := range row {
			record[i] = cellText(v)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteExcel writes the sheet as the first worksheet of an xlsx workbook
func WriteExcel(s *Sheet, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	name := s.Name
	if name == "" {
		name = "Sheet1"
	}
	if name != "Sheet1" {
		if err := f.SetSheetName("Sheet1", name); err != nil {
			return err
		}
	}

	header := make([]interface{}, len(s.Header))
	for i, h := range s.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return err
	}

	for r, row := range s.Rows {
		cells := make([]interface{}, len(row))
		for i, v := range row {
			if t, ok := v.(time.Time); ok {
				cells[i] = t.Format(dateLayout)
				continue
			}
			cells[i] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &cells); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}

// WriteJSON writes the sheet as an indented array of records, keys in header order
func WriteJSON(s *Sheet, path string) error {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for r, row := range s.Rows {
		if r > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for i, v := range row {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(s.Header[i])
			if err != nil {
				return err
			}
			value, err := json.Marshal(jsonValue(v))
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(value)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return err
	}
	out.WriteByte('\n')
	return os.WriteFile(path, out.Bytes(), 0644)
}

func jsonValue(v interface{}) interface{} {
	if t, ok := v.(time.Time); ok {
		return t.Format(dateLayout)
	}
	return v
}

func cellText(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case time.Time:
		return x.Format(dateLayout)
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}
