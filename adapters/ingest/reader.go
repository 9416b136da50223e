package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"autoreport/domain/table"
	"autoreport/internal/errors"

	"github.com/xuri/excelize/v2"
)

// DataReader reads CSV, Excel and JSON files into typed datasets
type DataReader struct {
	coercer *TypeCoercer
}

// NewDataReader creates a reader with the default coercion rules
func NewDataReader() *DataReader {
	return &DataReader{coercer: NewTypeCoercer()}
}

// rawTable is a parsed source before column typing
type rawTable struct {
	headers []string
	rows    [][]rawCell
}

// ResolveFormat maps a declared format, or the file extension when auto, to a concrete format
func ResolveFormat(path string, declared table.Format) (table.Format, error) {
	format := table.Format(strings.ToLower(strings.TrimSpace(string(declared))))
	if format == "" || format == table.FormatAuto {
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
		format = table.Format(ext)
	}

	switch format {
	case table.FormatCSV:
		return table.FormatCSV, nil
	case table.FormatExcel, "xlsx", "xlsm", "xls":
		return table.FormatExcel, nil
	case table.FormatJSON:
		return table.FormatJSON, nil
	}
	return "", errors.UnsupportedFormat(path, string(format))
}

// Read parses the file at path. The declared format may be auto.
func (r *DataReader) Read(path string, declared table.Format) (*table.Dataset, error) {
	format, err := ResolveFormat(path, declared)
	if err != nil {
		return nil, err
	}

	log.Printf("[DataReader] Starting to read %s file: %s", format, path)
	start := time.Now()

	if _, err := os.Stat(path); err != nil {
		return nil, errors.ParseFailure(path, string(format), err)
	}

	var raw *rawTable
	switch format {
	case table.FormatCSV:
		raw, err = r.readCSV(path)
	case table.FormatExcel:
		raw, err = r.readExcel(path)
	case table.FormatJSON:
		raw, err = r.readJSON(path)
	}
	if err != nil {
		return nil, errors.ParseFailure(path, string(format), err)
	}

	ds, err := r.build(raw)
	if err != nil {
		return nil, errors.ParseFailure(path, string(format), err)
	}

	log.Printf("[DataReader] Data loaded successfully in %.2fms: %d rows, %d columns",
		float64(time.Since(start).Nanoseconds())/1e6, ds.NumRows(), ds.NumColumns())
	return ds, nil
}

func (r *DataReader) readCSV(path string) (*rawTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("no columns to parse from file")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}

	return r.fromRecords(header, records)
}

// readExcel reads the first worksheet, using its first row as header
func (r *DataReader) readExcel(path string) (*rawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no columns to parse from sheet %s", sheets[0])
	}

	// excelize drops trailing empty cells, so short rows are expected here.
	// Cells past the header get blank names, which normalizeHeaders fills as "Unnamed: n".
	header := rows[0]
	for _, row := range rows[1:] {
		if len(row) > len(header) {
			header = append(header, make([]string, len(row)-len(header))...)
		}
	}
	return r.fromRecords(header, rows[1:])
}

// fromRecords converts string records into raw cells; short rows are padded with nulls
func (r *DataReader) fromRecords(header []string, records [][]string) (*rawTable, error) {
	headers := normalizeHeaders(header)
	rows := make([][]rawCell, 0, len(records))

	for i, record := range records {
		if len(record) > len(headers) {
			return nil, fmt.Errorf("row %d: expected %d fields, saw %d", i+2, len(headers), len(record))
		}
		row := make([]rawCell, len(headers))
		for j := range headers {
			if j < len(record) {
				row[j] = r.coercer.raw(record[j])
			} else {
				row[j] = rawCell{null: true}
			}
		}
		rows = append(rows, row)
	}

	return &rawTable{headers: headers, rows: rows}, nil
}

// build infers every column kind once and converts the cells
func (r *DataReader) build(raw *rawTable) (*table.Dataset, error) {
	columns := make([]table.Column, len(raw.headers))
	cells := make([]rawCell, len(raw.rows))

	for j, name := range raw.headers {
		for i, row := range raw.rows {
			cells[i] = row[j]
		}
		columns[j] = table.Column{Name: name, Kind: r.coercer.InferKind(cells, len(raw.rows))}
	}

	rows := make([]table.Row, len(raw.rows))
	for i, rawRow := range raw.rows {
		row := make(table.Row, len(columns))
		for j, col := range columns {
			row[j] = r.coercer.Coerce(rawRow[j], col.Kind)
		}
		rows[i] = row
	}

	return table.New(columns, rows)
}

// normalizeHeaders trims names, fills blanks and suffixes duplicates
func normalizeHeaders(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]int, len(header))

	for i, h := range header {
		name := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		base := name
		for seen[name] > 0 {
			name = fmt.Sprintf("%s.%d", base, seen[base])
			seen[base]++
		}
		seen[name]++
		out[i] = name
	}
	return out
}
