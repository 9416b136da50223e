package ingest

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

// readJSON reads an array of records, or a single record object.
// Columns follow first-seen key order; keys absent from a record are null.
func (r *DataReader) readJSON(path string) (*rawTable, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON file: %w", err)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("invalid JSON document")
	}

	root := gjson.ParseBytes(body)
	var records []gjson.Result
	switch {
	case root.IsArray():
		records = root.Array()
	case root.IsObject():
		records = []gjson.Result{root}
	default:
		return nil, fmt.Errorf("JSON document is not an array or object")
	}

	var headers []string
	position := make(map[string]int)
	values := make([]map[string]rawCell, len(records))

	for i, record := range records {
		if !record.IsObject() {
			return nil, fmt.Errorf("record %d is not an object", i)
		}
		cells := make(map[string]rawCell)
		record.ForEach(func(key, value gjson.Result) bool {
			name := key.String()
			if _, ok := position[name]; !ok {
				position[name] = len(headers)
				headers = append(headers, name)
			}
			cells[name] = r.jsonCell(value)
			return true
		})
		values[i] = cells
	}

	rows := make([][]rawCell, len(records))
	for i, cells := range values {
		row := make([]rawCell, len(headers))
		for j, name := range headers {
			cell, ok := cells[name]
			if !ok {
				cell = rawCell{null: true}
			}
			row[j] = cell
		}
		rows[i] = row
	}

	return &rawTable{headers: normalizeHeaders(headers), rows: rows}, nil
}

func (r *DataReader) jsonCell(value gjson.Result) rawCell {
	switch value.Type {
	case gjson.Null:
		return rawCell{null: true}
	case gjson.Number:
		return rawCell{text: value.Raw}
	case gjson.True, gjson.False:
		return rawCell{text: value.String()}
	case gjson.String:
		return r.coercer.raw(value.String())
	case gjson.JSON:
		return rawCell{text: value.Raw}
	}
	return rawCell{null: true}
}
