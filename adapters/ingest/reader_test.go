package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"autoreport/domain/table"
	"autoreport/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func kinds(ds *table.Dataset) map[string]table.ColumnKind {
	out := make(map[string]table.ColumnKind)
	for _, col := range ds.Columns() {
		out[col.Name] = col.Kind
	}
	return out
}

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		path     string
		declared table.Format
		want     table.Format
		wantErr  bool
	}{
		{"data.csv", table.FormatAuto, table.FormatCSV, false},
		{"DATA.CSV", "", table.FormatCSV, false},
		{"book.xlsx", table.FormatAuto, table.FormatExcel, false},
		{"book.XLS", table.FormatAuto, table.FormatExcel, false},
		{"records.json", table.FormatAuto, table.FormatJSON, false},
		{"records.txt", table.FormatJSON, table.FormatJSON, false},
		{"records.txt", table.FormatAuto, "", true},
		{"noext", table.FormatAuto, "", true},
		{"data.csv", "parquet", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path+"/"+string(tt.declared), func(t *testing.T) {
			got, err := ResolveFormat(tt.path, tt.declared)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.HasCode(err, errors.CodeUnsupportedFormat))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRead_UnsupportedExtension(t *testing.T) {
	path := writeFile(t, "notes.txt", "a,b\n1,2\n")

	ds, err := NewDataReader().Read(path, table.FormatAuto)
	require.Error(t, err)
	assert.Nil(t, ds)
	assert.Equal(t, errors.CodeUnsupportedFormat, errors.GetCode(err))
}

func TestRead_CSVKindInference(t *testing.T) {
	path := writeFile(t, "sales.csv",
		"Date,Product,Units,Price,Returned\n"+
			"2024-01-01,Laptop,3,1200.50,yes\n"+
			"2024-01-02,Mouse,,25,no\n"+
			"2024-01-03,Laptop,7,NaN,no\n")

	ds, err := NewDataReader().Read(path, table.FormatAuto)
	require.NoError(t, err)

	assert.Equal(t, 3, ds.NumRows())
	assert.Equal(t, map[string]table.ColumnKind{
		"Date":     table.KindTemporal,
		"Product":  table.KindCategorical,
		"Units":    table.KindNumeric,
		"Price":    table.KindNumeric,
		"Returned": table.KindOther,
	}, kinds(ds))

	units, _ := ds.ColumnIndex("Units")
	price, _ := ds.ColumnIndex("Price")
	assert.Equal(t, []float64{3, 7}, ds.Floats(units))
	assert.Equal(t, 1, ds.NullCount(price))
	assert.Equal(t, "Laptop", ds.Cell(0, 1).Text)
}

func TestRead_CSVShortRowsArePadded(t *testing.T) {
	path := writeFile(t, "short.csv", "a,b,c\n1,2,3\n4\n")

	ds, err := NewDataReader().Read(path, table.FormatCSV)
	require.NoError(t, err)
	assert.True(t, ds.Cell(1, 1).Null)
	assert.True(t, ds.Cell(1, 2).Null)
}

func TestRead_CSVLongRowIsParseFailure(t *testing.T) {
	path := writeFile(t, "long.csv", "a,b\n1,2,3\n")

	_, err := NewDataReader().Read(path, table.FormatCSV)
	require.Error(t, err)
	assert.Equal(t, errors.CodeParseFailure, errors.GetCode(err))
	assert.Contains(t, err.Error(), "long.csv")
}

func TestRead_EmptyFileIsParseFailure(t *testing.T) {
	path := writeFile(t, "empty.csv", "")

	_, err := NewDataReader().Read(path, table.FormatAuto)
	require.Error(t, err)
	assert.Equal(t, errors.CodeParseFailure, errors.GetCode(err))
}

func TestRead_MissingFileIsParseFailure(t *testing.T) {
	_, err := NewDataReader().Read(filepath.Join(t.TempDir(), "gone.csv"), table.FormatAuto)
	require.Error(t, err)
	assert.Equal(t, errors.CodeParseFailure, errors.GetCode(err))
}

func TestRead_HeaderOnlyGivesEmptyDataset(t *testing.T) {
	path := writeFile(t, "header.csv", "x,y,z\n")

	ds, err := NewDataReader().Read(path, table.FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, 0, ds.NumRows())
	assert.Equal(t, 3, ds.NumColumns())
	for _, col := range ds.Columns() {
		assert.Equal(t, table.KindCategorical, col.Kind)
	}
}

func TestRead_AllNullColumnIsNumeric(t *testing.T) {
	path := writeFile(t, "nulls.csv", "id,empty\n1,\n2,NA\n")

	ds, err := NewDataReader().Read(path, table.FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, table.KindNumeric, kinds(ds)["empty"])
}

func TestRead_HeaderNormalization(t *testing.T) {
	path := writeFile(t, "dups.csv", "a,a,,a\n1,2,3,4\n")

	ds, err := NewDataReader().Read(path, table.FormatAuto)
	require.NoError(t, err)

	var names []string
	for _, col := range ds.Columns() {
		names = append(names, col.Name)
	}
	assert.Equal(t, []string{"a", "a.1", "Unnamed: 2", "a.2"}, names)
}

func TestRead_JSONRecords(t *testing.T) {
	path := writeFile(t, "records.json", `[
		{"Region": "North", "Sales": 10.5, "Active": true},
		{"Region": "South", "Sales": null, "Opened": "2023-05-01 00:00:00"},
		{"Sales": 3, "Region": "North"}
	]`)

	ds, err := NewDataReader().Read(path, table.FormatAuto)
	require.NoError(t, err)

	var names []string
	for _, col := range ds.Columns() {
		names = append(names, col.Name)
	}
	assert.Equal(t, []string{"Region", "Sales", "Active", "Opened"}, names)
	assert.Equal(t, map[string]table.ColumnKind{
		"Region": table.KindCategorical,
		"Sales":  table.KindNumeric,
		"Active": table.KindOther,
		"Opened": table.KindTemporal,
	}, kinds(ds))
	assert.True(t, ds.Cell(1, 1).Null)
	assert.True(t, ds.Cell(2, 2).Null)
}

func TestRead_JSONSingleObject(t *testing.T) {
	path := writeFile(t, "one.json", `{"a": 1, "b": "x"}`)

	ds, err := NewDataReader().Read(path, table.FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, 1, ds.NumRows())
}

func TestRead_JSONMalformed(t *testing.T) {
	for name, body := range map[string]string{
		"broken.json": `[{"a": 1}`,
		"scalar.json": `42`,
		"mixed.json":  `[{"a": 1}, 2]`,
	} {
		path := writeFile(t, name, body)
		_, err := NewDataReader().Read(path, table.FormatAuto)
		require.Error(t, err, name)
		assert.Equal(t, errors.CodeParseFailure, errors.GetCode(err), name)
	}
}

func TestRead_Excel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Region", "Revenue", "Units"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"North", 120.5, 3}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"South", 99.25}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	ds, err := NewDataReader().Read(path, table.FormatAuto)
	require.NoError(t, err)

	assert.Equal(t, 2, ds.NumRows())
	assert.Equal(t, table.KindCategorical, kinds(ds)["Region"])
	assert.Equal(t, table.KindNumeric, kinds(ds)["Revenue"])
	assert.True(t, ds.Cell(1, 2).Null)
}

func TestRead_ExcelCellsPastHeaderGetUnnamedColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wide.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Region", "Revenue"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"North", 120.5}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"South", 99.25, "late note", 7}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	ds, err := NewDataReader().Read(path, table.FormatExcel)
	require.NoError(t, err)

	names := make([]string, 0, ds.NumColumns())
	for _, col := range ds.Columns() {
		names = append(names, col.Name)
	}
	assert.Equal(t, []string{"Region", "Revenue", "Unnamed: 2", "Unnamed: 3"}, names)
	assert.Equal(t, 2, ds.NumRows())
	assert.True(t, ds.Cell(0, 2).Null)
	assert.Equal(t, "late note", ds.Cell(1, 2).Text)
	assert.Equal(t, table.KindNumeric, kinds(ds)["Unnamed: 3"])
}

func TestRead_ExcelCorruptIsParseFailure(t *testing.T) {
	path := writeFile(t, "fake.xlsx", "not a zip archive")

	_, err := NewDataReader().Read(path, table.FormatAuto)
	require.Error(t, err)
	assert.Equal(t, errors.CodeParseFailure, errors.GetCode(err))
}
