package ports

import (
	"autoreport/domain/table"
)

// DatasetReaderPort parses a source file into a typed dataset.
// Errors carry UNSUPPORTED_FORMAT or PARSE_FAILURE codes.
type DatasetReaderPort interface {
	Read(path string, format table.Format) (*table.Dataset, error)
}
