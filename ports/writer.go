package ports

import (
	"autoreport/domain/report"
)

// DocumentWriterPort persists an assembled document.
// Failures carry the WRITE_FAILURE code.
type DocumentWriterPort interface {
	Write(doc *report.Document, path string) error
}
