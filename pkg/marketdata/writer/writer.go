package writer

import (
	"fmt"

	"github.com/rxtech-lab/b3-extractor/pkg/marketdata"
)

// TableWriter serializes a price table to a file.
type TableWriter interface {
	// Write replaces the file at path with the contents of table.
	Write(table *marketdata.Table, path string) error
}

// ForFormat returns the writer for an output format.
func ForFormat(format marketdata.Format) (TableWriter, error) {
	switch format {
	case marketdata.FormatCSV:
		return NewCSVWriter(), nil
	case marketdata.FormatXLSX:
		return NewXLSXWriter(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
