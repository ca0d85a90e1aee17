package marketdata

import (
	"fmt"
	"strings"
)

// Format is the output file format.
type Format string

const (
	FormatCSV  Format = "CSV"
	FormatXLSX Format = "XLSX"
)

// Formats returns the supported output formats in display order.
func Formats() []Format {
	return []Format{FormatCSV, FormatXLSX}
}

// ParseFormat parses a format name. Matching is case-insensitive.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToUpper(strings.TrimSpace(s))) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported format %q", s)
	}
}

// Extension returns the file extension without the dot. Anything other than
// XLSX is written as csv.
func (f Format) Extension() string {
	if f == FormatXLSX {
		return "xlsx"
	}

	return "csv"
}
