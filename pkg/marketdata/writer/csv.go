package writer

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rxtech-lab/b3-extractor/pkg/marketdata"
)

const (
	// Separator is the CSV field delimiter.
	Separator = ';'
	// DecimalMark replaces the decimal point in numbers.
	DecimalMark = ","

	dateTimeLayout = "2006-01-02 15:04:05"
)

// CSVWriter writes tables as semicolon separated values with a decimal comma,
// the layout spreadsheet software expects in pt-BR locales.
type CSVWriter struct{}

// NewCSVWriter creates a CSV writer.
func NewCSVWriter() *CSVWriter {
	return &CSVWriter{}
}

// Write implements TableWriter.
func (w *CSVWriter) Write(table *marketdata.Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv file: %w", err)
	}
	defer f.Close()

	out := csv.NewWriter(f)
	out.Comma = Separator

	if err := out.Write(table.Columns); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, row := range table.Rows {
		record := make([]string, len(row))
		for i, cell := range row {
			record[i] = FormatCell(cell)
		}

		if err := out.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	out.Flush()
	if err := out.Error(); err != nil {
		return fmt.Errorf("failed to flush csv file: %w", err)
	}

	return f.Close()
}

// FormatCell renders a cell the way the CSV writer does.
func FormatCell(cell marketdata.Cell) string {
	if cell.IsNull() {
		return ""
	}

	if cell.IsTime() {
		return formatTime(cell.Time())
	}

	return strings.Replace(cell.Number().String(), ".", DecimalMark, 1)
}

func formatTime(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format(marketdata.DateLayout)
	}

	return t.Format(dateTimeLayout)
}
