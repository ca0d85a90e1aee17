package writer

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rxtech-lab/b3-extractor/pkg/marketdata"
)

// ReadCSV parses a file produced by CSVWriter. The Date column is read as
// timestamps in the local zone, every other column as decimals. Empty fields
// become null cells.
func ReadCSV(path string) (*marketdata.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv file: %w", err)
	}
	defer f.Close()

	in := csv.NewReader(f)
	in.Comma = Separator

	records, err := in.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv file: %w", err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("csv file %s has no header", path)
	}

	table := marketdata.NewTable(records[0]...)

	for lineNo, record := range records[1:] {
		cells := make([]marketdata.Cell, len(record))

		for i, value := range record {
			cell, err := parseCell(table.Columns[i], value)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo+2, err)
			}

			cells[i] = cell
		}

		if err := table.Append(cells...); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo+2, err)
		}
	}

	return table, nil
}

func parseCell(column string, value string) (marketdata.Cell, error) {
	if value == "" {
		return marketdata.NullCell(), nil
	}

	if column == marketdata.ColumnDate {
		layout := marketdata.DateLayout
		if len(value) > len(marketdata.DateLayout) {
			layout = dateTimeLayout
		}

		t, err := time.ParseInLocation(layout, value, time.Local)
		if err != nil {
			return marketdata.Cell{}, fmt.Errorf("invalid date %q: %w", value, err)
		}

		return marketdata.TimeCell(t), nil
	}

	d, err := decimal.NewFromString(strings.Replace(value, DecimalMark, ".", 1))
	if err != nil {
		return marketdata.Cell{}, fmt.Errorf("invalid number %q in column %s: %w", value, column, err)
	}

	return marketdata.NumberCell(d), nil
}
