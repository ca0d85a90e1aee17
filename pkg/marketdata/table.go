package marketdata

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Column names used by providers and writers.
const (
	ColumnDate         = "Date"
	ColumnOpen         = "Open"
	ColumnHigh         = "High"
	ColumnLow          = "Low"
	ColumnClose        = "Close"
	ColumnAdjClose     = "Adj Close"
	ColumnVolume       = "Volume"
	ColumnVWAP         = "VWAP"
	ColumnTransactions = "Transactions"
)

// CanonicalColumns is the column subset written to output files, in output order.
var CanonicalColumns = []string{
	ColumnDate,
	ColumnOpen,
	ColumnHigh,
	ColumnLow,
	ColumnClose,
	ColumnVolume,
}

// Cell is a single table value: a timestamp, a decimal number, or empty when
// the provider had no value.
type Cell struct {
	isTime bool
	isNull bool
	time   time.Time
	number decimal.Decimal
}

// TimeCell returns a cell holding a timestamp.
func TimeCell(t time.Time) Cell {
	return Cell{isTime: true, isNull: false, time: t, number: decimal.Zero}
}

// NullCell returns an empty cell.
func NullCell() Cell {
	return Cell{isTime: false, isNull: true, time: time.Time{}, number: decimal.Zero}
}

// NumberCell returns a cell holding a decimal number.
func NumberCell(d decimal.Decimal) Cell {
	return Cell{isTime: false, isNull: false, time: time.Time{}, number: d}
}

// FloatCell returns a cell holding the shortest decimal representation of f.
func FloatCell(f float64) Cell {
	return NumberCell(decimal.NewFromFloat(f))
}

// IsTime reports whether the cell holds a timestamp.
func (c Cell) IsTime() bool {
	return c.isTime
}

// IsNull reports whether the cell is empty.
func (c Cell) IsNull() bool {
	return c.isNull
}

// Time returns the timestamp of a time cell.
func (c Cell) Time() time.Time {
	return c.time
}

// Number returns the value of a number cell.
func (c Cell) Number() decimal.Decimal {
	return c.number
}

// Equal reports whether two cells hold the same value.
func (c Cell) Equal(other Cell) bool {
	if c.isTime != other.isTime || c.isNull != other.isNull {
		return false
	}

	if c.isNull {
		return true
	}

	if c.isTime {
		return c.time.Equal(other.time)
	}

	return c.number.Equal(other.number)
}

// Table is a row-ordered price table with named columns.
type Table struct {
	Columns []string
	Rows    [][]Cell
}

// NewTable creates an empty table with the given columns.
func NewTable(columns ...string) *Table {
	return &Table{
		Columns: columns,
		Rows:    nil,
	}
}

// Append adds a row. The number of cells must match the number of columns.
func (t *Table) Append(cells ...Cell) error {
	if len(cells) != len(t.Columns) {
		return fmt.Errorf("row has %d cells, table has %d columns", len(cells), len(t.Columns))
	}

	t.Rows = append(t.Rows, cells)

	return nil
}

// Len returns the number of rows. A nil table has no rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}

	return len(t.Rows)
}

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool {
	return t.Len() == 0
}

// ColumnIndex returns the position of the named column or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, column := range t.Columns {
		if column == name {
			return i
		}
	}

	return -1
}

// Column returns all cells of the named column.
func (t *Table) Column(name string) ([]Cell, bool) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, false
	}

	cells := make([]Cell, 0, len(t.Rows))
	for _, row := range t.Rows {
		cells = append(cells, row[idx])
	}

	return cells, true
}

// Select returns a new table restricted to the listed columns, in the listed
// order. Listed columns missing from t are omitted. Row order is preserved.
func (t *Table) Select(columns []string) *Table {
	indexes := make([]int, 0, len(columns))
	selected := make([]string, 0, len(columns))

	for _, name := range columns {
		if idx := t.ColumnIndex(name); idx >= 0 {
			indexes = append(indexes, idx)
			selected = append(selected, name)
		}
	}

	out := &Table{
		Columns: selected,
		Rows:    make([][]Cell, 0, len(t.Rows)),
	}

	for _, row := range t.Rows {
		cells := make([]Cell, len(indexes))
		for i, idx := range indexes {
			cells[i] = row[idx]
		}

		out.Rows = append(out.Rows, cells)
	}

	return out
}
