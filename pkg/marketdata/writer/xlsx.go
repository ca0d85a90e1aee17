package writer

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/rxtech-lab/b3-extractor/pkg/marketdata"
)

// SheetName is the worksheet holding the exported rows.
const SheetName = "Sheet1"

const xlsxDateFormat = "yyyy-mm-dd"

// XLSXWriter writes tables as an Excel workbook with a single sheet.
type XLSXWriter struct{}

// NewXLSXWriter creates an XLSX writer.
func NewXLSXWriter() *XLSXWriter {
	return &XLSXWriter{}
}

// Write implements TableWriter.
func (w *XLSXWriter) Write(table *marketdata.Table, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]interface{}, len(table.Columns))
	for i, column := range table.Columns {
		header[i] = column
	}

	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for r, row := range table.Rows {
		values := make([]interface{}, len(row))
		for i, cell := range row {
			switch {
			case cell.IsNull():
				values[i] = nil
			case cell.IsTime():
				values[i] = cell.Time()
			default:
				values[i] = cell.Number().InexactFloat64()
			}
		}

		axis, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}

		if err := f.SetSheetRow(SheetName, axis, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", r+1, err)
		}
	}

	if err := w.styleDates(f, table); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	return nil
}

func (w *XLSXWriter) styleDates(f *excelize.File, table *marketdata.Table) error {
	idx := table.ColumnIndex(marketdata.ColumnDate)
	if idx < 0 || table.Empty() {
		return nil
	}

	numFmt := xlsxDateFormat
	style, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return fmt.Errorf("failed to create date style: %w", err)
	}

	top, err := excelize.CoordinatesToCellName(idx+1, 2)
	if err != nil {
		return err
	}

	bottom, err := excelize.CoordinatesToCellName(idx+1, table.Len()+1)
	if err != nil {
		return err
	}

	return f.SetCellStyle(SheetName, top, bottom, style)
}
