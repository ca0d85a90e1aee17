package marketdata

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the date layout used in file names and CSV output.
const DateLayout = "2006-01-02"

// FetchParams holds a resolved, date-checked request ready for dispatch.
type FetchParams struct {
	Symbol    string    `validate:"required"`
	StartDate time.Time `validate:"required"`
	EndDate   time.Time `validate:"required"`
	Interval  Interval  `validate:"required,oneof=1d 5d 1wk 1mo 3mo"`
	Format    Format    `validate:"required,oneof=CSV XLSX"`
}

// Validate checks that every field is set and within its enum.
func (p FetchParams) Validate() error {
	validate := validator.New()
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid fetch parameters: %w", err)
	}

	return nil
}

// FileName returns the output file name for these parameters.
func (p FetchParams) FileName() string {
	return FileName(p.Symbol, p.StartDate, p.EndDate, p.Interval, p.Format)
}

// FileName builds SYMBOL_START_END_INTERVAL.EXT. Identical inputs always give
// the same name, so a repeated request overwrites the earlier file.
func FileName(symbol string, start, end time.Time, interval Interval, format Format) string {
	return fmt.Sprintf("%s_%s_%s_%s.%s",
		symbol,
		start.Format(DateLayout),
		end.Format(DateLayout),
		interval,
		format.Extension())
}
