package main

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/moznion/go-optional"

	"github.com/rxtech-lab/b3-extractor/pkg/marketdata"
	"github.com/rxtech-lab/b3-extractor/pkg/marketdata/writer"
)

// FormDateLayout is the day-first layout of the date fields.
const FormDateLayout = "02-01-2006"

// maxSuggestions caps the suggestion list under the company field.
const maxSuggestions = 6

// NewCompanyInput creates the text input for the company name.
func NewCompanyInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "type to search, e.g. Petrobras"
	ti.Focus()
	ti.CharLimit = 120
	ti.Width = 50
	ti.Prompt = "> "

	return ti
}

// NewDateInput creates a DD-MM-YYYY text input holding value.
func NewDateInput(value time.Time) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "DD-MM-YYYY"
	ti.CharLimit = len(FormDateLayout)
	ti.Width = 12
	ti.Prompt = "> "
	ti.SetValue(FormatDate(value))

	return ti
}

// FormatDate renders t in the form layout.
func FormatDate(t time.Time) string {
	return t.Format(FormDateLayout)
}

// ParseDate reads a form date. Empty or malformed text is treated as a
// missing date.
func ParseDate(value string) optional.Option[time.Time] {
	t, err := time.ParseInLocation(FormDateLayout, strings.TrimSpace(value), time.Local)
	if err != nil {
		return optional.None[time.Time]()
	}

	return optional.Some(t)
}

// NewPreviewTable creates the table that previews a saved file.
func NewPreviewTable() table.Model {
	t := table.New(
		table.WithFocused(false),
		table.WithHeight(8),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	t.SetStyles(s)

	return t
}

// UpdatePreviewRows fills the preview table with the rows of data, formatted
// the way the CSV writer formats them.
func UpdatePreviewRows(t table.Model, data *marketdata.Table) table.Model {
	columns := make([]table.Column, len(data.Columns))
	for i, name := range data.Columns {
		width := 12
		if name == marketdata.ColumnDate {
			width = 19
		}

		columns[i] = table.Column{Title: name, Width: width}
	}

	rows := make([]table.Row, 0, data.Len())
	for _, cells := range data.Rows {
		row := make(table.Row, len(cells))
		for i, cell := range cells {
			row[i] = writer.FormatCell(cell)
		}

		rows = append(rows, row)
	}

	// rows must be cleared before narrowing the columns
	t.SetRows(nil)
	t.SetColumns(columns)
	t.SetRows(rows)

	return t
}

// cycle returns the element after (step 1) or before (step -1) current.
func cycle[T comparable](values []T, current T, step int) T {
	for i, v := range values {
		if v == current {
			return values[(i+step+len(values))%len(values)]
		}
	}

	return values[0]
}
