package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rxtech-lab/b3-extractor/internal/pipeline"
	"github.com/rxtech-lab/b3-extractor/pkg/marketdata"
)

// Form fields, in focus order.
const (
	FieldCompany = iota
	FieldStart
	FieldEnd
	FieldInterval
	FieldFormat
	fieldCount
)

// Searcher lists catalog names matching a query.
type Searcher interface {
	Search(query string) []string
	Symbol(displayName string) (string, bool)
}

// ModelOptions wires the form to the rest of the application.
type ModelOptions struct {
	Catalog   Searcher
	Pipeline  *pipeline.Pipeline
	OutputDir string
	Interval  marketdata.Interval
	Format    marketdata.Format
	Now       func() time.Time
	// OpenFolder reveals a directory; nil disables ctrl+o.
	OpenFolder func(dir string) error
}

// sender forwards worker messages to the running program. It is shared by
// every copy of the model so the program can be attached after creation.
type sender struct {
	program *tea.Program
}

func (s *sender) Send(msg tea.Msg) {
	if s.program != nil {
		s.program.Send(msg)
	}
}

// Model is the Bubble Tea model of the extraction form.
type Model struct {
	focus       int
	company     textinput.Model
	startDate   textinput.Model
	endDate     textinput.Model
	interval    marketdata.Interval
	format      marketdata.Format
	suggestions []string
	selected    int
	committed   string // end date text the start date was last derived from

	fetching bool
	status   string
	message  *pipeline.Message
	preview  table.Model
	result   *pipeline.Result

	catalog    Searcher
	pipeline   *pipeline.Pipeline
	outputDir  string
	openFolder func(dir string) error
	sender     *sender
	width      int
	height     int
}

// NewModel creates the form with today's defaults.
func NewModel(opts ModelOptions) Model {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	today := now()
	end := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.Local)

	interval := opts.Interval
	if !interval.Valid() {
		interval = marketdata.IntervalOneWeek
	}

	format := opts.Format
	if format != marketdata.FormatXLSX {
		format = marketdata.FormatCSV
	}

	m := Model{
		focus:      FieldCompany,
		company:    NewCompanyInput(),
		startDate:  NewDateInput(end.AddDate(0, 0, -1)),
		endDate:    NewDateInput(end),
		interval:   interval,
		format:     format,
		committed:  FormatDate(end),
		status:     pipeline.StatusReady,
		preview:    NewPreviewTable(),
		catalog:    opts.Catalog,
		pipeline:   opts.Pipeline,
		outputDir:  opts.OutputDir,
		openFolder: opts.OpenFolder,
		sender:     &sender{},
	}

	m.refreshSuggestions()

	return m
}

// SetProgram sets the tea.Program reference for sending messages from the fetch worker.
func (m *Model) SetProgram(p *tea.Program) {
	m.sender.program = p
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.preview.SetWidth(msg.Width)
		return m, nil

	case FetchStatusMsg:
		if m.fetching {
			m.status = msg.Text
		}
		return m, nil

	case FetchDoneMsg:
		m.fetching = false
		report := pipeline.Report(msg.Result, msg.Err)
		m.message = &report
		m.status = report.Status

		if msg.Err == nil {
			result := msg.Result
			m.result = &result
			m.preview = UpdatePreviewRows(m.preview, result.Table)
		} else {
			m.result = nil
		}
		return m, nil

	case FolderOpenedMsg:
		if msg.Err != nil {
			m.message = &pipeline.Message{
				Level: pipeline.LevelError,
				Title: "Error opening folder",
				Text:  fmt.Sprintf("Could not open the folder: %v", msg.Err),
			}
		}
		return m, nil
	}

	return m.updateFocused(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "tab":
		m.acceptSuggestion()
		return m.moveFocus(1)

	case "shift+tab":
		return m.moveFocus(-1)

	case "up":
		if m.focus == FieldCompany && len(m.suggestions) > 0 {
			m.selected = (m.selected - 1 + len(m.suggestions)) % len(m.suggestions)
			return m, nil
		}

	case "down":
		if m.focus == FieldCompany && len(m.suggestions) > 0 {
			m.selected = (m.selected + 1) % len(m.suggestions)
			return m, nil
		}

	case "left", "right":
		step := 1
		if msg.String() == "left" {
			step = -1
		}

		switch m.focus {
		case FieldInterval:
			m.interval = cycle(marketdata.Intervals(), m.interval, step)
			return m, nil
		case FieldFormat:
			m.format = cycle(marketdata.Formats(), m.format, step)
			return m, nil
		}

	case "ctrl+o":
		return m, m.openFolderCmd()

	case "enter":
		if m.focus == FieldCompany && m.acceptSuggestion() {
			return m, nil
		}

		return m.startFetch()
	}

	return m.updateFocused(msg)
}

// updateFocused forwards msg to the focused text input.
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.focus {
	case FieldCompany:
		before := m.company.Value()
		m.company, cmd = m.company.Update(msg)
		if m.company.Value() != before {
			m.refreshSuggestions()
		}
	case FieldStart:
		m.startDate, cmd = m.startDate.Update(msg)
	case FieldEnd:
		m.endDate, cmd = m.endDate.Update(msg)
	}

	return m, cmd
}

func (m Model) moveFocus(step int) (tea.Model, tea.Cmd) {
	if m.focus == FieldEnd {
		m.commitEndDate()
	}

	m.focus = (m.focus + step + fieldCount) % fieldCount

	m.company.Blur()
	m.startDate.Blur()
	m.endDate.Blur()

	var cmd tea.Cmd

	switch m.focus {
	case FieldCompany:
		cmd = m.company.Focus()
	case FieldStart:
		cmd = m.startDate.Focus()
	case FieldEnd:
		cmd = m.endDate.Focus()
	}

	return m, cmd
}

// commitEndDate resets the start date to the day before a newly entered end date.
func (m *Model) commitEndDate() {
	value := strings.TrimSpace(m.endDate.Value())
	if value == m.committed {
		return
	}

	end := ParseDate(value)
	if end.IsNone() {
		return
	}

	m.committed = value
	m.startDate.SetValue(FormatDate(end.Unwrap().AddDate(0, 0, -1)))
}

func (m *Model) refreshSuggestions() {
	m.selected = 0
	m.suggestions = nil

	if m.catalog == nil {
		return
	}

	value := strings.TrimSpace(m.company.Value())
	if _, exact := m.catalog.Symbol(value); exact {
		return
	}

	m.suggestions = m.catalog.Search(value)
}

// acceptSuggestion fills the company field with the highlighted suggestion.
// It reports whether the field changed.
func (m *Model) acceptSuggestion() bool {
	if m.focus != FieldCompany || len(m.suggestions) == 0 {
		return false
	}

	choice := m.suggestions[m.selected]
	if choice == m.company.Value() {
		return false
	}

	m.company.SetValue(choice)
	m.company.CursorEnd()
	m.refreshSuggestions()

	return true
}

// request builds the pipeline request from the current field values.
func (m Model) request() pipeline.Request {
	return pipeline.Request{
		Company:   m.company.Value(),
		StartDate: ParseDate(m.startDate.Value()),
		EndDate:   ParseDate(m.endDate.Value()),
		Interval:  m.interval,
		Format:    m.format,
	}
}

// startFetch disables the trigger and hands the request to a worker.
func (m Model) startFetch() (tea.Model, tea.Cmd) {
	if m.fetching || m.pipeline == nil {
		return m, nil
	}

	if m.focus == FieldEnd {
		m.commitEndDate()
	}

	m.fetching = true
	m.status = pipeline.StatusFetching
	m.message = nil

	return m, m.fetchCmd(m.request())
}

// fetchCmd runs the pipeline off the update loop. Progress goes through the
// program; the outcome comes back as the command's message.
func (m Model) fetchCmd(req pipeline.Request) tea.Cmd {
	s := m.sender
	runner := m.pipeline.WithProgress(func(stage string) {
		s.Send(FetchStatusMsg{Text: stage})
	})

	return func() tea.Msg {
		result, err := runner.Execute(context.Background(), req)

		return FetchDoneMsg{Result: result, Err: err}
	}
}

func (m Model) openFolderCmd() tea.Cmd {
	if m.openFolder == nil {
		return nil
	}

	open, dir := m.openFolder, m.outputDir

	return func() tea.Msg {
		return FolderOpenedMsg{Err: open(dir)}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("B3 Historical Prices"))
	s.WriteString("\n\n")

	s.WriteString(m.label(FieldCompany, "Company"))
	s.WriteString(m.company.View())
	s.WriteString("\n")

	if m.focus == FieldCompany {
		offset, visible := m.visibleSuggestions()
		for i, name := range visible {
			if offset+i == m.selected {
				s.WriteString(SelectedSuggestionStyle.Render("› " + name))
			} else {
				s.WriteString(SuggestionStyle.Render(name))
			}
			s.WriteString("\n")
		}
	}

	s.WriteString(m.label(FieldStart, "Start date"))
	s.WriteString(m.startDate.View())
	s.WriteString("\n")

	s.WriteString(m.label(FieldEnd, "End date"))
	s.WriteString(m.endDate.View())
	s.WriteString("\n")

	s.WriteString(m.label(FieldInterval, "Interval"))
	s.WriteString(fmt.Sprintf("◀ %s ▶  %s", m.interval, HelpStyle.Render(m.interval.Description())))
	s.WriteString("\n")

	s.WriteString(m.label(FieldFormat, "Format"))
	s.WriteString(fmt.Sprintf("◀ %s ▶", m.format))
	s.WriteString("\n\n")

	if m.fetching {
		s.WriteString(DisabledButtonStyle.Render("Fetching..."))
	} else {
		s.WriteString(ButtonStyle.Render("Fetch [enter]"))
	}
	s.WriteString("\n\n")

	s.WriteString(StatusStyle.Render(m.status))
	s.WriteString("\n")

	if m.message != nil {
		s.WriteString("\n")
		s.WriteString(MessageStyle(m.message.Level).Render(m.message.Title))
		s.WriteString("\n")
		s.WriteString(m.message.Text)
		s.WriteString("\n")
	}

	if m.result != nil && !m.result.Table.Empty() {
		s.WriteString("\n")
		s.WriteString(m.preview.View())
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(HelpStyle.Render("tab/shift+tab: move | ↑/↓: suggestion | ←/→: change | enter: fetch | ctrl+o: open folder | esc: quit"))

	return s.String()
}

func (m Model) label(field int, text string) string {
	if m.focus == field {
		return FocusedLabelStyle.Render(text)
	}

	return LabelStyle.Render(text)
}

// visibleSuggestions returns the window of suggestions to draw and the index
// of its first entry, keeping the highlighted entry on screen.
func (m Model) visibleSuggestions() (int, []string) {
	if len(m.suggestions) <= maxSuggestions {
		return 0, m.suggestions
	}

	start := 0
	if m.selected >= maxSuggestions {
		start = m.selected - maxSuggestions + 1
	}

	return start, m.suggestions[start : start+maxSuggestions]
}
