package main

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rxtech-lab/b3-extractor/internal/pipeline"
)

// Style definitions.
var (
	// TitleStyle for headers.
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// HelpStyle for help text.
	HelpStyle = lipgloss.NewStyle().Faint(true)

	// LabelStyle for form labels.
	LabelStyle = lipgloss.NewStyle().Width(12)

	// FocusedLabelStyle for the label of the focused field.
	FocusedLabelStyle = LabelStyle.Bold(true).Foreground(lipgloss.Color("63"))

	// SuggestionStyle for company suggestions.
	SuggestionStyle = lipgloss.NewStyle().PaddingLeft(14).Faint(true)

	// SelectedSuggestionStyle for the highlighted suggestion.
	SelectedSuggestionStyle = lipgloss.NewStyle().PaddingLeft(12).Foreground(lipgloss.Color("229"))

	// ButtonStyle for the fetch trigger.
	ButtonStyle = lipgloss.NewStyle().Padding(0, 2).Background(lipgloss.Color("57")).Foreground(lipgloss.Color("230"))

	// DisabledButtonStyle for the fetch trigger while a fetch runs.
	DisabledButtonStyle = lipgloss.NewStyle().Padding(0, 2).Background(lipgloss.Color("240")).Foreground(lipgloss.Color("250"))

	// StatusStyle for the status line.
	StatusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	// ErrorStyle for error messages.
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))

	// WarningStyle for warnings.
	WarningStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))

	// SuccessStyle for success messages.
	SuccessStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
)

// MessageStyle picks the style for a report level.
func MessageStyle(level pipeline.Level) lipgloss.Style {
	switch level {
	case pipeline.LevelError:
		return ErrorStyle
	case pipeline.LevelWarning:
		return WarningStyle
	default:
		return SuccessStyle
	}
}
