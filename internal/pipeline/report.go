package pipeline

import (
	"fmt"

	"github.com/rxtech-lab/b3-extractor/pkg/errors"
)

// Level is the severity of a user-facing report.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Status line texts.
const (
	StatusReady    = "Ready to fetch..."
	StatusFetching = "Fetching data..."
	StatusSaved    = "Data saved successfully."
	StatusNoData   = "No data found."
	StatusOffline  = "Connection error."
	StatusFailed   = "Error during fetch."
)

// Message is what the user sees after a fetch attempt.
type Message struct {
	Level  Level
	Title  string
	Text   string
	Status string
}

// Report converts the outcome of Execute into a user-facing message.
func Report(result Result, err error) Message {
	if err == nil {
		return Message{
			Level:  LevelInfo,
			Title:  "Success",
			Text:   fmt.Sprintf("Data saved to:\n%s", result.Path),
			Status: StatusSaved,
		}
	}

	return ErrorMessage(err)
}

// ErrorMessage converts a pipeline error into a user-facing message.
func ErrorMessage(err error) Message {
	detail := err.Error()

	var e *errors.Error
	if errors.As(err, &e) {
		detail = e.Detail()
	}

	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidTicker:
		return Message{Level: LevelError, Title: "Error", Text: "Select a valid ticker.", Status: StatusReady}
	case errors.ErrCodeMissingInput:
		return Message{Level: LevelWarning, Title: "Required fields", Text: "Fill in both dates.", Status: StatusReady}
	case errors.ErrCodeDateOrder:
		return Message{Level: LevelError, Title: "Date error", Text: "The start date cannot be after the end date.", Status: StatusReady}
	case errors.ErrCodeFutureDate:
		return Message{Level: LevelError, Title: "Date error", Text: "Dates cannot be in the future.", Status: StatusReady}
	case errors.ErrCodeInvalidParameter:
		return Message{Level: LevelError, Title: "Invalid request", Text: detail, Status: StatusReady}
	case errors.ErrCodeNoData:
		return Message{Level: LevelWarning, Title: "Warning", Text: "No data found for the specified period and ticker.", Status: StatusNoData}
	case errors.ErrCodeConnectionFailure:
		return Message{Level: LevelError, Title: "Connection error", Text: "Could not connect. Check your internet connection.", Status: StatusOffline}
	case errors.ErrCodeWriteFailure:
		return Message{Level: LevelError, Title: "Save error", Text: detail, Status: StatusFailed}
	default:
		return Message{Level: LevelError, Title: "Unexpected error", Text: fmt.Sprintf("An error occurred: %s", detail), Status: StatusFailed}
	}
}
