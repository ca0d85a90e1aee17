package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Request validation errors (100-199)
	ErrCodeInvalidParameter ErrorCode = 100
	ErrCodeInvalidTicker    ErrorCode = 101
	ErrCodeMissingInput     ErrorCode = 102
	ErrCodeDateOrder        ErrorCode = 103
	ErrCodeFutureDate       ErrorCode = 104

	// Data errors (200-299)
	ErrCodeNoData ErrorCode = 200

	// Catalog errors (300-399)
	ErrCodeCatalogLoadFailure ErrorCode = 300

	// Market data errors (700-799)
	ErrCodeConnectionFailure ErrorCode = 700
	ErrCodeFetchFailure      ErrorCode = 701
	ErrCodeWriteFailure      ErrorCode = 702
	ErrCodeInvalidProvider   ErrorCode = 703

	// Configuration errors (800-899)
	ErrCodeInvalidConfiguration ErrorCode = 800
)

var codeNames = map[ErrorCode]string{
	ErrCodeUnknown:              "Unknown",
	ErrCodeInvalidParameter:     "InvalidParameter",
	ErrCodeInvalidTicker:        "InvalidTicker",
	ErrCodeMissingInput:         "MissingInput",
	ErrCodeDateOrder:            "DateOrder",
	ErrCodeFutureDate:           "FutureDate",
	ErrCodeNoData:               "NoData",
	ErrCodeCatalogLoadFailure:   "CatalogLoadFailure",
	ErrCodeConnectionFailure:    "ConnectionFailure",
	ErrCodeFetchFailure:         "FetchFailure",
	ErrCodeWriteFailure:         "WriteFailure",
	ErrCodeInvalidProvider:      "InvalidProvider",
	ErrCodeInvalidConfiguration: "InvalidConfiguration",
}

// String returns the kind name of the code, e.g. "DateOrder".
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}

	return "Unknown"
}
