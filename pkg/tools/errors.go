// Package tools provides the Rapid KL MCP tools implementations.
package tools

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// Fixed messages returned when the geoservice gave no usable answer.
const (
	MsgFareUnavailable     = "Unable to fetch fare data for this journey."
	MsgStationsUnavailable = "Unable to fetch station data."
	MsgSearchUnavailable   = "Unable to fetch station search results."
	MsgJourneyUnavailable  = "Unable to fetch journey planner data."

	MsgInvalidFareData = "Invalid fare data received from the API."
	MsgUnknownError    = "Unknown error"
	MsgDepartureFormat = "Invalid departure_datetime format. Use 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD'."
)

// dataError reports a payload that could not be shaped into text. Its
// message is what the caller sees.
type dataError struct {
	subject string // e.g. "fare", "station"
	err     error
}

func (e *dataError) Error() string {
	return fmt.Sprintf("Error processing %s data: %v", e.subject, e.err)
}

func (e *dataError) Unwrap() error {
	return e.err
}

func newDataError(subject, format string, args ...any) *dataError {
	return &dataError{subject: subject, err: fmt.Errorf(format, args...)}
}

// describe names the JSON kind of v for error messages.
func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "an object"
	case []any:
		return "a list"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case json.Number, float64, int:
		return "a number"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// guard runs format and turns a panic into the same text a dataError
// would produce, so a formatting bug never escapes a tool call.
func guard(subject string, format func() string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = (&dataError{subject: subject, err: fmt.Errorf("%v", r)}).Error()
		}
	}()
	return format()
}

// ErrorResponse is used for consistent error reporting of invalid tool
// arguments.
func ErrorResponse(message string) *mcp.CallToolResult {
	return mcp.NewToolResultError(message)
}
