package myrapid

import (
	"fmt"
	"net/http"
)

// ServiceName is used in error reports about the geoservice.
const ServiceName = "MyRapid"

// APIError describes a failed exchange with the geoservice, with guidance
// on how to recover.
type APIError struct {
	Service    string // The API service name
	StatusCode int    // HTTP status code, 0 when no response was received
	Message    string // Error message
	Guidance   string // Guidance for users on how to recover
}

// Error implements the error interface and provides a formatted error message.
func (e *APIError) Error() string {
	if e.Guidance != "" {
		return fmt.Sprintf("%s API error (%d): %s. %s", e.Service, e.StatusCode, e.Message, e.Guidance)
	}
	return fmt.Sprintf("%s API error (%d): %s", e.Service, e.StatusCode, e.Message)
}

// Common error guidance messages
const (
	GuidanceGeneral      = "Please try again later or modify your request parameters."
	GuidanceNetworkError = "Check your internet connection and try again."
	GuidanceDataError    = "The data received was incomplete or malformed."
)

// NewAPIError creates a new APIError with appropriate guidance based on status code.
func NewAPIError(service string, statusCode int, message, guidance string) *APIError {
	if guidance == "" {
		switch statusCode {
		case 0:
			guidance = GuidanceNetworkError
		case http.StatusTooManyRequests:
			guidance = "Rate limit exceeded. Please try again in a few moments."
		case http.StatusRequestTimeout, http.StatusGatewayTimeout:
			guidance = "The request timed out. Please try again."
		case http.StatusBadRequest:
			guidance = "The request was invalid. Check the station identifiers and parameters."
		case http.StatusNotFound:
			guidance = "The requested resource does not exist."
		case http.StatusInternalServerError:
			guidance = "The server encountered an error. This is likely temporary, please try again later."
		case http.StatusServiceUnavailable:
			guidance = "The service is temporarily unavailable. Please try again later."
		default:
			guidance = GuidanceGeneral
		}
	}

	return &APIError{
		Service:    service,
		StatusCode: statusCode,
		Message:    message,
		Guidance:   guidance,
	}
}
