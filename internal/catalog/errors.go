package catalog

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrCatalogFetchFailed is wrapped by every FetchError
var ErrCatalogFetchFailed = errors.New("failed to fetch model catalog")

// Error category constants for categorizing catalog failures
const (
	ErrorCategoryAuthFailure      = "authentication_failure"
	ErrorCategoryRateLimit        = "rate_limit"
	ErrorCategoryNetworkError     = "network_error"
	ErrorCategoryServerError      = "server_error"
	ErrorCategoryEndpointNotFound = "endpoint_not_found"
	ErrorCategoryInvalidResponse  = "invalid_response"
	ErrorCategoryUnknown          = "unknown_error"
)

// User-facing hints for each category
var errorUserMessages = map[string]string{
	ErrorCategoryAuthFailure:      "Authentication failed. Please check your API key.",
	ErrorCategoryRateLimit:        "Rate limit exceeded. Please try again later.",
	ErrorCategoryNetworkError:     "Network error: unable to connect to the API.",
	ErrorCategoryServerError:      "Server error occurred. Please try again later.",
	ErrorCategoryEndpointNotFound: "Models endpoint not found. Please verify the base URL.",
	ErrorCategoryInvalidResponse:  "The API returned a response that is not valid JSON.",
	ErrorCategoryUnknown:          "An unknown error occurred.",
}

// FetchError describes a failed catalog request
type FetchError struct {
	Category   string
	StatusCode int
	Message    string
	Err        error
}

func (e *FetchError) Error() string {
	msg := e.Message
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("HTTP %d: %s", e.StatusCode, msg)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes both the sentinel and the underlying cause
func (e *FetchError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrCatalogFetchFailed, e.Err}
	}
	return []error{ErrCatalogFetchFailed}
}

// UserMessage returns the hint for the error's category
func (e *FetchError) UserMessage() string {
	if msg, ok := errorUserMessages[e.Category]; ok {
		return msg
	}
	return errorUserMessages[ErrorCategoryUnknown]
}

// CategorizeStatus maps a non-2xx HTTP status to an error category.
//
// - 401, 403 → authentication_failure
// - 404 → endpoint_not_found
// - 429 → rate_limit
// - 500+ → server_error
// - Other → unknown_error
func CategorizeStatus(statusCode int) string {
	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrorCategoryAuthFailure
	case http.StatusNotFound:
		return ErrorCategoryEndpointNotFound
	case http.StatusTooManyRequests:
		return ErrorCategoryRateLimit
	default:
		if statusCode >= http.StatusInternalServerError {
			return ErrorCategoryServerError
		}
		return ErrorCategoryUnknown
	}
}

func newStatusError(statusCode int, body []byte) *FetchError {
	msg := http.StatusText(statusCode)
	if detail := errorDetail(body); detail != "" {
		msg = detail
	}
	return &FetchError{
		Category:   CategorizeStatus(statusCode),
		StatusCode: statusCode,
		Message:    msg,
	}
}

func newNetworkError(err error) *FetchError {
	return &FetchError{
		Category: ErrorCategoryNetworkError,
		Message:  "request failed",
		Err:      err,
	}
}
