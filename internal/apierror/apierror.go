// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package so internal details
// (stack traces, DB errors) never reach the response body.
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
	// Retry tells the client the same request may succeed if repeated.
	Retry bool `json:"retry,omitempty"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// Retryable marks a transient server-side failure.
func Retryable(msg string) *APIError {
	return &APIError{Detail: msg, Retry: true}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Validation failed", Fields: fields}
}
