// Package errors provides domain-specific error types and sentinel errors
// for improved error handling across the application.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common scenarios.
// Use errors.Is() to check these errors in your code.
var (
	// ErrSignatureMissing indicates the webhook request carried no signature header.
	ErrSignatureMissing = errors.New("signature header missing")

	// ErrSignatureInvalid indicates the webhook signature did not match the body.
	ErrSignatureInvalid = errors.New("signature mismatch")

	// ErrUnknownEvent indicates a messaging event matched none of the recognized shapes.
	ErrUnknownEvent = errors.New("unknown event shape")

	// ErrMalformedPayload indicates a postback payload that could not be parsed.
	ErrMalformedPayload = errors.New("malformed postback payload")

	// ErrUnknownRestaurant indicates a restaurant postback key with no catalog entry.
	ErrUnknownRestaurant = errors.New("restaurant not in catalog")

	// ErrSendFailed indicates the send API rejected or failed an outbound message.
	ErrSendFailed = errors.New("send API call failed")
)

// SendError carries the remote send API failure details.
type SendError struct {
	StatusCode int    // HTTP status returned by the send API
	Code       int    // Platform error code from the response body, if any
	Message    string // Platform error message, if any
	Err        error  // Underlying transport error, if any
}

func (e *SendError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("send API error (status=%d, code=%d): %s", e.StatusCode, e.Code, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("send API error: %v", e.Err)
	}
	return fmt.Sprintf("send API error (status=%d)", e.StatusCode)
}

// Unwrap exposes both the sentinel and any underlying transport error, so
// errors.Is(err, ErrSendFailed) holds for every send failure.
func (e *SendError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrSendFailed, e.Err}
	}
	return []error{ErrSendFailed}
}

// NewSendError creates a new send API error.
func NewSendError(statusCode, code int, message string, err error) *SendError {
	return &SendError{
		StatusCode: statusCode,
		Code:       code,
		Message:    message,
		Err:        err,
	}
}

// ValidationError represents input validation failures.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}
