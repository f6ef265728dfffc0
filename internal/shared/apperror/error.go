package apperror

import (
	"fmt"
	"net/http"
)

type AppError struct {
	Code       string   // Error code (e.g., INVALID_INPUT)
	Message    string   // User-friendly message
	HTTPStatus int      // HTTP status code
	Details    []string // Field level messages, validation only
	Err        error    // Wrapped original error (optional)
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements errors.Unwrap interface for errors.Is/As
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError without wrapping
func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap creates an AppError that wraps an existing error
func Wrap(err error, code, message string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// Validation groups every failed rule of a payload into one error.
// Details keeps the order in which the rules were evaluated.
func Validation(messages []string) *AppError {
	details := make([]string, len(messages))
	copy(details, messages)
	return &AppError{
		Code:       CodeInvalidInput,
		Message:    "Validation failed",
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}
