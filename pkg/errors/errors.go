package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents different types of errors that can occur during a run
type ErrorType string

const (
	ErrorTypeConfig           ErrorType = "config"
	ErrorTypeNetwork          ErrorType = "network"
	ErrorTypeHTTPStatus       ErrorType = "http_status"
	ErrorTypeChallenge        ErrorType = "challenge"
	ErrorTypeAPIStatus        ErrorType = "api_status"
	ErrorTypeSustainedFailure ErrorType = "sustained_failure"
	ErrorTypePersistence      ErrorType = "persistence"
	ErrorTypeCanceled         ErrorType = "canceled"
	ErrorTypeUnknown          ErrorType = "unknown"
)

// Error represents a classified error with type information
type Error struct {
	Type    ErrorType
	Message string
	Code    int
	Err     error
}

func (e *Error) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s error (code %d): %s", e.Type, e.Code, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a classified error
func New(errorType ErrorType, message string) *Error {
	return &Error{Type: errorType, Message: message}
}

// Wrap creates a classified error around a cause
func Wrap(errorType ErrorType, err error, message string) *Error {
	return &Error{Type: errorType, Message: fmt.Sprintf("%s: %v", message, err), Err: err}
}

// TypeOf returns the ErrorType of err, or ErrorTypeUnknown if it is not classified
func TypeOf(err error) ErrorType {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type
	}
	return ErrorTypeUnknown
}

// Is reports whether err carries the given ErrorType
func Is(err error, errorType ErrorType) bool {
	return err != nil && TypeOf(err) == errorType
}

// IsRecoverable checks if an error type only ends the current cycle.
// Page failures abandon one pagination traversal; the run then starts a new cycle.
func IsRecoverable(errorType ErrorType) bool {
	switch errorType {
	case ErrorTypeNetwork, ErrorTypeHTTPStatus, ErrorTypeChallenge, ErrorTypeAPIStatus:
		return true
	case ErrorTypeConfig, ErrorTypeSustainedFailure, ErrorTypeCanceled:
		return false
	default:
		return false
	}
}
