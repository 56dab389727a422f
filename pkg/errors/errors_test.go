package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	err := &Error{Type: ErrorTypeHTTPStatus, Message: "unexpected status", Code: 429}
	assert.Equal(t, "http_status error (code 429): unexpected status", err.Error())

	err = New(ErrorTypeConfig, "missing header")
	assert.Equal(t, "config error: missing header", err.Error())
}

func TestWrapAndTypeOf(t *testing.T) {
	err := Wrap(ErrorTypeNetwork, io.ErrUnexpectedEOF, "request failed")
	wrapped := fmt.Errorf("cycle aborted: %w", err)

	assert.True(t, stderrors.Is(wrapped, io.ErrUnexpectedEOF))
	assert.Equal(t, ErrorTypeNetwork, TypeOf(wrapped))
	assert.True(t, Is(wrapped, ErrorTypeNetwork))
	assert.False(t, Is(nil, ErrorTypeNetwork))
	assert.Equal(t, ErrorTypeUnknown, TypeOf(io.EOF))
}

func TestIsRecoverable(t *testing.T) {
	tests := []struct {
		errorType   ErrorType
		recoverable bool
	}{
		{ErrorTypeNetwork, true},
		{ErrorTypeHTTPStatus, true},
		{ErrorTypeChallenge, true},
		{ErrorTypeAPIStatus, true},
		{ErrorTypeConfig, false},
		{ErrorTypeSustainedFailure, false},
		{ErrorTypePersistence, false},
		{ErrorTypeCanceled, false},
		{ErrorTypeUnknown, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.errorType), func(t *testing.T) {
			assert.Equal(t, tt.recoverable, IsRecoverable(tt.errorType))
		})
	}
}
