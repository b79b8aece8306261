// Package errors provides the standardized error taxonomy shared by the transport, the simulated
// backend and the view handlers.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Transport failures (no response received)
const (
	ErrCodeNetwork ErrorCode = "NETWORK_ERROR"
)

// Server-signaled failures
const (
	ErrCodeServer         ErrorCode = "SERVER_ERROR"
	ErrCodeBadRequest     ErrorCode = "BAD_REQUEST"
	ErrCodeUnauthorized   ErrorCode = "UNAUTHORIZED"
	ErrCodeNotFound       ErrorCode = "NOT_FOUND"
	ErrCodeConflict       ErrorCode = "CONFLICT"
	ErrCodeNotImplemented ErrorCode = "NOT_IMPLEMENTED"
)

// Client-side failures
const (
	ErrCodeInvalidResponse    ErrorCode = "INVALID_RESPONSE"
	ErrCodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	ErrCodeActionInFlight     ErrorCode = "ACTION_IN_FLIGHT"
	ErrCodeSessionStoreFailed ErrorCode = "SESSION_STORE_FAILED"
	ErrCodeInternal           ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
// Status is the HTTP status the failure maps to; zero when no response was received.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Status    int                    `json:"status,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("StandardError[%s] (HTTP %d): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Is matches on Code so errors.Is(err, &StandardError{Code: ErrCodeNotFound}) works.
func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// ==========================
// 2. Error Constructors
// ==========================

// NewNetworkError means the request left but no response came back.
func NewNetworkError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNetwork,
		Message:   "No response received from server",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStatusError maps a response status and optional server message onto the taxonomy.
func NewStatusError(status int, message, details string) *StandardError {
	code := CodeForStatus(status)
	if message == "" {
		message = http.StatusText(status)
	}
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Status:    status,
		Retryable: status >= http.StatusInternalServerError,
		Timestamp: time.Now().UTC(),
	}
}

// NewConflictError is returned when a unique record already exists. The remote API signals it with 400.
func NewConflictError(message string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConflict,
		Message:   message,
		Status:    http.StatusBadRequest,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewUnauthorizedError(message string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnauthorized,
		Message:   message,
		Status:    http.StatusUnauthorized,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewNotFoundError(message string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotFound,
		Message:   message,
		Status:    http.StatusNotFound,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotImplementedError is returned by the simulated backend for routes it does not serve.
func NewNotImplementedError(method, path string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotImplemented,
		Message:   fmt.Sprintf("simulated backend: %s %s not implemented", method, path),
		Status:    http.StatusNotImplemented,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewInvalidResponseError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidResponse,
		Message:   "Invalid response format from server",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationError carries the message shown next to the form.
func NewValidationError(message string, fields []string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   message,
		Details:   strings.Join(fields, ", "),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewActionInFlightError(action string) *StandardError {
	return &StandardError{
		Code:      ErrCodeActionInFlight,
		Message:   "Action already in progress",
		Details:   fmt.Sprintf("action: %s", action),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewSessionStoreError(op string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionStoreFailed,
		Message:   "Session storage error",
		Details:   fmt.Sprintf("op: %s, error: %s", op, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// CodeForStatus maps an HTTP status onto an ErrorCode.
func CodeForStatus(status int) ErrorCode {
	switch {
	case status == http.StatusBadRequest:
		return ErrCodeBadRequest
	case status == http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case status == http.StatusNotFound:
		return ErrCodeNotFound
	case status == http.StatusConflict:
		return ErrCodeConflict
	case status == http.StatusNotImplemented:
		return ErrCodeNotImplemented
	case status >= http.StatusInternalServerError:
		return ErrCodeServer
	default:
		return ErrCodeBadRequest
	}
}

// ServerCode returns the server-signaled code named by s. Client-local codes are never accepted from a response body.
func ServerCode(s string) (ErrorCode, bool) {
	switch code := ErrorCode(s); code {
	case ErrCodeServer, ErrCodeBadRequest, ErrCodeUnauthorized, ErrCodeNotFound, ErrCodeConflict, ErrCodeNotImplemented:
		return code, true
	}
	return "", false
}

// As extracts a *StandardError from an error chain.
func As(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	stdErr, ok := As(err)
	return ok && stdErr.Code == code
}

// IsUnauthorized reports a 401, whichever backend produced it.
func IsUnauthorized(err error) bool {
	stdErr, ok := As(err)
	return ok && (stdErr.Code == ErrCodeUnauthorized || stdErr.Status == http.StatusUnauthorized)
}

// GetErrorCategory groups codes along the three failure classes plus client-local ones.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeNetwork:
		return "TRANSPORT"
	case ErrCodeServer, ErrCodeBadRequest, ErrCodeUnauthorized, ErrCodeNotFound, ErrCodeConflict, ErrCodeNotImplemented:
		return "SERVER"
	case ErrCodeValidationFailed:
		return "VALIDATION"
	default:
		return "CLIENT"
	}
}
