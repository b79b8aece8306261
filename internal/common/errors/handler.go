// internal/common/errors/handler.go
package errors

import (
	"fmt"
	"net/http"
	"time"
)

const (
	MessageNoResponse   = "No response from server. Please check if your backend is running."
	MessageAuthRequired = "Authentication required. Please log in again."
	MessageBadRequest   = "Invalid request. Please check all fields are filled correctly."
	MessageNotFound     = "The requested resource was not found."
	MessageServerError  = "Server error. Please check your backend logs or try again later."
	MessageUnexpected   = "An unexpected error occurred."
)

// ErrorHandler turns failures into the inline message a view displays.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Handle logs the failure of action and returns its display message.
func (h *ErrorHandler) Handle(action string, err error, fallback string) string {
	return h.HandleWith(action, err, fallback, UserMessage)
}

func (h *ErrorHandler) log(action string, stdErr *StandardError, message string) {
	if h.logger != nil {
		h.logger.Error("Action failed", map[string]interface{}{
			"action":        action,
			"errorCode":     string(stdErr.Code),
			"status":        stdErr.Status,
			"message":       stdErr.Message,
			"details":       stdErr.Details,
			"errorCategory": GetErrorCategory(stdErr.Code),
			"display":       message,
		})
	}
}

// Normalize ensures we always have a StandardError.
func Normalize(err error) *StandardError {
	if stdErr, ok := As(err); ok {
		return stdErr
	}
	details := ""
	if err != nil {
		details = err.Error()
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// UserMessage picks the human-readable text for err: server-supplied message first, then a
// status-specific generic message, then fallback. Validation and in-flight errors carry their own text.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	stdErr := Normalize(err)

	switch stdErr.Code {
	case ErrCodeValidationFailed, ErrCodeActionInFlight:
		return stdErr.Message
	case ErrCodeNetwork:
		return MessageNoResponse
	case ErrCodeInternal, ErrCodeInvalidResponse, ErrCodeSessionStoreFailed:
		if fallback != "" {
			return fallback
		}
		return MessageUnexpected
	}

	if stdErr.Status == 0 {
		if fallback != "" {
			return fallback
		}
		return MessageUnexpected
	}

	if msg := serverMessage(stdErr); msg != "" {
		return msg
	}

	switch {
	case stdErr.Status == http.StatusBadRequest:
		return MessageBadRequest
	case stdErr.Status == http.StatusUnauthorized:
		return MessageAuthRequired
	case stdErr.Status == http.StatusNotFound:
		return MessageNotFound
	case stdErr.Status >= http.StatusInternalServerError:
		return MessageServerError
	}

	reason := "Request failed"
	if e, ok := stdErr.Metadata["error"].(string); ok && e != "" {
		reason = e
	}
	return fmt.Sprintf("Error %d: %s", stdErr.Status, reason)
}

// MessageOr returns the server-supplied message when the response carried one, else fallback.
func MessageOr(err error, fallback string) string {
	if err == nil {
		return ""
	}
	stdErr := Normalize(err)
	switch stdErr.Code {
	case ErrCodeValidationFailed, ErrCodeActionInFlight:
		return stdErr.Message
	}
	if stdErr.Status != 0 {
		if msg := serverMessage(stdErr); msg != "" {
			return msg
		}
	}
	return fallback
}

// Fixed always displays fallback, except for errors that carry their own form message.
func Fixed(err error, fallback string) string {
	if HasCode(err, ErrCodeValidationFailed) || HasCode(err, ErrCodeActionInFlight) {
		return Normalize(err).Message
	}
	return fallback
}

// HandleWith logs the failure of action and returns the message chosen by pick.
func (h *ErrorHandler) HandleWith(action string, err error, fallback string, pick func(error, string) string) string {
	stdErr := Normalize(err)
	message := pick(stdErr, fallback)
	h.log(action, stdErr, message)
	return message
}

// serverMessage is the message field of the response body, if the server sent one.
// NewStatusError fills Message with the status text when the body had none; that does not count.
func serverMessage(stdErr *StandardError) string {
	if stdErr.Message == "" || stdErr.Message == http.StatusText(stdErr.Status) {
		return ""
	}
	return stdErr.Message
}
