package action

import (
	"proposal-desk/internal/common/errors"
)

// Failure is a failed action together with the inline message the view displays.
type Failure struct {
	Action  string
	Message string
	Err     error
}

func (f *Failure) Error() string { return f.Message }

func (f *Failure) Unwrap() error { return f.Err }

// Picker chooses the display message for err.
type Picker func(err error, fallback string) string

// Fail logs err and wraps it with the message pick chooses.
func (g *Guard) Fail(err error, fallback string, pick Picker) *Failure {
	if pick == nil {
		pick = errors.UserMessage
	}
	message := errors.NewErrorHandler(g.logger).HandleWith(g.name, err, fallback, pick)
	return &Failure{Action: g.name, Message: message, Err: err}
}

// Message is the display message of a failed action.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if f, ok := err.(*Failure); ok {
		return f.Message
	}
	return errors.UserMessage(err, "")
}
