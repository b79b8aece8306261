package login

import (
	"context"
	"fmt"

	"proposal-desk/internal/common/errors"
	"proposal-desk/internal/common/logger"
	"proposal-desk/internal/views/action"
)

const (
	ActionName      = "auth.login"
	MessageFallback = "Login failed. Please try again."
)

type Handler struct {
	guard   *action.Guard
	service *Service
	logger  logger.Logger
}

type HandlerOptions struct {
	API     API
	Session SessionWriter
	Logger  logger.Logger
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	if opts.API == nil || opts.Session == nil {
		return nil, fmt.Errorf("login handler requires an API and a session")
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	log = log.WithFields(map[string]interface{}{"action": ActionName})

	return &Handler{
		guard:   action.NewGuard(ActionName, log),
		service: NewService(ServiceDependencies{API: opts.API, Session: opts.Session, Logger: log}),
		logger:  log,
	}, nil
}

// Handle validates the form, then signs in. Failures carry the message to show next to the form.
func (h *Handler) Handle(ctx context.Context, in Input) (*Output, error) {
	if err := Validate(in); err != nil {
		return nil, h.guard.Fail(err, MessageFallback, errors.MessageOr)
	}

	var out *Output
	err := h.guard.Run(ctx, func(ctx context.Context) error {
		var err error
		out, err = h.service.Execute(ctx, in)
		return err
	})
	if err != nil {
		return nil, h.guard.Fail(err, MessageFallback, errors.MessageOr)
	}
	return out, nil
}

func (h *Handler) Busy() bool { return h.guard.Busy() }
