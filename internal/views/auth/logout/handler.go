package logout

import (
	"context"
	"fmt"

	"proposal-desk/internal/common/errors"
	"proposal-desk/internal/common/logger"
	"proposal-desk/internal/views/action"
)

const (
	ActionName      = "auth.logout"
	MessageFallback = "Failed to sign out"
)

type Handler struct {
	guard   *action.Guard
	service *Service
}

type HandlerOptions struct {
	Session SessionClearer
	Logger  logger.Logger
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	if opts.Session == nil {
		return nil, fmt.Errorf("logout handler requires a session")
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	log = log.WithFields(map[string]interface{}{"action": ActionName})
	return &Handler{
		guard:   action.NewGuard(ActionName, log),
		service: NewService(opts.Session, log),
	}, nil
}

func (h *Handler) Handle(ctx context.Context) (*Output, error) {
	var out *Output
	err := h.guard.Run(ctx, func(ctx context.Context) error {
		var err error
		out, err = h.service.Execute(ctx)
		return err
	})
	if err != nil {
		return nil, h.guard.Fail(err, MessageFallback, errors.Fixed)
	}
	return out, nil
}
