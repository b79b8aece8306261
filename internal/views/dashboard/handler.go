package dashboard

import (
	"context"
	"fmt"

	"proposal-desk/internal/common/errors"
	"proposal-desk/internal/common/logger"
	"proposal-desk/internal/views/action"
)

const (
	ActionName    = "dashboard.load"
	MessageFailed = "Failed to load proposals"
)

type Handler struct {
	guard   *action.Guard
	service *Service
}

type HandlerOptions struct {
	API    API
	Logger logger.Logger
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	if opts.API == nil {
		return nil, fmt.Errorf("dashboard handler requires an API")
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	log = log.WithFields(map[string]interface{}{"action": ActionName})
	return &Handler{
		guard:   action.NewGuard(ActionName, log),
		service: NewService(opts.API, log),
	}, nil
}

// Handle loads the proposal list. On failure the output is an empty list alongside the error.
func (h *Handler) Handle(ctx context.Context) (*Output, error) {
	var out *Output
	err := h.guard.Run(ctx, func(ctx context.Context) error {
		var err error
		out, err = h.service.Execute(ctx)
		return err
	})
	if err != nil {
		return summarize(nil), h.guard.Fail(err, MessageFailed, errors.Fixed)
	}
	return out, nil
}
