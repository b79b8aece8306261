package detail

import (
	"context"
	"fmt"

	"proposal-desk/internal/common/errors"
	"proposal-desk/internal/common/logger"
	"proposal-desk/internal/models"
	"proposal-desk/internal/views/action"
)

const (
	ActionLoad      = "proposal.detail.load"
	ActionDuplicate = "proposal.duplicate"

	MessageLoadFailed      = "Failed to load proposal"
	MessageDuplicateFailed = "Failed to duplicate proposal"
)

type Handler struct {
	load      *action.Guard
	duplicate *action.Guard
	service   *Service
}

type HandlerOptions struct {
	API    API
	Logger logger.Logger
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	if opts.API == nil {
		return nil, fmt.Errorf("detail handler requires an API")
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Handler{
		load:      action.NewGuard(ActionLoad, log.WithFields(map[string]interface{}{"action": ActionLoad})),
		duplicate: action.NewGuard(ActionDuplicate, log.WithFields(map[string]interface{}{"action": ActionDuplicate})),
		service:   NewService(opts.API, log),
	}, nil
}

func (h *Handler) Load(ctx context.Context, id string) (*models.Proposal, error) {
	var p models.Proposal
	err := h.load.Run(ctx, func(ctx context.Context) error {
		var err error
		p, err = h.service.Load(ctx, id)
		return err
	})
	if err != nil {
		return nil, h.load.Fail(err, MessageLoadFailed, errors.Fixed)
	}
	return &p, nil
}

// Duplicate saves a copy of p titled with " (Copy)" and status draft.
func (h *Handler) Duplicate(ctx context.Context, p models.Proposal) (*DuplicateOutput, error) {
	var dup models.Proposal
	err := h.duplicate.Run(ctx, func(ctx context.Context) error {
		var err error
		dup, err = h.service.Duplicate(ctx, p)
		return err
	})
	if err != nil {
		return nil, h.duplicate.Fail(err, MessageDuplicateFailed, errors.Fixed)
	}
	return &DuplicateOutput{Proposal: dup, Redirect: "/proposals/" + dup.ID}, nil
}

func (h *Handler) Markdown(p models.Proposal) string { return Markdown(p) }

func (h *Handler) PlainText(p models.Proposal) string { return PlainText(p) }
