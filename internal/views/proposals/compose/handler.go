package compose

import (
	"context"
	"fmt"

	"proposal-desk/internal/common/errors"
	"proposal-desk/internal/common/logger"
	"proposal-desk/internal/views/action"
)

const (
	ActionGenerate = "proposal.generate"
	ActionSave     = "proposal.save"

	MessageGenerateFailed = "Failed to generate proposal. Please try again."
	MessageSaveFailed     = "Failed to save proposal. Please try again."
)

type Handler struct {
	generate *action.Guard
	save     *action.Guard
	service  *Service
	logger   logger.Logger
}

type HandlerOptions struct {
	API    API
	Logger logger.Logger
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	if opts.API == nil {
		return nil, fmt.Errorf("compose handler requires an API")
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Handler{
		generate: action.NewGuard(ActionGenerate, log.WithFields(map[string]interface{}{"action": ActionGenerate})),
		save:     action.NewGuard(ActionSave, log.WithFields(map[string]interface{}{"action": ActionSave})),
		service:  NewService(opts.API, log),
		logger:   log,
	}, nil
}

// Generate validates the form and asks the API for the five sections. Missing sections are logged,
// not treated as a failure.
func (h *Handler) Generate(ctx context.Context, f Form) (*Draft, error) {
	if err := Validate(f); err != nil {
		return nil, h.generate.Fail(err, MessageGenerateFailed, errors.UserMessage)
	}

	var draft *Draft
	err := h.generate.Run(ctx, func(ctx context.Context) error {
		var err error
		draft, err = h.service.Generate(ctx, f)
		return err
	})
	if err != nil {
		return nil, h.generate.Fail(err, MessageGenerateFailed, errors.UserMessage)
	}

	if len(draft.Missing) > 0 {
		h.logger.Warn("Missing sections in response", map[string]interface{}{
			"missing": draft.Missing,
		})
	}
	return draft, nil
}

// Save stores a generated draft and returns where to go next.
func (h *Handler) Save(ctx context.Context, d *Draft) (*SaveOutput, error) {
	if d == nil {
		return nil, h.save.Fail(errors.NewValidationError(MessageNothingSaved, nil), MessageSaveFailed, errors.MessageOr)
	}

	var out *SaveOutput
	err := h.save.Run(ctx, func(ctx context.Context) error {
		saved, err := h.service.Save(ctx, *d)
		if err != nil {
			return err
		}
		out = &SaveOutput{Proposal: saved, Redirect: "/proposals/" + saved.ID}
		return nil
	})
	if err != nil {
		return nil, h.save.Fail(err, MessageSaveFailed, errors.MessageOr)
	}
	return out, nil
}
