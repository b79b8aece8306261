package templates

import (
	"context"
	"fmt"

	"proposal-desk/internal/common/errors"
	"proposal-desk/internal/common/logger"
	"proposal-desk/internal/models"
	"proposal-desk/internal/views/action"
	"proposal-desk/internal/views/proposals/compose"
)

const (
	ActionList   = "templates.load"
	ActionCreate = "templates.create"

	MessageLoadFailed   = "Failed to load templates"
	MessageCreateFailed = "Failed to create template"
)

type Handler struct {
	list    *action.Guard
	create  *action.Guard
	service *Service
}

type HandlerOptions struct {
	API    API
	Logger logger.Logger
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	if opts.API == nil {
		return nil, fmt.Errorf("templates handler requires an API")
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Handler{
		list:    action.NewGuard(ActionList, log.WithFields(map[string]interface{}{"action": ActionList})),
		create:  action.NewGuard(ActionCreate, log.WithFields(map[string]interface{}{"action": ActionCreate})),
		service: NewService(opts.API, log),
	}, nil
}

// List loads the templates. On failure the output holds an empty list alongside the error.
func (h *Handler) List(ctx context.Context) (*ListOutput, error) {
	var list []models.Template
	err := h.list.Run(ctx, func(ctx context.Context) error {
		var err error
		list, err = h.service.List(ctx)
		return err
	})
	if err != nil {
		return &ListOutput{Templates: []models.Template{}}, h.list.Fail(err, MessageLoadFailed, errors.Fixed)
	}
	return &ListOutput{Templates: list}, nil
}

// Create stores a template and reloads the list. A failed reload reports the load message and keeps
// the created template in the output.
func (h *Handler) Create(ctx context.Context, in CreateInput) (*CreateOutput, error) {
	if err := ValidateCreate(in); err != nil {
		return nil, h.create.Fail(err, MessageCreateFailed, errors.Fixed)
	}

	var created models.Template
	err := h.create.Run(ctx, func(ctx context.Context) error {
		var err error
		created, err = h.service.Create(ctx, in)
		return err
	})
	if err != nil {
		return nil, h.create.Fail(err, MessageCreateFailed, errors.Fixed)
	}

	listed, err := h.List(ctx)
	return &CreateOutput{Template: created, Templates: listed.Templates}, err
}

// Apply returns the compose form seeded from t.
func (h *Handler) Apply(t models.Template) compose.Form {
	return Apply(t)
}
