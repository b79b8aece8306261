package templates

import (
	"context"

	"proposal-desk/internal/models"
)

type CreateInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ListOutput is never nil-listed.
type ListOutput struct {
	Templates []models.Template `json:"templates"`
}

type CreateOutput struct {
	Template  models.Template   `json:"template"`
	Templates []models.Template `json:"templates"`
}

type API interface {
	ListTemplates(ctx context.Context) ([]models.Template, bool, error)
	CreateTemplate(ctx context.Context, req models.TemplateCreate) (models.Template, error)
}
