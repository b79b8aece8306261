// Package templates lists, creates and applies reusable proposal templates.
package templates

import (
	"context"

	"proposal-desk/internal/common/logger"
	"proposal-desk/internal/models"
	"proposal-desk/internal/views/proposals/compose"
)

type Service struct {
	api    API
	logger logger.Logger
}

func NewService(api API, log logger.Logger) *Service {
	return &Service{api: api, logger: log}
}

func (s *Service) List(ctx context.Context) ([]models.Template, error) {
	list, warned, err := s.api.ListTemplates(ctx)
	if err != nil {
		return nil, err
	}
	if warned {
		s.logger.Warn("Template list had an unexpected shape, showing none", nil)
	}
	if list == nil {
		list = []models.Template{}
	}
	return list, nil
}

func (s *Service) Create(ctx context.Context, in CreateInput) (models.Template, error) {
	t, err := s.api.CreateTemplate(ctx, models.TemplateCreate{Title: in.Title, Content: in.Content})
	if err != nil {
		return models.Template{}, err
	}
	s.logger.Info("Template created", map[string]interface{}{"templateId": t.ID})
	return t, nil
}

// Apply seeds a new proposal form with the template's content as the project description.
func Apply(t models.Template) compose.Form {
	return compose.FromTemplate(t)
}
