// Package compose turns the new-proposal form into a generated draft and saves it.
package compose

import (
	"context"
	"strings"

	"proposal-desk/internal/common/logger"
	"proposal-desk/internal/models"
	"proposal-desk/internal/normalize"
)

type Service struct {
	api    API
	logger logger.Logger
}

func NewService(api API, log logger.Logger) *Service {
	return &Service{api: api, logger: log}
}

// Clean builds the generation request: required fields trimmed, optional ones dropped when empty,
// tone defaulting to professional.
func Clean(f Form) models.GenerateRequest {
	req := models.GenerateRequest{
		ClientName:         strings.TrimSpace(f.ClientName),
		ProjectTitle:       strings.TrimSpace(f.ProjectTitle),
		ProjectDescription: strings.TrimSpace(f.ProjectDescription),
		Tone:               f.Tone,
		ClientCompany:      strings.TrimSpace(f.ClientCompany),
		BudgetRange:        strings.TrimSpace(f.BudgetRange),
		Timeline:           strings.TrimSpace(f.Timeline),
	}
	if req.Tone == "" {
		req.Tone = models.ToneProfessional
	}
	if len(f.Services) > 0 {
		req.Services = append([]string(nil), f.Services...)
	}
	return req
}

func (s *Service) Generate(ctx context.Context, f Form) (*Draft, error) {
	req := Clean(f)
	s.logger.Debug("Sending proposal generation request", map[string]interface{}{
		"projectTitle": req.ProjectTitle,
		"tone":         string(req.Tone),
		"services":     len(req.Services),
	})

	sections, missing, err := s.api.GenerateProposal(ctx, req)
	if err != nil {
		return nil, err
	}
	return &Draft{Form: f, Sections: sections, Missing: missing}, nil
}

// Save stores the draft with every section canonicalized to a string and status draft.
func (s *Service) Save(ctx context.Context, d Draft) (models.Proposal, error) {
	p := models.Proposal{
		ClientName:         d.Form.ClientName,
		ClientCompany:      d.Form.ClientCompany,
		ProjectTitle:       d.Form.ProjectTitle,
		ProjectDescription: d.Form.ProjectDescription,
		BudgetRange:        d.Form.BudgetRange,
		Services:           d.Form.Services,
		Tone:               d.Form.Tone,
		Status:             models.StatusDraft,
	}.WithSections(normalize.CanonicalizeSet(d.Sections))

	saved, err := s.api.CreateProposal(ctx, p)
	if err != nil {
		return models.Proposal{}, err
	}
	s.logger.Info("Proposal saved", map[string]interface{}{"proposalId": saved.ID})
	return saved, nil
}

// FromTemplate seeds an empty form with the template content as the project description.
func FromTemplate(t models.Template) Form {
	return Form{
		ProjectDescription: t.Content,
		Tone:               models.ToneProfessional,
	}
}

// Rendered returns the display text of one draft section.
func (d Draft) Rendered(key string) string {
	return normalize.Canonicalize(d.Sections.Get(key))
}
