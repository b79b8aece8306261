// Package dashboard lists the user's proposals.
package dashboard

import (
	"context"

	"proposal-desk/internal/common/logger"
	"proposal-desk/internal/models"
)

type Service struct {
	api    API
	logger logger.Logger
}

func NewService(api API, log logger.Logger) *Service {
	return &Service{api: api, logger: log}
}

func (s *Service) Execute(ctx context.Context) (*Output, error) {
	proposals, warned, err := s.api.ListProposals(ctx)
	if err != nil {
		return nil, err
	}
	if warned {
		s.logger.Warn("Proposal list had an unexpected shape, showing none", nil)
	}
	return summarize(proposals), nil
}

func summarize(proposals []models.Proposal) *Output {
	if proposals == nil {
		proposals = []models.Proposal{}
	}
	out := &Output{Proposals: proposals}
	for _, p := range proposals {
		switch p.Status {
		case models.StatusDraft:
			out.Drafts++
		case models.StatusSent:
			out.Sent++
		}
	}
	return out
}
