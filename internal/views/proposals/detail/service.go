// Package detail shows one proposal, exports it, and duplicates it.
package detail

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

func (s *Service) Load(ctx context.Context, id string) (models.Proposal, error) {
	return s.api.GetProposal(ctx, id)
}

func (s *Service) Duplicate(ctx context.Context, source models.Proposal) (models.Proposal, error) {
	dup, err := s.api.DuplicateProposal(ctx, source)
	if err != nil {
		return models.Proposal{}, err
	}
	s.logger.Info("Proposal duplicated", map[string]interface{}{
		"sourceId":   source.ID,
		"proposalId": dup.ID,
	})
	return dup, nil
}
