// Package logout ends the local session. The remote API has no logout route; only local state is dropped.
package logout

import (
	"context"

	"proposal-desk/internal/common/logger"
)

const RedirectAfterLogout = "/auth/login"

type Service struct {
	session SessionClearer
	logger  logger.Logger
}

func NewService(session SessionClearer, log logger.Logger) *Service {
	return &Service{session: session, logger: log}
}

func (s *Service) Execute(ctx context.Context) (*Output, error) {
	if err := s.session.Clear(ctx); err != nil {
		return nil, err
	}
	s.logger.Info("User signed out", nil)
	return &Output{Redirect: RedirectAfterLogout}, nil
}
