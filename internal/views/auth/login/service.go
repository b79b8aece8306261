// Package login signs a user in and stores the resulting session.
package login

import (
	"context"
	"strings"

	"proposal-desk/internal/common/logger"
	"proposal-desk/internal/models"
)

// RedirectAfterLogin is where the view goes once signed in.
const RedirectAfterLogin = "/dashboard"

type ServiceDependencies struct {
	API     API
	Session SessionWriter
	Logger  logger.Logger
}

type Service struct {
	api     API
	session SessionWriter
	logger  logger.Logger
}

func NewService(deps ServiceDependencies) *Service {
	return &Service{api: deps.API, session: deps.Session, logger: deps.Logger}
}

func (s *Service) Execute(ctx context.Context, in Input) (*Output, error) {
	resp, err := s.api.Login(ctx, models.LoginRequest{
		Email:    strings.TrimSpace(in.Email),
		Password: in.Password,
	})
	if err != nil {
		return nil, err
	}

	if err := s.session.Set(ctx, resp.Token, resp.User); err != nil {
		return nil, err
	}

	s.logger.Info("User signed in", map[string]interface{}{
		"userId": resp.User.ID,
		"plan":   string(resp.User.Plan),
	})

	return &Output{User: resp.User, Redirect: RedirectAfterLogin}, nil
}
