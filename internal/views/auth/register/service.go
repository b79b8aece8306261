// Package register creates an account and signs the new user in.
package register

import (
	"context"
	"strings"

	"proposal-desk/internal/common/logger"
	"proposal-desk/internal/models"
)

const RedirectAfterRegister = "/dashboard"

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
	resp, err := s.api.Register(ctx, models.RegisterRequest{
		Name:     strings.TrimSpace(in.Name),
		Email:    strings.TrimSpace(in.Email),
		Password: in.Password,
	})
	if err != nil {
		return nil, err
	}

	if err := s.session.Set(ctx, resp.Token, resp.User); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", map[string]interface{}{
		"userId": resp.User.ID,
	})

	return &Output{User: resp.User, Redirect: RedirectAfterRegister}, nil
}
