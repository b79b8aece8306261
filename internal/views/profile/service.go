// Package profile edits the signed-in user's display name.
package profile

import (
	"context"

	"proposal-desk/internal/common/logger"
)

const MessageUpdated = "Profile updated successfully"

type Service struct {
	api     API
	session SessionUpdater
	logger  logger.Logger
}

func NewService(api API, session SessionUpdater, log logger.Logger) *Service {
	return &Service{api: api, session: session, logger: log}
}

// Execute sends the name as entered and stores the user the server returns.
func (s *Service) Execute(ctx context.Context, in Input) (*Output, error) {
	user, err := s.api.UpdateProfile(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if err := s.session.SetUser(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("Profile updated", map[string]interface{}{"userId": user.ID})
	return &Output{User: user, Message: MessageUpdated}, nil
}
