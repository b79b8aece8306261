package profile

import (
	"context"

	"proposal-desk/internal/models"
)

type Input struct {
	Name string `json:"name"`
}

type Output struct {
	User    models.User `json:"user"`
	Message string      `json:"message"`
}

type API interface {
	UpdateProfile(ctx context.Context, name string) (models.User, error)
}

// SessionUpdater replaces the stored user record.
type SessionUpdater interface {
	SetUser(ctx context.Context, user models.User) error
}
