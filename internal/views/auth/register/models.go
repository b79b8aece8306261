package register

import (
	"context"

	"proposal-desk/internal/models"
)

type Input struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Output struct {
	User     models.User `json:"user"`
	Redirect string      `json:"redirect"`
}

type API interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error)
}

type SessionWriter interface {
	Set(ctx context.Context, token string, user models.User) error
}
