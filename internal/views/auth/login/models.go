package login

import (
	"context"

	"proposal-desk/internal/models"
)

type Input struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Output struct {
	User     models.User `json:"user"`
	Redirect string      `json:"redirect"`
}

// API is the part of the proposal API the login view calls.
type API interface {
	Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error)
}

// SessionWriter stores the token and user on success.
type SessionWriter interface {
	Set(ctx context.Context, token string, user models.User) error
}
