package ports

import (
	"context"

	"github.com/greenfield-farms/farm-manager/internal/core/domain"
)

// RegisterInput carries a new account. Role is ignored for self-registration.
type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Role     string
}

// LoginResult is returned on a successful sign-in.
type LoginResult struct {
	Token   string
	Session *domain.Session
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Provision(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	// Resolve turns a bearer token into the caller's current identity.
	Resolve(ctx context.Context, token string) (*domain.Identity, string, error)
}
