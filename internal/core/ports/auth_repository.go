package ports

import (
	"context"
	"time"

	"github.com/greenfield-farms/farm-manager/internal/core/domain"
)

// UserRepository persists accounts.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

// SessionStore holds server-side sessions. Load refreshes the expiry.
type SessionStore interface {
	Save(ctx context.Context, s *domain.Session, ttl time.Duration) error
	Load(ctx context.Context, id string, ttl time.Duration) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}
