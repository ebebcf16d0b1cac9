package ports

import (
	"context"

	"github.com/mindtrack/stress-api/internal/core/domain"
)

// AuthService orchestrates registration, login, and identity lookup.
type AuthService interface {
	Register(ctx context.Context, firstName, lastName, email, password string) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
}
