package ports

import (
	"context"

	"github.com/mindtrack/stress-api/internal/core/domain"
)

// AuthRepository defines the interface for user credential persistence.
//
// FindByEmail and FindByEmailWithPassword are intentionally separate: normal
// reads must omit the password hash, and only the login verification path may
// request it. The split keeps accidental hash leakage out of the type system.
type AuthRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByEmailWithPassword(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
