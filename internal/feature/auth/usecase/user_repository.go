package usecase

import (
	"context"
	"time"

	"tend_backend/internal/feature/auth/domain/entity"
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user. It returns ErrEmailAlreadyExists on a duplicate email.
	Create(ctx context.Context, user *entity.User) error

	// UpsertPassword writes passwordHash for email in a single statement.
	// A missing user is created; an existing one keeps its PasswordCreatedAt.
	UpsertPassword(ctx context.Context, email, passwordHash string, at time.Time) (*entity.User, error)

	// FindByEmail returns ErrUserNotFound when no user matches.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID returns ErrUserNotFound when no user matches.
	FindByID(ctx context.Context, id string) (*entity.User, error)
}
