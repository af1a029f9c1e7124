package usecase

import (
	"context"
	"time"

	"tend_backend/internal/feature/auth/domain/entity"
)

// SessionRepository abstracts the persistence layer for session entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SessionRepository interface {
	// Create persists a new session to the storage.
	Create(ctx context.Context, session *entity.Session) error

	// FindByToken retrieves a session by its token. Expired sessions may still be returned.
	FindByToken(ctx context.Context, token string) (*entity.Session, error)

	// Delete removes a session. It returns ErrSessionNotFound if nothing was deleted.
	Delete(ctx context.Context, token string) error

	// DeleteAllByUserID removes every session belonging to a user.
	DeleteAllByUserID(ctx context.Context, userID string) error

	// DeleteExpired removes sessions whose expiry is before the given instant.
	// Returns the number of deleted sessions.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
