// Package usecase implements account deletion.
package usecase

import (
	"context"
	"log/slog"

	authentity "tend_backend/internal/feature/auth/domain/entity"
)

// Deleted counts the rows removed with an account.
type Deleted struct {
	Relationships int64
	NorthStars    int64
	Experiments   int64
}

// AccountRepository removes a user and everything they own in one transaction.
type AccountRepository interface {
	DeleteAccount(ctx context.Context, userID, email string) (Deleted, error)
}

// SessionRevoker drops every session of a user.
type SessionRevoker interface {
	InvalidateAllSessions(ctx context.Context, userID string) error
}

// CacheInvalidator drops cached data of an owner.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, ownerEmail string) error
}

// AccountUsecase deletes accounts. The caller must already be authorized as the user.
type AccountUsecase struct {
	repo     AccountRepository
	sessions SessionRevoker
	caches   []CacheInvalidator
}

// NewAccountUsecase creates a new AccountUsecase.
func NewAccountUsecase(repo AccountRepository, sessions SessionRevoker, caches ...CacheInvalidator) *AccountUsecase {
	return &AccountUsecase{repo: repo, sessions: sessions, caches: caches}
}

// DeleteAccount removes user, their relationships, north star and experiments,
// then revokes their sessions. Session and cache cleanup failures are logged only:
// the data is already gone and a session without a user no longer validates.
func (u *AccountUsecase) DeleteAccount(ctx context.Context, user *authentity.User) (Deleted, error) {
	d, err := u.repo.DeleteAccount(ctx, user.ID, user.Email)
	if err != nil {
		return Deleted{}, err
	}

	if err := u.sessions.InvalidateAllSessions(ctx, user.ID); err != nil {
		slog.Warn("revoking sessions after account deletion failed", "error", err, "user_id", user.ID)
	}
	for _, c := range u.caches {
		_ = c.Invalidate(ctx, user.Email)
	}

	slog.Info("account deleted",
		"user_id", user.ID,
		"relationships", d.Relationships,
		"north_stars", d.NorthStars,
		"experiments", d.Experiments,
	)
	return d, nil
}
