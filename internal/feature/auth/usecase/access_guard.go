package usecase

import (
	"context"
	"strings"

	"tend_backend/internal/feature/auth/domain/entity"
)

// SessionValidator resolves a session token to its user.
type SessionValidator interface {
	ValidateSession(ctx context.Context, token string) (*entity.User, error)
}

// AccessGuard is the single gate every protected request passes through.
// It only resolves identity and ownership; mapping failures to HTTP responses is left to the caller.
type AccessGuard struct {
	sessions SessionValidator
}

// NewAccessGuard creates an AccessGuard backed by the given validator.
func NewAccessGuard(sessions SessionValidator) *AccessGuard {
	return &AccessGuard{sessions: sessions}
}

// ValidateUserAccess resolves token and, when requestedEmail is non-empty, requires the
// resolved user to own it.
//
// Errors, in the order they are checked:
//   - ErrAuthenticationRequired: token is empty
//   - ErrInvalidSession: token is unknown, expired or could not be looked up
//   - ErrAccessDenied: requestedEmail belongs to someone else
func (g *AccessGuard) ValidateUserAccess(ctx context.Context, token, requestedEmail string) (*entity.User, error) {
	if token == "" {
		return nil, ErrAuthenticationRequired
	}
	user, err := g.sessions.ValidateSession(ctx, token)
	if err != nil {
		return nil, ErrInvalidSession
	}
	if err := CheckOwnership(user, requestedEmail); err != nil {
		return nil, err
	}
	return user, nil
}

// RequireAuth resolves token without any ownership scope. Page routes use it.
func (g *AccessGuard) RequireAuth(ctx context.Context, token string) (*entity.User, error) {
	return g.ValidateUserAccess(ctx, token, "")
}

// CheckOwnership returns ErrAccessDenied unless ownerEmail is empty or matches the user's
// email case-insensitively.
func CheckOwnership(user *entity.User, ownerEmail string) error {
	ownerEmail = strings.TrimSpace(ownerEmail)
	if ownerEmail == "" {
		return nil
	}
	if user == nil || !strings.EqualFold(user.Email, ownerEmail) {
		return ErrAccessDenied
	}
	return nil
}
