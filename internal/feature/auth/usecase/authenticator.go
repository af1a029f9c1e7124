package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"tend_backend/internal/feature/auth/domain/entity"
)

const (
	// DefaultSessionTTL is how long a session stays valid after login.
	DefaultSessionTTL = 30 * 24 * time.Hour

	// MinPasswordLength is the minimum number of characters for a new password.
	MinPasswordLength = 8

	passwordCost      = 10
	sessionTokenBytes = 32

	// dummyHash keeps Authenticate's timing the same whether or not a hash exists.
	dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
)

// Authenticator owns the password lifecycle and session issuance, validation and revocation.
type Authenticator struct {
	users      UserRepository
	sessions   SessionRepository
	sessionTTL time.Duration
	now        func() time.Time
}

// NewAuthenticator creates an Authenticator. A non-positive ttl falls back to DefaultSessionTTL.
func NewAuthenticator(users UserRepository, sessions SessionRepository, ttl time.Duration) *Authenticator {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Authenticator{
		users:      users,
		sessions:   sessions,
		sessionTTL: ttl,
		now:        time.Now,
	}
}

// SessionTTL returns the validity window applied to new sessions.
func (a *Authenticator) SessionTTL() time.Duration {
	return a.sessionTTL
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidatePassword checks a new password against the length requirement, in characters.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// HashPassword returns the bcrypt hash of plaintext.
func HashPassword(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), passwordCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// VerifyPassword reports whether plaintext matches hash.
func VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// Authenticate checks email and password and returns the matching user.
// Unknown email, a user without a password and a wrong password all yield ErrInvalidCredentials.
func (a *Authenticator) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := a.users.FindByEmail(ctx, NormalizeEmail(email))

	passwordHash := dummyHash
	if err == nil && user.HasPassword() {
		passwordHash = *user.PasswordHash
	}

	// Always compare so the response time does not reveal whether the account exists.
	ok := VerifyPassword(password, passwordHash)

	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			slog.Warn("user lookup failed during authentication", "error", err)
		}
		return nil, ErrInvalidCredentials
	}
	if !user.HasPassword() || !ok {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// CreateSession issues a new session for userID and returns its token and expiry.
func (a *Authenticator) CreateSession(ctx context.Context, userID string) (string, time.Time, error) {
	token, err := generateSessionToken()
	if err != nil {
		return "", time.Time{}, err
	}

	now := a.now()
	session := &entity.Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(a.sessionTTL),
	}
	if err := a.sessions.Create(ctx, session); err != nil {
		return "", time.Time{}, fmt.Errorf("failed to create session: %w", err)
	}
	return session.Token, session.ExpiresAt, nil
}

// ValidateSession resolves token to its user.
// Storage failures are logged and reported as ErrSessionNotFound so callers treat them as logged out.
func (a *Authenticator) ValidateSession(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}

	session, err := a.sessions.FindByToken(ctx, token)
	if err != nil {
		if !errors.Is(err, ErrSessionNotFound) {
			slog.Warn("session lookup failed", "error", err)
		}
		return nil, ErrSessionNotFound
	}
	if !session.IsValidAt(a.now()) {
		return nil, ErrSessionExpired
	}

	user, err := a.users.FindByID(ctx, session.UserID)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			slog.Warn("session user lookup failed", "error", err, "user_id", session.UserID)
		}
		return nil, ErrSessionNotFound
	}
	return user, nil
}

// SessionExpiry returns when a valid session stops being accepted.
func (a *Authenticator) SessionExpiry(ctx context.Context, token string) (time.Time, error) {
	if token == "" {
		return time.Time{}, ErrSessionNotFound
	}
	session, err := a.sessions.FindByToken(ctx, token)
	if err != nil {
		return time.Time{}, ErrSessionNotFound
	}
	if !session.IsValidAt(a.now()) {
		return time.Time{}, ErrSessionExpired
	}
	return session.ExpiresAt, nil
}

// InvalidateSession deletes the session for token.
// It returns true only when a session was actually removed.
func (a *Authenticator) InvalidateSession(ctx context.Context, token string) bool {
	if token == "" {
		return false
	}
	if err := a.sessions.Delete(ctx, token); err != nil {
		if !errors.Is(err, ErrSessionNotFound) {
			slog.Warn("session invalidation failed", "error", err)
		}
		return false
	}
	return true
}

// InvalidateAllSessions removes every session of a user.
func (a *Authenticator) InvalidateAllSessions(ctx context.Context, userID string) error {
	if err := a.sessions.DeleteAllByUserID(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete sessions: %w", err)
	}
	return nil
}

// PurgeExpiredSessions deletes sessions that expired before now and reports how many went.
// Validation already rejects them; this only reclaims storage.
func (a *Authenticator) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	n, err := a.sessions.DeleteExpired(ctx, a.now())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return n, nil
}

// CreateOrUpdateUserWithPassword sets the password for email, creating the user if needed.
// The write is a single upsert so concurrent registrations cannot produce two rows.
func (a *Authenticator) CreateOrUpdateUserWithPassword(ctx context.Context, email, password string) (*entity.User, error) {
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}
	hashed, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	user, err := a.users.UpsertPassword(ctx, NormalizeEmail(email), hashed, a.now())
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return user, nil
}

// UserHasPassword reports whether an account with email exists and has a password.
func (a *Authenticator) UserHasPassword(ctx context.Context, email string) (bool, error) {
	user, err := a.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.HasPassword(), nil
}

// EnsureUser creates a passwordless user for email.
// created is false when the email was already registered; that case is not an error.
func (a *Authenticator) EnsureUser(ctx context.Context, email string) (*entity.User, bool, error) {
	user := &entity.User{Email: NormalizeEmail(email)}
	err := a.users.Create(ctx, user)
	if err == nil {
		return user, true, nil
	}
	if !errors.Is(err, ErrEmailAlreadyExists) {
		return nil, false, err
	}

	existing, err := a.users.FindByEmail(ctx, user.Email)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// generateSessionToken returns 32 bytes from crypto/rand, hex-encoded.
func generateSessionToken() (string, error) {
	b := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
