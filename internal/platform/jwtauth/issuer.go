// Package jwtauth issues and parses bearer tokens that point at a server-side session.
// The session stays the source of truth: revoking it revokes every token issued for it.
package jwtauth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"tend_backend/internal/feature/auth/domain/entity"
)

// ErrDisabled is returned when no signing secret is configured.
var ErrDisabled = errors.New("bearer tokens are disabled")

// SessionClaims binds a bearer token to a session token.
type SessionClaims struct {
	SessionID string `json:"sid"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 bearer tokens.
type Issuer struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

// NewIssuer creates an Issuer. An empty secret yields an Issuer that rejects every call with ErrDisabled.
func NewIssuer(secret string, expiration time.Duration) *Issuer {
	if expiration <= 0 {
		expiration = 24 * time.Hour
	}
	return &Issuer{
		secret:     []byte(secret),
		expiration: expiration,
		now:        time.Now,
	}
}

// Enabled reports whether a signing secret is configured.
func (i *Issuer) Enabled() bool {
	return len(i.secret) > 0
}

// Issue signs a token for the given session. The token never outlives sessionExpiresAt.
func (i *Issuer) Issue(sessionToken string, user *entity.User, sessionExpiresAt time.Time) (string, time.Time, error) {
	if !i.Enabled() {
		return "", time.Time{}, ErrDisabled
	}

	now := i.now()
	exp := now.Add(i.expiration)
	if !sessionExpiresAt.IsZero() && sessionExpiresAt.Before(exp) {
		exp = sessionExpiresAt
	}

	claims := SessionClaims{
		SessionID: sessionToken,
		Email:     user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, exp, nil
}

// ParseSessionToken verifies tokenStr and returns the session token it carries.
func (i *Issuer) ParseSessionToken(tokenStr string) (string, error) {
	if !i.Enabled() {
		return "", ErrDisabled
	}

	var claims SessionClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		// Only HMAC is accepted.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now), jwt.WithExpirationRequired())
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.SessionID == "" {
		return "", errors.New("invalid token")
	}
	return claims.SessionID, nil
}
