// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to create a user with an email that already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrSessionNotFound is returned when a session token is unknown.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExpired is returned when a session token is past its expiry.
	ErrSessionExpired = errors.New("session has expired")

	// ErrInvalidCredentials covers unknown email, missing password and wrong password alike.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrPasswordTooShort is returned when a new password is below the minimum length.
	ErrPasswordTooShort = errors.New("password must be at least 8 characters long")

	// ErrAuthenticationRequired is returned by the access guard when no session token is present.
	ErrAuthenticationRequired = errors.New("authentication required")

	// ErrInvalidSession is returned by the access guard when the token does not resolve to a user.
	ErrInvalidSession = errors.New("invalid or expired session")

	// ErrAccessDenied is returned when the authenticated user does not own the requested data.
	ErrAccessDenied = errors.New("access denied")
)
