// Package api holds the JSON bodies shared by the HTTP handlers.
package api

import "time"

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorDetailResponse is returned when LLM output could not be turned into a valid record.
type ErrorDetailResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

// MessageResponse carries a human-readable status message.
type MessageResponse struct {
	Message string `json:"message"`
}

// SuccessResponse acknowledges an operation without further data.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// AuthUserResponse describes the authenticated user.
type AuthUserResponse struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Authenticated bool   `json:"authenticated"`
}

// UnauthenticatedResponse is returned by /api/auth/me without a valid session.
type UnauthenticatedResponse struct {
	Authenticated bool `json:"authenticated"`
}

// HasPasswordResponse answers /api/auth/check-password.
type HasPasswordResponse struct {
	HasPassword bool `json:"hasPassword"`
}

// UserResponse identifies a user record.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// TokenResponse carries a bearer token for non-browser clients.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
