// Package handler provides HTTP handlers for the auth feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"tend_backend/internal/api"
	"tend_backend/internal/feature/auth/domain/entity"
	"tend_backend/internal/feature/auth/transport/http/dto"
	"tend_backend/internal/feature/auth/usecase"
	"tend_backend/internal/platform/jwtauth"
	"tend_backend/internal/platform/sessionmw"
)

// Authenticator defines the auth operations the handler needs.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*entity.User, error)
	CreateSession(ctx context.Context, userID string) (string, time.Time, error)
	ValidateSession(ctx context.Context, token string) (*entity.User, error)
	SessionExpiry(ctx context.Context, token string) (time.Time, error)
	InvalidateSession(ctx context.Context, token string) bool
	CreateOrUpdateUserWithPassword(ctx context.Context, email, password string) (*entity.User, error)
	UserHasPassword(ctx context.Context, email string) (bool, error)
	EnsureUser(ctx context.Context, email string) (*entity.User, bool, error)
}

// SessionAccess is the slice of the session middleware used by the handler.
type SessionAccess interface {
	Token(c *gin.Context) string
	Authorize(c *gin.Context, requestedEmail string) (*entity.User, bool)
	Cookies() sessionmw.Cookies
}

// TokenIssuer signs bearer tokens bound to a session.
type TokenIssuer interface {
	Issue(sessionToken string, user *entity.User, sessionExpiresAt time.Time) (string, time.Time, error)
}

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	auth     Authenticator
	sessions SessionAccess
	issuer   TokenIssuer
}

// NewAuthHandler creates a new AuthHandler. issuer may be nil to disable bearer tokens.
func NewAuthHandler(auth Authenticator, sessions SessionAccess, issuer TokenIssuer) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions, issuer: issuer}
}

// Register sets a password for an email, creating the account if needed, and logs the user in.
// - 400 when a field is missing, the passwords differ or the password is too short
// - 200 with the user and a session cookie on success
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Email and password are required"})
		return
	}
	if req.Password != req.ConfirmPassword {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Passwords do not match"})
		return
	}
	if err := usecase.ValidatePassword(req.Password); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Password must be at least 8 characters long"})
		return
	}

	user, err := h.auth.CreateOrUpdateUserWithPassword(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		slog.Error("registration failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Registration failed"})
		return
	}
	if !h.startSession(c, user, "Registration failed") {
		return
	}
	slog.Info("user registered", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.AuthUserResponse{ID: user.ID, Email: user.Email, Authenticated: true})
}

// Login authenticates with email and password and issues a session cookie.
// - 400 when a field is missing
// - 401 for any credential failure, without saying which one
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Email and password are required"})
		return
	}

	user, err := h.auth.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// Never expose which check failed.
		slog.Warn("login failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Invalid email or password"})
		return
	}
	if !h.startSession(c, user, "Authentication failed") {
		return
	}
	slog.Info("user login successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.AuthUserResponse{ID: user.ID, Email: user.Email, Authenticated: true})
}

// Logout invalidates the current session, if any, and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token := h.sessions.Token(c); token != "" {
		h.auth.InvalidateSession(c.Request.Context(), token)
	}
	h.sessions.Cookies().Clear(c)
	c.JSON(http.StatusOK, api.SuccessResponse{Success: true})
}

// Me reports the user behind the current session.
// An invalid session clears the cookie so the client stops sending it.
func (h *AuthHandler) Me(c *gin.Context) {
	token := h.sessions.Token(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, api.UnauthenticatedResponse{Authenticated: false})
		return
	}
	user, err := h.auth.ValidateSession(c.Request.Context(), token)
	if err != nil {
		h.sessions.Cookies().Clear(c)
		c.JSON(http.StatusUnauthorized, api.UnauthenticatedResponse{Authenticated: false})
		return
	}
	c.JSON(http.StatusOK, api.AuthUserResponse{ID: user.ID, Email: user.Email, Authenticated: true})
}

// CheckPassword tells the client whether to show a "set password" or "enter password" form.
func (h *AuthHandler) CheckPassword(c *gin.Context) {
	var req dto.EmailReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Email is required"})
		return
	}
	has, err := h.auth.UserHasPassword(c.Request.Context(), req.Email)
	if err != nil {
		slog.Error("password check failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Password check failed"})
		return
	}
	c.JSON(http.StatusOK, api.HasPasswordResponse{HasPassword: has})
}

// CreateUser records a passwordless user. An already registered email is reported, not rejected.
func (h *AuthHandler) CreateUser(c *gin.Context) {
	var req dto.EmailReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Email is required"})
		return
	}
	user, created, err := h.auth.EnsureUser(c.Request.Context(), req.Email)
	if err != nil {
		slog.Error("saving user failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to save user"})
		return
	}
	if !created {
		c.JSON(http.StatusOK, api.MessageResponse{Message: "User already exists"})
		return
	}
	c.JSON(http.StatusOK, api.UserResponse{ID: user.ID, Email: user.Email})
}

// IssueToken exchanges the current session for a bearer token.
// The token names the session, so logging out revokes it as well.
func (h *AuthHandler) IssueToken(c *gin.Context) {
	user, ok := h.sessions.Authorize(c, "")
	if !ok {
		return
	}
	if h.issuer == nil {
		c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: "Bearer tokens are not enabled"})
		return
	}

	sessionToken := h.sessions.Token(c)
	sessionExpiresAt, err := h.auth.SessionExpiry(c.Request.Context(), sessionToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Invalid or expired session"})
		return
	}

	token, expiresAt, err := h.issuer.Issue(sessionToken, user, sessionExpiresAt)
	if errors.Is(err, jwtauth.ErrDisabled) {
		c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: "Bearer tokens are not enabled"})
		return
	}
	if err != nil {
		slog.Error("token issuance failed", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to issue token"})
		return
	}
	c.JSON(http.StatusOK, api.TokenResponse{Token: token, ExpiresAt: expiresAt})
}

// startSession creates a session for user and sets the cookie. It writes a 500 on failure.
func (h *AuthHandler) startSession(c *gin.Context, user *entity.User, failure string) bool {
	token, _, err := h.auth.CreateSession(c.Request.Context(), user.ID)
	if err != nil {
		slog.Error("session creation failed", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: failure})
		return false
	}
	h.sessions.Cookies().Set(c, token)
	return true
}
