package sessionmw

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"tend_backend/internal/api"
	"tend_backend/internal/feature/auth/domain/entity"
	"tend_backend/internal/feature/auth/usecase"
)

// ContextUser is the gin context key holding the authenticated *entity.User.
const ContextUser = "authUser"

// Guard resolves a token to a user, optionally scoped to an owner email.
type Guard interface {
	ValidateUserAccess(ctx context.Context, token, requestedEmail string) (*entity.User, error)
	RequireAuth(ctx context.Context, token string) (*entity.User, error)
}

// BearerParser extracts the session token from a bearer token.
type BearerParser interface {
	ParseSessionToken(tokenStr string) (string, error)
}

// Middleware applies the access guard to gin requests.
type Middleware struct {
	guard   Guard
	bearer  BearerParser
	cookies Cookies
}

// New creates a Middleware. bearer may be nil, in which case only the cookie is consulted.
func New(guard Guard, bearer BearerParser, cookies Cookies) *Middleware {
	return &Middleware{guard: guard, bearer: bearer, cookies: cookies}
}

// Cookies returns the cookie settings used by the middleware.
func (m *Middleware) Cookies() Cookies {
	return m.cookies
}

// Token returns the session token of the request: the session cookie first, then an
// Authorization bearer token. It returns "" when neither yields a token.
func (m *Middleware) Token(c *gin.Context) string {
	if token, err := c.Cookie(CookieName); err == nil && token != "" {
		return token
	}
	if m.bearer == nil {
		return ""
	}
	auth := c.GetHeader("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	token, err := m.bearer.ParseSessionToken(strings.TrimPrefix(auth, "Bearer "))
	if err != nil {
		slog.Debug("bearer token rejected", "error", err, "remote_addr", c.ClientIP())
		// A present but unusable credential is an invalid session, not a missing one.
		return invalidBearer
	}
	return token
}

// invalidBearer never matches a stored session, so the guard reports it as invalid.
const invalidBearer = "invalid-bearer"

// Authorize runs the API variant of the guard for requestedEmail.
// On failure it writes the 401/403 response and returns false.
func (m *Middleware) Authorize(c *gin.Context, requestedEmail string) (*entity.User, bool) {
	user, err := m.guard.ValidateUserAccess(c.Request.Context(), m.Token(c), requestedEmail)
	if err != nil {
		status, msg := Status(err)
		if status == http.StatusForbidden {
			slog.Warn("access denied", "remote_addr", c.ClientIP(), "path", c.Request.URL.Path)
		}
		c.AbortWithStatusJSON(status, api.ErrorResponse{Error: msg})
		return nil, false
	}
	c.Set(ContextUser, user)
	return user, true
}

// Owns checks that user owns a stored record. On mismatch it writes the 403 response and
// returns false. Update and delete handlers call it with the owner read from storage.
func (m *Middleware) Owns(c *gin.Context, user *entity.User, ownerEmail string) bool {
	if err := usecase.CheckOwnership(user, ownerEmail); err != nil {
		status, msg := Status(err)
		slog.Warn("access denied", "remote_addr", c.ClientIP(), "path", c.Request.URL.Path)
		c.AbortWithStatusJSON(status, api.ErrorResponse{Error: msg})
		return false
	}
	return true
}

// RequireAPI is a gin middleware that only admits authenticated requests.
// It does no ownership check; handlers scope their data with Authorize or CheckOwnership.
func (m *Middleware) RequireAPI() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := m.Authorize(c, ""); !ok {
			return
		}
		c.Next()
	}
}

// RequirePage is the page-navigation variant of the guard. Unauthenticated visitors get
// their session cookie cleared and are redirected to the login page with a return path.
func (m *Middleware) RequirePage() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := m.guard.RequireAuth(c.Request.Context(), m.Token(c))
		if err != nil {
			m.cookies.Clear(c)
			c.Redirect(http.StatusFound, LoginRedirect(c.Request.URL))
			c.Abort()
			return
		}
		c.Set(ContextUser, user)
		c.Next()
	}
}

// LoginRedirect builds the login URL that returns the visitor to u afterwards.
func LoginRedirect(u *url.URL) string {
	return "/?" + url.Values{"redirectTo": {u.RequestURI()}}.Encode()
}

// UserFrom returns the user stored by RequireAPI, RequirePage or Authorize.
func UserFrom(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil, false
	}
	user, ok := v.(*entity.User)
	return user, ok && user != nil
}

// Status maps an access guard error to its HTTP status and client message.
func Status(err error) (int, string) {
	switch {
	case errors.Is(err, usecase.ErrAuthenticationRequired):
		return http.StatusUnauthorized, "Authentication required"
	case errors.Is(err, usecase.ErrAccessDenied):
		return http.StatusForbidden, "Access denied"
	default:
		return http.StatusUnauthorized, "Invalid or expired session"
	}
}
