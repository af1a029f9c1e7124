// Package sessionmw connects HTTP requests to the access guard.
// It extracts session tokens, maps guard failures to responses and manages the session cookie.
package sessionmw

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// CookieName is the name of the session cookie.
const CookieName = "session"

// Cookies writes and clears the session cookie.
type Cookies struct {
	// Secure marks the cookie HTTPS-only. Enabled in production.
	Secure bool
	// MaxAge should match the session TTL.
	MaxAge time.Duration
}

// Set issues the session cookie for token.
func (c Cookies) Set(ctx *gin.Context, token string) {
	ctx.SetSameSite(http.SameSiteStrictMode)
	ctx.SetCookie(CookieName, token, int(c.MaxAge.Seconds()), "/", "", c.Secure, true)
}

// Clear expires the session cookie on the client.
func (c Cookies) Clear(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteStrictMode)
	ctx.SetCookie(CookieName, "", -1, "/", "", c.Secure, true)
}
