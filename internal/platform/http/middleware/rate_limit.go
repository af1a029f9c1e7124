package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"tend_backend/internal/api"
	"tend_backend/internal/platform/sessionmw"
	"tend_backend/internal/shared/ratelimiter"
)

// RateLimit rejects callers over budget with 429. Authenticated callers are
// keyed by user id, everyone else by client IP. A limiter failure lets the call through.
func RateLimit(l ratelimiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if user, ok := sessionmw.UserFrom(c); ok {
			key = "user:" + user.ID
		}

		ok, err := l.Allow(c.Request.Context(), key)
		if err != nil {
			slog.Warn("rate limiter unavailable", "error", err, "key", key)
			c.Next()
			return
		}
		if !ok {
			slog.Warn("rate limit exceeded", "key", key, "path", c.FullPath())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, api.ErrorResponse{Error: "Too many requests"})
			return
		}
		c.Next()
	}
}
