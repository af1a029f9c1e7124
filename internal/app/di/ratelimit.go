package di

import (
	"time"

	"github.com/redis/go-redis/v9"

	"tend_backend/internal/shared/ratelimiter"
)

// NewLimiter returns a limiter of perMinute calls per key: shared through Redis
// when available, per process otherwise.
func NewLimiter(rdb *redis.Client, perMinute int) ratelimiter.Limiter {
	if rdb != nil {
		return ratelimiter.NewRedisLimiter(rdb, perMinute, time.Minute)
	}
	return ratelimiter.NewLocalLimiter(perMinute, time.Minute)
}
