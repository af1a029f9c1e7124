// Package ratelimiter limits how often a caller may hit expensive endpoints.
package ratelimiter

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// Limiter decides whether one more call for key fits in the current budget.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RedisLimiter is a fixed-window counter shared by every server instance.
type RedisLimiter struct {
	rdb       redis.Cmdable
	limit     int64
	window    time.Duration
	namespace string
	now       func() time.Time
}

// NewRedisLimiter allows limit calls per key in each window.
func NewRedisLimiter(rdb redis.Cmdable, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		rdb:       rdb,
		limit:     int64(limit),
		window:    window,
		namespace: "ratelimit",
		now:       time.Now,
	}
}

// Allow counts the call and reports whether it is within the limit.
// The counter expires with its window, so no cleanup is needed.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := l.key(key)
	n, err := l.rdb.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("incr %s: %w", k, err)
	}
	if n == 1 {
		if err := l.rdb.Expire(ctx, k, l.window).Err(); err != nil {
			return false, fmt.Errorf("expire %s: %w", k, err)
		}
	}
	return n <= l.limit, nil
}

func (l *RedisLimiter) key(key string) string {
	bucket := l.now().UnixNano() / int64(l.window)
	return l.namespace + ":" + key + ":" + strconv.FormatInt(bucket, 10)
}

// LocalLimiter keeps a token bucket per key in process memory.
// It serves single-instance deployments that run without Redis.
type LocalLimiter struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	idle    time.Duration
	buckets map[string]*bucket
	now     func() time.Time
}

type bucket struct {
	lim  *rate.Limiter
	seen time.Time
}

// NewLocalLimiter allows limit calls per window per key, refilled evenly.
func NewLocalLimiter(limit int, window time.Duration) *LocalLimiter {
	limit = max(limit, 1)
	return &LocalLimiter{
		limit:   rate.Every(window / time.Duration(limit)),
		burst:   limit,
		idle:    2 * window,
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

// Allow reports whether key still has a token. It never fails.
func (l *LocalLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok {
		l.evict(now)
		b = &bucket{lim: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[key] = b
	}
	b.seen = now
	return b.lim.AllowN(now, 1), nil
}

// evict drops buckets that have been idle long enough to be full again.
func (l *LocalLimiter) evict(now time.Time) {
	for k, b := range l.buckets {
		if now.Sub(b.seen) > l.idle {
			delete(l.buckets, k)
		}
	}
}

var (
	_ Limiter = (*RedisLimiter)(nil)
	_ Limiter = (*LocalLimiter)(nil)
)
