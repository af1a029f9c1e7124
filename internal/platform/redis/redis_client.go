// Package redis builds the optional Redis client used for sessions, caching and rate limits.
package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"tend_backend/internal/platform/config"
)

// NewRedisClient connects and pings. It returns nil, nil when Redis is not configured.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		slog.Error("redis connection failed", "address", cfg.Addr(), "error", err)
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	slog.Info("redis connection successful", "address", cfg.Addr())
	return rdb, nil
}
