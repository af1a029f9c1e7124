// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"tend_backend/internal/feature/northstar/domain/entity"
	"tend_backend/internal/feature/northstar/usecase"
)

// CachingNorthStarRepository decorates a NorthStarRepository with Redis caching.
// Reads go through the cache; every write drops the owner's entry.
type CachingNorthStarRepository struct {
	inner     usecase.NorthStarRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// Compile-time check to ensure CachingNorthStarRepository implements NorthStarRepository.
var _ usecase.NorthStarRepository = (*CachingNorthStarRepository)(nil)

// NewCachingNorthStarRepository decorates a NorthStarRepository with Redis caching.
// If ttl is 0, it defaults to 10 minutes. If namespace is empty, it uses "northstar".
func NewCachingNorthStarRepository(rdb *redis.Client, ttl time.Duration, inner usecase.NorthStarRepository, namespace string) *CachingNorthStarRepository {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if namespace == "" {
		namespace = "northstar"
	}
	return &CachingNorthStarRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// FindByOwner checks the cache first and falls back to the inner repository.
// A missing north star is not cached.
func (c *CachingNorthStarRepository) FindByOwner(ctx context.Context, ownerEmail string) (*entity.NorthStar, error) {
	if c.rdb == nil {
		return c.inner.FindByOwner(ctx, ownerEmail)
	}

	key := c.cacheKey(ownerEmail)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.NorthStar
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		// Corrupted entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.FindByOwner(ctx, ownerEmail)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// Upsert writes through to the inner repository and drops the cached entry.
func (c *CachingNorthStarRepository) Upsert(ctx context.Context, ns *entity.NorthStar) (*entity.NorthStar, error) {
	out, err := c.inner.Upsert(ctx, ns)
	if err != nil {
		return nil, err
	}
	_ = c.Invalidate(ctx, ns.OwnerEmail)
	return out, nil
}

// Invalidate drops the cached north star of ownerEmail. Used after writes that
// bypass this repository, such as account deletion.
func (c *CachingNorthStarRepository) Invalidate(ctx context.Context, ownerEmail string) error {
	if c.rdb == nil {
		return nil
	}
	if err := c.rdb.Del(ctx, c.cacheKey(ownerEmail)).Err(); err != nil {
		slog.Warn("north star cache invalidation failed", "error", err)
		return err
	}
	return nil
}

func (c *CachingNorthStarRepository) cacheKey(ownerEmail string) string {
	return c.namespace + ":" + safe(ownerEmail)
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
