// Package di provides dependency injection factories for creating application components.
package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authadapters "tend_backend/internal/feature/auth/adapters"
	"tend_backend/internal/feature/auth/usecase"
	"tend_backend/internal/platform/session"
)

// NewSessionRepository returns the Redis session store when Redis is available,
// and the sessions table otherwise.
func NewSessionRepository(rdb *redis.Client, db *gorm.DB) usecase.SessionRepository {
	if rdb != nil {
		return session.NewSessionRedis(rdb, "session")
	}
	return authadapters.NewSessionPostgres(db)
}
