// Package session provides a Redis-backed session store.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"tend_backend/internal/feature/auth/domain/entity"
	"tend_backend/internal/feature/auth/usecase"
)

// SessionRedis implements usecase.SessionRepository using Redis.
// Each session lives under its own key with a TTL matching its expiry, so Redis evicts expired sessions itself.
type SessionRedis struct {
	client *redis.Client
	prefix string
}

// Compile-time check to ensure SessionRedis implements SessionRepository.
var _ usecase.SessionRepository = (*SessionRedis)(nil)

// NewSessionRedis creates a new SessionRedis instance.
func NewSessionRedis(client *redis.Client, prefix string) *SessionRedis {
	if prefix == "" {
		prefix = "session"
	}
	return &SessionRedis{
		client: client,
		prefix: prefix,
	}
}

// sessionKey returns the Redis key for a session.
func (r *SessionRedis) sessionKey(token string) string {
	return fmt.Sprintf("%s:%s", r.prefix, token)
}

// userSessionsKey returns the Redis key for a user's session set.
func (r *SessionRedis) userSessionsKey(userID string) string {
	return fmt.Sprintf("%s:user:%s", r.prefix, userID)
}

// Create persists a new session to Redis.
func (r *SessionRedis) Create(ctx context.Context, session *entity.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session already expired")
	}

	userKey := r.userSessionsKey(session.UserID)
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.sessionKey(session.Token), data, ttl)
		pipe.SAdd(ctx, userKey, session.Token)
		// Every session shares the same TTL, so the newest one outlives the rest of the set.
		pipe.Expire(ctx, userKey, ttl)
		return nil
	})
	return err
}

// FindByToken retrieves a session by its token.
func (r *SessionRedis) FindByToken(ctx context.Context, token string) (*entity.Session, error) {
	data, err := r.client.Get(ctx, r.sessionKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, usecase.ErrSessionNotFound
		}
		return nil, err
	}

	var session entity.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

// Delete removes a session and its entry in the owner's session set.
func (r *SessionRedis) Delete(ctx context.Context, token string) error {
	session, err := r.FindByToken(ctx, token)
	if err != nil {
		return err
	}

	removed, err := r.client.Del(ctx, r.sessionKey(token)).Result()
	if err != nil {
		return err
	}
	if removed == 0 {
		// Expired between the lookup and the delete.
		return usecase.ErrSessionNotFound
	}

	return r.client.SRem(ctx, r.userSessionsKey(session.UserID), token).Err()
}

// DeleteAllByUserID removes every session of a user together with the set that indexes them.
func (r *SessionRedis) DeleteAllByUserID(ctx context.Context, userID string) error {
	userKey := r.userSessionsKey(userID)
	tokens, err := r.client.SMembers(ctx, userKey).Result()
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(tokens)+1)
	for _, token := range tokens {
		keys = append(keys, r.sessionKey(token))
	}
	keys = append(keys, userKey)

	return r.client.Del(ctx, keys...).Err()
}

// DeleteExpired is a no-op: Redis expires session keys through their TTL.
func (r *SessionRedis) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}
