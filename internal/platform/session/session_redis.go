// Package session provides a Redis-backed session store.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"auth_backend/internal/feature/auth/domain/entity"
	"auth_backend/internal/feature/auth/usecase"
)

// maxReplaceAttempts bounds the optimistic-lock retries in Replace.
const maxReplaceAttempts = 5

// SessionRedis implements usecase.SessionRepository using Redis.
//
// Keys:
//
//	<prefix>:token:<token>  JSON encoded entity.Session, expiring with the session
//	<prefix>:user:<userID>  token of the user's current session
type SessionRedis struct {
	client *redis.Client
	prefix string
}

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

// tokenKey returns the Redis key for a session.
func (r *SessionRedis) tokenKey(token string) string {
	return fmt.Sprintf("%s:token:%s", r.prefix, token)
}

// userKey returns the Redis key pointing at a user's session.
func (r *SessionRedis) userKey(userID string) string {
	return fmt.Sprintf("%s:user:%s", r.prefix, userID)
}

// Replace stores s and drops the user's previous session.
// The user key is WATCHed so that two concurrent logins cannot both keep a session.
func (r *SessionRedis) Replace(ctx context.Context, s *entity.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}

	userKey := r.userKey(s.UserID)
	txf := func(tx *redis.Tx) error {
		old, err := tx.Get(ctx, userKey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if old != "" {
				pipe.Del(ctx, r.tokenKey(old))
			}
			pipe.Set(ctx, r.tokenKey(s.Token), data, ttl)
			pipe.Set(ctx, userKey, s.Token, ttl)
			return nil
		})
		return err
	}

	for range maxReplaceAttempts {
		err := r.client.Watch(ctx, txf, userKey)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("failed to replace session for user %s: too much contention", s.UserID)
}

// FindByToken retrieves a session by its token.
func (r *SessionRedis) FindByToken(ctx context.Context, token string) (*entity.Session, error) {
	data, err := r.client.Get(ctx, r.tokenKey(token)).Bytes()
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

// DeleteByToken removes the session and, if it is still the user's current one, the user pointer.
func (r *SessionRedis) DeleteByToken(ctx context.Context, token string) error {
	session, err := r.FindByToken(ctx, token)
	if errors.Is(err, usecase.ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	userKey := r.userKey(session.UserID)
	if current, err := r.client.Get(ctx, userKey).Result(); err == nil && current == token {
		if err := r.client.Del(ctx, userKey).Err(); err != nil {
			return err
		}
	}
	return r.client.Del(ctx, r.tokenKey(token)).Err()
}

// DeleteByUserID removes the user's session, if any.
func (r *SessionRedis) DeleteByUserID(ctx context.Context, userID string) error {
	userKey := r.userKey(userID)
	token, err := r.client.Get(ctx, userKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return err
	}
	return r.client.Del(ctx, r.tokenKey(token), userKey).Err()
}

// DeleteExpired is a no-op: Redis expires keys through their TTL.
func (r *SessionRedis) DeleteExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}
