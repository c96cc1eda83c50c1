// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"auth_backend/internal/feature/auth/domain/entity"
	"auth_backend/internal/feature/auth/usecase"
)

// DefaultUserTTL is used when NewCachingUserRepository is given a non-positive ttl.
const DefaultUserTTL = 5 * time.Minute

// CachingUserRepository decorates a UserRepository with a Redis read-through
// cache for FindByID, the lookup every authenticated request performs.
// Writes go to the inner repository first and then drop the cached entry.
type CachingUserRepository struct {
	usecase.UserRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.UserRepository = (*CachingUserRepository)(nil)

// NewCachingUserRepository decorates inner with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "users".
func NewCachingUserRepository(rdb *redis.Client, ttl time.Duration, inner usecase.UserRepository, namespace string) *CachingUserRepository {
	if ttl <= 0 {
		ttl = DefaultUserTTL
	}
	if namespace == "" {
		namespace = "users"
	}
	return &CachingUserRepository{
		UserRepository: inner,
		rdb:            rdb,
		ttl:            ttl,
		namespace:      namespace,
	}
}

// FindByID checks the cache first, then falls back to the inner repository.
func (c *CachingUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	if c.rdb == nil {
		return c.UserRepository.FindByID(ctx, id)
	}

	key := c.cacheKey(id)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var u entity.User
		if err := json.Unmarshal(b, &u); err == nil {
			return &u, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	u, err := c.UserRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(u); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return u, nil
}

// Approve updates the inner repository and invalidates the cached user.
func (c *CachingUserRepository) Approve(ctx context.Context, id, adminID string, at time.Time) error {
	if err := c.UserRepository.Approve(ctx, id, adminID, at); err != nil {
		return err
	}
	c.invalidate(ctx, id)
	return nil
}

// Delete removes the user from the inner repository and the cache.
func (c *CachingUserRepository) Delete(ctx context.Context, id string) error {
	if err := c.UserRepository.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, id)
	return nil
}

// invalidate is best effort; a stale entry expires with the TTL.
func (c *CachingUserRepository) invalidate(ctx context.Context, id string) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, c.cacheKey(id)).Err(); err != nil {
		slog.Warn("user cache invalidation failed", "user_id", id, "error", err)
	}
}

func (c *CachingUserRepository) cacheKey(id string) string {
	return fmt.Sprintf("%s:id:%s", c.namespace, safe(id))
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
