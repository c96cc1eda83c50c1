// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authadapters "auth_backend/internal/feature/auth/adapters"
	"auth_backend/internal/feature/auth/usecase"
	"auth_backend/internal/platform/cache"
	"auth_backend/internal/platform/session"
)

// Repositories groups the stores used by the auth usecases.
type Repositories struct {
	Users         usecase.UserRepository
	Registrations usecase.RegistrationRepository
	Logins        usecase.LoginChallengeRepository
	Sessions      usecase.SessionRepository
}

// NewSessionRepository creates a SessionRepository implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to the relational database.
func NewSessionRepository(rdb *redis.Client, db *gorm.DB) usecase.SessionRepository {
	if rdb != nil {
		return session.NewSessionRedis(rdb, "session")
	}
	return authadapters.NewSessionGorm(db)
}

// NewUserRepository returns the gorm user store, wrapped in a read-through
// Redis cache when rdb is non-nil.
func NewUserRepository(rdb *redis.Client, db *gorm.DB, cacheTTL time.Duration) usecase.UserRepository {
	users := authadapters.NewUserGorm(db)
	if rdb == nil {
		return users
	}
	return cache.NewCachingUserRepository(rdb, cacheTTL, users, "users")
}

// NewRepositories wires every store. rdb may be nil.
func NewRepositories(rdb *redis.Client, db *gorm.DB, cacheTTL time.Duration) Repositories {
	return Repositories{
		Users:         NewUserRepository(rdb, db, cacheTTL),
		Registrations: authadapters.NewRegistrationGorm(db),
		Logins:        authadapters.NewLoginChallengeGorm(db),
		Sessions:      NewSessionRepository(rdb, db),
	}
}
