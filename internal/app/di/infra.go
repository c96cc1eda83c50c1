package di

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"auth_backend/internal/app/config"
	authadapters "auth_backend/internal/feature/auth/adapters"
	"auth_backend/internal/platform/db"
	platformredis "auth_backend/internal/platform/redis"
)

// OpenDatabase connects to PostgreSQL (or SQLite) and runs migrations when enabled.
func OpenDatabase(cfg config.Config) (*gorm.DB, error) {
	gdb, err := db.Open(db.Config{
		URL:            cfg.DatabaseURL,
		SQLitePath:     cfg.SQLitePath,
		ConnectTimeout: cfg.DBConnectTimeout,
		Debug:          !cfg.IsProduction() && cfg.LogLevel == "debug",
	})
	if err != nil {
		return nil, err
	}
	if cfg.RunMigrations {
		if err := authadapters.Migrate(gdb); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
		slog.Info("database migrated")
	}
	return gdb, nil
}

// OpenRedis returns a connected client, or nil when Redis is not configured
// or not reachable. The service then runs on the relational stores alone.
func OpenRedis(ctx context.Context, cfg config.Config) *redis.Client {
	if cfg.RedisHost == "" {
		return nil
	}
	rdb, err := platformredis.NewRedisClient(ctx, platformredis.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		slog.Warn("redis unavailable, running without it", "error", err)
		return nil
	}
	return rdb
}
