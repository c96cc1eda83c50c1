// Command reaper deletes expired pending registrations, pending logins and sessions.
// It is meant to run periodically, e.g. from cron.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"auth_backend/internal/app/config"
	"auth_backend/internal/app/di"
	"auth_backend/internal/app/logging"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel, "auth-reaper")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := di.OpenDatabase(cfg)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	rdb := di.OpenRedis(ctx, cfg)
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}

	repos := di.NewRepositories(rdb, db, 0)
	report, err := di.Reap(ctx, repos, time.Now())
	if err != nil {
		slog.Error("reap failed", "error", err)
		os.Exit(1)
	}
	slog.Info("reap ok",
		"registrations", report.Registrations,
		"logins", report.Logins,
		"sessions", report.Sessions,
	)
}
