package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"auth_backend/internal/app/config"
	"auth_backend/internal/app/di"
	"auth_backend/internal/app/logging"
	"auth_backend/internal/app/router"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel, "auth-server")
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	db, err := di.OpenDatabase(cfg)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	// Redis
	rdb := di.OpenRedis(ctx, cfg)
	if rdb != nil {
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	c := di.NewContainer(cfg, db, rdb, di.Collaborators{})
	defer func() {
		if err := c.Close(); err != nil {
			slog.Error("failed to close notification dispatcher", "error", err)
		}
	}()

	if cfg.BootstrapAdminEnabled() {
		if _, err := di.BootstrapAdmin(ctx, c.Repos.Users, c.Hasher, di.AdminSeed{
			Name:     cfg.AdminBootstrapName,
			Email:    cfg.AdminBootstrapEmail,
			Phone:    cfg.AdminBootstrapPhone,
			Password: cfg.AdminBootstrapPassword,
		}, time.Now()); err != nil {
			slog.Error("admin bootstrap failed", "error", err)
			os.Exit(1)
		}
	}
	if cfg.AdminEmail == "" {
		slog.Warn("ADMIN_EMAIL is not set; registration notifications will be skipped")
	}

	// ルータ生成
	r := router.NewRouter(router.Deps{
		Auth:     c.AuthHandler,
		Admin:    c.AdminHandler,
		Sessions: c.AuthUC,
		Checks:   c.Checks,
		Origins:  cfg.Origins(),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", cfg.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server failed", "error", err)
		}
	case <-ctx.Done():
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
		}
	}
}
