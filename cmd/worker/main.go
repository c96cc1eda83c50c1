// Command worker consumes the notification queue and sends the admin and approval emails.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"auth_backend/internal/app/config"
	"auth_backend/internal/app/di"
	"auth_backend/internal/app/logging"
	"auth_backend/internal/platform/notify"
	"auth_backend/internal/platform/queue"
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
	logging.Setup(cfg.LogLevel, "auth-worker")

	if cfg.RabbitMQURL == "" {
		slog.Error("RABBITMQ_URL must be set for the worker")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	notifier := notify.NewEventNotifier(di.NewMailer(cfg), cfg.AdminEmail)
	consumer := queue.NewConsumer(cfg.RabbitMQURL, cfg.NotifyQueue, notifier, di.NewNotifyLimiter(cfg))

	slog.Info("notification worker started", "queue", cfg.NotifyQueue)
	if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("notification worker stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("notification worker stopped")
}
