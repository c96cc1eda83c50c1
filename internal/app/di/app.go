package di

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"auth_backend/internal/app/config"
	"auth_backend/internal/feature/auth/domain"
	"auth_backend/internal/feature/auth/domain/entity"
	"auth_backend/internal/feature/auth/otp"
	"auth_backend/internal/feature/auth/transport/cookie"
	authhandler "auth_backend/internal/feature/auth/transport/handler"
	"auth_backend/internal/feature/auth/usecase"
	"auth_backend/internal/platform/http/handler"
	"auth_backend/internal/platform/security"
)

const userCacheTTL = 5 * time.Minute

// Container holds the wired application graph.
type Container struct {
	Repos        Repositories
	AuthUC       *usecase.AuthUsecase
	AdminUC      *usecase.AdminUsecase
	AuthHandler  *authhandler.AuthHandler
	AdminHandler *authhandler.AdminHandler
	Checks       map[string]handler.Check
	Hasher       *security.Hasher

	dispatcher Dispatcher
}

// Collaborators lets callers replace the outbound side of the graph. Nil fields
// are built from Config.
type Collaborators struct {
	Sender     usecase.OTPSender
	Dispatcher Dispatcher
}

// NewContainer wires repositories, usecases and handlers. rdb may be nil.
func NewContainer(cfg config.Config, db *gorm.DB, rdb *redis.Client, collab Collaborators) *Container {
	repos := NewRepositories(rdb, db, userCacheTTL)

	mailer := NewMailer(cfg)
	sender := collab.Sender
	if sender == nil {
		sender = NewOTPSender(cfg, mailer)
	}
	dispatcher := collab.Dispatcher
	if dispatcher == nil {
		dispatcher = NewEventDispatcher(cfg, mailer)
	}
	hasher := security.NewHasher(cfg.BcryptCost)

	authUC := usecase.NewAuthUsecase(usecase.AuthDeps{
		Users:         repos.Users,
		Registrations: repos.Registrations,
		Logins:        repos.Logins,
		Sessions:      repos.Sessions,
		OTP:           otp.NewEngine(cfg.OTPTTL),
		Hasher:        hasher,
		Sender:        sender,
		Events:        dispatcher,
	}, usecase.Options{SessionTTL: cfg.SessionTTL})
	adminUC := usecase.NewAdminUsecase(repos.Users, repos.Sessions, dispatcher, nil)

	jar := cookie.NewJar(cookie.Config{
		Secure:     cfg.CookieSecure,
		PendingTTL: cfg.PendingCookieTTL,
		SessionTTL: cfg.SessionTTL,
	})

	return &Container{
		Repos:        repos,
		AuthUC:       authUC,
		AdminUC:      adminUC,
		AuthHandler:  authhandler.NewAuthHandler(authUC, jar),
		AdminHandler: authhandler.NewAdminHandler(adminUC),
		Checks:       HealthChecks(db, rdb),
		Hasher:       hasher,
		dispatcher:   dispatcher,
	}
}

// Close releases the notification dispatcher.
func (c *Container) Close() error {
	return c.dispatcher.Close()
}

// HealthChecks returns the dependency probes exposed on /healthz.
func HealthChecks(db *gorm.DB, rdb *redis.Client) map[string]handler.Check {
	checks := map[string]handler.Check{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}
	}
	return checks
}

// AdminSeed describes the account created by BootstrapAdmin.
type AdminSeed struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// BootstrapAdmin creates an approved admin unless a user with seed.Email exists.
// It reports whether a user was created.
func BootstrapAdmin(ctx context.Context, users usecase.UserRepository, hasher usecase.PasswordHasher, seed AdminSeed, now time.Time) (bool, error) {
	_, err := users.FindByEmail(ctx, seed.Email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return false, fmt.Errorf("failed to look up bootstrap admin: %w", err)
	}

	hash, err := hasher.Hash(seed.Password)
	if err != nil {
		return false, fmt.Errorf("failed to hash bootstrap admin password: %w", err)
	}
	id := uuid.NewString()
	admin := &entity.User{
		ID:           id,
		Name:         seed.Name,
		Email:        seed.Email,
		Phone:        seed.Phone,
		PasswordHash: hash,
		Role:         entity.RoleAdmin,
		IsActive:     true,
		IsApproved:   true,
		ApprovedAt:   &now,
		ApprovedBy:   &id,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := users.Create(ctx, admin); err != nil {
		return false, fmt.Errorf("failed to create bootstrap admin: %w", err)
	}
	slog.Info("bootstrap admin created", "user_id", admin.ID, "email", admin.Email)
	return true, nil
}
