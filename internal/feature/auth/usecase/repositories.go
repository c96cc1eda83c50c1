package usecase

import (
	"context"
	"time"

	"auth_backend/internal/feature/auth/domain/entity"
)

// UserRepository abstracts the credential store.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user. It returns domain.ErrEmailOrPhoneTaken on a uniqueness violation.
	Create(ctx context.Context, user *entity.User) error

	// FindByID, FindByEmail and FindByPhone return domain.ErrUserNotFound when nothing matches.
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByPhone(ctx context.Context, phone string) (*entity.User, error)

	// ExistsByEmailOrPhone reports whether either value is bound to a user.
	ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error)

	// ListPending returns unapproved users, newest first.
	ListPending(ctx context.Context) ([]entity.User, error)

	// ListAll returns every user, newest first.
	ListAll(ctx context.Context) ([]entity.User, error)

	// Approve marks the user approved by adminID at the given time.
	Approve(ctx context.Context, id, adminID string, at time.Time) error

	// Delete removes the user together with its pending logins and sessions.
	Delete(ctx context.Context, id string) error
}

// RegistrationRepository stores registrations awaiting OTP confirmation.
type RegistrationRepository interface {
	// Replace removes every registration sharing reg's email or phone and inserts reg,
	// as a single atomic unit.
	Replace(ctx context.Context, reg *entity.PendingRegistration) error

	// FindByID returns ErrRegistrationNotFound for an unknown reference.
	FindByID(ctx context.Context, id string) (*entity.PendingRegistration, error)

	// RotateOTP replaces the code hash and expiry in place.
	RotateOTP(ctx context.Context, id, otpHash string, expiresAt time.Time) error

	// Promote deletes the registration and creates user atomically. It returns
	// ErrRegistrationNotFound if the registration was consumed concurrently.
	Promote(ctx context.Context, id string, user *entity.User) error

	// DeleteExpired removes registrations whose code expired before now.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// LoginChallengeRepository stores logins awaiting OTP confirmation.
type LoginChallengeRepository interface {
	// Replace removes any challenge for pl.UserID and inserts pl atomically.
	Replace(ctx context.Context, pl *entity.PendingLogin) error

	// FindByID returns ErrLoginChallengeNotFound for an unknown reference.
	FindByID(ctx context.Context, id string) (*entity.PendingLogin, error)

	// RotateOTP replaces the code hash and expiry in place.
	RotateOTP(ctx context.Context, id, otpHash string, expiresAt time.Time) error

	// Consume deletes the challenge. It returns ErrLoginChallengeNotFound if
	// nothing was deleted, so only one caller can consume a given reference.
	Consume(ctx context.Context, id string) error

	// DeleteExpired removes challenges whose code expired before now.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// SessionRepository stores authenticated sessions.
type SessionRepository interface {
	// Replace removes every session of s.UserID and stores s atomically.
	Replace(ctx context.Context, s *entity.Session) error

	// FindByToken returns ErrSessionNotFound for an unknown token.
	FindByToken(ctx context.Context, token string) (*entity.Session, error)

	// DeleteByToken removes the session if it exists; a missing session is not an error.
	DeleteByToken(ctx context.Context, token string) error

	// DeleteByUserID removes every session of the user.
	DeleteByUserID(ctx context.Context, userID string) error

	// DeleteExpired removes sessions that expired before now.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
