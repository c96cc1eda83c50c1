package usecase

import (
	"context"
	"time"

	"auth_backend/internal/shared/notification"
)

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns nil when password matches hash.
	Compare(hash, password string) error
}

// OTPSender delivers a code on the critical path; a failure aborts the transition.
type OTPSender interface {
	SendOTP(ctx context.Context, channel, destination, code string, purpose notification.Purpose) error
}

// EventDispatcher hands off best-effort notifications.
// Errors are logged by the caller and never fail the triggering transition.
type EventDispatcher interface {
	Dispatch(ctx context.Context, ev notification.Event) error
}

// OTPEngine generates codes and computes their expiry.
type OTPEngine interface {
	Generate() (string, error)
	Expiry(now time.Time) time.Time
}
