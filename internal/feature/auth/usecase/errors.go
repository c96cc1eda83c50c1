// Package usecase implements the business logic for the auth feature.
package usecase

import (
	"fmt"

	"auth_backend/internal/feature/auth/domain"
)

// Errors returned by the ephemeral stores. An unknown or consumed reference is
// indistinguishable from one that never existed, so all of them are Unauthenticated.
var (
	// ErrRegistrationNotFound is returned when a registration reference is unknown.
	ErrRegistrationNotFound = fmt.Errorf("%w: registration not found", domain.ErrUnauthenticated)

	// ErrLoginChallengeNotFound is returned when a login reference is unknown.
	ErrLoginChallengeNotFound = fmt.Errorf("%w: login challenge not found", domain.ErrUnauthenticated)

	// ErrSessionNotFound is returned when a session token is unknown.
	ErrSessionNotFound = fmt.Errorf("%w: session not found", domain.ErrUnauthenticated)

	// ErrSessionExpired is returned when a session token is past its expiry.
	ErrSessionExpired = fmt.Errorf("%w: session has expired", domain.ErrUnauthenticated)
)
