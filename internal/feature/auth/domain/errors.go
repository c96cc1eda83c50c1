// Package domain defines domain-level errors for the auth feature.
package domain

import (
	"errors"
	"fmt"
)

// Error kinds. The transport layer maps each kind to one HTTP status with errors.Is,
// so every error returned by the usecases wraps exactly one of these.
var (
	// ErrValidation indicates malformed input, e.g. a bad identifier or mismatched passwords.
	ErrValidation = errors.New("validation failed")

	// ErrConflict indicates that the email or phone is already bound to a user.
	ErrConflict = errors.New("conflict")

	// ErrUnauthenticated indicates a missing, unknown or expired reference or session token.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrOTPInvalid covers both a wrong code and an expired code.
	// The two cases are deliberately not distinguished for the client.
	ErrOTPInvalid = errors.New("otp is invalid or expired")

	// ErrForbidden indicates a role or approval gate refused the caller.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound indicates that the addressed entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyApproved is returned when approving a user twice.
	ErrAlreadyApproved = errors.New("user is already approved")

	// ErrDownstream indicates that a required notification could not be delivered.
	ErrDownstream = errors.New("downstream failure")
)

// Specific errors, each wrapping one kind.
var (
	ErrPasswordMismatch   = fmt.Errorf("%w: password and confirmation do not match", ErrValidation)
	ErrInvalidIdentifier  = fmt.Errorf("%w: identifier is neither an email nor a phone number", ErrValidation)
	ErrEmailOrPhoneTaken  = fmt.Errorf("%w: email or phone already registered", ErrConflict)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrUnauthenticated)
	ErrAccountDisabled    = fmt.Errorf("%w: account is disabled", ErrUnauthenticated)
	ErrNotApproved        = fmt.Errorf("%w: account is not approved yet", ErrForbidden)
	ErrUserNotFound       = fmt.Errorf("%w: user", ErrNotFound)
	ErrOTPDelivery        = fmt.Errorf("%w: could not deliver otp", ErrDownstream)
)
