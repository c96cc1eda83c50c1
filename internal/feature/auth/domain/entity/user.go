// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// Role values stored on User.Role.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered account.
// A user is created only after the registration OTP has been confirmed and
// cannot log in until an admin approves it.
type User struct {
	// ID is the unique identifier for the user (UUID string).
	ID string `gorm:"primaryKey;size:36"`

	// Name is the display name given at registration.
	Name string `gorm:"size:100;not null"`

	// Email must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Phone must be unique across all users.
	Phone string `gorm:"uniqueIndex;size:20;not null"`

	// PasswordHash is the bcrypt hash of the password.
	// This should never store plaintext passwords.
	PasswordHash string `gorm:"size:255;not null"`

	Role       string `gorm:"size:50;not null;default:user"`
	IsActive   bool   `gorm:"not null"`
	IsApproved bool   `gorm:"not null;default:false;index"`

	// ApprovedAt and ApprovedBy are set by the admin gate.
	ApprovedAt *time.Time
	ApprovedBy *string `gorm:"size:36"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
