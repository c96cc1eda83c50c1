package entity

import "time"

// PendingRegistration holds a registration that is waiting for OTP confirmation.
// ID is the opaque reference handed to the client in the temp_registration_id cookie.
type PendingRegistration struct {
	ID           string `gorm:"primaryKey;size:36"`
	Name         string `gorm:"size:100;not null"`
	Email        string `gorm:"uniqueIndex;size:255;not null"`
	Phone        string `gorm:"uniqueIndex;size:20;not null"`
	PasswordHash string `gorm:"size:255;not null"`

	// OTPHash is the SHA-256 hex digest of the code that was sent.
	OTPHash      string    `gorm:"size:64;not null"`
	OTPExpiresAt time.Time `gorm:"index;not null"`
	CreatedAt    time.Time
}

// NewUser builds the unapproved user that a confirmed registration turns into.
func (p *PendingRegistration) NewUser(id string) *User {
	return &User{
		ID:           id,
		Name:         p.Name,
		Email:        p.Email,
		Phone:        p.Phone,
		PasswordHash: p.PasswordHash,
		Role:         RoleUser,
		IsActive:     true,
		IsApproved:   false,
	}
}
