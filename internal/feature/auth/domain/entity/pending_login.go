package entity

import "time"

// OTP delivery channels.
const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

// PendingLogin is the state between a successful password check and OTP confirmation.
// ID is the opaque reference handed to the client in the temp_session_id cookie.
type PendingLogin struct {
	ID     string `gorm:"primaryKey;size:36"`
	UserID string `gorm:"uniqueIndex;size:36;not null"`

	// Channel and Destination record where the code was delivered so a resend goes to the same place.
	Channel     string `gorm:"size:10;not null"`
	Destination string `gorm:"size:255;not null"`

	OTPHash      string    `gorm:"size:64;not null"`
	OTPExpiresAt time.Time `gorm:"index;not null"`
	CreatedAt    time.Time
}
