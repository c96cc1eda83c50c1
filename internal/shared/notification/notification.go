// Package notification holds the message types shared by the auth usecases,
// the delivery adapters and the notification queue.
package notification

import "time"

// Purpose tells the sender which template an OTP message uses.
type Purpose string

const (
	PurposeRegistration Purpose = "registration"
	PurposeLogin        Purpose = "login"
)

// EventType names a best-effort notification.
type EventType string

const (
	// EventUserRegistered tells the admin mailbox that a user is waiting for approval.
	EventUserRegistered EventType = "user.registered"
	// EventUserApproved tells the user that the account can now log in.
	EventUserApproved EventType = "user.approved"
)

// Event is the payload of a best-effort notification.
// It carries enough to render the message without reading the database.
type Event struct {
	Type       EventType `json:"type"`
	UserID     string    `json:"user_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	OccurredAt time.Time `json:"occurred_at"`
}
