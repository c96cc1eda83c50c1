package notify

import (
	"context"
	"fmt"
	"log/slog"

	"auth_backend/internal/shared/notification"
)

// EventNotifier turns account events into emails.
type EventNotifier struct {
	mailer     Mailer
	adminEmail string
}

// NewEventNotifier creates a new EventNotifier. An empty adminEmail disables
// the new-registration email.
func NewEventNotifier(mailer Mailer, adminEmail string) *EventNotifier {
	return &EventNotifier{mailer: mailer, adminEmail: adminEmail}
}

// Handle sends the email that corresponds to ev.
func (n *EventNotifier) Handle(ctx context.Context, ev notification.Event) error {
	switch ev.Type {
	case notification.EventUserRegistered:
		if n.adminEmail == "" {
			slog.Warn("admin email not configured, skipping registration notice", "user_id", ev.UserID)
			return nil
		}
		return n.mailer.Send(ctx, n.adminEmail, AdminRegistrationMessage(ev))
	case notification.EventUserApproved:
		if ev.Email == "" {
			return fmt.Errorf("approval event for user %s has no email", ev.UserID)
		}
		return n.mailer.Send(ctx, ev.Email, ApprovalMessage(ev))
	default:
		return fmt.Errorf("unknown event type %q", ev.Type)
	}
}
