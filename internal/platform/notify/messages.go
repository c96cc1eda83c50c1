// Package notify delivers OTP codes and account notifications by email and SMS.
package notify

import (
	"fmt"
	"strings"
	"time"

	"auth_backend/internal/shared/notification"
)

// Message is a rendered plain-text email.
type Message struct {
	Subject string
	Body    string
}

// OTPMessage renders the email carrying a one-time code.
func OTPMessage(purpose notification.Purpose, code string, ttl time.Duration) Message {
	action := "sign in to your account"
	subject := "Your login code"
	if purpose == notification.PurposeRegistration {
		action = "complete your registration"
		subject = "Your registration code"
	}

	var b strings.Builder
	b.WriteString("Hello,\n\n")
	fmt.Fprintf(&b, "Use the code %s to %s.\n\n", code, action)
	fmt.Fprintf(&b, "The code expires in %s.\n\n", formatTTL(ttl))
	b.WriteString("If you did not request this, you can ignore this email.\n")
	return Message{Subject: subject, Body: b.String()}
}

// OTPText renders the SMS carrying a one-time code.
func OTPText(code string, ttl time.Duration) string {
	return fmt.Sprintf("Your verification code is %s. It expires in %s.", code, formatTTL(ttl))
}

// ApprovalMessage renders the email telling a user their account was approved.
func ApprovalMessage(ev notification.Event) Message {
	name := ev.Name
	if name == "" {
		name = "there"
	}
	return Message{
		Subject: "Your account has been approved",
		Body: fmt.Sprintf("Hello %s,\n\n"+
			"An administrator has approved your account. You can now sign in.\n", name),
	}
}

// AdminRegistrationMessage renders the email telling the administrator a user awaits approval.
func AdminRegistrationMessage(ev notification.Event) Message {
	var b strings.Builder
	b.WriteString("Hello,\n\n")
	b.WriteString("A new user has completed registration and is waiting for approval:\n\n")
	fmt.Fprintf(&b, "  Name:       %s\n", ev.Name)
	fmt.Fprintf(&b, "  Email:      %s\n", ev.Email)
	fmt.Fprintf(&b, "  Phone:      %s\n", ev.Phone)
	fmt.Fprintf(&b, "  Registered: %s\n", ev.OccurredAt.UTC().Format(time.RFC3339))
	b.WriteString("\nApprove the account with POST /auth/admin/approve-user.\n")
	return Message{Subject: "New user awaiting approval", Body: b.String()}
}

func formatTTL(ttl time.Duration) string {
	if ttl%time.Minute == 0 {
		m := int(ttl / time.Minute)
		if m == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", m)
	}
	return ttl.String()
}
