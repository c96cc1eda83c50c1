package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"auth_backend/internal/shared/notification"
)

func TestOTPMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		purpose     notification.Purpose
		wantSubject string
		wantAction  string
	}{
		{"registration", notification.PurposeRegistration, "Your registration code", "complete your registration"},
		{"login", notification.PurposeLogin, "Your login code", "sign in to your account"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			msg := OTPMessage(tt.purpose, "042137", 5*time.Minute)

			assert.Equal(t, tt.wantSubject, msg.Subject)
			assert.Contains(t, msg.Body, "042137")
			assert.Contains(t, msg.Body, tt.wantAction)
			assert.Contains(t, msg.Body, "5 minutes")
		})
	}
}

func TestOTPText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Your verification code is 123456. It expires in 1 minute.", OTPText("123456", time.Minute))
	assert.Contains(t, OTPText("123456", 90*time.Second), "1m30s")
}

func TestApprovalMessage(t *testing.T) {
	t.Parallel()

	msg := ApprovalMessage(notification.Event{Name: "Alice"})
	assert.Contains(t, msg.Body, "Hello Alice")

	msg = ApprovalMessage(notification.Event{})
	assert.Contains(t, msg.Body, "Hello there")
}

func TestAdminRegistrationMessage(t *testing.T) {
	t.Parallel()

	msg := AdminRegistrationMessage(notification.Event{
		Name:       "Alice",
		Email:      "a@x.com",
		Phone:      "0123456789",
		OccurredAt: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC),
	})

	assert.Equal(t, "New user awaiting approval", msg.Subject)
	for _, want := range []string{"Alice", "a@x.com", "0123456789", "2026-05-01T09:00:00Z"} {
		assert.Contains(t, msg.Body, want)
	}
}
