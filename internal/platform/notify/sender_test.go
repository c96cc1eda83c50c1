package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auth_backend/internal/feature/auth/domain/entity"
	"auth_backend/internal/shared/notification"
)

type mockMailer struct {
	sendFn func(ctx context.Context, to string, msg Message) error
}

func (m *mockMailer) Send(ctx context.Context, to string, msg Message) error {
	return m.sendFn(ctx, to, msg)
}

type mockTextSender struct {
	sendFn func(ctx context.Context, phone, text string) error
}

func (m *mockTextSender) Send(ctx context.Context, phone, text string) error {
	return m.sendFn(ctx, phone, text)
}

func TestOTPSender_SendOTP(t *testing.T) {
	t.Parallel()

	t.Run("email channel", func(t *testing.T) {
		t.Parallel()

		var gotTo string
		var gotMsg Message
		mailer := &mockMailer{sendFn: func(_ context.Context, to string, msg Message) error {
			gotTo, gotMsg = to, msg
			return nil
		}}
		sms := &mockTextSender{sendFn: func(context.Context, string, string) error {
			t.Error("sms must not be used for the email channel")
			return nil
		}}

		s := NewOTPSender(mailer, sms, 5*time.Minute)
		require.NoError(t, s.SendOTP(context.Background(), entity.ChannelEmail, "a@x.com", "123456", notification.PurposeRegistration))

		assert.Equal(t, "a@x.com", gotTo)
		assert.Equal(t, "Your registration code", gotMsg.Subject)
		assert.Contains(t, gotMsg.Body, "123456")
	})

	t.Run("sms channel", func(t *testing.T) {
		t.Parallel()

		var gotPhone, gotText string
		sms := &mockTextSender{sendFn: func(_ context.Context, phone, text string) error {
			gotPhone, gotText = phone, text
			return nil
		}}

		s := NewOTPSender(&mockMailer{}, sms, 5*time.Minute)
		require.NoError(t, s.SendOTP(context.Background(), entity.ChannelSMS, "0123456789", "654321", notification.PurposeLogin))

		assert.Equal(t, "0123456789", gotPhone)
		assert.Contains(t, gotText, "654321")
	})

	t.Run("delivery error is returned", func(t *testing.T) {
		t.Parallel()

		want := errors.New("smtp down")
		mailer := &mockMailer{sendFn: func(context.Context, string, Message) error { return want }}

		s := NewOTPSender(mailer, nil, time.Minute)
		err := s.SendOTP(context.Background(), entity.ChannelEmail, "a@x.com", "123456", notification.PurposeLogin)

		assert.ErrorIs(t, err, want)
	})

	t.Run("sms not configured", func(t *testing.T) {
		t.Parallel()

		s := NewOTPSender(&mockMailer{}, nil, time.Minute)
		assert.Error(t, s.SendOTP(context.Background(), entity.ChannelSMS, "0123456789", "1", notification.PurposeLogin))
	})

	t.Run("unknown channel", func(t *testing.T) {
		t.Parallel()

		s := NewOTPSender(&mockMailer{}, nil, time.Minute)
		assert.ErrorContains(t, s.SendOTP(context.Background(), "pigeon", "x", "1", notification.PurposeLogin), "pigeon")
	})
}

func TestLogSenders(t *testing.T) {
	t.Parallel()

	assert.NoError(t, LogMailer{}.Send(context.Background(), "a@x.com", Message{Subject: "s"}))
	assert.NoError(t, LogTextSender{}.Send(context.Background(), "0123456789", "hi"))
}

func TestEventNotifier_Handle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		adminEmail  string
		ev          notification.Event
		wantTo      string
		wantSubject string
		wantErr     bool
	}{
		{
			name:        "registration goes to the admin",
			adminEmail:  "admin@x.com",
			ev:          notification.Event{Type: notification.EventUserRegistered, Name: "Alice", Email: "a@x.com"},
			wantTo:      "admin@x.com",
			wantSubject: "New user awaiting approval",
		},
		{
			name:       "registration without admin email is skipped",
			adminEmail: "",
			ev:         notification.Event{Type: notification.EventUserRegistered},
		},
		{
			name:        "approval goes to the user",
			adminEmail:  "admin@x.com",
			ev:          notification.Event{Type: notification.EventUserApproved, Name: "Alice", Email: "a@x.com"},
			wantTo:      "a@x.com",
			wantSubject: "Your account has been approved",
		},
		{
			name:    "approval without email",
			ev:      notification.Event{Type: notification.EventUserApproved, UserID: "u1"},
			wantErr: true,
		},
		{
			name:    "unknown type",
			ev:      notification.Event{Type: "user.exploded"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotTo, gotSubject string
			mailer := &mockMailer{sendFn: func(_ context.Context, to string, msg Message) error {
				gotTo, gotSubject = to, msg.Subject
				return nil
			}}

			err := NewEventNotifier(mailer, tt.adminEmail).Handle(context.Background(), tt.ev)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTo, gotTo)
			assert.Equal(t, tt.wantSubject, gotSubject)
		})
	}
}
