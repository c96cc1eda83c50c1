package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"auth_backend/internal/feature/auth/domain/entity"
	"auth_backend/internal/feature/auth/usecase"
	"auth_backend/internal/shared/notification"
)

// Mailer sends a rendered email to one recipient.
type Mailer interface {
	Send(ctx context.Context, to string, msg Message) error
}

// TextSender sends an SMS to one phone number.
type TextSender interface {
	Send(ctx context.Context, phone, text string) error
}

// OTPSender delivers one-time codes on the channel chosen at login.
type OTPSender struct {
	mailer Mailer
	sms    TextSender
	ttl    time.Duration
}

var _ usecase.OTPSender = (*OTPSender)(nil)

// NewOTPSender creates a new OTPSender. ttl is only used to tell the recipient
// how long the code is valid.
func NewOTPSender(mailer Mailer, sms TextSender, ttl time.Duration) *OTPSender {
	return &OTPSender{mailer: mailer, sms: sms, ttl: ttl}
}

// SendOTP routes the code to email or SMS.
func (s *OTPSender) SendOTP(ctx context.Context, channel, destination, code string, purpose notification.Purpose) error {
	switch channel {
	case entity.ChannelEmail:
		return s.mailer.Send(ctx, destination, OTPMessage(purpose, code, s.ttl))
	case entity.ChannelSMS:
		if s.sms == nil {
			return fmt.Errorf("sms delivery is not configured")
		}
		return s.sms.Send(ctx, destination, OTPText(code, s.ttl))
	default:
		return fmt.Errorf("unknown otp channel %q", channel)
	}
}

// LogMailer writes emails to the log instead of sending them. It is used when
// no SMTP server is configured, typically in local development.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, to string, msg Message) error {
	slog.Info("email (not sent, SMTP disabled)", "to", to, "subject", msg.Subject, "body", msg.Body)
	return nil
}

// LogTextSender is the SMS counterpart of LogMailer.
type LogTextSender struct{}

func (LogTextSender) Send(_ context.Context, phone, text string) error {
	slog.Info("sms (not sent, gateway disabled)", "to", phone, "text", text)
	return nil
}
