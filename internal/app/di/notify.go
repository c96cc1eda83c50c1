package di

import (
	"log/slog"
	"time"

	"auth_backend/internal/app/config"
	"auth_backend/internal/feature/auth/usecase"
	"auth_backend/internal/platform/notify"
	"auth_backend/internal/platform/queue"
	"auth_backend/internal/shared/ratelimiter"
)

// NewMailer returns an SMTP mailer, or a logging mailer when SMTP is not configured.
func NewMailer(cfg config.Config) notify.Mailer {
	if cfg.SMTPServer == "" {
		slog.Warn("SMTP_SERVER is not set; emails are written to the log")
		return notify.LogMailer{}
	}
	return notify.NewSMTPMailer(notify.SMTPConfig{
		Host:     cfg.SMTPServer,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.FromEmail,
	})
}

// NewTextSender returns the SMS gateway client, or a logging sender when no API key is set.
func NewTextSender(cfg config.Config) notify.TextSender {
	if cfg.SMSAPIKey == "" {
		slog.Warn("SMS_API_KEY is not set; text messages are written to the log")
		return notify.LogTextSender{}
	}
	return notify.NewSMSLocalClient(cfg.SMSAPIKey, cfg.SMSBaseURL, cfg.SMSSender, cfg.SMSDefaultRegion)
}

// NewOTPSender wires the inline OTP delivery used on the critical path.
func NewOTPSender(cfg config.Config, mailer notify.Mailer) *notify.OTPSender {
	return notify.NewOTPSender(mailer, NewTextSender(cfg), cfg.OTPTTL)
}

// NewNotifyLimiter paces outbound notifications to NOTIFY_RATE_LIMIT per second.
func NewNotifyLimiter(cfg config.Config) *ratelimiter.RateLimiter {
	return ratelimiter.NewRateLimiter(cfg.NotifyRateLimit, time.Second)
}

// Dispatcher is an EventDispatcher that owns resources.
type Dispatcher interface {
	usecase.EventDispatcher
	Close() error
}

type localDispatcher struct {
	*queue.LocalDispatcher
	publisher *queue.Publisher
}

// Close drains the buffer before closing the broker connection.
func (d localDispatcher) Close() error {
	d.LocalDispatcher.Close()
	if d.publisher != nil {
		return d.publisher.Close()
	}
	return nil
}

// NewEventDispatcher buffers events in-process. With RABBITMQ_URL set the
// buffer feeds a RabbitMQ publisher; otherwise the EventNotifier handles them.
// Dispatch never touches the network either way.
func NewEventDispatcher(cfg config.Config, mailer notify.Mailer) Dispatcher {
	if cfg.RabbitMQURL != "" {
		publisher := queue.NewPublisher(cfg.RabbitMQURL, cfg.NotifyQueue)
		return localDispatcher{
			LocalDispatcher: queue.NewLocalDispatcher(publisher, nil, 0),
			publisher:       publisher,
		}
	}
	notifier := notify.NewEventNotifier(mailer, cfg.AdminEmail)
	return localDispatcher{LocalDispatcher: queue.NewLocalDispatcher(notifier, NewNotifyLimiter(cfg), 0)}
}
