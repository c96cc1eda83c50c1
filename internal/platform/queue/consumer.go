package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"auth_backend/internal/shared/notification"
	"auth_backend/internal/shared/ratelimiter"
)

// Handler processes one event.
type Handler interface {
	Handle(ctx context.Context, ev notification.Event) error
}

// Consumer reads events from the notification queue and hands them to a Handler,
// paced by a rate limiter so the mail relay and SMS gateway are not flooded.
type Consumer struct {
	url      string
	queue    string
	handler  Handler
	limiter  ratelimiter.Limiter
	prefetch int
}

// NewConsumer creates a new Consumer. limiter may be nil.
func NewConsumer(url, queue string, handler Handler, limiter ratelimiter.Limiter) *Consumer {
	if queue == "" {
		queue = DefaultQueueName
	}
	return &Consumer{url: url, queue: queue, handler: handler, limiter: limiter, prefetch: 10}
}

// Run consumes until ctx is cancelled, reconnecting with exponential backoff
// whenever the broker connection is lost.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		conn, err := amqp.Dial(c.url)
		if err != nil {
			slog.Warn("notification consumer: dial failed", "error", err, "retry_in", backoff)
			if err := sleep(ctx, backoff); err != nil {
				return err
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = c.consumeLoop(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		slog.Warn("notification consumer: consume loop ended, reconnecting", "error", err)
		if err := sleep(ctx, 2*time.Second); err != nil {
			return err
		}
	}
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(c.prefetch, 0, false); err != nil {
		slog.Warn("notification consumer: set QoS failed", "error", err)
	}
	if err := declareQueue(ch, c.queue); err != nil {
		return err
	}

	msgs, err := ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}
	slog.Info("notification consumer started", "queue", c.queue)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := c.handleMessage(ctx, d.Body); err != nil {
				slog.Error("notification consumer: handle message failed", "error", err, "message_id", d.MessageId)
				// Reject without requeue to avoid tight redelivery loops.
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (c *Consumer) handleMessage(ctx context.Context, body []byte) error {
	var ev notification.Event
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}
	if err := c.handler.Handle(ctx, ev); err != nil {
		return fmt.Errorf("handle %s for user %s: %w", ev.Type, ev.UserID, err)
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
