package queue

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"auth_backend/internal/feature/auth/usecase"
	"auth_backend/internal/shared/notification"
	"auth_backend/internal/shared/ratelimiter"
)

// ErrQueueFull is returned by LocalDispatcher.Dispatch when the buffer is full.
var ErrQueueFull = errors.New("notification queue is full")

// ErrDispatcherClosed is returned by LocalDispatcher.Dispatch after Close.
var ErrDispatcherClosed = errors.New("notification dispatcher is closed")

// LocalDispatcher runs a Handler on a background goroutine. It is used when
// no broker is configured; queued events are lost if the process exits.
type LocalDispatcher struct {
	handler Handler
	limiter ratelimiter.Limiter
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
	events chan notification.Event
	done   chan struct{}
}

var _ usecase.EventDispatcher = (*LocalDispatcher)(nil)

// NewLocalDispatcher starts the worker goroutine. limiter may be nil.
func NewLocalDispatcher(handler Handler, limiter ratelimiter.Limiter, buffer int) *LocalDispatcher {
	if buffer <= 0 {
		buffer = 100
	}
	d := &LocalDispatcher{
		handler: handler,
		limiter: limiter,
		timeout: 30 * time.Second,
		events:  make(chan notification.Event, buffer),
		done:    make(chan struct{}),
	}
	go d.run()
	return d
}

// Dispatch enqueues ev without blocking.
func (d *LocalDispatcher) Dispatch(_ context.Context, ev notification.Event) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrDispatcherClosed
	}
	select {
	case d.events <- ev:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting events and waits for the queued ones to be handled.
func (d *LocalDispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.events)
	}
	d.mu.Unlock()
	<-d.done
}

func (d *LocalDispatcher) run() {
	defer close(d.done)
	for ev := range d.events {
		d.handle(ev)
	}
}

func (d *LocalDispatcher) handle(ev notification.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if d.limiter != nil {
		if err := d.limiter.Wait(ctx); err != nil {
			slog.Error("notification dropped", "type", ev.Type, "user_id", ev.UserID, "error", err)
			return
		}
	}
	if err := d.handler.Handle(ctx, ev); err != nil {
		slog.Error("notification failed", "type", ev.Type, "user_id", ev.UserID, "error", err)
	}
}
