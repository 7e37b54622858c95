package event

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/diasna/tng/internal/tracking/entity"
)

type Handler interface {
	Handle(ctx context.Context, event entity.GenerationFailure) error
}

type ConsumerConfig struct {
	Workers     int
	MaxRetries  int
	BaseBackoff time.Duration
}

// AlertConsumer drains the bus with a fixed worker pool and hands every
// failure to the handler, retrying with exponential backoff.
type AlertConsumer struct {
	bus         *Bus
	handler     Handler
	workers     int
	maxRetries  int
	baseBackoff time.Duration
	seen        sync.Map
	wg          sync.WaitGroup
}

func NewAlertConsumer(bus *Bus, handler Handler, cfg ConsumerConfig) *AlertConsumer {
	workers := cfg.Workers
	if workers < 1 {
		workers = 2
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	baseBackoff := cfg.BaseBackoff
	if baseBackoff <= 0 {
		baseBackoff = 100 * time.Millisecond
	}

	return &AlertConsumer{
		bus:         bus,
		handler:     handler,
		workers:     workers,
		maxRetries:  maxRetries,
		baseBackoff: baseBackoff,
	}
}

func (c *AlertConsumer) Start() {
	for i := 0; i < c.workers; i++ {
		c.wg.Add(1)
		go c.worker()
	}
}

// Stop closes the bus and waits for queued events to drain.
func (c *AlertConsumer) Stop(ctx context.Context) error {
	if c.bus != nil {
		c.bus.Close()
	}

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *AlertConsumer) worker() {
	defer c.wg.Done()

	for event := range c.bus.Subscribe() {
		c.processEvent(event)
	}
}

func (c *AlertConsumer) processEvent(event entity.GenerationFailure) {
	if c.handler == nil {
		return
	}

	if event.EventID != "" {
		if _, loaded := c.seen.LoadOrStore(event.EventID, struct{}{}); loaded {
			slog.Info("skip duplicate generation failure event", "event_id", event.EventID)
			return
		}
	}

	backoff := c.baseBackoff
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		err := c.handler.Handle(context.Background(), event)
		if err == nil {
			return
		}

		if attempt == c.maxRetries {
			slog.Error("failed to deliver generation failure alert", "event_id", event.EventID, "kind", string(event.Kind), "error", err)
			return
		}

		time.Sleep(backoff)
		backoff *= 2
	}
}

// LogAlerter raises an alert by writing an error log line per failure.
type LogAlerter struct{}

func (LogAlerter) Handle(ctx context.Context, event entity.GenerationFailure) error {
	if event.Kind == "" {
		return errors.New("missing failure kind")
	}

	slog.ErrorContext(ctx, "ALERT: tracking number generation failed",
		"event_id", event.EventID,
		"kind", string(event.Kind),
		"attempts", event.Attempts,
		"elapsed_ms", event.Elapsed.Milliseconds(),
		"customer_id", event.CustomerID,
		"cause", event.Cause,
	)
	return nil
}
