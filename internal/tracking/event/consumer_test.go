package event

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/diasna/tng/internal/tracking/entity"
)

type handlerFunc func(ctx context.Context, event entity.GenerationFailure) error

func (h handlerFunc) Handle(ctx context.Context, event entity.GenerationFailure) error {
	return h(ctx, event)
}

func TestAlertConsumerRetriesAndDeduplicates(t *testing.T) {
	bus := NewBus(10)

	var attempts int32
	done := make(chan struct{})
	handler := handlerFunc(func(ctx context.Context, event entity.GenerationFailure) error {
		n := atomic.AddInt32(&attempts, 1)
		if n < 3 {
			return errors.New("alert sink unavailable")
		}
		close(done)
		return nil
	})

	consumer := NewAlertConsumer(bus, handler, ConsumerConfig{
		Workers:     1,
		MaxRetries:  2,
		BaseBackoff: time.Millisecond,
	})
	consumer.Start()

	event := entity.GenerationFailure{EventID: "evt-1", Kind: entity.FailureKindExhausted, Attempts: 10}
	if err := bus.Publish(context.Background(), event); err != nil {
		t.Fatalf("publish event: %v", err)
	}
	if err := bus.Publish(context.Background(), event); err != nil {
		t.Fatalf("publish duplicate: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for handler")
	}

	if err := consumer.Stop(context.Background()); err != nil {
		t.Fatalf("stop consumer: %v", err)
	}

	if got := atomic.LoadInt32(&attempts); got != 3 {
		t.Fatalf("expected 3 attempts, got %d", got)
	}
}

func TestAlertConsumerGivesUpAfterMaxRetries(t *testing.T) {
	bus := NewBus(1)

	var attempts int32
	consumer := NewAlertConsumer(bus, handlerFunc(func(ctx context.Context, event entity.GenerationFailure) error {
		atomic.AddInt32(&attempts, 1)
		return errors.New("down")
	}), ConsumerConfig{Workers: 1, MaxRetries: 1, BaseBackoff: time.Millisecond})
	consumer.Start()

	if err := bus.Publish(context.Background(), entity.GenerationFailure{Kind: entity.FailureKindStoreUnavailable}); err != nil {
		t.Fatalf("publish event: %v", err)
	}
	if err := consumer.Stop(context.Background()); err != nil {
		t.Fatalf("stop consumer: %v", err)
	}

	if got := atomic.LoadInt32(&attempts); got != 2 {
		t.Fatalf("expected 2 attempts, got %d", got)
	}
}

func TestBusPublishAfterClose(t *testing.T) {
	bus := NewBus(1)
	bus.Close()
	bus.Close()

	if err := bus.Publish(context.Background(), entity.GenerationFailure{}); !errors.Is(err, ErrBusClosed) {
		t.Fatalf("expected ErrBusClosed, got %v", err)
	}
}

func TestBusPublishHonoursContextWhenFull(t *testing.T) {
	bus := NewBus(1)
	if err := bus.Publish(context.Background(), entity.GenerationFailure{EventID: "a"}); err != nil {
		t.Fatalf("publish event: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := bus.Publish(ctx, entity.GenerationFailure{EventID: "b"}); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestLogAlerterRejectsEmptyKind(t *testing.T) {
	if err := (LogAlerter{}).Handle(context.Background(), entity.GenerationFailure{}); err == nil {
		t.Fatal("expected error for missing kind")
	}
	if err := (LogAlerter{}).Handle(context.Background(), entity.GenerationFailure{Kind: entity.FailureKindExhausted}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
