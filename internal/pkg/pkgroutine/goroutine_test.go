package pkgroutine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewManagerDefaultMax(t *testing.T) {
	mgr := NewManager(0)
	if got := cap(mgr.sema); got != DefaultMaxGoroutine {
		t.Fatalf("expected cap %d, got %d", DefaultMaxGoroutine, got)
	}
}

func TestManagerCollectsErrors(t *testing.T) {
	mgr := NewManager(2)
	errOne := errors.New("one")
	errTwo := errors.New("two")

	mgr.Go(context.Background(), func(ctx context.Context) error {
		return errOne
	})
	mgr.Go(context.Background(), func(ctx context.Context) error {
		return errTwo
	})

	joined := mgr.Wait()
	if !errors.Is(joined, errOne) || !errors.Is(joined, errTwo) {
		t.Fatalf("expected both errors, got %v", joined)
	}
}

func TestManagerReportsPanics(t *testing.T) {
	mgr := NewManager(1)
	mgr.Go(context.Background(), func(ctx context.Context) error {
		panic("boom")
	})

	if err := mgr.Wait(); !errors.Is(err, ErrPanic) {
		t.Fatalf("expected ErrPanic, got %v", err)
	}
}

func TestManagerBoundsConcurrency(t *testing.T) {
	const limit = 3
	mgr := NewManager(limit)

	var running, peak atomic.Int32
	for i := 0; i < 20; i++ {
		mgr.Go(context.Background(), func(ctx context.Context) error {
			n := running.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			running.Add(-1)
			return nil
		})
	}

	if err := mgr.Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := peak.Load(); got > limit {
		t.Fatalf("expected at most %d concurrent tasks, got %d", limit, got)
	}
}

func TestManagerSkipsAfterCancel(t *testing.T) {
	mgr := NewManager(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran atomic.Bool
	for i := 0; i < 3; i++ {
		mgr.Go(ctx, func(ctx context.Context) error {
			ran.Store(true)
			return nil
		})
	}

	if err := mgr.Wait(); !errors.Is(err, ErrSkipped) {
		t.Fatalf("expected ErrSkipped, got %v", err)
	}
	if ran.Load() {
		t.Fatal("expected no task to run")
	}
}
