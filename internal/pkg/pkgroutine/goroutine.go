package pkgroutine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
)

// DefaultMaxGoroutine is used when NewManager receives a non-positive limit.
const DefaultMaxGoroutine int = 10

var (
	// ErrPanic wraps a panic recovered from a task.
	ErrPanic = errors.New("goroutine panicked")
	// ErrSkipped is reported by Wait when tasks never ran because their context ended.
	ErrSkipped = errors.New("goroutine skipped")
)

// Manager runs functions in goroutines with a configurable concurrency limit.
//
// Task errors, recovered panics and skipped tasks are reported by Wait.
type Manager struct {
	mu      sync.Mutex
	errs    []error
	skipped int
	wg      sync.WaitGroup
	sema    chan struct{}
}

// NewManager creates a new Manager with the provided maximum concurrency.
func NewManager(maxGoroutine int) *Manager {
	if maxGoroutine < 1 {
		maxGoroutine = DefaultMaxGoroutine
	}

	return &Manager{
		sema: make(chan struct{}, maxGoroutine),
	}
}

// Go runs f in a goroutine, blocking while the manager is at its limit.
// If ctx ends first, f is skipped.
func (g *Manager) Go(ctx context.Context, f func(ctx context.Context) error) {
	select {
	case g.sema <- struct{}{}:
	case <-ctx.Done():
		g.skip()
		return
	}

	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		defer func() { <-g.sema }()
		defer func() {
			if rvr := recover(); rvr != nil {
				slog.ErrorContext(ctx, "panic occurred in goroutine", "because", rvr, "stack", string(debug.Stack()))
				g.record(fmt.Errorf("%w: %v", ErrPanic, rvr))
			}
		}()

		if ctx.Err() != nil {
			g.skip()
			return
		}
		if err := f(ctx); err != nil {
			g.record(err)
		}
	}()
}

func (g *Manager) record(err error) {
	g.mu.Lock()
	g.errs = append(g.errs, err)
	g.mu.Unlock()
}

func (g *Manager) skip() {
	g.mu.Lock()
	g.skipped++
	g.mu.Unlock()
}

// Wait blocks until all scheduled goroutines finish and returns any collected errors.
func (g *Manager) Wait() error {
	g.wg.Wait()

	g.mu.Lock()
	defer g.mu.Unlock()

	errs := g.errs
	if g.skipped > 0 {
		slog.Warn("goroutines skipped after cancellation", "count", g.skipped)
		errs = append(errs, fmt.Errorf("%d tasks: %w", g.skipped, ErrSkipped))
	}
	return errors.Join(errs...)
}
