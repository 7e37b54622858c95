package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/diasna/tng/internal/pkg/pkgerror"
	"github.com/diasna/tng/internal/pkg/pkgtrace"
	"github.com/diasna/tng/internal/pkg/pkguid"
	"github.com/diasna/tng/internal/tracking/entity"
	"github.com/diasna/tng/internal/tracking/generator"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// MaxAttempts bounds the candidates tried by a single Generate call.
const MaxAttempts = 10

// Store is the uniqueness index. Insert must reject a duplicate tracking
// number atomically with a pkgerror CodeConflict error.
type Store interface {
	Exists(ctx context.Context, trackingNumber string) (bool, error)
	Insert(ctx context.Context, record entity.TrackingNumber) error
	FindByTrackingNumber(ctx context.Context, trackingNumber string) (entity.TrackingNumber, error)
	CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error)
}

type Generator interface {
	Generate(now time.Time) string
}

type EventPublisher interface {
	Publish(ctx context.Context, event entity.GenerationFailure) error
}

type Clock interface {
	Now() time.Time
}

type Dependency struct {
	Store     Store
	Generator Generator
	Metrics   *Metrics
	Events    EventPublisher
	Clock     Clock
	RowID     pkguid.NumberID
	EventID   pkguid.StringID
	Tracer    trace.Tracer
	// StoreTimeout bounds each Exists and Insert call; zero means no bound.
	StoreTimeout time.Duration
}

type Usecase struct {
	store        Store
	generator    Generator
	metrics      *Metrics
	events       EventPublisher
	clock        Clock
	rowID        pkguid.NumberID
	eventID      pkguid.StringID
	tracer       trace.Tracer
	storeTimeout time.Duration
}

func New(dep Dependency) *Usecase {
	gen := dep.Generator
	if gen == nil {
		gen = generator.New(nil)
	}

	metrics := dep.Metrics
	if metrics == nil {
		metrics = NewMetrics()
	}

	clock := dep.Clock
	if clock == nil {
		clock = realClock{}
	}

	tracer := dep.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("")
	}

	return &Usecase{
		store:        dep.Store,
		generator:    gen,
		metrics:      metrics,
		events:       dep.Events,
		clock:        clock,
		rowID:        dep.RowID,
		eventID:      dep.EventID,
		tracer:       tracer,
		storeTimeout: dep.StoreTimeout,
	}
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

type attemptStatus int

const (
	attemptInserted attemptStatus = iota
	attemptCollided
	attemptFailed
)

// attemptResult is the outcome of one candidate.
type attemptResult struct {
	status         attemptStatus
	trackingNumber string
	createdAt      time.Time
	err            error
}

// Generate issues a new tracking number for the shipment. Collisions are
// retried up to MaxAttempts; a store error ends the call immediately.
func (u *Usecase) Generate(ctx context.Context, shipment entity.Shipment) (GenerateResult, error) {
	if u.store == nil {
		return GenerateResult{}, pkgerror.NewServer(errors.New("missing dependency"))
	}

	start := time.Now()
	ctx, span := u.tracer.Start(ctx, "tracking.generate")

	slog.InfoContext(ctx, "generating tracking number",
		"customer_id", shipment.CustomerID.String(),
		"origin", shipment.OriginCountryID,
		"destination", shipment.DestinationCountryID,
	)

	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		res := u.attempt(ctx, shipment)

		switch res.status {
		case attemptInserted:
			elapsed := time.Since(start)
			u.metrics.RecordSuccess(elapsed)

			slog.InfoContext(ctx, "tracking number generated",
				"tracking_number", res.trackingNumber,
				"customer_id", shipment.CustomerID.String(),
				"attempt", attempt,
				"latency_ms", elapsed.Milliseconds(),
			)
			span.SetAttributes(
				attribute.Int("attempts", attempt),
				attribute.String("outcome", "success"),
				attribute.String("tracking_number", res.trackingNumber),
			)
			pkgtrace.End(span, nil)

			return GenerateResult{
				TrackingNumber: res.trackingNumber,
				CreatedAt:      res.createdAt,
				Attempts:       attempt,
			}, nil

		case attemptCollided:
			u.metrics.RecordCollision()
			slog.WarnContext(ctx, "tracking number collision detected",
				"tracking_number", res.trackingNumber,
				"attempt", attempt,
				"error", res.err,
			)

		case attemptFailed:
			u.metrics.RecordFailure()
			return GenerateResult{}, u.fail(ctx, span, shipment, &GenerationError{
				Kind:     KindStoreUnavailable,
				Attempts: attempt,
				Elapsed:  time.Since(start),
				Err:      res.err,
			})
		}
	}

	u.metrics.RecordFailure()
	return GenerateResult{}, u.fail(ctx, span, shipment, &GenerationError{
		Kind:     KindExhausted,
		Attempts: MaxAttempts,
		Elapsed:  time.Since(start),
	})
}

// attempt tries one candidate: pre-check, then insert. The pre-check only
// saves a doomed insert; the store constraint decides uniqueness.
func (u *Usecase) attempt(ctx context.Context, shipment entity.Shipment) attemptResult {
	candidate := u.generator.Generate(u.clock.Now())

	exists, err := u.exists(ctx, candidate)
	if err != nil {
		return attemptResult{status: attemptFailed, trackingNumber: candidate, err: err}
	}
	if exists {
		return attemptResult{status: attemptCollided, trackingNumber: candidate}
	}

	record := entity.TrackingNumber{
		TrackingNumber: candidate,
		Shipment:       shipment,
		CreatedAt:      u.clock.Now().UTC(),
	}
	if u.rowID != nil {
		record.ID = u.rowID.Generate()
	}

	if err := u.insert(ctx, record); err != nil {
		if IsConflict(err) {
			return attemptResult{status: attemptCollided, trackingNumber: candidate, err: err}
		}
		return attemptResult{status: attemptFailed, trackingNumber: candidate, err: err}
	}

	slog.DebugContext(ctx, "tracking number candidate accepted", "tracking_number", candidate)

	return attemptResult{status: attemptInserted, trackingNumber: candidate, createdAt: record.CreatedAt}
}

func (u *Usecase) exists(ctx context.Context, trackingNumber string) (bool, error) {
	ctx, cancel := u.storeContext(ctx)
	defer cancel()
	return u.store.Exists(ctx, trackingNumber)
}

func (u *Usecase) insert(ctx context.Context, record entity.TrackingNumber) error {
	ctx, cancel := u.storeContext(ctx)
	defer cancel()
	return u.store.Insert(ctx, record)
}

func (u *Usecase) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if u.storeTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, u.storeTimeout)
}

func (u *Usecase) fail(ctx context.Context, span trace.Span, shipment entity.Shipment, gerr *GenerationError) error {
	slog.ErrorContext(ctx, "tracking number generation failed",
		"kind", gerr.Kind.String(),
		"attempts", gerr.Attempts,
		"elapsed_ms", gerr.Elapsed.Milliseconds(),
		"customer_id", shipment.CustomerID.String(),
		"error", gerr.Err,
	)

	span.SetAttributes(
		attribute.Int("attempts", gerr.Attempts),
		attribute.String("outcome", gerr.Kind.String()),
	)
	pkgtrace.End(span, gerr)

	if u.events != nil {
		event := entity.GenerationFailure{
			Kind:       failureKind(gerr.Kind),
			Attempts:   gerr.Attempts,
			Elapsed:    gerr.Elapsed,
			CustomerID: shipment.CustomerID.String(),
		}
		if u.eventID != nil {
			event.EventID = u.eventID.Generate()
		}
		if gerr.Err != nil {
			event.Cause = gerr.Err.Error()
		}
		if err := u.events.Publish(ctx, event); err != nil {
			slog.WarnContext(ctx, "failed to publish generation failure", "event_id", event.EventID, "error", err)
		}
	}

	return gerr
}

func failureKind(k GenerationErrorKind) entity.FailureKind {
	if k == KindStoreUnavailable {
		return entity.FailureKindStoreUnavailable
	}
	return entity.FailureKindExhausted
}

// Stats returns the current generation counters with derived rates.
func (u *Usecase) Stats() StatsResult {
	snap := u.metrics.Snapshot()
	return StatsResult{
		MetricsSnapshot: snap,
		CollisionRate:   snap.CollisionRate(),
		FailureRate:     snap.FailureRate(),
		Status:          snap.Health(),
	}
}

func (u *Usecase) Lookup(ctx context.Context, trackingNumber string) (LookupResult, error) {
	if !generator.Valid(trackingNumber) {
		return LookupResult{}, pkgerror.NewInvalidInput(errors.New("tracking_number must be 16 characters of A-Z and 0-9"))
	}

	record, err := u.store.FindByTrackingNumber(ctx, trackingNumber)
	if err != nil {
		return LookupResult{}, mapStoreErr(err)
	}

	return LookupResult{Record: record}, nil
}

func (u *Usecase) CustomerCount(ctx context.Context, customerID uuid.UUID) (CustomerCountResult, error) {
	if customerID == uuid.Nil {
		return CustomerCountResult{}, pkgerror.NewInvalidInput(errors.New("customer_id is required"))
	}

	total, err := u.store.CountByCustomer(ctx, customerID)
	if err != nil {
		return CustomerCountResult{}, normalizeErr(err)
	}

	return CustomerCountResult{CustomerID: customerID.String(), Total: total}, nil
}

func mapStoreErr(err error) error {
	if errors.Is(err, pkgerror.ErrNotFound) {
		return pkgerror.NewBusiness("tracking number not found", pkgerror.CodeNotFound)
	}
	return normalizeErr(err)
}

func normalizeErr(err error) error {
	var perr *pkgerror.Error
	if errors.As(err, &perr) {
		return perr
	}
	return pkgerror.NewServer(err)
}
