package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/diasna/tng/internal/pkg/pkgerror"
	"github.com/diasna/tng/internal/pkg/pkgpebble"
	"github.com/diasna/tng/internal/tracking/entity"
	"github.com/google/uuid"
)

// Key layout:
//
//	tn/<TRACKING_NUMBER>                -> JSON record
//	cust/<CUSTOMER_UUID>/<TRACKING>     -> empty
const (
	prefixTrackingNumber = "tn/"
	prefixCustomer       = "cust/"
)

// PebbleStore persists tracking numbers in a Pebble database.
type PebbleStore struct {
	db *pkgpebble.DB
	// writeMu makes the check-then-commit in Insert atomic.
	writeMu sync.Mutex
}

type PebbleOptions struct {
	DataDir       string
	Fsync         pkgpebble.FsyncMode
	FsyncInterval time.Duration
	// SlowThreshold logs reads and commits slower than this; zero disables it.
	SlowThreshold time.Duration
}

func NewPebbleStore(opts PebbleOptions) (*PebbleStore, error) {
	var hook pkgpebble.MetricsHook = pkgpebble.NoopMetrics{}
	if opts.SlowThreshold > 0 {
		hook = slowOpLogger{threshold: opts.SlowThreshold}
	}

	db, err := pkgpebble.Open(pkgpebble.Options{
		DataDir:       opts.DataDir,
		Fsync:         opts.Fsync,
		FsyncInterval: opts.FsyncInterval,
		Metrics:       hook,
	})
	if err != nil {
		return nil, err
	}

	return &PebbleStore{db: db}, nil
}

type pebbleRecord struct {
	ID                   int64     `json:"id"`
	TrackingNumber       string    `json:"tracking_number"`
	OriginCountryID      string    `json:"origin_country_id"`
	DestinationCountryID string    `json:"destination_country_id"`
	Weight               float64   `json:"weight"`
	CustomerID           uuid.UUID `json:"customer_id"`
	CustomerName         string    `json:"customer_name"`
	CustomerSlug         string    `json:"customer_slug"`
	CreatedAt            time.Time `json:"created_at"`
}

func toPebbleRecord(rec entity.TrackingNumber) pebbleRecord {
	return pebbleRecord{
		ID:                   rec.ID,
		TrackingNumber:       rec.TrackingNumber,
		OriginCountryID:      rec.OriginCountryID,
		DestinationCountryID: rec.DestinationCountryID,
		Weight:               rec.Weight,
		CustomerID:           rec.CustomerID,
		CustomerName:         rec.CustomerName,
		CustomerSlug:         rec.CustomerSlug,
		CreatedAt:            rec.CreatedAt,
	}
}

func (r pebbleRecord) entity() entity.TrackingNumber {
	return entity.TrackingNumber{
		ID:             r.ID,
		TrackingNumber: r.TrackingNumber,
		Shipment: entity.Shipment{
			OriginCountryID:      r.OriginCountryID,
			DestinationCountryID: r.DestinationCountryID,
			Weight:               r.Weight,
			CustomerID:           r.CustomerID,
			CustomerName:         r.CustomerName,
			CustomerSlug:         r.CustomerSlug,
		},
		CreatedAt: r.CreatedAt,
	}
}

func trackingKey(trackingNumber string) []byte {
	return []byte(prefixTrackingNumber + trackingNumber)
}

func customerPrefix(customerID uuid.UUID) []byte {
	return []byte(prefixCustomer + customerID.String() + "/")
}

func (s *PebbleStore) Exists(ctx context.Context, trackingNumber string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return s.db.Has(trackingKey(trackingNumber))
}

func (s *PebbleStore) Insert(ctx context.Context, record entity.TrackingNumber) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	value, err := json.Marshal(toPebbleRecord(record))
	if err != nil {
		return err
	}

	key := trackingKey(record.TrackingNumber)

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	exists, err := s.db.Has(key)
	if err != nil {
		return err
	}
	if exists {
		return errDuplicate
	}

	b := s.db.NewBatch()
	defer b.Close()

	if err := b.Set(key, value, nil); err != nil {
		return err
	}
	custKey := append(customerPrefix(record.CustomerID), record.TrackingNumber...)
	if err := b.Set(custKey, nil, nil); err != nil {
		return err
	}

	return s.db.CommitBatch(ctx, b)
}

func (s *PebbleStore) FindByTrackingNumber(ctx context.Context, trackingNumber string) (entity.TrackingNumber, error) {
	if err := ctx.Err(); err != nil {
		return entity.TrackingNumber{}, err
	}

	value, err := s.db.Get(trackingKey(trackingNumber))
	if errors.Is(err, pkgpebble.ErrNotFound) {
		return entity.TrackingNumber{}, pkgerror.ErrNotFound
	}
	if err != nil {
		return entity.TrackingNumber{}, err
	}

	var rec pebbleRecord
	if err := json.Unmarshal(value, &rec); err != nil {
		return entity.TrackingNumber{}, err
	}

	return rec.entity(), nil
}

func (s *PebbleStore) CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.db.CountPrefix(customerPrefix(customerID))
}

func (s *PebbleStore) Close() error {
	return s.db.Close()
}

type slowOpLogger struct {
	threshold time.Duration
}

func (l slowOpLogger) ObserveRead(elapsed time.Duration, bytes int) {
	if elapsed >= l.threshold {
		slog.Warn("slow pebble read", "elapsed_ms", elapsed.Milliseconds(), "bytes", bytes)
	}
}

func (l slowOpLogger) ObserveBatchCommit(elapsed time.Duration, bytes int) {
	if elapsed >= l.threshold {
		slog.Warn("slow pebble commit", "elapsed_ms", elapsed.Milliseconds(), "bytes", bytes)
	}
}
