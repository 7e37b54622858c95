package store

import (
	"context"
	"sync"

	"github.com/diasna/tng/internal/pkg/pkgerror"
	"github.com/diasna/tng/internal/tracking/entity"
	"github.com/google/uuid"
)

// InMemoryStore keeps issued tracking numbers for the life of the process.
type InMemoryStore struct {
	mu        sync.RWMutex
	records   map[string]entity.TrackingNumber
	customers map[uuid.UUID]int64
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		records:   make(map[string]entity.TrackingNumber),
		customers: make(map[uuid.UUID]int64),
	}
}

func (s *InMemoryStore) Exists(ctx context.Context, trackingNumber string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.records[trackingNumber]
	return ok, nil
}

func (s *InMemoryStore) Insert(ctx context.Context, record entity.TrackingNumber) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[record.TrackingNumber]; exists {
		return errDuplicate
	}

	s.records[record.TrackingNumber] = record
	s.customers[record.CustomerID]++

	return nil
}

func (s *InMemoryStore) FindByTrackingNumber(ctx context.Context, trackingNumber string) (entity.TrackingNumber, error) {
	if err := ctx.Err(); err != nil {
		return entity.TrackingNumber{}, err
	}

	s.mu.RLock()
	rec, ok := s.records[trackingNumber]
	s.mu.RUnlock()
	if !ok {
		return entity.TrackingNumber{}, pkgerror.ErrNotFound
	}

	return rec, nil
}

func (s *InMemoryStore) CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.customers[customerID], nil
}

func (s *InMemoryStore) Close() error {
	return nil
}
