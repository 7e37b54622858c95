package entity

import (
	"time"

	"github.com/google/uuid"
)

// Shipment holds the attributes a tracking number is issued for.
type Shipment struct {
	OriginCountryID      string
	DestinationCountryID string
	Weight               float64 // kilograms
	CustomerID           uuid.UUID
	CustomerName         string
	CustomerSlug         string
}

// TrackingNumber is the persisted uniqueness record.
type TrackingNumber struct {
	ID             int64
	TrackingNumber string
	Shipment
	CreatedAt time.Time
}
