package inbound

import (
	"context"

	"github.com/diasna/tng/internal/pkg/pkgrouter"
	"github.com/diasna/tng/internal/tracking/entity"
	"github.com/diasna/tng/internal/tracking/usecase"
	"github.com/google/uuid"
)

type uc interface {
	Generate(ctx context.Context, shipment entity.Shipment) (usecase.GenerateResult, error)
	Lookup(ctx context.Context, trackingNumber string) (usecase.LookupResult, error)
	CustomerCount(ctx context.Context, customerID uuid.UUID) (usecase.CustomerCountResult, error)
	Stats() usecase.StatsResult
}

// ServiceInfo is served by the info actuator.
type ServiceInfo struct {
	Name        string
	Version     string
	Description string
}

func RegisterHTTPEndpoint(r *pkgrouter.Router, uc uc, info ServiceInfo) {
	end := &HTTPEndpoint{uc: uc, info: info}

	r.GET("/api/v1/next-tracking-number", end.NextTrackingNumber) // ?origin_country_id=&destination_country_id=&weight=&customer_id=&customer_name=&customer_slug=
	r.GET("/api/v1/tracking-numbers/:tracking_number", end.TrackingNumber)
	r.GET("/api/v1/customers/:customer_id/tracking-numbers/count", end.CustomerCount)

	r.GET("/actuator/tracking-numbers", end.Stats)
	r.GET("/actuator/info", end.Info)
}
