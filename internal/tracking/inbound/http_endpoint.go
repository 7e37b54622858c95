package inbound

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/diasna/tng/internal/pkg/pkgerror"
	"github.com/diasna/tng/internal/pkg/pkgrouter"
	"github.com/diasna/tng/internal/tracking/usecase"
	"github.com/google/uuid"
)

type HTTPEndpoint struct {
	uc   uc
	info ServiceInfo
}

func (h *HTTPEndpoint) NextTrackingNumber(ctx context.Context, r *http.Request) (any, error) {
	shipment, err := parseShipment(r.URL.Query())
	if err != nil {
		return nil, err
	}

	result, err := h.uc.Generate(ctx, shipment)
	if err != nil {
		return nil, mapGenerateErr(err)
	}

	return NextTrackingNumberResponse{
		TrackingNumber: result.TrackingNumber,
		CreatedAt:      result.CreatedAt,
	}, nil
}

func (h *HTTPEndpoint) TrackingNumber(ctx context.Context, r *http.Request) (any, error) {
	tn := strings.ToUpper(strings.TrimSpace(pkgrouter.GetParam(ctx, "tracking_number")))

	result, err := h.uc.Lookup(ctx, tn)
	if err != nil {
		return nil, err
	}

	rec := result.Record
	return TrackingNumberResponse{
		TrackingNumber:       rec.TrackingNumber,
		OriginCountryID:      rec.OriginCountryID,
		DestinationCountryID: rec.DestinationCountryID,
		Weight:               rec.Weight,
		CustomerID:           rec.CustomerID.String(),
		CustomerName:         rec.CustomerName,
		CustomerSlug:         rec.CustomerSlug,
		CreatedAt:            rec.CreatedAt,
	}, nil
}

func (h *HTTPEndpoint) CustomerCount(ctx context.Context, r *http.Request) (any, error) {
	customerID, err := uuid.Parse(strings.TrimSpace(pkgrouter.GetParam(ctx, "customer_id")))
	if err != nil {
		return nil, pkgerror.NewInvalidFormat(errors.New("customer_id must be a valid UUID"))
	}

	result, err := h.uc.CustomerCount(ctx, customerID)
	if err != nil {
		return nil, err
	}

	return CustomerCountResponse{CustomerID: result.CustomerID, Total: result.Total}, nil
}

func (h *HTTPEndpoint) Stats(ctx context.Context, r *http.Request) (any, error) {
	stats := h.uc.Stats()

	return StatsResponse{
		TotalGenerated:          stats.TotalGenerated,
		TotalCollisions:         stats.TotalCollisions,
		TotalFailures:           stats.TotalFailures,
		AverageGenerationTimeMs: stats.MeanLatencyMs(),
		CollisionRate:           stats.CollisionRate,
		FailureRate:             stats.FailureRate,
		Status:                  string(stats.Status),
	}, nil
}

func (h *HTTPEndpoint) Info(ctx context.Context, r *http.Request) (any, error) {
	return InfoResponse{
		Name:        h.info.Name,
		Version:     h.info.Version,
		Description: h.info.Description,
	}, nil
}

func mapGenerateErr(err error) error {
	switch {
	case errors.Is(err, usecase.ErrExhausted):
		return pkgerror.NewGeneration(err, "unable to generate a unique tracking number, please retry")
	case errors.Is(err, usecase.ErrStoreUnavailable):
		return pkgerror.NewUnavailable(err, "tracking number storage is unavailable")
	default:
		return err
	}
}
