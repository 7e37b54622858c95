package inbound

import "time"

type NextTrackingNumberResponse struct {
	TrackingNumber string    `json:"tracking_number"`
	CreatedAt      time.Time `json:"created_at"`
}

func (NextTrackingNumberResponse) Message() string {
	return "tracking number generated"
}

type TrackingNumberResponse struct {
	TrackingNumber       string    `json:"tracking_number"`
	OriginCountryID      string    `json:"origin_country_id"`
	DestinationCountryID string    `json:"destination_country_id"`
	Weight               float64   `json:"weight"`
	CustomerID           string    `json:"customer_id"`
	CustomerName         string    `json:"customer_name"`
	CustomerSlug         string    `json:"customer_slug"`
	CreatedAt            time.Time `json:"created_at"`
}

type CustomerCountResponse struct {
	CustomerID string `json:"customer_id"`
	Total      int64  `json:"total"`
}

type StatsResponse struct {
	TotalGenerated          int64   `json:"total_generated"`
	TotalCollisions         int64   `json:"total_collisions"`
	TotalFailures           int64   `json:"total_failures"`
	AverageGenerationTimeMs float64 `json:"average_generation_time_ms"`
	CollisionRate           float64 `json:"collision_rate"`
	FailureRate             float64 `json:"failure_rate"`
	Status                  string  `json:"status"`
}

type InfoResponse struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
}
