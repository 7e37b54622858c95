package usecase

import (
	"time"

	"github.com/diasna/tng/internal/tracking/entity"
)

type GenerateResult struct {
	TrackingNumber string
	CreatedAt      time.Time
	Attempts       int
}

type HealthStatus string

const (
	HealthStatusHealthy  HealthStatus = "HEALTHY"
	HealthStatusWarning  HealthStatus = "WARNING"
	HealthStatusCritical HealthStatus = "CRITICAL"
)

type StatsResult struct {
	MetricsSnapshot
	CollisionRate float64
	FailureRate   float64
	Status        HealthStatus
}

// CollisionRate is collisions as a percentage of generated plus collided candidates.
func (s MetricsSnapshot) CollisionRate() float64 {
	return percent(s.TotalCollisions, s.TotalGenerated+s.TotalCollisions)
}

// FailureRate is failed calls as a percentage of generated plus failed calls.
func (s MetricsSnapshot) FailureRate() float64 {
	return percent(s.TotalFailures, s.TotalGenerated+s.TotalFailures)
}

// Health grades the snapshot: more than 5% failures is critical, more than 1%
// failures or 10% collisions is a warning.
func (s MetricsSnapshot) Health() HealthStatus {
	failureRate := s.FailureRate()
	if failureRate > 5.0 {
		return HealthStatusCritical
	}
	if failureRate > 1.0 || s.CollisionRate() > 10.0 {
		return HealthStatusWarning
	}
	return HealthStatusHealthy
}

func percent(part, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

type LookupResult struct {
	Record entity.TrackingNumber
}

type CustomerCountResult struct {
	CustomerID string
	Total      int64
}
