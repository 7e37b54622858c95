package entity

import "time"

type FailureKind string

const (
	FailureKindExhausted        FailureKind = "EXHAUSTED"
	FailureKindStoreUnavailable FailureKind = "STORE_UNAVAILABLE"
)

// GenerationFailure is published when a generation call ends without a tracking number.
type GenerationFailure struct {
	EventID    string
	Kind       FailureKind
	Attempts   int
	Elapsed    time.Duration
	CustomerID string
	Cause      string
}
