package usecase

import (
	"errors"
	"fmt"
	"time"

	"github.com/diasna/tng/internal/pkg/pkgerror"
)

var (
	// ErrExhausted is matched by a GenerationError whose attempt budget ran out.
	ErrExhausted = errors.New("tracking number attempts exhausted")
	// ErrStoreUnavailable is matched by a GenerationError caused by the uniqueness store.
	ErrStoreUnavailable = errors.New("uniqueness store unavailable")
)

// GenerationErrorKind tells the terminal failure states apart.
type GenerationErrorKind int

const (
	KindExhausted GenerationErrorKind = iota + 1
	KindStoreUnavailable
)

func (k GenerationErrorKind) String() string {
	switch k {
	case KindExhausted:
		return "EXHAUSTED"
	case KindStoreUnavailable:
		return "STORE_UNAVAILABLE"
	default:
		return "UNKNOWN"
	}
}

// GenerationError is returned when a call ends without a tracking number.
type GenerationError struct {
	Kind     GenerationErrorKind
	Attempts int
	Elapsed  time.Duration
	// Err is the store error for KindStoreUnavailable, nil otherwise.
	Err error
}

func (e *GenerationError) Error() string {
	switch e.Kind {
	case KindExhausted:
		return fmt.Sprintf("no unique tracking number after %d attempts (%s)", e.Attempts, e.Elapsed)
	case KindStoreUnavailable:
		return fmt.Sprintf("uniqueness store failed on attempt %d (%s): %v", e.Attempts, e.Elapsed, e.Err)
	default:
		return "tracking number generation failed"
	}
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match the kind sentinels.
func (e *GenerationError) Is(target error) bool {
	switch target {
	case ErrExhausted:
		return e.Kind == KindExhausted
	case ErrStoreUnavailable:
		return e.Kind == KindStoreUnavailable
	}
	return false
}

// IsConflict reports whether a store error is a uniqueness-constraint violation.
func IsConflict(err error) bool {
	return pkgerror.IsCode(err, pkgerror.CodeConflict)
}
