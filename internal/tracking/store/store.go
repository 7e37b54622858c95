// Package store holds the uniqueness store implementations for tracking numbers.
package store

import "github.com/diasna/tng/internal/pkg/pkgerror"

var errDuplicate = pkgerror.NewBusiness("tracking number already exists", pkgerror.CodeConflict)
