// Package pkgerror defines the structured Error carried from usecases to the
// HTTP edge.
//
// An Error has a type, a code and a user-facing message. The code decides the
// HTTP status: conflicts from a store are 409, validation is 422 and an
// unavailable dependency is 503.
package pkgerror
