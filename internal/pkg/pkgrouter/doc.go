// Package pkgrouter wraps HTTP routing and the middleware shared by every
// endpoint.
//
// Handlers return a payload or a pkgerror; the router turns them into the JSON
// envelope. Requests pass through panic recovery, correlation ID propagation
// and access logging with customer fields masked.
package pkgrouter
