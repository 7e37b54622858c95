// Package pkglog configures the process-wide slog logger.
//
// Records are JSON with stable keys and carry the service name, the request
// correlation ID and, inside a span, the OpenTelemetry trace and span IDs.
package pkglog
