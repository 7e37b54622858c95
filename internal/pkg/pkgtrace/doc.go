// Package pkgtrace builds the OpenTelemetry tracer used by the application.
//
// When tracing is enabled spans are exported with the stdout exporter (to
// stdout or a file); otherwise a no-op tracer is returned so callers never
// have to check whether tracing is on.
package pkgtrace
