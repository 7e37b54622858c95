// Package pkgpebble wraps a Pebble key/value database with the durability
// settings and helpers the application stores need.
//
// Writes go through small batches committed with the configured fsync mode,
// and an optional MetricsHook observes read and commit latencies.
package pkgpebble
