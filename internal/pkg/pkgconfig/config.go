package pkgconfig

import "io"

// Config is the read-only view of application configuration used by the app and modules.
type Config interface {
	io.Closer

	GetInt(key string) int64
	GetBool(key string) bool
	GetFloat(key string) float64
	GetString(key string) string
	GetBinary(key string) []byte
	GetArray(key string) []string
	GetMap(key string) map[string]string
}

// Defaults are applied before the config file is read, so a missing key falls back to them.
//
//nolint:gochecknoglobals // static table
var Defaults = map[string]any{
	"tz":                               "UTC",
	"log.level":                        "info",
	"server.address.http":              ":8080",
	"modules.tracking.enabled":         true,
	"storage.driver":                   "memory",
	"storage.pebble.dir":               "./data",
	"storage.pebble.fsync":             "always",
	"storage.pebble.fsync_interval_ms": 5,
	"storage.pebble.slow_ms":           100,
	"storage.timeout_ms":               0,
	"tracing.enabled":                  false,
	"tracing.output":                   "",
	"alerts.workers":                   2,
	"alerts.buffer":                    256,
	"id.snowflake_node":                -1,
}
