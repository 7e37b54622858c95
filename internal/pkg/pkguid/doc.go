// Package pkguid provides the ID generators used outside tracking numbers:
// UUIDv7 strings for correlation and event IDs, and snowflake numbers for
// record row IDs.
package pkguid
