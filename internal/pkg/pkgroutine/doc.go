// Package pkgroutine runs bounded groups of goroutines.
//
// A Manager caps concurrency, turns panics into errors and reports tasks that
// never started because their context ended. The CLI uses it for bulk
// generation and the app uses it to close resources on shutdown.
package pkgroutine
