// Package storage provides the persistent key-value binding that backs
// all durable application data: one named slot holds one JSON-encoded
// value. Implementations differ only in medium (flat files, SQLite, or
// process memory); callers choose via configuration and never touch
// the medium directly.
package storage

import "context"

// Binding binds named slots of durable storage to JSON-encoded values.
//
// Read reports absence via its bool result; decode and IO failures are
// returned as errors so the caller can decide between falling back to
// a default and surfacing the failure. Write replaces the slot's whole
// value; on failure the previously persisted value is left untouched.
type Binding interface {
	// Read fetches the value stored under key and decodes it into
	// into (a pointer). It returns false when the slot is absent.
	Read(ctx context.Context, key string, into any) (bool, error)

	// Write encodes value as JSON and stores it under key, replacing
	// any previous value atomically.
	Write(ctx context.Context, key string, value any) error

	// Close releases any resources held by the binding.
	Close() error
}
