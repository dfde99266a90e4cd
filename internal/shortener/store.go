package shortener

import (
	"context"
	"errors"
)

// ErrNotFound is returned by KV implementations when a key is absent, and by
// Resolve when a short code has no mapping. Callers distinguish it from store
// failures with errors.Is; an empty value is never used to signal absence.
var ErrNotFound = errors.New("key not found")

// KV is the minimal capability the engine needs from the backing key-value
// store. Implementations share one client across all concurrent requests and
// must be safe for concurrent use.
type KV interface {
	// Get returns the value stored at key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set unconditionally writes key -> value.
	Set(ctx context.Context, key, value string) error

	// SetNX writes key -> value only if key is currently absent. It reports
	// whether the write happened.
	SetNX(ctx context.Context, key, value string) (bool, error)
}
