package shortener_test

import (
	"context"

	"github.com/SemBeacon/shortener/internal/shortener"
)

// countingKV wraps a KV and counts writes.
type countingKV struct {
	shortener.KV
	sets   int
	setNXs int
}

func (c *countingKV) Set(ctx context.Context, key, value string) error {
	c.sets++

	return c.KV.Set(ctx, key, value)
}

func (c *countingKV) SetNX(ctx context.Context, key, value string) (bool, error) {
	c.setNXs++

	return c.KV.SetNX(ctx, key, value)
}

// failingKV wraps a KV and fails configured operations.
type failingKV struct {
	shortener.KV
	getErr   error
	setErr   error
	setNXErr error
	getCalls int
}

func (f *failingKV) Get(ctx context.Context, key string) (string, error) {
	f.getCalls++

	if f.getErr != nil {
		return "", f.getErr
	}

	return f.KV.Get(ctx, key)
}

func (f *failingKV) Set(ctx context.Context, key, value string) error {
	if f.setErr != nil {
		return f.setErr
	}

	return f.KV.Set(ctx, key, value)
}

func (f *failingKV) SetNX(ctx context.Context, key, value string) (bool, error) {
	if f.setNXErr != nil {
		return false, f.setNXErr
	}

	return f.KV.SetNX(ctx, key, value)
}

// racingKV simulates a concurrent shorten of the same uri: a competitor's
// reverse entry lands between the caller's not-found check and its claim.
type racingKV struct {
	shortener.KV
	contestedKey string
	winnerCode   string
}

func (r *racingKV) SetNX(ctx context.Context, key, value string) (bool, error) {
	if key == r.contestedKey {
		_ = r.KV.Set(ctx, key, r.winnerCode)
	}

	return r.KV.SetNX(ctx, key, value)
}
