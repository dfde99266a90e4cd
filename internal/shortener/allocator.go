package shortener

import (
	"context"
	"errors"
	"fmt"

	"github.com/SemBeacon/shortener/internal/tenant"
	"github.com/jaevor/go-nanoid"
)

// DefaultMaxAttempts bounds the collision-retry loop when no explicit bound
// is configured.
const DefaultMaxAttempts = 32

// ErrKeyspaceExhausted is returned when the allocator cannot find an unused
// identifier within its attempt bound. It indicates the tenant's keyspace is
// undersized for its record count.
var ErrKeyspaceExhausted = errors.New("could not allocate an unused identifier")

// Generator produces candidate identifiers.
type Generator func() string

// GeneratorFactory builds a Generator drawing uniformly from the given
// alphabet, producing strings of exactly the given length.
type GeneratorFactory func(characters string, length int) (Generator, error)

// NanoidFactory is the production GeneratorFactory, backed by go-nanoid's
// custom-alphabet generator. It rejects non-ASCII alphabets and lengths
// outside 2-255; tenant configuration validation enforces the same bounds.
func NanoidFactory(characters string, length int) (Generator, error) {
	gen, err := nanoid.CustomASCII(characters, length)
	if err != nil {
		return nil, err
	}

	return Generator(gen), nil
}

// Allocator generates collision-free identifiers for a tenant by checking
// random candidates against the store's forward entries. It carries no
// mutable state and is safe for concurrent use.
type Allocator struct {
	kv           KV
	newGenerator GeneratorFactory
	maxAttempts  int
}

// NewAllocator creates an allocator over kv. A nil factory selects
// NanoidFactory; a non-positive maxAttempts selects DefaultMaxAttempts.
func NewAllocator(kv KV, factory GeneratorFactory, maxAttempts int) *Allocator {
	if factory == nil {
		factory = NanoidFactory
	}

	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	return &Allocator{
		kv:           kv,
		newGenerator: factory,
		maxAttempts:  maxAttempts,
	}
}

// Allocate returns an identifier with no forward entry for app at the moment
// the existence check succeeded. Used candidates are retried with fresh
// independent candidates up to the attempt bound; a store failure during the
// check is returned immediately, never retried.
func (a *Allocator) Allocate(ctx context.Context, app *tenant.Application) (string, error) {
	gen, err := a.newGenerator(app.Characters, app.MaxLength)
	if err != nil {
		return "", fmt.Errorf("building identifier generator: %w", err)
	}

	for range a.maxAttempts {
		candidate := gen()

		_, err := a.kv.Get(ctx, forwardKey(app, candidate))
		if errors.Is(err, ErrNotFound) {
			return candidate, nil
		}

		if err != nil {
			return "", err
		}

		// Candidate is in use, try another.
	}

	return "", fmt.Errorf("%w after %d attempts", ErrKeyspaceExhausted, a.maxAttempts)
}
