package shortener

import (
	"context"
	"errors"
	"strings"

	"github.com/SemBeacon/shortener/internal/tenant"
	"go.uber.org/zap"
)

// Engine orchestrates the shorten and resolve operations over the key-value
// store. It is reentrant; all state lives in the store.
type Engine struct {
	kv        KV
	allocator *Allocator
	logger    *zap.Logger
}

// NewEngine creates an engine over kv using allocator for new identifiers.
func NewEngine(kv KV, allocator *Allocator, logger *zap.Logger) *Engine {
	return &Engine{
		kv:        kv,
		allocator: allocator,
		logger:    logger,
	}
}

// Shorten returns the identifier mapped to uri under app, allocating one if
// the uri has not been shortened before. Repeated calls for the same
// (app, uri) pair return the same identifier.
//
// The reverse entry is claimed with a conditional write before the forward
// entry is written, so two concurrent first-time shortens of the same uri
// converge on a single identifier: the losing claim re-reads the winner's
// code and writes nothing. A store failure between the claim and the forward
// write leaves a reverse entry whose code resolves to NotFound; such records
// are not repaired.
func (e *Engine) Shorten(ctx context.Context, app *tenant.Application, uri string) (string, error) {
	revKey := reverseKey(app, uri)

	code, err := e.kv.Get(ctx, revKey)
	if err == nil {
		return code, nil
	}

	if !errors.Is(err, ErrNotFound) {
		return "", err
	}

	code, err = e.allocator.Allocate(ctx, app)
	if err != nil {
		return "", err
	}

	claimed, err := e.kv.SetNX(ctx, revKey, code)
	if err != nil {
		return "", err
	}

	if !claimed {
		// A concurrent shorten claimed this uri first; return its code.
		return e.kv.Get(ctx, revKey)
	}

	if err := e.kv.Set(ctx, forwardKey(app, code), uri); err != nil {
		return "", err
	}

	e.logger.Debug("shortened uri",
		zap.String("application", app.ID),
		zap.String("code", code),
	)

	return code, nil
}

// Resolve returns the uri mapped to code under app, or ErrNotFound. It has
// no side effects.
func (e *Engine) Resolve(ctx context.Context, app *tenant.Application, code string) (string, error) {
	uri, err := e.kv.Get(ctx, forwardKey(app, code))
	if err != nil {
		return "", err
	}

	e.logger.Debug("resolved identifier",
		zap.String("application", app.ID),
		zap.String("code", code),
	)

	return uri, nil
}

// ShortURL composes the externally visible short URL for code under app,
// joining the application's base URL and the code with exactly one slash.
func ShortURL(app *tenant.Application, code string) string {
	return strings.TrimSuffix(app.URL, "/") + "/" + code
}
