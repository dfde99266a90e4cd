package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/SemBeacon/shortener/internal/shortener"
	"github.com/SemBeacon/shortener/internal/tenant"
	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"
)

// URLHandler translates HTTP requests into mapping-engine calls and engine
// results into HTTP responses. Tenant and key faults surface as internal
// errors, a missing mapping as not found, matching the service's public
// contract.
type URLHandler struct {
	engine   *shortener.Engine
	registry *tenant.Registry
	logger   *zap.Logger
}

// NewURLHandler creates a new URL handler.
func NewURLHandler(engine *shortener.Engine, registry *tenant.Registry, logger *zap.Logger) *URLHandler {
	return &URLHandler{
		engine:   engine,
		registry: registry,
		logger:   logger,
	}
}

func (h *URLHandler) Shorten(ctx context.Context, req *ShortenRequest) (*ShortenResponse, error) {
	if _, err := h.registry.FindByID(req.App); err != nil {
		return nil, huma.Error500InternalServerError("Application identifier not found!")
	}

	app, err := h.registry.FindByKey(req.App, req.API)
	if err != nil {
		return nil, huma.Error500InternalServerError("API key not found!")
	}

	if req.URI == "" {
		return nil, huma.Error500InternalServerError("Please provide an uri= GET parameter!")
	}

	code, err := h.engine.Shorten(ctx, app, req.URI)
	if err != nil {
		h.logger.Error("error shortening uri",
			zap.String("application", app.ID),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("Internal server error!")
	}

	shortURL := shortener.ShortURL(app, code)

	h.logger.Debug("shortened",
		zap.String("uri", req.URI),
		zap.String("short", shortURL),
	)

	return &ShortenResponse{Body: shortURL}, nil
}

func (h *URLHandler) Redirect(ctx context.Context, req *ResolveRequest) (*ResolveResponse, error) {
	if req.Code == "" {
		return nil, huma.Error500InternalServerError("Please provide a short code!")
	}

	app, err := h.registry.FindByID(req.App)
	if err != nil {
		return nil, huma.Error500InternalServerError("Application identifier not found!")
	}

	uri, err := h.engine.Resolve(ctx, app, req.Code)
	if err != nil {
		if errors.Is(err, shortener.ErrNotFound) {
			return nil, huma.Error404NotFound("Short code not found!")
		}

		h.logger.Error("error resolving identifier",
			zap.String("application", app.ID),
			zap.String("code", req.Code),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("Internal server error!")
	}

	resp := &ResolveResponse{
		Status: http.StatusMovedPermanently,
	}
	resp.Headers.Location = uri

	return resp, nil
}
