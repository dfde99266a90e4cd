package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// RegisterRoutes registers the URL shortener routes.
func RegisterRoutes(api huma.API, urlHandler *URLHandler) {
	// GET /shorten/{app}?api=&uri= - shorten a URI
	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/shorten/{app}",
		Summary:     "Shorten a URI",
		Description: "Issues a short identifier for the URI, or returns the existing one if the URI was already shortened for this application.",
		Tags:        []string{"URLs"},
	}, urlHandler.Shorten)

	// GET /s/{app}/{id} - redirect to the original URI
	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/s/{app}/{id}",
		Summary:     "Redirect to the original URI",
		Description: "Redirects to the URI associated with the short code within the application's namespace.",
		Tags:        []string{"URLs"},
	}, urlHandler.Redirect)
}
