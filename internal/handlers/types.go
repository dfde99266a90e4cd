package handlers

// ShortenRequest is the request for shortening a URI.
type ShortenRequest struct {
	App string `doc:"Application identifier"   example:"demo"                               path:"app"`
	API string `doc:"Application API key"      example:"abc"                                query:"api"`
	URI string `doc:"The URI to shorten"       example:"https://example.com/very/long/path" query:"uri"`
}

// ShortenResponse carries the full short URL as a bare JSON string body.
type ShortenResponse struct {
	Body string
}

// ResolveRequest is the request for resolving a short code.
type ResolveRequest struct {
	App  string `doc:"Application identifier" example:"demo"   path:"app"`
	Code string `doc:"The short code"         example:"aB3x9"  path:"id"`
}

// ResolveResponse redirects to the original URI.
type ResolveResponse struct {
	Status  int
	Headers struct {
		Location string `doc:"The original URI" header:"Location"`
	}
}
