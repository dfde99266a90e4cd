package shortener

import (
	"strings"

	"github.com/SemBeacon/shortener/internal/tenant"
)

// Record keys follow a fixed scheme with the lower-cased tenant id as the
// namespace prefix:
//
//	{tenantId}:short:{identifier} -> original URI (forward entry)
//	{tenantId}:uri:{uri}          -> identifier   (reverse entry)

func forwardKey(app *tenant.Application, code string) string {
	return strings.ToLower(app.ID) + ":short:" + code
}

func reverseKey(app *tenant.Application, uri string) string {
	return strings.ToLower(app.ID) + ":uri:" + uri
}
