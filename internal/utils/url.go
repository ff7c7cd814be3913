package utils

import (
	"strings"
)

// NormalizeURL prepends https:// when the supplied URL carries no scheme.
// Idempotent: an already-prefixed URL comes back unchanged, and applying it
// twice never double-prefixes. Plain http:// URLs already have a scheme and
// are left alone. Empty input stays empty.
func NormalizeURL(raw string) string {
	url := strings.TrimSpace(raw)
	if url == "" {
		return ""
	}
	if strings.HasPrefix(url, "https://") || strings.HasPrefix(url, "http://") {
		return url
	}
	return "https://" + url
}
