package seo

import (
	"net/http"
	"strings"
)

// HeaderRule sets response headers for requests whose path matches Prefix.
// Exact rules match only the path itself; prefix rules also match any
// sub-path.
type HeaderRule struct {
	Prefix  string
	Exact   bool
	Headers map[string]string
}

func (r HeaderRule) matches(path string) bool {
	if r.Prefix == "" {
		return true
	}
	if path == r.Prefix {
		return true
	}
	return !r.Exact && strings.HasPrefix(path, strings.TrimRight(r.Prefix, "/")+"/")
}

// HeaderRules returns the crawler and security header table. Later rules
// override earlier ones for the same header.
func (c *Config) HeaderRules() []HeaderRule {
	listing := map[string]string{
		"X-Robots-Tag":           "index, follow, max-snippet:-1, max-image-preview:large, max-video-preview:-1",
		"Content-Language":       c.ContentLanguage(),
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "SAMEORIGIN",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
	}
	private := map[string]string{"X-Robots-Tag": "noindex, nofollow"}

	return []HeaderRule{
		{
			Headers: map[string]string{
				"X-AI-Agent-Optimized":      "true",
				"X-Knowledge-Graph-Enabled": "true",
				"X-Entity-Recognition":      "enabled",
			},
		},
		{Prefix: "/listings", Headers: listing},
		{Prefix: "/global-listings", Headers: listing},
		{Prefix: "/add-listing", Exact: true, Headers: map[string]string{"X-Robots-Tag": "noindex, follow"}},
		{Prefix: "/dashboard", Headers: private},
		{Prefix: "/api", Headers: private},
	}
}

// Headers returns middleware that applies HeaderRules before the handler runs.
func (c *Config) Headers() func(http.Handler) http.Handler {
	rules := c.HeaderRules()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			for _, rule := range rules {
				if !rule.matches(r.URL.Path) {
					continue
				}
				for k, v := range rule.Headers {
					h.Set(k, v)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
