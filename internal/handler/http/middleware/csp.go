// Package middleware holds HTTP middleware for response security headers.
package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"fluxactu/pkg/security/csp"
)

// CSPConfig holds configuration for the CSP middleware.
type CSPConfig struct {
	// Enabled controls whether CSP headers are applied.
	// Default: true
	Enabled bool

	// DefaultPolicy applies when no path policy matches.
	DefaultPolicy *csp.Builder

	// PathPolicies maps path prefixes to policies. The longest matching prefix wins.
	PathPolicies map[string]*csp.Builder

	// ReportOnly sends policies in the report-only header.
	ReportOnly bool
}

// ReaderCSPConfig returns the policies for the reader: the page policy by default
// and the API policy under /api/.
func ReaderCSPConfig(reportOnly bool) CSPConfig {
	return CSPConfig{
		Enabled:       true,
		DefaultPolicy: csp.ReaderPagePolicy(),
		PathPolicies: map[string]*csp.Builder{
			"/api/": csp.APIPolicy(),
		},
		ReportOnly: reportOnly,
	}
}

// CSP returns middleware that sets a Content-Security-Policy header and the
// nosniff and referrer headers on every response.
func CSP(cfg CSPConfig) func(http.Handler) http.Handler {
	type rendered struct {
		header string
		value  string
	}
	render := func(b *csp.Builder) *rendered {
		if b == nil {
			return nil
		}
		b.ReportOnly(cfg.ReportOnly)
		value := b.Build()
		if value == "" {
			return nil
		}
		return &rendered{header: b.HeaderName(), value: value}
	}

	defaultPolicy := render(cfg.DefaultPolicy)
	pathPolicies := make(map[string]*rendered, len(cfg.PathPolicies))
	for prefix, b := range cfg.PathPolicies {
		pathPolicies[prefix] = render(b)
	}

	selectPolicy := func(path string) *rendered {
		longest := ""
		var matched *rendered
		for prefix, p := range pathPolicies {
			if strings.HasPrefix(path, prefix) && len(prefix) > len(longest) {
				longest, matched = prefix, p
			}
		}
		if longest != "" {
			return matched
		}
		return defaultPolicy
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("Referrer-Policy", "no-referrer")

			if cfg.Enabled {
				if p := selectPolicy(r.URL.Path); p != nil {
					h.Set(p.header, p.value)
					slog.Debug("CSP header applied",
						slog.String("path", r.URL.Path),
						slog.String("header", p.header))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
