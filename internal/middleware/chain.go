// Gatelog - Security Event Logging for Web Applications
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatelog

package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/gatelog/internal/plugin"
)

// Stack composes the standard gatelog middleware for public routes:
// request ID, metrics instrumentation, per-request state, and the
// enumeration guard, in that order. Hosts mount it on their router and add
// AuthGuard plus LoginRateLimit on the login path.
func Stack(p *plugin.Plugin, site SiteInfo) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return chi.Chain(
			RequestID,
			PrometheusMetrics,
			RequestState,
			EnumerationGuard(p, site),
		).Handler(next)
	}
}
