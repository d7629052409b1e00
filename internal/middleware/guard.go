// Gatelog - Security Event Logging for Web Applications
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatelog

// Package middleware provides chi-compatible HTTP middleware for hosts
// that wire gatelog into their router rather than firing bus events
// directly. Each guard runs the classifier inline and performs the 403
// termination itself, so a terminated request never reaches the host
// handler.
package middleware

import (
	"net/http"
	"strings"

	"github.com/tomtom215/gatelog/internal/classifier"
	"github.com/tomtom215/gatelog/internal/plugin"
)

// SiteInfo carries the routing facts the enumeration guard needs.
type SiteInfo struct {
	// PrettyPermalinks is true when the site routes with pretty
	// permalinks. Enumeration blocking is suppressed without them.
	PrettyPermalinks bool

	// AdminPathPrefix marks administrative requests, where author query
	// parameters are legitimate. Empty disables the admin exemption.
	AdminPathPrefix string
}

// RequestState installs the per-request classifier state. Mount it before
// any handler that can fire XML-RPC auth failure events, and once per
// request only: the state's lifetime is the request's lifetime.
func RequestState(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(classifier.WithRequestState(r.Context())))
	})
}

// EnumerationGuard inspects every request for user enumeration probes
// (author or author_name query parameters) and lets the plugin decide
// whether to log and terminate.
func EnumerationGuard(p *plugin.Plugin, site SiteInfo) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			probe := classifier.EnumerationProbe{
				AuthorParam:      q.Has("author") || q.Has("author_name"),
				AdminContext:     site.AdminPathPrefix != "" && strings.HasPrefix(r.URL.Path, site.AdminPathPrefix),
				PrettyPermalinks: site.PrettyPermalinks,
			}
			if p.OnEnumerationProbe(r.Context(), w, probe) {
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AuthGuard checks the submitted login identifier against the blocked-user
// policy before the host's credential check runs. field names the form
// field carrying the identifier on POST requests; other methods pass
// through untouched.
func AuthGuard(p *plugin.Plugin, field string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost {
				identifier := r.PostFormValue(field)
				if identifier != "" && p.OnAuthenticate(r.Context(), w, identifier) {
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
