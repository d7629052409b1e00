// Gatelog - Security Event Logging for Web Applications
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatelog

package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/gatelog/internal/classifier"
	"github.com/tomtom215/gatelog/internal/plugin"
	"github.com/tomtom215/gatelog/internal/policy"
	"github.com/tomtom215/gatelog/internal/sink"
)

func newGuardedRouter(t *testing.T, d policy.Decision, site SiteInfo, buf *bytes.Buffer) (*chi.Mux, *int) {
	t.Helper()

	cls := classifier.New(policy.Static(d), nil, nil)
	p := plugin.New(plugin.Config{Site: "blog.example.org"}, cls, sink.WriterFactory(buf))

	handled := 0
	r := chi.NewRouter()
	r.Use(Stack(p, site))
	r.Group(func(r chi.Router) {
		r.Use(AuthGuard(p, "log"))
		r.Post("/login", func(w http.ResponseWriter, req *http.Request) {
			handled++
			w.WriteHeader(http.StatusOK)
		})
	})
	r.Get("/*", func(w http.ResponseWriter, req *http.Request) {
		handled++
		w.WriteHeader(http.StatusOK)
	})
	return r, &handled
}

func TestEnumerationGuardBlocks(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	site := SiteInfo{PrettyPermalinks: true, AdminPathPrefix: "/admin"}
	r, handled := newGuardedRouter(t, policy.Decision{BlockEnumeration: true}, site, &buf)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/?author=1", nil))

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", w.Body.String())
	}
	if *handled != 0 {
		t.Error("handler ran after termination")
	}
	if !strings.Contains(buf.String(), "Blocked user enumeration attempt") {
		t.Errorf("log = %q, want enumeration line", buf.String())
	}
}

func TestEnumerationGuardExemptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		target string
		site   SiteInfo
		block  bool
	}{
		{
			name:   "no author parameter",
			target: "/?page=2",
			site:   SiteInfo{PrettyPermalinks: true, AdminPathPrefix: "/admin"},
			block:  true,
		},
		{
			name:   "admin context",
			target: "/admin/users?author=1",
			site:   SiteInfo{PrettyPermalinks: true, AdminPathPrefix: "/admin"},
			block:  true,
		},
		{
			name:   "plain permalinks",
			target: "/?author=1",
			site:   SiteInfo{PrettyPermalinks: false},
			block:  true,
		},
		{
			name:   "flag off detects but allows",
			target: "/?author=1",
			site:   SiteInfo{PrettyPermalinks: true},
			block:  false,
		},
		{
			name:   "author_name also matches but flag off",
			target: "/?author_name=alice",
			site:   SiteInfo{PrettyPermalinks: true},
			block:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			r, handled := newGuardedRouter(t, policy.Decision{BlockEnumeration: tt.block}, tt.site, &buf)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.target, nil))

			if w.Code != http.StatusOK {
				t.Errorf("status = %d, want pass-through 200", w.Code)
			}
			if *handled != 1 {
				t.Errorf("handled = %d, want 1", *handled)
			}
			if buf.Len() != 0 {
				t.Errorf("log = %q, want nothing", buf.String())
			}
		})
	}
}

func TestAuthGuardBlocksListedUser(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	site := SiteInfo{PrettyPermalinks: true}
	r, handled := newGuardedRouter(t, policy.Decision{BlockedUsers: []string{"admin"}}, site, &buf)

	form := url.Values{"log": {"admin"}, "pwd": {"hunter2"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
	if *handled != 0 {
		t.Error("login handler ran for a blocked user")
	}
	if !strings.Contains(buf.String(), "Blocked authentication attempt for admin") {
		t.Errorf("log = %q", buf.String())
	}
}

func TestAuthGuardAllowsUnlistedUser(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	site := SiteInfo{PrettyPermalinks: true}
	r, handled := newGuardedRouter(t, policy.Decision{BlockedUsers: []string{"admin"}}, site, &buf)

	form := url.Values{"log": {"alice"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK || *handled != 1 {
		t.Errorf("status = %d handled = %d, want pass-through", w.Code, *handled)
	}
}

func TestRequestStateInstalled(t *testing.T) {
	t.Parallel()

	var sawState bool
	h := RequestState(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		classifier.IncrementAuthFailures(r.Context())
		sawState = classifier.AuthFailures(r.Context()) == 1
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if !sawState {
		t.Error("request state was not installed on the context")
	}
}

func TestRequestIDHeader(t *testing.T) {
	t.Parallel()

	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing")
	}

	// Upstream-supplied IDs are kept.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "upstream-id")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got != "upstream-id" {
		t.Errorf("X-Request-ID = %q, want upstream-id", got)
	}
}
