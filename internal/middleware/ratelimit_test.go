// Gatelog - Security Event Logging for Web Applications
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatelog

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLoginRateLimit(t *testing.T) {
	t.Parallel()

	h := LoginRateLimit(2, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "203.0.113.9:54321"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w.Code
	}

	if got := send(); got != http.StatusOK {
		t.Errorf("first request = %d, want 200", got)
	}
	if got := send(); got != http.StatusOK {
		t.Errorf("second request = %d, want 200", got)
	}
	if got := send(); got != http.StatusTooManyRequests {
		t.Errorf("third request = %d, want 429", got)
	}

	// A different client IP is not affected.
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "198.51.100.1:40000"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("other client = %d, want 200", w.Code)
	}
}
