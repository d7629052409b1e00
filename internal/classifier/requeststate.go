// Gatelog - Security Event Logging for Web Applications
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatelog

package classifier

import "context"

// RequestState is the only mutable state in the core: a counter of XML-RPC
// authentication failures seen so far in the current request. It is
// allocated when request processing starts and discarded with the request
// context; it must never be shared across concurrent requests.
//
// The host handles each request on a single goroutine, so the counter
// needs no synchronization.
type RequestState struct {
	xmlrpcAuthFailures int
}

type requestStateKey struct{}

// WithRequestState returns a context carrying a fresh RequestState.
// Installed once per request, typically by middleware.
func WithRequestState(ctx context.Context) context.Context {
	return context.WithValue(ctx, requestStateKey{}, &RequestState{})
}

// IncrementAuthFailures increments the request's XML-RPC auth failure
// counter and returns the new value. A context without request state
// counts each failure as the first, so a missing middleware degrades to
// per-event logging rather than a leaked counter.
func IncrementAuthFailures(ctx context.Context) int {
	if st, ok := ctx.Value(requestStateKey{}).(*RequestState); ok {
		st.xmlrpcAuthFailures++
		return st.xmlrpcAuthFailures
	}
	return 1
}

// AuthFailures returns the counter's current value without incrementing.
func AuthFailures(ctx context.Context) int {
	if st, ok := ctx.Value(requestStateKey{}).(*RequestState); ok {
		return st.xmlrpcAuthFailures
	}
	return 0
}
