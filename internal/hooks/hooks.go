// Gatelog - Security Event Logging for Web Applications
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatelog

// Package hooks implements the explicit event-bus the host application
// fires lifecycle events into: a table from event name to ordered listener
// functions, registered at startup. Dispatch is synchronous and in
// registration order, matching the single-threaded-per-request model.
package hooks

import (
	"context"
	"net/http"
	"sync"

	"github.com/tomtom215/gatelog/internal/classifier"
)

// Lifecycle event names the host fires.
const (
	// HookAuthenticate fires for every authentication attempt, before
	// credentials are checked.
	HookAuthenticate = "auth.attempt"

	// HookLoginSuccess fires after a successful login.
	HookLoginSuccess = "auth.login"

	// HookLoginFailure fires after a failed login.
	HookLoginFailure = "auth.failed"

	// HookXMLRPCAuthFailure fires for each failed XML-RPC authentication.
	HookXMLRPCAuthFailure = "xmlrpc.auth_failure"

	// HookXMLRPCCall fires for every inbound XML-RPC method call.
	HookXMLRPCCall = "xmlrpc.call"

	// HookPingbackError fires when pingback processing produced a fault.
	HookPingbackError = "xmlrpc.pingback_error"

	// HookCommentStatus fires when a comment changes status.
	HookCommentStatus = "comment.status"

	// HookParseRequest fires while routing a public request, before any
	// query runs. Enumeration probes are caught here.
	HookParseRequest = "request.parse"
)

// Payload types carried by the hooks above.
type (
	// AuthPayload accompanies HookAuthenticate, HookLoginSuccess, and
	// HookLoginFailure. Response is non-nil when the listener may
	// terminate the in-flight request.
	AuthPayload struct {
		Identifier string
		Response   http.ResponseWriter
	}

	// XMLRPCCallPayload accompanies HookXMLRPCCall.
	XMLRPCCallPayload struct {
		Method    string
		TargetURL string
	}

	// PingbackErrorPayload accompanies HookPingbackError.
	PingbackErrorPayload struct {
		Code int
	}

	// CommentPayload accompanies HookCommentStatus.
	CommentPayload struct {
		ID     int64
		Status string
	}

	// ProbePayload accompanies HookParseRequest.
	ProbePayload struct {
		Probe    classifier.EnumerationProbe
		Response http.ResponseWriter
	}
)

// Listener handles one event payload. Returning true stops dispatch of the
// remaining listeners for this event; a listener that terminated the
// request returns true so no further logic runs on its behalf.
type Listener func(ctx context.Context, payload any) (stop bool)

// Bus is the listener table. Registration normally happens once at
// startup; Fire may be called from concurrent requests.
type Bus struct {
	mu        sync.RWMutex
	listeners map[string][]Listener
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{listeners: make(map[string][]Listener)}
}

// Register appends a listener for the named event.
func (b *Bus) Register(name string, l Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[name] = append(b.listeners[name], l)
}

// Fire dispatches the payload to the event's listeners in registration
// order. It reports whether a listener stopped dispatch.
func (b *Bus) Fire(ctx context.Context, name string, payload any) bool {
	b.mu.RLock()
	ls := b.listeners[name]
	b.mu.RUnlock()

	for _, l := range ls {
		if l(ctx, payload) {
			return true
		}
	}
	return false
}

// Listeners returns how many listeners are registered for the named event.
func (b *Bus) Listeners(name string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners[name])
}
