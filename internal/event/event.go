// Gatelog - Security Event Logging for Web Applications
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatelog

// Package event defines the normalized security event record produced by the
// classifier and consumed exactly once by the formatter and sink.
package event

import (
	"github.com/goccy/go-json"
)

// Category identifies the kind of security event.
type Category string

const (
	// CategoryAuthBlocked is an authentication attempt by a blocked identifier.
	CategoryAuthBlocked Category = "auth.blocked"

	// CategoryAuthFailed is a failed login attempt.
	CategoryAuthFailed Category = "auth.failed"

	// CategoryAuthAccepted is a successful login.
	CategoryAuthAccepted Category = "auth.accepted"

	// CategoryXmlrpcAuthFailure is a failed XML-RPC authentication.
	CategoryXmlrpcAuthFailure Category = "xmlrpc.auth_failure"

	// CategoryXmlrpcMulticallFailure marks repeated XML-RPC auth failures
	// within a single request, the multicall attack signature.
	CategoryXmlrpcMulticallFailure Category = "xmlrpc.multicall_failure"

	// CategoryXmlrpcPingbackError is a pingback that failed with an error code.
	CategoryXmlrpcPingbackError Category = "xmlrpc.pingback_error"

	// CategoryXmlrpcPingbackRequest is an inbound pingback.ping call.
	CategoryXmlrpcPingbackRequest Category = "xmlrpc.pingback_request"

	// CategoryCommentSpam is a comment transitioned to spam status.
	CategoryCommentSpam Category = "comment.spam"

	// CategoryUserEnumeration is a user enumeration probe on a public URL.
	CategoryUserEnumeration Category = "user.enumeration"
)

// Severity indicates the syslog severity of an event.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityNotice  Severity = "notice"
	SeverityWarning Severity = "warning"
)

// DetailUnknownUser marks a failed login whose identifier matched neither a
// known login nor a known email. The formatter phrases these differently
// from password failures against real accounts.
const DetailUnknownUser = "unknown user"

// LogEvent is an immutable security event record. It is created by the
// classifier, rendered once by the formatter, written once by the sink, and
// then discarded. There is no persistence and no retry.
type LogEvent struct {
	// Category of the event.
	Category Category `json:"category"`

	// Severity of the event. Defaults to warning when unset.
	Severity Severity `json:"severity"`

	// Subject is the acting identity: username, email, IP address, or URL.
	Subject string `json:"subject,omitempty"`

	// Detail is the human-readable message fragment.
	Detail string `json:"detail,omitempty"`

	// TerminateRequest marks a hard block: after the sink write, the
	// in-flight request is ended with HTTP 403 and an empty body.
	TerminateRequest bool `json:"terminate_request"`
}

// EffectiveSeverity returns the event severity, defaulting to warning.
func (e LogEvent) EffectiveSeverity() Severity {
	switch e.Severity {
	case SeverityInfo, SeverityNotice, SeverityWarning:
		return e.Severity
	default:
		return SeverityWarning
	}
}

// MarshalJSON renders the event with its effective severity so mirrored
// JSON output never carries an empty severity field.
func (e LogEvent) MarshalJSON() ([]byte, error) {
	type alias LogEvent
	a := alias(e)
	a.Severity = e.EffectiveSeverity()
	return json.Marshal(a)
}
