// Gatelog - Security Event Logging for Web Applications
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatelog

// Package format renders normalized security events into the fixed
// single-line wire format consumed by operational tooling:
//
//	<tag>(<site-identifier>)[<pid>]: <message>
//
// Formatting is a pure function of the event. It never changes a
// classification outcome and never fails: empty or malformed subjects
// degrade to empty-string interpolation.
package format

import (
	"fmt"
	"os"

	"github.com/tomtom215/gatelog/internal/event"
)

// Formatter renders events for a given site identity.
type Formatter struct {
	// Site is the host's public identity string, e.g. its canonical URL
	// or hostname. Interpolated into every line.
	Site string

	// PID overrides the process id in the line prefix. Zero means the
	// current process id. Tests set this for deterministic output.
	PID int
}

// New returns a Formatter for the given site identity.
func New(site string) *Formatter {
	return &Formatter{Site: site}
}

// Line renders the full wire-format line for an event on the given channel.
func (f *Formatter) Line(channel string, ev event.LogEvent) string {
	pid := f.PID
	if pid == 0 {
		pid = os.Getpid()
	}
	return fmt.Sprintf("%s(%s)[%d]: %s", channel, f.Site, pid, Message(ev))
}

// Message renders the human-readable message for an event. Total over all
// inputs: unknown categories fall back to the raw detail or category name.
func Message(ev event.LogEvent) string {
	switch ev.Category {
	case event.CategoryAuthBlocked:
		return "Blocked authentication attempt for " + ev.Subject
	case event.CategoryAuthFailed:
		if ev.Detail == event.DetailUnknownUser {
			return "Authentication attempt for unknown user " + ev.Subject
		}
		return "Authentication failure for " + ev.Subject
	case event.CategoryAuthAccepted:
		return "Accepted password for " + ev.Subject
	case event.CategoryXmlrpcAuthFailure:
		return "XML-RPC authentication failure"
	case event.CategoryXmlrpcMulticallFailure:
		return "XML-RPC multicall authentication failure"
	case event.CategoryXmlrpcPingbackError:
		return "Pingback error " + ev.Detail + " generated"
	case event.CategoryXmlrpcPingbackRequest:
		return "Pingback requested for " + ev.Subject
	case event.CategoryCommentSpam:
		return "Spammed comment from " + ev.Subject
	case event.CategoryUserEnumeration:
		return "Blocked user enumeration attempt"
	default:
		if ev.Detail != "" {
			return ev.Detail
		}
		return string(ev.Category)
	}
}
