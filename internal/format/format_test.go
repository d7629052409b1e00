// Gatelog - Security Event Logging for Web Applications
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatelog

package format

import (
	"strings"
	"testing"

	"github.com/tomtom215/gatelog/internal/event"
)

func TestMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ev   event.LogEvent
		want string
	}{
		{
			name: "auth blocked",
			ev:   event.LogEvent{Category: event.CategoryAuthBlocked, Subject: "admin"},
			want: "Blocked authentication attempt for admin",
		},
		{
			name: "auth failed known user",
			ev:   event.LogEvent{Category: event.CategoryAuthFailed, Subject: "alice"},
			want: "Authentication failure for alice",
		},
		{
			name: "auth failed unknown user",
			ev: event.LogEvent{
				Category: event.CategoryAuthFailed,
				Subject:  "nobody",
				Detail:   event.DetailUnknownUser,
			},
			want: "Authentication attempt for unknown user nobody",
		},
		{
			name: "auth accepted",
			ev:   event.LogEvent{Category: event.CategoryAuthAccepted, Subject: "bob"},
			want: "Accepted password for bob",
		},
		{
			name: "xmlrpc auth failure",
			ev:   event.LogEvent{Category: event.CategoryXmlrpcAuthFailure},
			want: "XML-RPC authentication failure",
		},
		{
			name: "xmlrpc multicall failure",
			ev:   event.LogEvent{Category: event.CategoryXmlrpcMulticallFailure},
			want: "XML-RPC multicall authentication failure",
		},
		{
			name: "pingback error carries code",
			ev:   event.LogEvent{Category: event.CategoryXmlrpcPingbackError, Detail: "16"},
			want: "Pingback error 16 generated",
		},
		{
			name: "pingback request",
			ev:   event.LogEvent{Category: event.CategoryXmlrpcPingbackRequest, Subject: "https%3A%2F%2Fexample.org%2Fpost"},
			want: "Pingback requested for https%3A%2F%2Fexample.org%2Fpost",
		},
		{
			name: "comment spam",
			ev:   event.LogEvent{Category: event.CategoryCommentSpam, Subject: "203.0.113.9"},
			want: "Spammed comment from 203.0.113.9",
		},
		{
			name: "user enumeration",
			ev:   event.LogEvent{Category: event.CategoryUserEnumeration},
			want: "Blocked user enumeration attempt",
		},
		{
			name: "unknown category falls back to detail",
			ev:   event.LogEvent{Category: "custom.thing", Detail: "something happened"},
			want: "something happened",
		},
		{
			name: "unknown category without detail falls back to name",
			ev:   event.LogEvent{Category: "custom.thing"},
			want: "custom.thing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Message(tt.ev); got != tt.want {
				t.Errorf("Message() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMessageTotal(t *testing.T) {
	t.Parallel()

	// The formatter must never fail, whatever the subject looks like.
	subjects := []string{"", " ", "\x00", "üser\nname", strings.Repeat("x", 10_000)}
	for _, s := range subjects {
		ev := event.LogEvent{Category: event.CategoryAuthBlocked, Subject: s}
		if got := Message(ev); !strings.HasPrefix(got, "Blocked authentication attempt for ") {
			t.Errorf("Message(%q) = %q, lost the template prefix", s, got)
		}
	}
}

func TestLine(t *testing.T) {
	t.Parallel()

	f := &Formatter{Site: "blog.example.org", PID: 4242}
	ev := event.LogEvent{Category: event.CategoryAuthAccepted, Subject: "alice"}

	got := f.Line("gatelog", ev)
	want := "gatelog(blog.example.org)[4242]: Accepted password for alice"
	if got != want {
		t.Errorf("Line() = %q, want %q", got, want)
	}
}

func TestLineDefaultsToProcessPID(t *testing.T) {
	t.Parallel()

	f := New("blog.example.org")
	line := f.Line("gatelog", event.LogEvent{Category: event.CategoryUserEnumeration})
	if !strings.HasPrefix(line, "gatelog(blog.example.org)[") {
		t.Errorf("Line() = %q, want channel and site prefix", line)
	}
	if strings.Contains(line, "[0]") {
		t.Errorf("Line() = %q, pid was not populated", line)
	}
}
