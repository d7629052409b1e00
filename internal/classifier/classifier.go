// Gatelog - Security Event Logging for Web Applications
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatelog

// Package classifier maps raw host lifecycle events onto zero or more
// normalized security events, applying the suppression and deduplication
// policy. It is the only component that decides whether something is worth
// logging; formatting and delivery happen downstream and never change a
// classification outcome.
package classifier

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/tomtom215/gatelog/internal/comments"
	"github.com/tomtom215/gatelog/internal/event"
	"github.com/tomtom215/gatelog/internal/identity"
	"github.com/tomtom215/gatelog/internal/metrics"
	"github.com/tomtom215/gatelog/internal/policy"
)

// pingbackAlreadyRegistered is the host's pingback fault code for a
// backlink that is already registered. Not an attack signal, so it is
// never logged.
const pingbackAlreadyRegistered = 48

// PingbackMethod is the only XML-RPC method the pingback-request rule
// matches.
const PingbackMethod = "pingback.ping"

// Classifier turns host lifecycle events into normalized LogEvents.
// Policy is resolved fresh on every call; the resolver must not be
// memoized across events.
type Classifier struct {
	policy   policy.Resolver
	users    identity.Directory
	comments comments.Store
}

// New returns a Classifier. users and comments may be nil when the host
// does not expose the corresponding lookups; the affected rules then treat
// every lookup as a miss.
func New(resolver policy.Resolver, users identity.Directory, store comments.Store) *Classifier {
	return &Classifier{policy: resolver, users: users, comments: store}
}

// Authenticate classifies an authentication attempt against the blocked
// identifier list. A blocked identifier yields AuthBlocked with request
// termination; anything else passes through silently.
func (c *Classifier) Authenticate(ctx context.Context, identifier string) []event.LogEvent {
	d := c.policy.Resolve(ctx)
	if !d.Blocks(identifier) {
		return nil
	}
	return []event.LogEvent{{
		Category:         event.CategoryAuthBlocked,
		Severity:         event.SeverityWarning,
		Subject:          identifier,
		TerminateRequest: true,
	}}
}

// LoginSuccess classifies a successful login. Always one AuthAccepted
// event at info severity.
func (c *Classifier) LoginSuccess(ctx context.Context, username string) []event.LogEvent {
	return []event.LogEvent{{
		Category: event.CategoryAuthAccepted,
		Severity: event.SeverityInfo,
		Subject:  username,
	}}
}

// LoginFailure classifies a failed login. The submitted identifier is
// resolved against the identity cache: a direct login match or an email
// match marks a password failure against a real account; otherwise the
// attempt targeted an unknown user. Lookup errors are benign and resolve
// as misses.
func (c *Classifier) LoginFailure(ctx context.Context, identifier string) []event.LogEvent {
	existing := c.resolveLogin(ctx, identifier)
	if existing == "" {
		return []event.LogEvent{{
			Category: event.CategoryAuthFailed,
			Severity: event.SeverityWarning,
			Subject:  identifier,
			Detail:   event.DetailUnknownUser,
		}}
	}
	return []event.LogEvent{{
		Category: event.CategoryAuthFailed,
		Severity: event.SeverityWarning,
		Subject:  existing,
	}}
}

func (c *Classifier) resolveLogin(ctx context.Context, identifier string) string {
	if c.users == nil {
		return ""
	}
	if ok, err := c.users.LookupLogin(ctx, identifier); err == nil && ok {
		return identifier
	}
	if login, ok, err := c.users.LookupEmail(ctx, identifier); err == nil && ok {
		return login
	}
	return ""
}

// XMLRPCAuthFailure classifies a failed XML-RPC authentication. The first
// failure in a request yields XmlrpcAuthFailure; every subsequent failure
// in the same request additionally yields XmlrpcMulticallFailure, since
// repeated failures inside one request are the multicall attack signature.
func (c *Classifier) XMLRPCAuthFailure(ctx context.Context) []event.LogEvent {
	events := []event.LogEvent{{
		Category: event.CategoryXmlrpcAuthFailure,
		Severity: event.SeverityWarning,
	}}
	if IncrementAuthFailures(ctx) > 1 {
		metrics.MulticallDetections.Inc()
		events = append(events, event.LogEvent{
			Category: event.CategoryXmlrpcMulticallFailure,
			Severity: event.SeverityWarning,
		})
	}
	return events
}

// PingbackError classifies a pingback fault. Code 48 means the backlink
// was already registered and is suppressed; any other code is logged with
// the code embedded in the detail.
func (c *Classifier) PingbackError(ctx context.Context, code int) []event.LogEvent {
	if code == pingbackAlreadyRegistered {
		metrics.EventsSuppressed.WithLabelValues("pingback_registered").Inc()
		return nil
	}
	return []event.LogEvent{{
		Category: event.CategoryXmlrpcPingbackError,
		Severity: event.SeverityWarning,
		Detail:   strconv.Itoa(code),
	}}
}

// PingbackRequest classifies an inbound XML-RPC call as a pingback when
// the method is exactly pingback.ping and pingback logging is enabled.
// The target URL degrades to the literal "unknown" and is otherwise
// percent-encoded before inclusion, with spaces as %20 so the subject
// never contains whitespace.
func (c *Classifier) PingbackRequest(ctx context.Context, method, targetURL string) []event.LogEvent {
	if method != PingbackMethod {
		return nil
	}
	if !c.policy.Resolve(ctx).LogPingbacks {
		metrics.EventsSuppressed.WithLabelValues("policy").Inc()
		return nil
	}
	subject := "unknown"
	if targetURL != "" {
		subject = strings.ReplaceAll(url.QueryEscape(targetURL), "+", "%20")
	}
	return []event.LogEvent{{
		Category: event.CategoryXmlrpcPingbackRequest,
		Severity: event.SeverityInfo,
		Subject:  subject,
	}}
}

// CommentStatus classifies a comment status transition. Only transitions
// to spam are interesting, only when spam logging is enabled, and only
// while the comment record still exists: it may have been deleted between
// the event firing and this lookup, which is a silent no-op.
func (c *Classifier) CommentStatus(ctx context.Context, commentID int64, status string) []event.LogEvent {
	if status != comments.StatusSpam {
		return nil
	}
	if !c.policy.Resolve(ctx).LogSpamComments {
		metrics.EventsSuppressed.WithLabelValues("policy").Inc()
		return nil
	}
	if c.comments == nil {
		metrics.EventsSuppressed.WithLabelValues("comment_missing").Inc()
		return nil
	}
	cm, ok, err := c.comments.Comment(ctx, commentID)
	if err != nil || !ok {
		metrics.EventsSuppressed.WithLabelValues("comment_missing").Inc()
		return nil
	}
	return []event.LogEvent{{
		Category: event.CategoryCommentSpam,
		Severity: event.SeverityNotice,
		Subject:  cm.AuthorIP,
		Detail:   "comment " + strconv.FormatInt(commentID, 10),
	}}
}

// EnumerationProbe describes a request inspected for user enumeration.
type EnumerationProbe struct {
	// AuthorParam is true when the request carries an author or
	// author_name query parameter.
	AuthorParam bool

	// AdminContext is true for administrative requests, where author
	// queries are legitimate.
	AdminContext bool

	// PrettyPermalinks is true when the site routes with pretty
	// permalinks. Enumeration blocking is only safe under that routing.
	PrettyPermalinks bool
}

// Enumeration classifies a user enumeration probe. The probe is ignored
// for admin requests, for sites without pretty permalinks, and for
// requests without author parameters. When the pattern is present but the
// blocking flag is off, the probe is detected and deliberately allowed.
func (c *Classifier) Enumeration(ctx context.Context, probe EnumerationProbe) []event.LogEvent {
	if !probe.AuthorParam || probe.AdminContext || !probe.PrettyPermalinks {
		return nil
	}
	if !c.policy.Resolve(ctx).BlockEnumeration {
		// Detect but don't act: the probe pattern was seen yet policy
		// says to allow it silently.
		metrics.EventsSuppressed.WithLabelValues("policy").Inc()
		return nil
	}
	return []event.LogEvent{{
		Category:         event.CategoryUserEnumeration,
		Severity:         event.SeverityNotice,
		TerminateRequest: true,
	}}
}
