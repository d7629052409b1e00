// Gatelog - Security Event Logging for Web Applications
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatelog

// Package plugin composes the classifier, formatter, and sink into the
// object a host application wires its lifecycle events into. One Plugin
// instance serves the whole process; it holds no per-request state beyond
// what the request context carries.
package plugin

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/tomtom215/gatelog/internal/classifier"
	"github.com/tomtom215/gatelog/internal/event"
	"github.com/tomtom215/gatelog/internal/format"
	"github.com/tomtom215/gatelog/internal/hooks"
	"github.com/tomtom215/gatelog/internal/logging"
	"github.com/tomtom215/gatelog/internal/metrics"
	"github.com/tomtom215/gatelog/internal/sink"
)

// Config identifies the site and the logging channels.
type Config struct {
	// Site is the host's public identity string, interpolated into every
	// log line.
	Site string

	// Channel is the tag for the default logging channel. Default
	// "gatelog".
	Channel string

	// Facility for the default channel. Default "user".
	Facility string

	// PingbackChannel is the tag for the pingback call log. Default
	// Channel + "-pingback".
	PingbackChannel string

	// PingbackFacility for the pingback channel. Default "local0".
	PingbackFacility string
}

func (c Config) withDefaults() Config {
	if c.Channel == "" {
		c.Channel = "gatelog"
	}
	if c.Facility == "" {
		c.Facility = sink.FacilityUser
	}
	if c.PingbackChannel == "" {
		c.PingbackChannel = c.Channel + "-pingback"
	}
	if c.PingbackFacility == "" {
		c.PingbackFacility = sink.FacilityLocal0
	}
	return c
}

// Plugin is the composed core. Construct with New and register it on the
// host's bus or mount its middleware.
type Plugin struct {
	cfg  Config
	cls  *classifier.Classifier
	fmtr *format.Formatter
	open sink.Factory
	log  zerolog.Logger
}

// New builds a Plugin. A nil factory uses the platform syslog sink.
func New(cfg Config, cls *classifier.Classifier, factory sink.Factory) *Plugin {
	cfg = cfg.withDefaults()
	if factory == nil {
		factory = sink.OpenSyslog
	}
	return &Plugin{
		cfg:  cfg,
		cls:  cls,
		fmtr: format.New(cfg.Site),
		open: factory,
		log:  logging.WithComponent("plugin"),
	}
}

// Formatter exposes the plugin's formatter, mainly for tests that want
// deterministic pids.
func (p *Plugin) Formatter() *format.Formatter { return p.fmtr }

// OnAuthenticate handles an authentication attempt. It reports whether the
// request was terminated; the caller must not run the credential check
// when it was.
func (p *Plugin) OnAuthenticate(ctx context.Context, w http.ResponseWriter, identifier string) bool {
	return p.dispatch(ctx, w, p.cls.Authenticate(ctx, identifier))
}

// OnLoginSuccess handles a successful login.
func (p *Plugin) OnLoginSuccess(ctx context.Context, username string) {
	p.dispatch(ctx, nil, p.cls.LoginSuccess(ctx, username))
}

// OnLoginFailure handles a failed login.
func (p *Plugin) OnLoginFailure(ctx context.Context, identifier string) {
	p.dispatch(ctx, nil, p.cls.LoginFailure(ctx, identifier))
}

// OnXMLRPCAuthFailure handles a failed XML-RPC authentication.
func (p *Plugin) OnXMLRPCAuthFailure(ctx context.Context) {
	p.dispatch(ctx, nil, p.cls.XMLRPCAuthFailure(ctx))
}

// OnXMLRPCCall handles an inbound XML-RPC method call.
func (p *Plugin) OnXMLRPCCall(ctx context.Context, method, targetURL string) {
	p.dispatch(ctx, nil, p.cls.PingbackRequest(ctx, method, targetURL))
}

// OnPingbackError handles a pingback fault.
func (p *Plugin) OnPingbackError(ctx context.Context, code int) {
	p.dispatch(ctx, nil, p.cls.PingbackError(ctx, code))
}

// OnCommentStatus handles a comment status transition.
func (p *Plugin) OnCommentStatus(ctx context.Context, commentID int64, status string) {
	p.dispatch(ctx, nil, p.cls.CommentStatus(ctx, commentID, status))
}

// OnEnumerationProbe handles a potential user enumeration probe. It
// reports whether the request was terminated.
func (p *Plugin) OnEnumerationProbe(ctx context.Context, w http.ResponseWriter, probe classifier.EnumerationProbe) bool {
	return p.dispatch(ctx, w, p.cls.Enumeration(ctx, probe))
}

// RegisterHooks wires the plugin's handlers onto the bus under the
// standard lifecycle event names.
func (p *Plugin) RegisterHooks(bus *hooks.Bus) {
	bus.Register(hooks.HookAuthenticate, func(ctx context.Context, payload any) bool {
		if pl, ok := payload.(hooks.AuthPayload); ok {
			return p.OnAuthenticate(ctx, pl.Response, pl.Identifier)
		}
		return false
	})
	bus.Register(hooks.HookLoginSuccess, func(ctx context.Context, payload any) bool {
		if pl, ok := payload.(hooks.AuthPayload); ok {
			p.OnLoginSuccess(ctx, pl.Identifier)
		}
		return false
	})
	bus.Register(hooks.HookLoginFailure, func(ctx context.Context, payload any) bool {
		if pl, ok := payload.(hooks.AuthPayload); ok {
			p.OnLoginFailure(ctx, pl.Identifier)
		}
		return false
	})
	bus.Register(hooks.HookXMLRPCAuthFailure, func(ctx context.Context, payload any) bool {
		p.OnXMLRPCAuthFailure(ctx)
		return false
	})
	bus.Register(hooks.HookXMLRPCCall, func(ctx context.Context, payload any) bool {
		if pl, ok := payload.(hooks.XMLRPCCallPayload); ok {
			p.OnXMLRPCCall(ctx, pl.Method, pl.TargetURL)
		}
		return false
	})
	bus.Register(hooks.HookPingbackError, func(ctx context.Context, payload any) bool {
		if pl, ok := payload.(hooks.PingbackErrorPayload); ok {
			p.OnPingbackError(ctx, pl.Code)
		}
		return false
	})
	bus.Register(hooks.HookCommentStatus, func(ctx context.Context, payload any) bool {
		if pl, ok := payload.(hooks.CommentPayload); ok {
			p.OnCommentStatus(ctx, pl.ID, pl.Status)
		}
		return false
	})
	bus.Register(hooks.HookParseRequest, func(ctx context.Context, payload any) bool {
		if pl, ok := payload.(hooks.ProbePayload); ok {
			return p.OnEnumerationProbe(ctx, pl.Response, pl.Probe)
		}
		return false
	})
}

// dispatch writes events in emission order and performs the terminating
// 403 for hard-block events. Sink failures are swallowed here and never
// reach the host request flow.
func (p *Plugin) dispatch(ctx context.Context, w http.ResponseWriter, events []event.LogEvent) bool {
	for _, ev := range events {
		channel, facility := p.channelFor(ev)
		sev := ev.EffectiveSeverity()
		p.deliver(ctx, channel, facility, p.fmtr.Line(channel, ev), sev)
		metrics.EventsEmitted.WithLabelValues(string(ev.Category), string(sev)).Inc()

		// A hard block ends the pipeline: nothing after the terminating
		// event is formatted or delivered.
		if ev.TerminateRequest {
			p.terminate(ctx, w, ev)
			return true
		}
	}
	return false
}

// channelFor routes pingback call logging onto its distinct channel and
// facility; everything else shares the default channel.
func (p *Plugin) channelFor(ev event.LogEvent) (channel, facility string) {
	if ev.Category == event.CategoryXmlrpcPingbackRequest {
		return p.cfg.PingbackChannel, p.cfg.PingbackFacility
	}
	return p.cfg.Channel, p.cfg.Facility
}

func (p *Plugin) deliver(ctx context.Context, channel, facility, line string, sev event.Severity) {
	s, err := p.open(channel, facility)
	if err != nil {
		metrics.SinkWriteFailures.Inc()
		logging.Ctx(ctx).Debug().Err(err).Str("channel", channel).Msg("sink open failed, line dropped")
		return
	}
	defer func() { _ = s.Close() }()

	if err := s.Write(line, sev); err != nil {
		metrics.SinkWriteFailures.Inc()
		logging.Ctx(ctx).Debug().Err(err).Str("channel", channel).Msg("sink write failed, line dropped")
	}
}

// terminate ends the in-flight request with 403 and an empty body. This
// is the deliberate hard-block action, not an error path; it runs after
// the event's write completed.
func (p *Plugin) terminate(ctx context.Context, w http.ResponseWriter, ev event.LogEvent) {
	metrics.RequestsBlocked.WithLabelValues(string(ev.Category)).Inc()
	logging.Ctx(ctx).Warn().
		Str("category", string(ev.Category)).
		Str("subject", ev.Subject).
		Msg("request terminated")
	if w != nil {
		w.WriteHeader(http.StatusForbidden)
	}
}
