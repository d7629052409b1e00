// Gatelog - Security Event Logging for Web Applications
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatelog

// Package sink writes formatted security log lines to the system log.
//
// Writes are best-effort and at-most-once: a line that cannot be delivered
// is dropped, counted in metrics, and never retried. Sink failures must not
// be able to break authentication, commenting, or XML-RPC handling in the
// host application, so no error from this package propagates past the
// plugin boundary.
package sink

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/tomtom215/gatelog/internal/event"
)

// Facility names accepted by Open. They mirror the standard syslog
// facilities; "user" is the default channel facility and the pingback call
// path uses a local facility.
const (
	FacilityUser     = "user"
	FacilityAuth     = "auth"
	FacilityAuthpriv = "authpriv"
	FacilityDaemon   = "daemon"
	FacilityLocal0   = "local0"
	FacilityLocal1   = "local1"
	FacilityLocal2   = "local2"
	FacilityLocal3   = "local3"
	FacilityLocal4   = "local4"
	FacilityLocal5   = "local5"
	FacilityLocal6   = "local6"
	FacilityLocal7   = "local7"
)

// ErrUnavailable indicates the system log cannot be reached on this
// platform or at this time. Callers swallow it; it exists so tests and
// diagnostics can distinguish delivery failures from programming errors.
var ErrUnavailable = errors.New("system log unavailable")

// Sink is a scoped handle onto a logging channel. Handles are cheap and
// per-request; opening one per event is acceptable and no handle is shared
// across requests.
type Sink interface {
	// Write delivers one formatted line at the given severity.
	Write(line string, severity event.Severity) error

	// Close releases the handle. Safe to call once per Open.
	Close() error
}

// Factory opens a sink for a channel name and facility. The plugin calls
// it once per event; implementations must tolerate repeated opens.
type Factory func(channel, facility string) (Sink, error)

// ValidFacility reports whether name is a recognized facility.
func ValidFacility(name string) bool {
	switch name {
	case FacilityUser, FacilityAuth, FacilityAuthpriv, FacilityDaemon,
		FacilityLocal0, FacilityLocal1, FacilityLocal2, FacilityLocal3,
		FacilityLocal4, FacilityLocal5, FacilityLocal6, FacilityLocal7:
		return true
	}
	return false
}

// WriterSink writes lines to an io.Writer, one per line, prefixed with the
// severity. Used by tests and by the CLI's dry-run mode.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink returns a sink writing to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Write implements Sink.
func (s *WriterSink) Write(line string, severity event.Severity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprintf(s.w, "<%s> %s\n", severity, line)
	return err
}

// Close implements Sink.
func (s *WriterSink) Close() error { return nil }

// WriterFactory returns a Factory that ignores channel and facility and
// writes everything to w.
func WriterFactory(w io.Writer) Factory {
	s := NewWriterSink(w)
	return func(channel, facility string) (Sink, error) {
		return s, nil
	}
}
