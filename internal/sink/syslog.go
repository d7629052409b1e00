// Gatelog - Security Event Logging for Web Applications
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatelog

//go:build !windows && !plan9

package sink

import (
	"fmt"
	"log/syslog"

	"github.com/tomtom215/gatelog/internal/event"
)

// SyslogSink delivers lines to the local system log daemon. The syslog
// transport itself stamps the tag and pid onto each record; the formatted
// wire line already carries the channel prefix for tooling that parses the
// message body.
type SyslogSink struct {
	w *syslog.Writer
}

// OpenSyslog opens a syslog handle tagged with the channel name on the
// given facility. An unknown facility falls back to "user" rather than
// failing: a misconfigured facility must not silence the security log.
func OpenSyslog(channel, facility string) (Sink, error) {
	w, err := syslog.New(facilityPriority(facility), channel)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &SyslogSink{w: w}, nil
}

// Write implements Sink, mapping the event severity onto the syslog level.
func (s *SyslogSink) Write(line string, severity event.Severity) error {
	var err error
	switch severity {
	case event.SeverityInfo:
		err = s.w.Info(line)
	case event.SeverityNotice:
		err = s.w.Notice(line)
	default:
		err = s.w.Warning(line)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Close implements Sink.
func (s *SyslogSink) Close() error {
	return s.w.Close()
}

func facilityPriority(facility string) syslog.Priority {
	switch facility {
	case FacilityAuth:
		return syslog.LOG_AUTH
	case FacilityAuthpriv:
		return syslog.LOG_AUTHPRIV
	case FacilityDaemon:
		return syslog.LOG_DAEMON
	case FacilityLocal0:
		return syslog.LOG_LOCAL0
	case FacilityLocal1:
		return syslog.LOG_LOCAL1
	case FacilityLocal2:
		return syslog.LOG_LOCAL2
	case FacilityLocal3:
		return syslog.LOG_LOCAL3
	case FacilityLocal4:
		return syslog.LOG_LOCAL4
	case FacilityLocal5:
		return syslog.LOG_LOCAL5
	case FacilityLocal6:
		return syslog.LOG_LOCAL6
	case FacilityLocal7:
		return syslog.LOG_LOCAL7
	default:
		return syslog.LOG_USER
	}
}
