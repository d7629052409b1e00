// Gatelog - Security Event Logging for Web Applications
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatelog

//go:build windows || plan9

package sink

// OpenSyslog is unavailable on platforms without a system log daemon.
// The plugin treats this like any other delivery failure: the line is
// dropped and the request proceeds.
func OpenSyslog(channel, facility string) (Sink, error) {
	return nil, ErrUnavailable
}
