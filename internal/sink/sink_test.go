// Gatelog - Security Event Logging for Web Applications
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatelog

package sink

import (
	"bytes"
	"testing"

	"github.com/tomtom215/gatelog/internal/event"
)

func TestWriterSink(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := NewWriterSink(&buf)

	if err := s.Write("gatelog(site)[1]: hello", event.SeverityNotice); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	want := "<notice> gatelog(site)[1]: hello\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestWriterFactorySharesDestination(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	factory := WriterFactory(&buf)

	for _, channel := range []string{"a", "b"} {
		s, err := factory(channel, FacilityUser)
		if err != nil {
			t.Fatalf("factory(%q) error = %v", channel, err)
		}
		if err := s.Write("line from "+channel, event.SeverityInfo); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}

	got := buf.String()
	want := "<info> line from a\n<info> line from b\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestValidFacility(t *testing.T) {
	t.Parallel()

	valid := []string{
		FacilityUser, FacilityAuth, FacilityAuthpriv, FacilityDaemon,
		FacilityLocal0, FacilityLocal7,
	}
	for _, f := range valid {
		if !ValidFacility(f) {
			t.Errorf("ValidFacility(%q) = false, want true", f)
		}
	}

	for _, f := range []string{"", "kernel", "local8", "USER"} {
		if ValidFacility(f) {
			t.Errorf("ValidFacility(%q) = true, want false", f)
		}
	}
}
