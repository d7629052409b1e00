// Gatelog - Security Event Logging for Web Applications
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatelog

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestGenerateCorrelationID(t *testing.T) {
	t.Parallel()

	id1 := GenerateCorrelationID()
	id2 := GenerateCorrelationID()

	if len(id1) != 8 {
		t.Errorf("expected 8-character correlation ID, got %d", len(id1))
	}
	if id1 == id2 {
		t.Error("expected unique correlation IDs")
	}
}

func TestCorrelationIDRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := ContextWithCorrelationID(context.Background(), "abcd1234")
	if got := CorrelationIDFromContext(ctx); got != "abcd1234" {
		t.Errorf("CorrelationIDFromContext() = %q", got)
	}
	if got := CorrelationIDFromContext(context.Background()); got != "" {
		t.Errorf("empty context returned %q", got)
	}
}

func TestRequestIDRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := ContextWithRequestID(context.Background(), "req-1")
	if got := RequestIDFromContext(ctx); got != "req-1" {
		t.Errorf("RequestIDFromContext() = %q", got)
	}
}

func TestCtxPopulatesFields(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))
	defer Init(DefaultConfig())

	ctx := ContextWithRequestID(ContextWithCorrelationID(context.Background(), "corr1234"), "req-1")
	Ctx(ctx).Info().Msg("scoped")

	out := buf.String()
	if !strings.Contains(out, `"correlation_id":"corr1234"`) {
		t.Errorf("missing correlation_id: %q", out)
	}
	if !strings.Contains(out, `"request_id":"req-1"`) {
		t.Errorf("missing request_id: %q", out)
	}
}

func TestCtxWithoutIDs(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))
	defer Init(DefaultConfig())

	Ctx(context.Background()).Info().Msg("bare")

	out := buf.String()
	if strings.Contains(out, "correlation_id") || strings.Contains(out, "request_id") {
		t.Errorf("unexpected ID fields on bare context: %q", out)
	}
}
