// Gatelog - Security Event Logging for Web Applications
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatelog

package classifier

import (
	"context"
	"testing"
)

func TestIncrementAuthFailures(t *testing.T) {
	t.Parallel()

	ctx := WithRequestState(context.Background())
	for want := 1; want <= 3; want++ {
		if got := IncrementAuthFailures(ctx); got != want {
			t.Errorf("increment %d = %d", want, got)
		}
	}
	if got := AuthFailures(ctx); got != 3 {
		t.Errorf("AuthFailures() = %d, want 3", got)
	}
}

func TestRequestStateIsolation(t *testing.T) {
	t.Parallel()

	// Two requests must never share a counter.
	a := WithRequestState(context.Background())
	b := WithRequestState(context.Background())

	IncrementAuthFailures(a)
	IncrementAuthFailures(a)

	if got := AuthFailures(b); got != 0 {
		t.Errorf("counter leaked across requests: %d", got)
	}
}

func TestIncrementWithoutState(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if got := IncrementAuthFailures(ctx); got != 1 {
		t.Errorf("IncrementAuthFailures(no state) = %d, want 1", got)
	}
	if got := AuthFailures(ctx); got != 0 {
		t.Errorf("AuthFailures(no state) = %d, want 0", got)
	}
}
