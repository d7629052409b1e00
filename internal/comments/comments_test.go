// Gatelog - Security Event Logging for Web Applications
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatelog

package comments

import (
	"context"
	"testing"
)

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(
		Comment{ID: 7, Status: StatusSpam, AuthorIP: "203.0.113.9"},
	)

	c, ok, err := store.Comment(context.Background(), 7)
	if err != nil {
		t.Fatalf("Comment() error = %v", err)
	}
	if !ok || c.AuthorIP != "203.0.113.9" || c.Status != StatusSpam {
		t.Errorf("Comment(7) = %+v, %v", c, ok)
	}

	if _, ok, err := store.Comment(context.Background(), 99); err != nil || ok {
		t.Errorf("Comment(99) = ok=%v err=%v, want miss", ok, err)
	}
}
