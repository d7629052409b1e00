// Gatelog - Security Event Logging for Web Applications
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatelog

// Package policy supplies the externally configured decisions the
// classifier consults: the blocked-identifier list and the per-category
// logging flags.
//
// Decisions are resolved fresh for every event and never memoized across
// events; the backing store may be swapped at any time by configuration
// hot reload.
package policy

import (
	"context"
	"slices"
	"sync/atomic"
)

// Decision is a read-only snapshot of the policy inputs for one event.
// All fields default to their zero value: empty blocked list, no inverted
// matching, and all optional logging disabled.
type Decision struct {
	// BlockedUsers is the list of identifiers refused authentication.
	BlockedUsers []string

	// InvertBlockedUsers flips the membership test: when true, every
	// identifier NOT in BlockedUsers is blocked (an allow-list).
	InvertBlockedUsers bool

	// LogSpamComments enables logging of comments marked as spam.
	LogSpamComments bool

	// BlockEnumeration enables blocking of user enumeration probes.
	BlockEnumeration bool

	// LogPingbacks enables logging of inbound pingback.ping calls.
	LogPingbacks bool
}

// Blocks reports whether identifier fails the blocked-user membership
// test under this decision.
func (d Decision) Blocks(identifier string) bool {
	member := slices.Contains(d.BlockedUsers, identifier)
	if d.InvertBlockedUsers {
		return !member
	}
	return member
}

// Resolver yields a Decision for the current event. Implementations must
// return a fresh snapshot on every call.
type Resolver interface {
	Resolve(ctx context.Context) Decision
}

// Static is a Resolver returning a fixed Decision. Used by tests and by
// hosts whose policy never changes at runtime.
type Static Decision

// Resolve implements Resolver.
func (s Static) Resolve(ctx context.Context) Decision {
	return cloneDecision(Decision(s))
}

// Store is a Resolver whose Decision can be swapped atomically, typically
// from a configuration file watcher. The zero value is not usable; call
// NewStore.
type Store struct {
	current atomic.Pointer[Decision]
}

// NewStore returns a Store holding the initial decision.
func NewStore(initial Decision) *Store {
	s := &Store{}
	s.Update(initial)
	return s
}

// Resolve implements Resolver. Each call returns an independent copy so a
// later Update cannot mutate a decision already handed out.
func (s *Store) Resolve(ctx context.Context) Decision {
	return cloneDecision(*s.current.Load())
}

// Update replaces the stored decision.
func (s *Store) Update(d Decision) {
	clone := cloneDecision(d)
	s.current.Store(&clone)
}

func cloneDecision(d Decision) Decision {
	d.BlockedUsers = slices.Clone(d.BlockedUsers)
	return d
}
