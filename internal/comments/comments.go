// Gatelog - Security Event Logging for Web Applications
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatelog

// Package comments defines the comment lookup the classifier performs when
// a comment transitions to spam. The host owns comment storage; gatelog
// only needs the author IP of a comment that may already be gone by the
// time the event fires.
package comments

import (
	"context"
	"sync"
)

// StatusSpam is the comment status that triggers spam logging.
const StatusSpam = "spam"

// Comment is the subset of a host comment record gatelog reads.
type Comment struct {
	ID       int64
	Status   string
	AuthorIP string
}

// Store resolves comment ids to records. A missing comment is not an
// error: the comment may have been deleted between the status event firing
// and this lookup, and that race is treated as a silent no-op upstream.
type Store interface {
	Comment(ctx context.Context, id int64) (Comment, bool, error)
}

// MemoryStore is a Store backed by a map, for tests and embedded hosts.
type MemoryStore struct {
	mu       sync.RWMutex
	comments map[int64]Comment
}

// NewMemoryStore returns a store preloaded with comments.
func NewMemoryStore(cs ...Comment) *MemoryStore {
	s := &MemoryStore{comments: make(map[int64]Comment)}
	for _, c := range cs {
		s.Put(c)
	}
	return s
}

// Put inserts or replaces a comment.
func (s *MemoryStore) Put(c Comment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments[c.ID] = c
}

// Delete removes a comment.
func (s *MemoryStore) Delete(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.comments, id)
}

// Comment implements Store.
func (s *MemoryStore) Comment(ctx context.Context, id int64) (Comment, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.comments[id]
	return c, ok, nil
}
