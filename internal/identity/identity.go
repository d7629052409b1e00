// Gatelog - Security Event Logging for Web Applications
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gatelog

// Package identity defines the read-only lookup capability the classifier
// uses to tell probing for nonexistent accounts apart from password
// guessing against real ones. The host application owns the actual user
// store; gatelog only consumes this narrow view of it.
package identity

import (
	"context"
	"strings"
	"sync"
)

// Directory is the identity cache lookup interface consumed by the
// failed-login path.
type Directory interface {
	// LookupLogin reports whether a user with this login exists.
	LookupLogin(ctx context.Context, login string) (bool, error)

	// LookupEmail resolves an email address to the associated account's
	// login. ok is false when no account uses this email.
	LookupEmail(ctx context.Context, email string) (login string, ok bool, err error)
}

// User is one entry in the in-memory directory.
type User struct {
	Login string
	Email string
}

// MemoryDirectory is a Directory backed by an in-memory user table.
// Suitable for tests and for hosts that push their user list into gatelog.
type MemoryDirectory struct {
	mu      sync.RWMutex
	byLogin map[string]User
	byEmail map[string]User
}

// NewMemoryDirectory returns a directory preloaded with users.
func NewMemoryDirectory(users ...User) *MemoryDirectory {
	d := &MemoryDirectory{
		byLogin: make(map[string]User),
		byEmail: make(map[string]User),
	}
	for _, u := range users {
		d.Add(u)
	}
	return d
}

// Add inserts or replaces a user. Email matching is case-insensitive.
func (d *MemoryDirectory) Add(u User) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.byLogin[u.Login] = u
	if u.Email != "" {
		d.byEmail[strings.ToLower(u.Email)] = u
	}
}

// LookupLogin implements Directory.
func (d *MemoryDirectory) LookupLogin(ctx context.Context, login string) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.byLogin[login]
	return ok, nil
}

// LookupEmail implements Directory.
func (d *MemoryDirectory) LookupEmail(ctx context.Context, email string) (string, bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	u, ok := d.byEmail[strings.ToLower(email)]
	if !ok {
		return "", false, nil
	}
	return u.Login, true, nil
}
