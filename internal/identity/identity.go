// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package identity resolves the active account session and notifies
// subscribers when it changes. There is no error state: an unreadable or
// absent provider resolves to "no session" (anonymous scope).
package identity

import "context"

// Session identifies a signed-in account.
type Session struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// Provider supplies the current session and pushes changes.
type Provider interface {
	// CurrentSession returns the active session, or nil when anonymous.
	CurrentSession(ctx context.Context) *Session

	// Subscribe registers fn to be called on every session change
	// (sign-in, sign-out, refresh). The returned function unsubscribes.
	Subscribe(fn func(*Session)) (unsubscribe func())
}

// Static is a Provider with a fixed session that never changes.
// A zero Static is permanently anonymous.
type Static struct {
	Session *Session
}

func (s *Static) CurrentSession(context.Context) *Session { return s.Session }

func (s *Static) Subscribe(func(*Session)) func() { return func() {} }
