// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package bank

import "context"

// AnnotationStore persists one owner scope's tags and notes.
// Implementations: LocalStore (anonymous scope, byte KV) and
// RemoteStore (account scope, network table service).
type AnnotationStore interface {
	// LoadTags returns every stored tag sequence keyed by question id.
	// Partial failure returns whatever was accumulated, never an
	// indefinite block.
	LoadTags(ctx context.Context, owner Owner) (map[string][]string, error)

	// LoadNotes returns every stored note keyed by question id.
	// On error the map is empty.
	LoadNotes(ctx context.Context, owner Owner) (map[string]string, error)

	// AddTag records a tag for a question. Re-adding an existing tag
	// must be tolerated: tag presence is derived as set membership, so
	// duplicate rows are noise, not corruption.
	AddTag(ctx context.Context, owner Owner, questionID, tag string) error

	// RemoveTag deletes a tag from a question. Removing a tag that is
	// not present is a no-op.
	RemoveTag(ctx context.Context, owner Owner, questionID, tag string) error

	// SetNote replaces the note for a question, last write wins.
	// An empty note is stored, not deleted.
	SetNote(ctx context.Context, owner Owner, questionID, note string) error
}

// StoreFactory selects the store variant for an owner scope. It is the
// single place the local-vs-remote branch lives; call sites never
// inspect the scope themselves.
type StoreFactory func(owner Owner) AnnotationStore

// NewStoreFactory builds the standard factory: the local store for the
// anonymous scope, the remote store for account scopes. A nil remote
// (service not configured) keeps every scope on the local store, so
// annotation features stay available without remote persistence.
func NewStoreFactory(local *LocalStore, remote *RemoteStore) StoreFactory {
	return func(owner Owner) AnnotationStore {
		if owner.IsLocal() || remote == nil {
			return local
		}
		return remote
	}
}
