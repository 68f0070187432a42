// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package bank

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mtreilly/arc-questbank/internal/kv"
)

const (
	localTagsKey  = "questbank:tags"
	localNotesKey = "questbank:notes"
)

// LocalStore persists the anonymous scope's annotations as two JSON
// blobs in a byte KV store: {questionID: [tags]} and {questionID: note}.
// Every mutation is a full read-modify-rewrite of the relevant blob,
// mirroring browser local storage.
type LocalStore struct {
	kv kv.Store
}

// NewLocalStore creates a local annotation store over the given KV store.
func NewLocalStore(store kv.Store) *LocalStore {
	return &LocalStore{kv: store}
}

func (s *LocalStore) LoadTags(ctx context.Context, _ Owner) (map[string][]string, error) {
	tags := make(map[string][]string)
	if err := s.readBlob(ctx, localTagsKey, &tags); err != nil {
		return map[string][]string{}, err
	}
	return tags, nil
}

func (s *LocalStore) LoadNotes(ctx context.Context, _ Owner) (map[string]string, error) {
	notes := make(map[string]string)
	if err := s.readBlob(ctx, localNotesKey, &notes); err != nil {
		return map[string]string{}, err
	}
	return notes, nil
}

func (s *LocalStore) AddTag(ctx context.Context, owner Owner, questionID, tag string) error {
	tags, _ := s.LoadTags(ctx, owner)
	for _, t := range tags[questionID] {
		if t == tag {
			return nil
		}
	}
	tags[questionID] = append(tags[questionID], tag)
	return s.writeBlob(ctx, localTagsKey, tags)
}

func (s *LocalStore) RemoveTag(ctx context.Context, owner Owner, questionID, tag string) error {
	tags, _ := s.LoadTags(ctx, owner)
	existing, ok := tags[questionID]
	if !ok {
		return nil
	}
	kept := existing[:0]
	for _, t := range existing {
		if t != tag {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		// Empty sequences are dropped so the blob only holds questions
		// that actually carry tags.
		delete(tags, questionID)
	} else {
		tags[questionID] = kept
	}
	return s.writeBlob(ctx, localTagsKey, tags)
}

func (s *LocalStore) SetNote(ctx context.Context, owner Owner, questionID, note string) error {
	notes, _ := s.LoadNotes(ctx, owner)
	notes[questionID] = note
	return s.writeBlob(ctx, localNotesKey, notes)
}

func (s *LocalStore) readBlob(ctx context.Context, key string, dest any) error {
	data, err := s.kv.Get(ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return nil
}

func (s *LocalStore) writeBlob(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
