// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package bank

import (
	"context"
	"testing"

	"github.com/mtreilly/arc-questbank/internal/kv"
)

func TestLocalStoreEmptyOnFreshStore(t *testing.T) {
	ctx := context.Background()
	s := NewLocalStore(kv.NewMemory())

	tags, err := s.LoadTags(ctx, LocalOwner)
	if err != nil {
		t.Fatalf("LoadTags: %v", err)
	}
	if len(tags) != 0 {
		t.Fatalf("fresh store tags: got %d entries, want 0", len(tags))
	}

	notes, err := s.LoadNotes(ctx, LocalOwner)
	if err != nil {
		t.Fatalf("LoadNotes: %v", err)
	}
	if len(notes) != 0 {
		t.Fatalf("fresh store notes: got %d entries, want 0", len(notes))
	}
}

func TestLocalStoreTagRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewLocalStore(kv.NewMemory())

	if err := s.AddTag(ctx, LocalOwner, "q1", "algebra"); err != nil {
		t.Fatalf("AddTag: %v", err)
	}
	if err := s.AddTag(ctx, LocalOwner, "q1", "geometry"); err != nil {
		t.Fatalf("AddTag: %v", err)
	}
	// Duplicate add is a no-op.
	if err := s.AddTag(ctx, LocalOwner, "q1", "algebra"); err != nil {
		t.Fatalf("AddTag duplicate: %v", err)
	}

	tags, _ := s.LoadTags(ctx, LocalOwner)
	got := tags["q1"]
	if len(got) != 2 || got[0] != "algebra" || got[1] != "geometry" {
		t.Fatalf("tags after adds: got %v, want [algebra geometry]", got)
	}
}

func TestLocalStoreRemoveTag(t *testing.T) {
	ctx := context.Background()
	s := NewLocalStore(kv.NewMemory())

	s.AddTag(ctx, LocalOwner, "q1", "algebra")
	s.AddTag(ctx, LocalOwner, "q1", "geometry")

	if err := s.RemoveTag(ctx, LocalOwner, "q1", "algebra"); err != nil {
		t.Fatalf("RemoveTag: %v", err)
	}
	tags, _ := s.LoadTags(ctx, LocalOwner)
	if got := tags["q1"]; len(got) != 1 || got[0] != "geometry" {
		t.Fatalf("tags after remove: got %v, want [geometry]", got)
	}

	// Removing a tag that is not present is a no-op, not an error.
	if err := s.RemoveTag(ctx, LocalOwner, "q1", "missing"); err != nil {
		t.Fatalf("RemoveTag missing: %v", err)
	}
	if err := s.RemoveTag(ctx, LocalOwner, "never-tagged", "x"); err != nil {
		t.Fatalf("RemoveTag untouched question: %v", err)
	}

	// Last removal drops the question from the blob entirely.
	s.RemoveTag(ctx, LocalOwner, "q1", "geometry")
	tags, _ = s.LoadTags(ctx, LocalOwner)
	if _, ok := tags["q1"]; ok {
		t.Fatal("question with no tags should not remain in the blob")
	}
}

func TestLocalStoreNotes(t *testing.T) {
	ctx := context.Background()
	s := NewLocalStore(kv.NewMemory())

	if err := s.SetNote(ctx, LocalOwner, "q1", "remember the distributive law"); err != nil {
		t.Fatalf("SetNote: %v", err)
	}
	if err := s.SetNote(ctx, LocalOwner, "q1", "second draft"); err != nil {
		t.Fatalf("SetNote overwrite: %v", err)
	}

	notes, _ := s.LoadNotes(ctx, LocalOwner)
	if got := notes["q1"]; got != "second draft" {
		t.Fatalf("note: got %q, want %q (last write wins)", got, "second draft")
	}

	// Empty string is stored, not deleted.
	s.SetNote(ctx, LocalOwner, "q1", "")
	notes, _ = s.LoadNotes(ctx, LocalOwner)
	if got, ok := notes["q1"]; !ok || got != "" {
		t.Fatalf("cleared note: got (%q, %v), want empty string present", got, ok)
	}
}

func TestLocalStorePersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()

	s1 := NewLocalStore(mem)
	s1.AddTag(ctx, LocalOwner, "q1", "algebra")
	s1.SetNote(ctx, LocalOwner, "q1", "note")

	s2 := NewLocalStore(mem)
	tags, _ := s2.LoadTags(ctx, LocalOwner)
	if len(tags["q1"]) != 1 {
		t.Fatal("tags not visible through a second store instance")
	}
	notes, _ := s2.LoadNotes(ctx, LocalOwner)
	if notes["q1"] != "note" {
		t.Fatal("notes not visible through a second store instance")
	}
}
