// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package kv

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if _, err := m.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get missing key: got %v, want ErrNotFound", err)
	}

	if err := m.Set(ctx, "a", []byte("one")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := m.Get(ctx, "a")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "one" {
		t.Fatalf("Get: got %q, want %q", got, "one")
	}

	// Overwrite
	if err := m.Set(ctx, "a", []byte("two")); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	got, _ = m.Get(ctx, "a")
	if string(got) != "two" {
		t.Fatalf("Get after overwrite: got %q, want %q", got, "two")
	}

	if err := m.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := m.Get(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after delete: got %v, want ErrNotFound", err)
	}
}

func TestMemoryValueIsolation(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	src := []byte("hello")
	if err := m.Set(ctx, "k", src); err != nil {
		t.Fatalf("Set: %v", err)
	}
	src[0] = 'X'

	got, err := m.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "hello" {
		t.Fatalf("stored value aliased caller buffer: got %q", got)
	}

	got[0] = 'Y'
	again, _ := m.Get(ctx, "k")
	if string(again) != "hello" {
		t.Fatalf("returned value aliased stored buffer: got %q", again)
	}
}
