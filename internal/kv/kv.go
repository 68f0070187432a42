// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package kv provides the byte-oriented key/value store backing local
// (anonymous) annotation persistence. Two implementations are provided:
// an in-memory store for tests and graceful degradation, and a SQLite
// store for durable single-user state.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no value exists for a key.
var ErrNotFound = errors.New("kv: key not found")

// Store is a minimal byte key/value store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
