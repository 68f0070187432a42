// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package identity

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSessionFile(t *testing.T, path, data string) {
	t.Helper()
	// Write-then-rename, the way sign-in flows replace the file.
	tmp := path + ".tmp"
	require.NoError(t, os.WriteFile(tmp, []byte(data), 0o600))
	require.NoError(t, os.Rename(tmp, path))
}

func TestFileProviderMissingFileIsAnonymous(t *testing.T) {
	dir := t.TempDir()
	p := NewFileProvider(filepath.Join(dir, "session.json"), nil)
	defer p.Close()

	assert.Nil(t, p.CurrentSession(context.Background()))
}

func TestFileProviderReadsSession(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.json")
	writeSessionFile(t, path, `{"user_id":"u1","email":"u1@example.com"}`)

	p := NewFileProvider(path, nil)
	defer p.Close()

	sess := p.CurrentSession(context.Background())
	require.NotNil(t, sess)
	assert.Equal(t, "u1", sess.UserID)
	assert.Equal(t, "u1@example.com", sess.Email)
}

func TestFileProviderMalformedFileIsAnonymous(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.json")
	writeSessionFile(t, path, `{"user_id":`)

	p := NewFileProvider(path, nil)
	defer p.Close()
	assert.Nil(t, p.CurrentSession(context.Background()))
}

func TestFileProviderEmptyUserIDIsAnonymous(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.json")
	writeSessionFile(t, path, `{"user_id":"","email":"x@example.com"}`)

	p := NewFileProvider(path, nil)
	defer p.Close()
	assert.Nil(t, p.CurrentSession(context.Background()))
}

func TestFileProviderRefreshNotifiesOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.json")

	p := NewFileProvider(path, nil)
	defer p.Close()

	changes := make(chan *Session, 4)
	unsubscribe := p.Subscribe(func(s *Session) { changes <- s })
	defer unsubscribe()

	writeSessionFile(t, path, `{"user_id":"u1","email":"u1@example.com"}`)
	p.refresh()

	select {
	case sess := <-changes:
		require.NotNil(t, sess)
		assert.Equal(t, "u1", sess.UserID)
	case <-time.After(time.Second):
		t.Fatal("no change notification after sign-in")
	}

	// Rewriting the same session is not a change.
	writeSessionFile(t, path, `{"user_id":"u1","email":"u1@example.com"}`)
	p.refresh()
	select {
	case <-changes:
		t.Fatal("identical session must not notify")
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, os.Remove(path))
	p.refresh()
	select {
	case sess := <-changes:
		assert.Nil(t, sess)
	case <-time.After(time.Second):
		t.Fatal("no change notification after sign-out")
	}
}

func TestFileProviderUnsubscribeStopsNotifications(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.json")

	p := NewFileProvider(path, nil)
	defer p.Close()

	changes := make(chan *Session, 1)
	unsubscribe := p.Subscribe(func(s *Session) { changes <- s })
	unsubscribe()

	writeSessionFile(t, path, `{"user_id":"u1"}`)
	p.refresh()

	select {
	case <-changes:
		t.Fatal("unsubscribed callback was invoked")
	case <-time.After(50 * time.Millisecond):
	}
	assert.NotNil(t, p.CurrentSession(context.Background()))
}

func TestFileProviderWatchPicksUpWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.json")

	p := NewFileProvider(path, nil)
	defer p.Close()

	changes := make(chan *Session, 4)
	defer p.Subscribe(func(s *Session) { changes <- s })()

	writeSessionFile(t, path, `{"user_id":"u1","email":"u1@example.com"}`)

	select {
	case sess := <-changes:
		require.NotNil(t, sess)
		assert.Equal(t, "u1", sess.UserID)
	case <-time.After(2 * time.Second):
		t.Fatal("file watch did not pick up the session write")
	}
}

func TestSameSession(t *testing.T) {
	a := &Session{UserID: "u1", Email: "a@example.com"}
	assert.True(t, sameSession(nil, nil))
	assert.True(t, sameSession(a, &Session{UserID: "u1", Email: "a@example.com"}))
	assert.False(t, sameSession(a, nil))
	assert.False(t, sameSession(a, &Session{UserID: "u2", Email: "a@example.com"}))
}
