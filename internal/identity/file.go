// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package identity

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// FileProvider reads the session from a JSON file and watches it for
// changes. Sign-in and sign-out happen by an external flow writing or
// removing the file; this provider only observes it. A missing or
// malformed file means anonymous.
type FileProvider struct {
	path   string
	logger *slog.Logger

	mu      sync.Mutex
	current *Session
	subs    map[int]func(*Session)
	nextSub int

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewFileProvider creates a provider for the session file at path and
// starts watching its directory. The watch is best-effort: if it cannot
// be established the provider still serves the file's current contents.
func NewFileProvider(path string, logger *slog.Logger) *FileProvider {
	if logger == nil {
		logger = slog.Default()
	}
	p := &FileProvider{
		path:   path,
		logger: logger,
		subs:   make(map[int]func(*Session)),
		done:   make(chan struct{}),
	}
	p.current = readSessionFile(path)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warn("session watch unavailable", "error", err)
		return p
	}
	// Watch the directory: session files are replaced atomically, so
	// watching the file itself would lose the watch on every rewrite.
	if err := w.Add(filepath.Dir(path)); err != nil {
		logger.Warn("session watch unavailable", "path", path, "error", err)
		w.Close()
		return p
	}
	p.watcher = w
	go p.watch()
	return p
}

// Close stops the file watch.
func (p *FileProvider) Close() error {
	if p.watcher == nil {
		return nil
	}
	close(p.done)
	return p.watcher.Close()
}

func (p *FileProvider) CurrentSession(context.Context) *Session {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

func (p *FileProvider) Subscribe(fn func(*Session)) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextSub
	p.nextSub++
	p.subs[id] = fn
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.subs, id)
	}
}

func (p *FileProvider) watch() {
	for {
		select {
		case <-p.done:
			return
		case ev, ok := <-p.watcher.Events:
			if !ok {
				return
			}
			if ev.Name != p.path {
				continue
			}
			p.refresh()
		case err, ok := <-p.watcher.Errors:
			if !ok {
				return
			}
			p.logger.Warn("session watch error", "error", err)
		}
	}
}

// refresh re-reads the file and notifies subscribers if the session
// changed. Exported behavior is exercised through Subscribe.
func (p *FileProvider) refresh() {
	sess := readSessionFile(p.path)

	p.mu.Lock()
	if sameSession(p.current, sess) {
		p.mu.Unlock()
		return
	}
	p.current = sess
	fns := make([]func(*Session), 0, len(p.subs))
	for _, fn := range p.subs {
		fns = append(fns, fn)
	}
	p.mu.Unlock()

	for _, fn := range fns {
		fn(sess)
	}
}

func sameSession(a, b *Session) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.UserID == b.UserID && a.Email == b.Email
}

func readSessionFile(path string) *Session {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil || s.UserID == "" {
		return nil
	}
	return &s
}
