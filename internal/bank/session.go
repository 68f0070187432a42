// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package bank

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mtreilly/arc-questbank/internal/identity"
)

// Session is the explicitly scoped state object owning the annotated
// question collection for one run: it loads the static content once,
// resolves the active identity, merges in that scope's annotations, and
// is the single entry point for tag and note edits.
//
// Mutations take effect in memory immediately and are persisted by an
// unjoined goroutine; persistence failures are logged, never surfaced
// to the caller, and the optimistic state is not rolled back. The
// collection is rebuilt wholesale whenever the identity changes; the
// two scopes' annotations are independent and never migrated.
type Session struct {
	logger   *slog.Logger
	newStore StoreFactory
	provider identity.Provider
	content  []ContentFile

	mu        sync.Mutex
	base      []Question
	questions []AnnotatedQuestion
	vocab     []string
	owner     Owner
	email     string
	store     AnnotationStore
	started   bool
	gen       int

	dispatches  sync.WaitGroup
	unsubscribe func()
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the diagnostic logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithProvider sets the identity provider. Without one the session is
// permanently anonymous and annotations stay in the local scope.
func WithProvider(p identity.Provider) Option {
	return func(s *Session) { s.provider = p }
}

// NewSession creates a session over the given content files and store
// factory. Call Start before reading.
func NewSession(content []ContentFile, factory StoreFactory, opts ...Option) *Session {
	s := &Session{
		logger:   slog.Default(),
		newStore: factory,
		content:  content,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the static content, resolves the identity, and merges the
// matching scope's annotations. Content failure is fatal; annotation
// load failure degrades to an unannotated collection. Identity changes
// after Start trigger a full rebuild under the new scope.
func (s *Session) Start(ctx context.Context) error {
	base, err := LoadContent(ctx, s.content)
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}

	s.mu.Lock()
	s.base = base
	s.started = true
	s.mu.Unlock()

	var sess *identity.Session
	if s.provider != nil {
		sess = s.provider.CurrentSession(ctx)
		s.unsubscribe = s.provider.Subscribe(s.onIdentityChange)
	}
	s.reload(ctx, ownerOf(sess), emailOf(sess))
	return nil
}

// Close detaches from the identity provider. Pending persistence calls
// are not cancelled; use Flush to drain them.
func (s *Session) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

// Flush blocks until every dispatched persistence call has finished, or
// ctx is done. Callers that exit right after a mutation (one-shot CLI
// invocations) use this; interactive surfaces never need to.
func (s *Session) Flush(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.dispatches.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Session) onIdentityChange(sess *identity.Session) {
	owner := ownerOf(sess)
	s.mu.Lock()
	same := s.owner == owner && s.started
	s.mu.Unlock()
	if same {
		return
	}
	s.reload(context.Background(), owner, emailOf(sess))
}

// reload swaps the scope and rebuilds the collection from the matching
// store. A generation counter guards against a slow reload finishing
// after a newer one: stale results are dropped, never merged. Optimistic
// edits not yet confirmed by the previous scope's store are discarded by
// design.
func (s *Session) reload(ctx context.Context, owner Owner, email string) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	store := s.newStore(owner)
	s.owner = owner
	s.email = email
	s.store = store
	base := s.base
	s.mu.Unlock()

	tags, err := store.LoadTags(ctx, owner)
	if err != nil {
		s.logger.Warn("tag load incomplete", "owner", owner.Key(), "error", err)
	}
	notes, err := store.LoadNotes(ctx, owner)
	if err != nil {
		s.logger.Warn("note load failed", "owner", owner.Key(), "error", err)
	}

	merged := make([]AnnotatedQuestion, len(base))
	for i, q := range base {
		merged[i] = AnnotatedQuestion{
			Question: q,
			Tags:     append([]string(nil), tags[q.ID]...),
			Note:     notes[q.ID],
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return
	}
	s.questions = merged
	s.vocab = deriveVocabulary(merged)
}

// Questions returns a snapshot of the annotated collection in content
// order. The returned slice is the caller's to keep.
func (s *Session) Questions() []AnnotatedQuestion {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]AnnotatedQuestion, len(s.questions))
	for i, q := range s.questions {
		out[i] = q
		out[i].Tags = append([]string(nil), q.Tags...)
	}
	return out
}

// Question returns the annotated question with the given id.
func (s *Session) Question(id string) (AnnotatedQuestion, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, q := range s.questions {
		if q.ID == id {
			q.Tags = append([]string(nil), q.Tags...)
			return q, true
		}
	}
	return AnnotatedQuestion{}, false
}

// Vocabulary returns every distinct tag across the collection, in first
// appearance order.
func (s *Session) Vocabulary() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.vocab...)
}

// TagCounts returns the vocabulary with per-tag question counts, in
// vocabulary order.
func (s *Session) TagCounts() []TagCount {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := make([]TagCount, 0, len(s.vocab))
	for _, tag := range s.vocab {
		n := 0
		for i := range s.questions {
			if s.questions[i].HasTag(tag) {
				n++
			}
		}
		counts = append(counts, TagCount{Tag: tag, Count: n})
	}
	return counts
}

// Size returns the number of questions in the collection.
func (s *Session) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.questions)
}

// Owner returns the active annotation scope.
func (s *Session) Owner() Owner {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.owner
}

// Email returns the signed-in account's email, or "" when anonymous.
func (s *Session) Email() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.email
}

// AddTag appends tag to the question's sequence. Already-present tags
// are a no-op in memory and store-side. The new tag is visible (and in
// the vocabulary) before persistence is attempted.
func (s *Session) AddTag(questionID, tag string) {
	s.mu.Lock()
	q := s.find(questionID)
	if q == nil || q.HasTag(tag) {
		s.mu.Unlock()
		return
	}
	q.Tags = append(q.Tags, tag)
	s.vocab = deriveVocabulary(s.questions)
	owner, store := s.owner, s.store
	s.mu.Unlock()

	s.dispatch("add tag", questionID, func(ctx context.Context) error {
		return store.AddTag(ctx, owner, questionID, tag)
	})
}

// RemoveTag deletes tag from the question's sequence. Removing a tag
// the question does not carry is a no-op. A tag orphaned by its last
// removal leaves the vocabulary immediately.
func (s *Session) RemoveTag(questionID, tag string) {
	s.mu.Lock()
	q := s.find(questionID)
	if q == nil || !q.HasTag(tag) {
		s.mu.Unlock()
		return
	}
	kept := make([]string, 0, len(q.Tags)-1)
	for _, t := range q.Tags {
		if t != tag {
			kept = append(kept, t)
		}
	}
	q.Tags = kept
	s.vocab = deriveVocabulary(s.questions)
	owner, store := s.owner, s.store
	s.mu.Unlock()

	s.dispatch("remove tag", questionID, func(ctx context.Context) error {
		return store.RemoveTag(ctx, owner, questionID, tag)
	})
}

// SetNote overwrites the question's note, last write wins. An empty
// string displays as "no note".
func (s *Session) SetNote(questionID, note string) {
	s.mu.Lock()
	q := s.find(questionID)
	if q == nil {
		s.mu.Unlock()
		return
	}
	q.Note = note
	s.vocab = deriveVocabulary(s.questions)
	owner, store := s.owner, s.store
	s.mu.Unlock()

	s.dispatch("set note", questionID, func(ctx context.Context) error {
		return store.SetNote(ctx, owner, questionID, note)
	})
}

// dispatch runs the persistence call off the caller's path. Errors go
// to the logger; the in-memory state stands either way.
func (s *Session) dispatch(op, questionID string, fn func(context.Context) error) {
	s.dispatches.Add(1)
	go func() {
		defer s.dispatches.Done()
		if err := fn(context.Background()); err != nil {
			s.logger.Warn("annotation persist failed",
				"op", op, "question", questionID, "error", err)
		}
	}()
}

// find returns the live record for id. Callers hold s.mu.
func (s *Session) find(id string) *AnnotatedQuestion {
	for i := range s.questions {
		if s.questions[i].ID == id {
			return &s.questions[i]
		}
	}
	return nil
}

// deriveVocabulary collects distinct tags in first appearance order.
// Never persisted, never authoritative: recomputed on every change.
func deriveVocabulary(qs []AnnotatedQuestion) []string {
	seen := make(map[string]bool)
	var vocab []string
	for i := range qs {
		for _, t := range qs[i].Tags {
			if !seen[t] {
				seen[t] = true
				vocab = append(vocab, t)
			}
		}
	}
	return vocab
}

func ownerOf(sess *identity.Session) Owner {
	if sess == nil {
		return LocalOwner
	}
	return Owner{UserID: sess.UserID}
}

func emailOf(sess *identity.Session) string {
	if sess == nil {
		return ""
	}
	return sess.Email
}
