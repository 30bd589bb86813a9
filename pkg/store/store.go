package store

import (
	"sync"

	"github.com/goliatone/go-cvgen/pkg/model"
)

// Listener observes committed snapshots.
type Listener func(model.Document)

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator overrides the identifier source used by the store mutator.
func WithIDGenerator(ids model.IDGenerator) Option {
	return func(s *Store) {
		if ids != nil {
			s.mutator = NewMutator(ids)
		}
	}
}

// WithListener registers a listener at construction time.
func WithListener(l Listener) Option {
	return func(s *Store) {
		if l != nil {
			s.listeners = append(s.listeners, l)
		}
	}
}

// Store owns the session document. Snapshots handed out are never written by
// the store again; every change produces a new document.
type Store struct {
	mu        sync.Mutex
	doc       model.Document
	mutator   *Mutator
	listeners []Listener
}

// New creates a store seeded with doc.
func New(doc model.Document, opts ...Option) *Store {
	s := &Store{doc: doc}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.mutator == nil {
		s.mutator = NewMutator(nil)
	}
	return s
}

// Snapshot returns the current document.
func (s *Store) Snapshot() model.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// Mutator returns the mutation API bound to this store's identifier source.
func (s *Store) Mutator() *Mutator {
	return s.mutator
}

// Apply commits fn(current) and notifies listeners with the new snapshot.
func (s *Store) Apply(fn func(model.Document) model.Document) model.Document {
	next, listeners := s.commit(fn)
	for _, l := range listeners {
		l(next)
	}
	return next
}

// commit runs fn under the lock. A panicking fn leaves the document as it was
// and the store usable.
func (s *Store) commit(fn func(model.Document) model.Document) (model.Document, []Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := fn(s.doc)
	s.doc = next
	return next, append([]Listener(nil), s.listeners...)
}

// Replace swaps the whole document, as reset and import do.
func (s *Store) Replace(doc model.Document) {
	s.Apply(func(model.Document) model.Document { return doc })
}

// Subscribe registers l for future commits and returns a function removing it.
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
	idx := len(s.listeners) - 1
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if idx < len(s.listeners) {
			s.listeners[idx] = func(model.Document) {}
		}
	}
}
