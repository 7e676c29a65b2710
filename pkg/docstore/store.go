// Package docstore holds the raw text of open story documents.
// The host hydrates it with document text and keeps it current; a tracker
// session reads line slices out of it on every cursor notification.
package docstore

import (
	"strings"
	"sync"
)

// Document is one open story document.
type Document struct {
	ID      string
	Text    string
	Version int64 // for change detection by the host
}

// Store is an in-memory document registry.
// Thread-safe for concurrent host callbacks.
type Store struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

// New creates an empty store.
func New() *Store {
	return &Store{
		docs: make(map[string]*Document),
	}
}

// Hydrate bulk-loads documents, returning how many were stored.
func (s *Store) Hydrate(docs []Document) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, doc := range docs {
		d := doc
		s.docs[d.ID] = &d
	}
	return len(docs)
}

// Upsert adds or replaces a single document.
func (s *Store) Upsert(id, text string, version int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs[id] = &Document{ID: id, Text: text, Version: version}
}

// Remove deletes a document.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.docs, id)
}

// Get returns a document or nil.
func (s *Store) Get(id string) *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.docs[id]
}

// Lines returns the document text split into lines, or nil if the
// document is unknown. This is the slice the tracker replays.
func (s *Store) Lines(id string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[id]
	if !ok {
		return nil
	}
	return strings.Split(doc.Text, "\n")
}

// Count returns the number of stored documents.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.docs)
}

// Clear removes all documents.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs = make(map[string]*Document)
}
