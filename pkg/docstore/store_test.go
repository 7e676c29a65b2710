package docstore

import (
	"reflect"
	"testing"
)

func TestHydrateAndLines(t *testing.T) {
	s := New()
	n := s.Hydrate([]Document{
		{ID: "doc1", Text: "line one\nline two", Version: 1},
		{ID: "doc2", Text: "solo", Version: 1},
	})
	if n != 2 || s.Count() != 2 {
		t.Fatalf("expected 2 documents, got n=%d count=%d", n, s.Count())
	}

	if got := s.Lines("doc1"); !reflect.DeepEqual(got, []string{"line one", "line two"}) {
		t.Errorf("unexpected lines: %v", got)
	}
	if got := s.Lines("missing"); got != nil {
		t.Errorf("missing document should yield nil lines, got %v", got)
	}
}

func TestUpsertRemove(t *testing.T) {
	s := New()
	s.Upsert("doc1", "first", 1)
	s.Upsert("doc1", "second", 2)

	doc := s.Get("doc1")
	if doc == nil || doc.Text != "second" || doc.Version != 2 {
		t.Fatalf("unexpected document: %+v", doc)
	}

	s.Remove("doc1")
	if s.Get("doc1") != nil {
		t.Error("document should be gone")
	}
}

func TestClear(t *testing.T) {
	s := New()
	s.Upsert("doc1", "text", 1)
	s.Clear()
	if s.Count() != 0 {
		t.Error("clear should empty the store")
	}
}
