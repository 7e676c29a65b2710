package mentions

import (
	"testing"
)

func TestScanCountsKnownEntities(t *testing.T) {
	s := NewScanner(2)
	s.Register("Alice")
	s.Register("Bob")

	if err := s.ScanProse("Alice met Bob near the gate."); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if err := s.ScanProse("Later, Alice left."); err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	ms := s.Mentions()
	if len(ms) != 2 {
		t.Fatalf("expected 2 mentioned entities, got %v", ms)
	}
	if ms[0].Name != "Alice" || ms[0].Count != 2 {
		t.Errorf("unexpected Alice count: %+v", ms[0])
	}
	if ms[1].Name != "Bob" || ms[1].Count != 1 {
		t.Errorf("unexpected Bob count: %+v", ms[1])
	}
}

func TestCandidatePromotion(t *testing.T) {
	s := NewScanner(2)

	s.ScanProse("Gandalf crossed the bridge.")
	if got := s.Candidates(); len(got) != 0 {
		t.Fatalf("one sighting should not promote: %v", got)
	}

	s.ScanProse("Gandalf shouted.")
	got := s.Candidates()
	if len(got) != 1 || got[0].Name != "Gandalf" || got[0].Count != 2 {
		t.Fatalf("expected promoted Gandalf, got %v", got)
	}
}

func TestStopwordsNeverPromote(t *testing.T) {
	s := NewScanner(1)
	s.ScanProse("The door opened. The wind howled.")

	for _, c := range s.Candidates() {
		if c.Name == "The" {
			t.Errorf("stopword promoted: %v", c)
		}
	}
}

func TestCustomStopWord(t *testing.T) {
	s := NewScanner(1)
	s.AddStopWord("Chapter")
	s.ScanProse("Chapter Three begins.")

	for _, c := range s.Candidates() {
		if c.Name == "Chapter" {
			t.Errorf("custom stopword promoted: %v", c)
		}
	}
}

func TestKnownEntitiesAreNotCandidates(t *testing.T) {
	s := NewScanner(1)
	s.Register("Alice")
	s.ScanProse("Alice waved.")

	for _, c := range s.Candidates() {
		if c.Name == "Alice" {
			t.Errorf("registered entity counted as candidate: %v", c)
		}
	}
}

func TestResetForgetsEverything(t *testing.T) {
	s := NewScanner(1)
	s.Register("Alice")
	s.ScanProse("Alice waved at Gandalf.")
	s.Reset()

	if got := s.Mentions(); len(got) != 0 {
		t.Errorf("mentions survived reset: %v", got)
	}
	if got := s.Candidates(); len(got) != 0 {
		t.Errorf("candidates survived reset: %v", got)
	}
}

func TestCanonicalize(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Alice", "alice"},
		{"  Jean-Luc  Picard ", "jean-luc picard"},
		{"O’Brien", "o'brien"},
		{"Hello, World!", "hello world"},
	}
	for _, tc := range cases {
		if got := canonicalize(tc.in); got != tc.want {
			t.Errorf("canonicalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
