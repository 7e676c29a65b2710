// Package mentions scans prose lines for references to entities named by
// notation directives. Known names are compiled into a single Aho-Corasick
// automaton; capitalized tokens that match nothing are counted as
// candidates and promoted once they recur often enough.
package mentions

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/coregx/ahocorasick"

	"github.com/kittclouds/loretrack/pkg/outline"
)

// Mention is an aggregated per-entity count for the current pass.
type Mention struct {
	Name  string
	Count int
}

// Scanner accumulates mention counts over one recompute pass.
type Scanner struct {
	display  map[string]string // canonical -> best display form
	patterns []string
	ac       *ahocorasick.Automaton
	dirty    bool

	counts   map[string]int
	registry *Registry
}

// NewScanner creates a scanner with the given candidate promotion
// threshold.
func NewScanner(threshold int) *Scanner {
	return &Scanner{
		display:  make(map[string]string),
		counts:   make(map[string]int),
		registry: NewRegistry(threshold),
	}
}

// Reset clears all names, counts, and candidates for a fresh pass.
func (s *Scanner) Reset() {
	s.display = make(map[string]string)
	s.patterns = nil
	s.ac = nil
	s.dirty = false
	s.counts = make(map[string]int)
	s.registry.Reset()
}

// AddStopWord forwards a custom stopword to the candidate registry.
func (s *Scanner) AddStopWord(word string) {
	s.registry.AddStopWord(word)
}

// Register adds an entity name to the dictionary. The automaton is
// rebuilt lazily on the next scan.
func (s *Scanner) Register(name string) {
	key := canonicalize(name)
	if key == "" {
		return
	}
	if _, ok := s.display[key]; !ok {
		s.display[key] = name
		s.patterns = append(s.patterns, key)
		s.dirty = true
	}
}

// ScanProse counts dictionary matches in a prose line and feeds
// capitalized tokens to the candidate registry.
func (s *Scanner) ScanProse(line string) error {
	if s.dirty {
		if err := s.compile(); err != nil {
			return err
		}
		s.dirty = false
	}

	if s.ac != nil {
		haystack := canonicalize(line)
		for _, m := range s.ac.FindAllOverlapping([]byte(haystack)) {
			if m.PatternID < len(s.patterns) {
				s.counts[s.patterns[m.PatternID]]++
			}
		}
	}

	for _, tok := range strings.Fields(line) {
		runes := []rune(tok)
		if len(runes) == 0 || !unicode.IsUpper(runes[0]) {
			continue
		}
		if _, known := s.display[canonicalize(tok)]; known {
			continue
		}
		s.registry.Observe(tok)
	}
	return nil
}

func (s *Scanner) compile() error {
	if len(s.patterns) == 0 {
		s.ac = nil
		return nil
	}
	// LeftmostLongest prefers "Monkey D. Luffy" over "Luffy" at the
	// same position.
	ac, err := ahocorasick.NewBuilder().
		AddStrings(s.patterns).
		SetMatchKind(ahocorasick.LeftmostLongest).
		SetPrefilter(true).
		Build()
	if err != nil {
		return err
	}
	s.ac = ac
	return nil
}

// Mentions returns per-entity counts, sorted by name.
func (s *Scanner) Mentions() []Mention {
	out := make([]Mention, 0, len(s.counts))
	for key, count := range s.counts {
		out = append(out, Mention{Name: s.display[key], Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Candidates returns promoted candidate names, sorted.
func (s *Scanner) Candidates() []Candidate {
	return s.registry.Promoted()
}

// Roots enumerates mention counts as `name: count` leaves.
func (s *Scanner) Roots() []outline.Item {
	ms := s.Mentions()
	items := make([]outline.Item, 0, len(ms))
	for _, m := range ms {
		items = append(items, outline.Item{
			Label: m.Name + ": " + strconv.Itoa(m.Count),
		})
	}
	return items
}

// Children is present to satisfy outline.Provider; the view is flat.
func (s *Scanner) Children(path []string) []outline.Item {
	return nil
}

// canonicalize folds text for matching: lowercase, letters/digits and
// in-name punctuation kept, everything else collapsed to single spaces.
func canonicalize(s string) string {
	var out strings.Builder
	out.Grow(len(s))

	lastWasSpace := true
	for _, ch := range s {
		c := unicode.ToLower(ch)
		switch c {
		case '’', '‘':
			c = '\''
		case '–', '—':
			c = '-'
		}

		if unicode.IsLetter(c) || unicode.IsDigit(c) || isJoiner(c) {
			out.WriteRune(c)
			lastWasSpace = false
		} else if !lastWasSpace {
			out.WriteRune(' ')
			lastWasSpace = true
		}
	}

	return strings.TrimRight(out.String(), " ")
}

// isJoiner reports punctuation that appears inside names ("O'Brien",
// "Jean-Luc", "Monkey D. Luffy").
func isJoiner(r rune) bool {
	switch r {
	case '\'', '-', '.', '_', '&':
		return true
	default:
		return false
	}
}
