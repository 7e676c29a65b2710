package mentions

import (
	"sort"
	"strings"

	"github.com/orsinium-labs/stopwords"
)

// Status tracks the lifecycle of a candidate name.
type Status int

const (
	StatusWatching Status = iota
	StatusPromoted
)

// Candidate is a public view of a candidate entity name.
type Candidate struct {
	Name   string
	Count  int
	Status Status
}

type stats struct {
	count   int
	status  Status
	display string
}

// Registry counts capitalized tokens seen in prose and promotes the ones
// that recur at least threshold times.
type Registry struct {
	stats     map[string]*stats
	threshold int
	custom    map[string]bool
	english   *stopwords.Stopwords
}

// NewRegistry creates a registry with the given promotion threshold.
func NewRegistry(threshold int) *Registry {
	if threshold < 1 {
		threshold = 1
	}
	return &Registry{
		stats:     make(map[string]*stats),
		threshold: threshold,
		custom:    make(map[string]bool),
		english:   stopwords.MustGet("en"),
	}
}

// Reset drops all counts, keeping thresholds and stopwords.
func (r *Registry) Reset() {
	r.stats = make(map[string]*stats)
}

// AddStopWord adds a custom ignored word.
func (r *Registry) AddStopWord(word string) {
	r.custom[strings.ToLower(word)] = true
}

// Observe counts one sighting of a token. Returns true if the token was
// promoted by this sighting.
func (r *Registry) Observe(raw string) bool {
	key := canonicalize(raw)
	if key == "" || strings.ContainsRune(key, ' ') {
		return false
	}
	if r.custom[key] || r.english.Contains(key) {
		return false
	}

	s, ok := r.stats[key]
	if !ok {
		s = &stats{display: strings.Trim(raw, ".,;:!?\"'")}
		r.stats[key] = s
	}
	s.count++

	if s.status == StatusWatching && s.count >= r.threshold {
		s.status = StatusPromoted
		return true
	}
	return false
}

// Status returns the lifecycle state of a token.
func (r *Registry) Status(raw string) Status {
	if s, ok := r.stats[canonicalize(raw)]; ok {
		return s.status
	}
	return StatusWatching
}

// Promoted returns all promoted candidates, sorted by name.
func (r *Registry) Promoted() []Candidate {
	var out []Candidate
	for _, s := range r.stats {
		if s.status != StatusPromoted {
			continue
		}
		out = append(out, Candidate{Name: s.display, Count: s.count, Status: s.status})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
