// Package tracker drives the incremental recompute cycle. On every cursor
// move to a new line it clears the derived stores, replays every document
// line from the start through the cursor, and fires each store's refresh
// signal. Correctness is re-derivation, not patching: no diffing against
// the previous pass.
package tracker

import (
	"strings"

	"github.com/kittclouds/loretrack/pkg/attrs"
	"github.com/kittclouds/loretrack/pkg/mentions"
	"github.com/kittclouds/loretrack/pkg/notation"
	"github.com/kittclouds/loretrack/pkg/notes"
	"github.com/kittclouds/loretrack/pkg/state"
)

// Options configure a Tracker.
type Options struct {
	// Brackets enables the legacy [entity] grammar.
	Brackets bool
	// Mentions enables prose mention scanning.
	Mentions bool
	// MentionThreshold is the candidate promotion threshold.
	MentionThreshold int
	// StopWords are extra words the candidate registry ignores.
	StopWords []string
}

// DefaultOptions enables both grammars and mention scanning.
func DefaultOptions() Options {
	return Options{
		Brackets:         true,
		Mentions:         true,
		MentionThreshold: 2,
	}
}

// Tracker owns the three derived stores and the clear/rebuild cycle.
// Single-threaded by contract: the host delivers cursor notifications
// serially and each pass completes before the next can be dispatched.
type Tracker struct {
	classifier *notation.Classifier

	attrs    *attrs.Table
	notes    *notes.Tree
	state    *state.Tree
	mentions *mentions.Scanner

	// Refresh signals, fired once per store after each pass.
	// Fire-and-forget: no acknowledgment is awaited.
	OnAttrsRefresh    func()
	OnNotesRefresh    func()
	OnStateRefresh    func()
	OnMentionsRefresh func()

	activeLine int
	passes     int
}

// New creates a Tracker with empty stores.
func New(opts Options) *Tracker {
	t := &Tracker{
		classifier: &notation.Classifier{Brackets: opts.Brackets},
		attrs:      attrs.New(),
		notes:      notes.New(),
		state:      state.New(),
		activeLine: -1,
	}
	if opts.Mentions {
		t.mentions = mentions.NewScanner(opts.MentionThreshold)
		for _, w := range opts.StopWords {
			t.mentions.AddStopWord(w)
		}
	}
	return t
}

// Attributes returns the attribute store.
func (t *Tracker) Attributes() *attrs.Table { return t.attrs }

// Notes returns the note store.
func (t *Tracker) Notes() *notes.Tree { return t.notes }

// State returns the state tree store.
func (t *Tracker) State() *state.Tree { return t.state }

// Mentions returns the mention scanner, or nil when disabled.
func (t *Tracker) Mentions() *mentions.Scanner { return t.mentions }

// Passes returns how many recompute passes have run.
func (t *Tracker) Passes() int { return t.passes }

// ActiveLine returns the last processed cursor line, -1 before the first
// pass.
func (t *Tracker) ActiveLine() int { return t.activeLine }

// OnCursorMoved re-derives all stores from lines[0..line] inclusive.
// A move that lands on the active line is a no-op; debouncing is by line
// identity, not content, so edits without a line change do not recompute.
// Returns whether a pass ran.
func (t *Tracker) OnCursorMoved(line int, lines []string) bool {
	if line == t.activeLine {
		return false
	}
	t.activeLine = line
	t.recompute(line, lines)
	return true
}

// Invalidate forgets the active line so the next cursor notification
// recomputes unconditionally.
func (t *Tracker) Invalidate() {
	t.activeLine = -1
}

func (t *Tracker) recompute(line int, lines []string) {
	t.attrs.Clear()
	t.notes.Clear()
	t.state.Clear()
	if t.mentions != nil {
		t.mentions.Reset()
	}

	if line >= len(lines) {
		line = len(lines) - 1
	}
	if line < 0 {
		t.passes++
		t.signal()
		return
	}

	// First sweep: classify every line once and register directive
	// entities, so prose mentions count even before an entity's first
	// directive appears in the prefix.
	parsed := make([][]notation.Directive, 0, line+1)
	for i := 0; i <= line; i++ {
		ds := t.classifier.Classify(lines[i])
		parsed = append(parsed, ds)
		if t.mentions == nil {
			continue
		}
		for _, d := range ds {
			switch d.Kind {
			case notation.AttrAdd, notation.AttrRemove, notation.NoteAdd:
				t.mentions.Register(d.Path[0])
			}
		}
	}

	// Second sweep: apply directives in document order; lines that match
	// no grammar are prose and feed the mention scanner.
	for i, ds := range parsed {
		if len(ds) == 0 {
			if t.mentions != nil {
				t.mentions.ScanProse(lines[i])
			}
			continue
		}
		for _, d := range ds {
			t.apply(d)
		}
	}

	t.passes++
	t.signal()
}

func (t *Tracker) apply(d notation.Directive) {
	switch d.Kind {
	case notation.NoteAdd:
		t.notes.Add(d.Path, d.Value)
	case notation.NoteRemove:
		t.notes.Remove(d.Path, d.Value)
	case notation.StateSet:
		t.state.Set(d.Path, d.Value)
	case notation.StateClear:
		t.state.Delete(d.Path)
	case notation.AttrAdd:
		t.attrs.Add(d.Path[0], d.Path[1], d.Delta)
	case notation.AttrRemove:
		t.attrs.Remove(d.Path[0], d.Path[1], d.Delta)
	}
}

func (t *Tracker) signal() {
	if t.OnAttrsRefresh != nil {
		t.OnAttrsRefresh()
	}
	if t.OnNotesRefresh != nil {
		t.OnNotesRefresh()
	}
	if t.OnStateRefresh != nil {
		t.OnStateRefresh()
	}
	if t.mentions != nil && t.OnMentionsRefresh != nil {
		t.OnMentionsRefresh()
	}
}

// IsStoryDocument reports whether a file name looks like a document this
// tracker should process.
func IsStoryDocument(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".md") || strings.HasSuffix(lower, ".markdown")
}
