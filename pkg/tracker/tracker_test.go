package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/loretrack/pkg/outline"
)

var document = []string{
	"+ [Alice] Found a key",
	"* [Alice] Courage: 2",
	"> quest south : locked",
	"- quest south",
}

func TestEndToEnd(t *testing.T) {
	tr := New(DefaultOptions())
	ran := tr.OnCursorMoved(3, document)
	require.True(t, ran)

	// Note store: Alice -> ["Found a key"]
	assert.Equal(t, []string{"Found a key"}, tr.Notes().Entries([]string{"Alice"}))

	// Attribute store: Alice -> {Courage: 2}
	v, ok := tr.Attributes().Get("Alice", "Courage")
	require.True(t, ok)
	assert.Equal(t, 2, v)

	// State tree: empty, the set at line 2 was pruned by the clear at 3.
	assert.Equal(t, 0, tr.State().Len())
}

func TestPrefixStopsAtCursor(t *testing.T) {
	tr := New(DefaultOptions())
	tr.OnCursorMoved(2, document)

	// The clear on line 3 is beyond the cursor, so the set survives.
	v, ok := tr.State().Get([]string{"quest", "south"})
	require.True(t, ok)
	assert.Equal(t, "locked", v)
}

func TestSameLineIsNoop(t *testing.T) {
	tr := New(DefaultOptions())

	require.True(t, tr.OnCursorMoved(3, document))
	require.False(t, tr.OnCursorMoved(3, document))
	assert.Equal(t, 1, tr.Passes())

	require.True(t, tr.OnCursorMoved(2, document))
	assert.Equal(t, 2, tr.Passes())
}

func TestRecomputeIdempotence(t *testing.T) {
	tr := New(DefaultOptions())
	tr.OnCursorMoved(3, document)
	first := snapshot(tr)

	tr.OnCursorMoved(0, document)
	tr.OnCursorMoved(3, document)
	assert.Equal(t, first, snapshot(tr))
}

func TestRefreshSignalsFireOncePerPass(t *testing.T) {
	tr := New(DefaultOptions())
	var attrsN, notesN, stateN int
	tr.OnAttrsRefresh = func() { attrsN++ }
	tr.OnNotesRefresh = func() { notesN++ }
	tr.OnStateRefresh = func() { stateN++ }

	tr.OnCursorMoved(3, document)
	tr.OnCursorMoved(3, document)

	assert.Equal(t, 1, attrsN)
	assert.Equal(t, 1, notesN)
	assert.Equal(t, 1, stateN)
}

func TestProseFeedsMentions(t *testing.T) {
	lines := []string{
		"+ [Alice] Found a key",
		"Alice climbed down into the cellar.",
		"There Alice lit a torch.",
	}

	tr := New(DefaultOptions())
	tr.OnCursorMoved(2, lines)

	ms := tr.Mentions().Mentions()
	require.Len(t, ms, 1)
	assert.Equal(t, "Alice", ms[0].Name)
	assert.Equal(t, 2, ms[0].Count)
}

func TestMentionsDisabled(t *testing.T) {
	tr := New(Options{Brackets: true})
	tr.OnCursorMoved(0, []string{"+ [Alice] Found a key"})
	assert.Nil(t, tr.Mentions())
}

func TestCursorBeyondDocumentClamps(t *testing.T) {
	tr := New(DefaultOptions())
	tr.OnCursorMoved(99, document)
	assert.Equal(t, 0, tr.State().Len())
	assert.Equal(t, []string{"Found a key"}, tr.Notes().Entries([]string{"Alice"}))
}

func TestIsStoryDocument(t *testing.T) {
	assert.True(t, IsStoryDocument("chapter1.md"))
	assert.True(t, IsStoryDocument("NOTES.MARKDOWN"))
	assert.False(t, IsStoryDocument("main.go"))
}

// snapshot flattens all three tree views for comparison.
func snapshot(tr *Tracker) [][]string {
	var out [][]string
	for _, p := range []outline.Provider{tr.Attributes(), tr.Notes(), tr.State()} {
		var labels []string
		outline.Walk(p, func(item outline.Item, depth int) {
			labels = append(labels, item.Label)
		})
		out = append(out, labels)
	}
	return out
}
