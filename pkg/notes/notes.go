// Package notes stores free-text notes and goals in a path-addressed tree.
// Leaves are ordered buckets of text entries; interior nodes are branches
// keyed by path segment. Removal strips every occurrence equal to the
// value and prunes emptied buckets and branches up to (not including)
// the root.
package notes

import (
	"sort"

	"github.com/kittclouds/loretrack/pkg/outline"
)

// node is either a *bucket or a *branch, never both.
type node interface {
	isNode()
}

// bucket is an ordered list of text entries at a leaf.
type bucket struct {
	entries []string
}

// branch maps path segments to child nodes.
type branch struct {
	children map[string]node
}

func (*bucket) isNode() {}
func (*branch) isNode() {}

func newBranch() *branch {
	return &branch{children: make(map[string]node)}
}

// Tree is the note store. The root is always a branch.
type Tree struct {
	root *branch
}

// New creates an empty tree.
func New() *Tree {
	return &Tree{root: newBranch()}
}

// Clear discards all notes.
func (t *Tree) Clear() {
	t.root = newBranch()
}

// Add appends value to the bucket at path, creating branches for the
// intermediate segments. A non-bucket node found at the final segment is
// replaced with a fresh bucket; foreign node types are not preserved.
func (t *Tree) Add(path []string, value string) {
	if len(path) == 0 {
		return
	}

	cur := t.root
	for _, seg := range path[:len(path)-1] {
		next, ok := cur.children[seg].(*branch)
		if !ok {
			next = newBranch()
			cur.children[seg] = next
		}
		cur = next
	}

	last := path[len(path)-1]
	b, ok := cur.children[last].(*bucket)
	if !ok {
		b = &bucket{}
		cur.children[last] = b
	}
	b.entries = append(b.entries, value)
}

// Remove deletes every entry equal to value from the bucket at path.
// A bucket left empty is deleted, and any branch emptied by that deletion
// is deleted recursively. A path that does not resolve is a no-op.
func (t *Tree) Remove(path []string, value string) {
	if len(path) == 0 {
		return
	}
	t.remove(t.root, path, value)
}

func (t *Tree) remove(cur *branch, path []string, value string) {
	seg := path[0]

	if len(path) == 1 {
		b, ok := cur.children[seg].(*bucket)
		if !ok {
			return
		}
		kept := b.entries[:0]
		for _, e := range b.entries {
			if e != value {
				kept = append(kept, e)
			}
		}
		b.entries = kept
		if len(b.entries) == 0 {
			delete(cur.children, seg)
		}
		return
	}

	next, ok := cur.children[seg].(*branch)
	if !ok {
		return
	}
	t.remove(next, path[1:], value)
	if len(next.children) == 0 {
		delete(cur.children, seg)
	}
}

// Entries returns a copy of the bucket contents at path, or nil.
func (t *Tree) Entries(path []string) []string {
	n := t.resolve(path)
	b, ok := n.(*bucket)
	if !ok {
		return nil
	}
	out := make([]string, len(b.entries))
	copy(out, b.entries)
	return out
}

// Len returns the number of top-level segments.
func (t *Tree) Len() int {
	return len(t.root.children)
}

func (t *Tree) resolve(path []string) node {
	var cur node = t.root
	for _, seg := range path {
		br, ok := cur.(*branch)
		if !ok {
			return nil
		}
		cur, ok = br.children[seg]
		if !ok {
			return nil
		}
	}
	return cur
}

// Roots enumerates the top level of the tree.
func (t *Tree) Roots() []outline.Item {
	return t.enumerate(t.root, nil)
}

// Children enumerates the node at path. Bucket entries render as bare
// text; in a branch holding both buckets and sub-branches, bucket entries
// are surfaced inline as `segment: entry` leaves.
func (t *Tree) Children(path []string) []outline.Item {
	switch n := t.resolve(path).(type) {
	case *branch:
		return t.enumerate(n, path)
	case *bucket:
		items := make([]outline.Item, 0, len(n.entries))
		for _, e := range n.entries {
			items = append(items, outline.Item{Label: e})
		}
		return items
	default:
		return nil
	}
}

func (t *Tree) enumerate(br *branch, path []string) []outline.Item {
	segs := make([]string, 0, len(br.children))
	var sawBucket, sawBranch bool
	for seg, child := range br.children {
		segs = append(segs, seg)
		switch child.(type) {
		case *bucket:
			sawBucket = true
		case *branch:
			sawBranch = true
		}
	}
	mixed := sawBucket && sawBranch
	sort.Strings(segs)

	var items []outline.Item
	for _, seg := range segs {
		child := br.children[seg]
		childPath := append(append([]string{}, path...), seg)

		if b, ok := child.(*bucket); ok && mixed {
			for _, e := range b.entries {
				items = append(items, outline.Item{Label: seg + ": " + e})
			}
			continue
		}

		items = append(items, outline.Item{
			Path:       childPath,
			Label:      seg,
			Expandable: true,
		})
	}
	return items
}
