// Package state maintains the hierarchical key/value state tree.
// Nodes are either scalar string values or branches keyed by path segment.
// Set is destructive at every level: a scalar in the middle of a longer
// path is replaced by a fresh branch, and the final segment overwrites
// whatever was there, scalar or whole subtree. Clear deletes recursively
// and prunes emptied ancestors.
package state

import (
	"sort"

	"github.com/kittclouds/loretrack/pkg/outline"
)

// node is either a scalar or a *branch.
type node interface {
	isNode()
}

// scalar is a leaf string value.
type scalar string

// branch maps path segments to child nodes.
type branch struct {
	children map[string]node
}

func (scalar) isNode()  {}
func (*branch) isNode() {}

func newBranch() *branch {
	return &branch{children: make(map[string]node)}
}

// Tree is the state store. The root is always a branch.
type Tree struct {
	root *branch
}

// New creates an empty tree.
func New() *Tree {
	return &Tree{root: newBranch()}
}

// Clear discards the whole tree.
func (t *Tree) Clear() {
	t.root = newBranch()
}

// Set assigns value at path. Intermediate segments that hold a scalar or
// nothing become fresh branches, discarding whatever was stored there.
func (t *Tree) Set(path []string, value string) {
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

	cur.children[path[len(path)-1]] = scalar(value)
}

// Delete removes the node at path, scalar or subtree, and prunes any
// branch emptied by the removal. A path that does not resolve is a no-op.
func (t *Tree) Delete(path []string) {
	if len(path) == 0 {
		return
	}
	t.del(t.root, path)
}

func (t *Tree) del(cur *branch, path []string) {
	seg := path[0]

	if len(path) == 1 {
		delete(cur.children, seg)
		return
	}

	next, ok := cur.children[seg].(*branch)
	if !ok {
		return
	}
	t.del(next, path[1:])
	if len(next.children) == 0 {
		delete(cur.children, seg)
	}
}

// Get returns the scalar at path and whether it exists.
func (t *Tree) Get(path []string) (string, bool) {
	if s, ok := t.resolve(path).(scalar); ok {
		return string(s), true
	}
	return "", false
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

// Children enumerates the branch at path: scalars as `segment: value`
// leaves, branches as bare segment names, always expandable.
func (t *Tree) Children(path []string) []outline.Item {
	br, ok := t.resolve(path).(*branch)
	if !ok {
		return nil
	}
	return t.enumerate(br, path)
}

func (t *Tree) enumerate(br *branch, path []string) []outline.Item {
	segs := make([]string, 0, len(br.children))
	for seg := range br.children {
		segs = append(segs, seg)
	}
	sort.Strings(segs)

	items := make([]outline.Item, 0, len(segs))
	for _, seg := range segs {
		switch child := br.children[seg].(type) {
		case scalar:
			items = append(items, outline.Item{Label: seg + ": " + string(child)})
		case *branch:
			items = append(items, outline.Item{
				Path:       append(append([]string{}, path...), seg),
				Label:      seg,
				Expandable: true,
			})
		}
	}
	return items
}
