// Package outline defines the lazy tree-enumeration surface the stores
// expose to an external renderer (editor tree view, CLI printer).
package outline

// Item is one visible row of a tree view.
type Item struct {
	// Path addresses the node for a follow-up Children call.
	// Non-expandable leaves carry a nil Path.
	Path       []string
	Label      string
	Expandable bool
}

// Provider enumerates a tree level by level. Children results are
// lexicographically sorted regardless of insertion order.
type Provider interface {
	Roots() []Item
	Children(path []string) []Item
}

// Walk performs a depth-first traversal of a Provider, calling visit with
// each item and its depth. Intended for hosts that render the whole tree
// at once (CLI printing, tests).
func Walk(p Provider, visit func(item Item, depth int)) {
	var rec func(items []Item, depth int)
	rec = func(items []Item, depth int) {
		for _, it := range items {
			visit(it, depth)
			if it.Expandable && it.Path != nil {
				rec(p.Children(it.Path), depth+1)
			}
		}
	}
	rec(p.Roots(), 0)
}
