package state

import (
	"testing"
)

func TestSetGet(t *testing.T) {
	tr := New()
	tr.Set([]string{"quest", "south"}, "locked")

	if v, ok := tr.Get([]string{"quest", "south"}); !ok || v != "locked" {
		t.Errorf("expected locked, got %q (ok=%v)", v, ok)
	}
}

func TestSetOverwritesSubtree(t *testing.T) {
	tr := New()
	tr.Set([]string{"a", "b"}, "1")
	tr.Set([]string{"a"}, "x")

	if v, ok := tr.Get([]string{"a"}); !ok || v != "x" {
		t.Errorf("expected scalar x at a, got %q (ok=%v)", v, ok)
	}
	if _, ok := tr.Get([]string{"a", "b"}); ok {
		t.Error("subtree under a should be gone")
	}
}

func TestSetThroughScalar(t *testing.T) {
	tr := New()
	tr.Set([]string{"a"}, "x")
	tr.Set([]string{"a", "b"}, "1")

	if _, ok := tr.Get([]string{"a"}); ok {
		t.Error("scalar at a should have been replaced by a branch")
	}
	if v, ok := tr.Get([]string{"a", "b"}); !ok || v != "1" {
		t.Errorf("expected 1 at a/b, got %q (ok=%v)", v, ok)
	}
}

func TestDeleteCascadesPruning(t *testing.T) {
	tr := New()
	tr.Set([]string{"a", "b"}, "1")
	tr.Delete([]string{"a", "b"})

	if tr.Len() != 0 {
		t.Error("deleting the only leaf should prune emptied ancestors")
	}
}

func TestDeleteSubtree(t *testing.T) {
	tr := New()
	tr.Set([]string{"quest", "south"}, "locked")
	tr.Set([]string{"quest", "north"}, "open")
	tr.Delete([]string{"quest"})

	if tr.Len() != 0 {
		t.Error("deleting a subtree path removes the whole subtree")
	}
}

func TestDeleteMissingIsNoop(t *testing.T) {
	tr := New()
	tr.Set([]string{"a"}, "x")
	tr.Delete([]string{"b", "c"})

	if v, ok := tr.Get([]string{"a"}); !ok || v != "x" {
		t.Errorf("unrelated delete changed the tree: %q (ok=%v)", v, ok)
	}
}

func TestPartialPruning(t *testing.T) {
	tr := New()
	tr.Set([]string{"a", "b"}, "1")
	tr.Set([]string{"a", "c"}, "2")
	tr.Delete([]string{"a", "b"})

	if _, ok := tr.Get([]string{"a", "b"}); ok {
		t.Error("b should be gone")
	}
	if v, ok := tr.Get([]string{"a", "c"}); !ok || v != "2" {
		t.Errorf("sibling should survive, got %q (ok=%v)", v, ok)
	}
}

func TestEnumeration(t *testing.T) {
	tr := New()
	tr.Set([]string{"zone", "south"}, "locked")
	tr.Set([]string{"act"}, "one")

	roots := tr.Roots()
	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %v", roots)
	}
	if roots[0].Label != "act: one" || roots[0].Expandable {
		t.Errorf("scalar should render as segment: value leaf, got %v", roots[0])
	}
	if roots[1].Label != "zone" || !roots[1].Expandable {
		t.Errorf("branch should render as bare expandable segment, got %v", roots[1])
	}

	children := tr.Children([]string{"zone"})
	if len(children) != 1 || children[0].Label != "south: locked" {
		t.Errorf("unexpected children: %v", children)
	}
}
