package attrs

import (
	"reflect"
	"testing"
)

func TestAddAccumulates(t *testing.T) {
	tbl := New()
	tbl.Add("Alice", "Courage", 2)
	tbl.Add("Alice", "Courage", 3)

	if v, ok := tbl.Get("Alice", "Courage"); !ok || v != 5 {
		t.Errorf("expected 5, got %d (ok=%v)", v, ok)
	}
}

func TestZeroPrunes(t *testing.T) {
	tbl := New()
	tbl.Add("Alice", "Courage", 2)
	tbl.Remove("Alice", "Courage", 2)

	if _, ok := tbl.Get("Alice", "Courage"); ok {
		t.Error("zero total should remove the attribute")
	}
	if tbl.Len() != 0 {
		t.Errorf("entity with no attributes should be pruned, have %d", tbl.Len())
	}
}

func TestNegativeTotalsSurvive(t *testing.T) {
	tbl := New()
	tbl.Remove("Alice", "Courage", 3)

	if v, ok := tbl.Get("Alice", "Courage"); !ok || v != -3 {
		t.Errorf("expected -3, got %d (ok=%v)", v, ok)
	}
}

func TestAlgebraicSum(t *testing.T) {
	tbl := New()
	deltas := []int{5, -2, 7, -10, 1}
	sum := 0
	for _, d := range deltas {
		tbl.Add("Bob", "Luck", d)
		sum += d
	}

	v, ok := tbl.Get("Bob", "Luck")
	if sum == 0 && ok {
		t.Error("zero sum should be absent")
	}
	if sum != 0 && (!ok || v != sum) {
		t.Errorf("expected %d, got %d (ok=%v)", sum, v, ok)
	}
}

func TestEnumerationSorted(t *testing.T) {
	tbl := New()
	tbl.Add("Zed", "Wits", 1)
	tbl.Add("Alice", "Courage", 2)
	tbl.Add("Alice", "Agility", 4)

	if got := tbl.Entities(); !reflect.DeepEqual(got, []string{"Alice", "Zed"}) {
		t.Errorf("entities not sorted: %v", got)
	}

	roots := tbl.Roots()
	if len(roots) != 2 || roots[0].Label != "Alice" || !roots[0].Expandable {
		t.Fatalf("unexpected roots: %v", roots)
	}

	children := tbl.Children([]string{"Alice"})
	if len(children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(children))
	}
	if children[0].Label != "Agility: 4" || children[1].Label != "Courage: 2" {
		t.Errorf("unexpected child labels: %q, %q", children[0].Label, children[1].Label)
	}
}

func TestClear(t *testing.T) {
	tbl := New()
	tbl.Add("Alice", "Courage", 2)
	tbl.Clear()
	if tbl.Len() != 0 {
		t.Error("clear should empty the table")
	}
}
