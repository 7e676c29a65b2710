// Package attrs accumulates numeric character attributes.
// The table is a two-level map entity → attribute → running total with
// unconditional pruning at the zero boundary: a total of exactly zero
// deletes the attribute, and an entity with no attributes is deleted too.
package attrs

import (
	"sort"
	"strconv"

	"github.com/kittclouds/loretrack/pkg/outline"
)

// Table holds per-entity attribute totals.
type Table struct {
	entities map[string]map[string]int
}

// New creates an empty table.
func New() *Table {
	return &Table{
		entities: make(map[string]map[string]int),
	}
}

// Clear discards all entities and totals.
func (t *Table) Clear() {
	t.entities = make(map[string]map[string]int)
}

// Add accumulates delta into the (entity, attr) total, creating entries
// lazily. Negative deltas are accepted; pruning happens on the way out.
func (t *Table) Add(entity, attr string, delta int) {
	e, ok := t.entities[entity]
	if !ok {
		e = make(map[string]int)
		t.entities[entity] = e
	}
	e[attr] += delta
	t.prune(entity, attr)
}

// Remove subtracts delta from the (entity, attr) total. A total of exactly
// zero removes the attribute key; an entity left without attributes is
// removed as well.
func (t *Table) Remove(entity, attr string, delta int) {
	t.Add(entity, attr, -delta)
}

func (t *Table) prune(entity, attr string) {
	e, ok := t.entities[entity]
	if !ok {
		return
	}
	if e[attr] == 0 {
		delete(e, attr)
	}
	if len(e) == 0 {
		delete(t.entities, entity)
	}
}

// Get returns the current total and whether the attribute exists.
func (t *Table) Get(entity, attr string) (int, bool) {
	if e, ok := t.entities[entity]; ok {
		v, ok := e[attr]
		return v, ok
	}
	return 0, false
}

// Entities returns all entity names, sorted.
func (t *Table) Entities() []string {
	names := make([]string, 0, len(t.entities))
	for name := range t.entities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Attrs returns the attribute names of an entity, sorted.
func (t *Table) Attrs(entity string) []string {
	e, ok := t.entities[entity]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of entities with at least one non-zero attribute.
func (t *Table) Len() int {
	return len(t.entities)
}

// Roots enumerates entities as expandable nodes.
func (t *Table) Roots() []outline.Item {
	names := t.Entities()
	items := make([]outline.Item, 0, len(names))
	for _, name := range names {
		items = append(items, outline.Item{
			Path:       []string{name},
			Label:      name,
			Expandable: true,
		})
	}
	return items
}

// Children enumerates an entity's attributes as `name: total` leaves.
func (t *Table) Children(path []string) []outline.Item {
	if len(path) != 1 {
		return nil
	}
	entity := path[0]
	e, ok := t.entities[entity]
	if !ok {
		return nil
	}

	names := t.Attrs(entity)
	items := make([]outline.Item, 0, len(names))
	for _, name := range names {
		items = append(items, outline.Item{
			Label: name + ": " + strconv.Itoa(e[name]),
		})
	}
	return items
}
