// Package notation classifies single lines of story-notation markdown.
// Each line is dispatched on its leading sigil to an ordered list of
// candidate grammars; the first grammar that matches consumes the line.
// Lines that match nothing are plain prose and are skipped without error.
package notation

import (
	"strings"
)

// Kind identifies which directive a line encodes.
type Kind int

const (
	NoteAdd Kind = iota
	NoteRemove
	StateSet
	StateClear
	AttrAdd
	AttrRemove
)

func (k Kind) String() string {
	switch k {
	case NoteAdd:
		return "note-add"
	case NoteRemove:
		return "note-remove"
	case StateSet:
		return "state-set"
	case StateClear:
		return "state-clear"
	case AttrAdd:
		return "attr-add"
	case AttrRemove:
		return "attr-remove"
	default:
		return "unknown"
	}
}

// Directive is one parsed instruction from a notation line.
// Path holds whitespace-delimited segments; for the bracket grammar it is
// the single entity name (plus the attribute name for attribute lines).
type Directive struct {
	Kind  Kind
	Path  []string
	Value string
	Delta int
}

// Classifier dispatches lines to the directive grammars.
// Brackets toggles the legacy [entity] grammar; the path grammar is
// always active.
type Classifier struct {
	Brackets bool
}

// New creates a Classifier with both grammar families enabled.
func New() *Classifier {
	return &Classifier{Brackets: true}
}

// Classify parses one line into zero or more directives.
// A `-` line can legitimately yield both a state-clear and a note-remove;
// the two grammars are structurally disjoint (colon presence), so in
// practice at most one fires per line.
func (c *Classifier) Classify(line string) []Directive {
	s := strings.TrimSpace(line)
	if len(s) == 0 {
		return nil
	}

	sigil := s[0]
	rest := strings.TrimSpace(s[1:])

	switch sigil {
	case '+':
		return c.classifyAdd(rest)
	case '-':
		return c.classifyRemove(rest)
	case '*':
		if c.Brackets {
			if d, ok := scanAttr(rest, AttrAdd); ok {
				return []Directive{d}
			}
		}
		return nil
	case '>':
		if path, value, ok := scanPathValue(rest); ok {
			return []Directive{{Kind: StateSet, Path: path, Value: value}}
		}
		return nil
	default:
		return nil
	}
}

// Classify parses a line with the default classifier (all grammars on).
func Classify(line string) []Directive {
	return defaultClassifier.Classify(line)
}

var defaultClassifier = New()

func (c *Classifier) classifyAdd(rest string) []Directive {
	if c.Brackets && strings.HasPrefix(rest, "[") {
		// Attribute grammar is strict (colon + integer) and must run
		// before the free-text bracket note, which matches anything.
		if d, ok := scanAttr(rest, AttrAdd); ok {
			return []Directive{d}
		}
		if entity, text, ok := scanBracketNote(rest); ok && text != "" {
			return []Directive{{Kind: NoteAdd, Path: []string{entity}, Value: text}}
		}
		return nil
	}

	if path, value, ok := scanPathValue(rest); ok {
		return []Directive{{Kind: NoteAdd, Path: path, Value: value}}
	}
	return nil
}

func (c *Classifier) classifyRemove(rest string) []Directive {
	if c.Brackets && strings.HasPrefix(rest, "[") {
		if d, ok := scanAttr(rest, AttrRemove); ok {
			return []Directive{d}
		}
		if entity, text, ok := scanBracketNote(rest); ok {
			if text == "" {
				// Bare `- [entity]` clears the entity subtree.
				return []Directive{{Kind: StateClear, Path: []string{entity}}}
			}
			return []Directive{{Kind: NoteRemove, Path: []string{entity}, Value: text}}
		}
		return nil
	}

	var out []Directive
	if path, ok := scanBarePath(rest); ok {
		out = append(out, Directive{Kind: StateClear, Path: path})
	}
	if path, value, ok := scanPathValue(rest); ok {
		out = append(out, Directive{Kind: NoteRemove, Path: path, Value: value})
	}
	return out
}

// scanAttr matches `[entity] attr : [+]N` where N is a signed integer.
// A missing colon or a non-digit value fails the match.
func scanAttr(s string, kind Kind) (Directive, bool) {
	entity, rest, ok := scanBracket(s)
	if !ok {
		return Directive{}, false
	}

	i := strings.IndexByte(rest, ':')
	if i < 0 {
		return Directive{}, false
	}

	attr := strings.TrimSpace(rest[:i])
	if attr == "" || strings.ContainsRune(attr, ']') {
		return Directive{}, false
	}

	delta, ok := scanInt(strings.TrimSpace(rest[i+1:]))
	if !ok {
		return Directive{}, false
	}

	return Directive{Kind: kind, Path: []string{entity, attr}, Delta: delta}, true
}

// scanBracketNote matches `[entity] trailing text` with no grammar on the
// trailing text at all.
func scanBracketNote(s string) (entity, text string, ok bool) {
	entity, rest, ok := scanBracket(s)
	if !ok {
		return "", "", false
	}
	return entity, strings.TrimSpace(rest), true
}

// scanBracket consumes a leading `[entity]` and returns the remainder.
// The entity name may contain anything except `]` and must be non-empty
// after trimming.
func scanBracket(s string) (entity, rest string, ok bool) {
	if len(s) == 0 || s[0] != '[' {
		return "", "", false
	}
	end := strings.IndexByte(s, ']')
	if end < 0 {
		return "", "", false
	}
	entity = strings.TrimSpace(s[1:end])
	if entity == "" {
		return "", "", false
	}
	return entity, s[end+1:], true
}

// scanPathValue matches `path : value`. The path is everything before the
// first colon, split on whitespace; the value is the trimmed remainder.
// An empty path or a line opening a bracket grammar fails the match.
func scanPathValue(s string) (path []string, value string, ok bool) {
	i := strings.IndexByte(s, ':')
	if i < 0 {
		return nil, "", false
	}

	head := s[:i]
	if strings.ContainsAny(head, "[]") {
		return nil, "", false
	}

	path = strings.Fields(head)
	if len(path) == 0 {
		return nil, "", false
	}
	return path, strings.TrimSpace(s[i+1:]), true
}

// scanBarePath matches a path with no colon anywhere on the line.
func scanBarePath(s string) (path []string, ok bool) {
	if strings.IndexByte(s, ':') >= 0 {
		return nil, false
	}
	if strings.ContainsAny(s, "[]") {
		return nil, false
	}
	path = strings.Fields(s)
	if len(path) == 0 {
		return nil, false
	}
	return path, true
}

// scanInt matches an optional `+`, then an optionally negative run of
// digits, with nothing trailing. This is deliberately narrower than
// strconv.Atoi: only what the grammar allows may match.
func scanInt(s string) (int, bool) {
	if len(s) == 0 {
		return 0, false
	}

	i := 0
	if s[i] == '+' {
		i++
	}
	neg := false
	if i < len(s) && s[i] == '-' {
		neg = true
		i++
	}

	start := i
	n := 0
	for ; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	if i == start {
		return 0, false
	}

	if neg {
		n = -n
	}
	return n, true
}
