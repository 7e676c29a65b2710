// Package store provides an in-memory SQLite index of tracker sessions.
// After each recompute pass the host records the document and its derived
// entities and mention counts here, so it can answer ad-hoc queries
// without re-walking the trees. Nothing survives the process.
package store

// DocumentRow describes one tracked document.
type DocumentRow struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Version   int64  `json:"version"`
	LineCount int    `json:"lineCount"`
	UpdatedAt int64  `json:"updatedAt"`
}

// Entity sources.
const (
	SourceDirective = "directive" // named by a notation line
	SourceCandidate = "candidate" // promoted from prose
)

// EntityRow is an entity derived from the last pass over a document.
type EntityRow struct {
	DocumentID string `json:"documentId"`
	Name       string `json:"name"`
	Source     string `json:"source"`
}

// MentionRow is a per-entity prose mention count from the last pass.
type MentionRow struct {
	DocumentID string `json:"documentId"`
	Entity     string `json:"entity"`
	Count      int    `json:"count"`
}
