package store

import (
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/asg017/sqlite-vec-go-bindings/ncruces"
	_ "github.com/ncruces/go-sqlite3/driver"
)

// Index is the SQLite-backed session index.
// Thread-safe for concurrent host callbacks.
type Index struct {
	mu sync.RWMutex
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS documents (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    version INTEGER NOT NULL DEFAULT 0,
    line_count INTEGER NOT NULL DEFAULT 0,
    updated_at INTEGER NOT NULL
);

-- Entities derived from the last pass. Replaced wholesale per pass;
-- no history is kept.
CREATE TABLE IF NOT EXISTS entities (
    document_id TEXT NOT NULL,
    name TEXT NOT NULL,
    source TEXT NOT NULL,
    PRIMARY KEY (document_id, name)
);

CREATE INDEX IF NOT EXISTS idx_entities_document ON entities(document_id);

-- Prose mention counts from the last pass.
CREATE TABLE IF NOT EXISTS mentions (
    document_id TEXT NOT NULL,
    entity TEXT NOT NULL,
    count INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (document_id, entity)
);

CREATE INDEX IF NOT EXISTS idx_mentions_document ON mentions(document_id);
`

// NewIndex creates a new in-memory index.
func NewIndex() (*Index, error) {
	return NewIndexWithDSN(":memory:")
}

// NewIndexWithDSN creates an index with a specific data source name.
func NewIndexWithDSN(dsn string) (*Index, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Index{db: db}, nil
}

// Close closes the database connection.
func (x *Index) Close() error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.db != nil {
		return x.db.Close()
	}
	return nil
}

// UpsertDocument inserts or replaces a document row.
func (x *Index) UpsertDocument(doc *DocumentRow) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	_, err := x.db.Exec(`
		INSERT INTO documents (id, name, version, line_count, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			version = excluded.version,
			line_count = excluded.line_count,
			updated_at = excluded.updated_at
	`, doc.ID, doc.Name, doc.Version, doc.LineCount, doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert document %s: %w", doc.ID, err)
	}
	return nil
}

// DeleteDocument removes a document and its derived rows.
func (x *Index) DeleteDocument(id string) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	tx, err := x.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, q := range []string{
		`DELETE FROM mentions WHERE document_id = ?`,
		`DELETE FROM entities WHERE document_id = ?`,
		`DELETE FROM documents WHERE id = ?`,
	} {
		if _, err := tx.Exec(q, id); err != nil {
			return fmt.Errorf("delete document %s: %w", id, err)
		}
	}
	return tx.Commit()
}

// ReplaceDerived swaps in the derived rows for a document in one
// transaction. Called once per recompute pass.
func (x *Index) ReplaceDerived(docID string, entities []EntityRow, mentionRows []MentionRow) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	tx, err := x.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM entities WHERE document_id = ?`, docID); err != nil {
		return fmt.Errorf("clear entities for %s: %w", docID, err)
	}
	if _, err := tx.Exec(`DELETE FROM mentions WHERE document_id = ?`, docID); err != nil {
		return fmt.Errorf("clear mentions for %s: %w", docID, err)
	}

	for _, e := range entities {
		if _, err := tx.Exec(`
			INSERT INTO entities (document_id, name, source) VALUES (?, ?, ?)
			ON CONFLICT(document_id, name) DO UPDATE SET source = excluded.source
		`, docID, e.Name, e.Source); err != nil {
			return fmt.Errorf("insert entity %s: %w", e.Name, err)
		}
	}

	for _, m := range mentionRows {
		if _, err := tx.Exec(`
			INSERT INTO mentions (document_id, entity, count) VALUES (?, ?, ?)
			ON CONFLICT(document_id, entity) DO UPDATE SET count = excluded.count
		`, docID, m.Entity, m.Count); err != nil {
			return fmt.Errorf("insert mention %s: %w", m.Entity, err)
		}
	}

	return tx.Commit()
}

// GetDocument returns a document row, or nil if absent.
func (x *Index) GetDocument(id string) (*DocumentRow, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	var doc DocumentRow
	err := x.db.QueryRow(`
		SELECT id, name, version, line_count, updated_at
		FROM documents WHERE id = ?
	`, id).Scan(&doc.ID, &doc.Name, &doc.Version, &doc.LineCount, &doc.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// ListDocuments returns all documents ordered by name.
func (x *Index) ListDocuments() ([]DocumentRow, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	rows, err := x.db.Query(`
		SELECT id, name, version, line_count, updated_at
		FROM documents ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DocumentRow
	for rows.Next() {
		var doc DocumentRow
		if err := rows.Scan(&doc.ID, &doc.Name, &doc.Version, &doc.LineCount, &doc.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// ListEntities returns a document's entities ordered by name.
func (x *Index) ListEntities(docID string) ([]EntityRow, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	rows, err := x.db.Query(`
		SELECT document_id, name, source
		FROM entities WHERE document_id = ? ORDER BY name
	`, docID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EntityRow
	for rows.Next() {
		var e EntityRow
		if err := rows.Scan(&e.DocumentID, &e.Name, &e.Source); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// MentionCounts returns a document's mention counts, highest first.
func (x *Index) MentionCounts(docID string) ([]MentionRow, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	rows, err := x.db.Query(`
		SELECT document_id, entity, count
		FROM mentions WHERE document_id = ? ORDER BY count DESC, entity
	`, docID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MentionRow
	for rows.Next() {
		var m MentionRow
		if err := rows.Scan(&m.DocumentID, &m.Entity, &m.Count); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
