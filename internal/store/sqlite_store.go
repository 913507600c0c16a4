// Package store provides SQLite-backed persistence for the tag catalog.
// Uses ncruces/go-sqlite3/driver which provides a database/sql interface.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/asg017/sqlite-vec-go-bindings/ncruces"
	_ "github.com/ncruces/go-sqlite3/driver"
)

var _ TagStorer = (*SQLiteStore)(nil)

// SQLiteStore is the SQLite-backed tag catalog.
// Thread-safe for concurrent WASM callbacks.
type SQLiteStore struct {
	mu sync.RWMutex
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS memo_tags (
    memo_id TEXT NOT NULL,
    tag TEXT NOT NULL,
    updated_at INTEGER NOT NULL,
    PRIMARY KEY (memo_id, tag)
);

CREATE INDEX IF NOT EXISTS idx_memo_tags_tag ON memo_tags(tag);
`

// NewSQLiteStore creates a new in-memory SQLite store.
func NewSQLiteStore() (*SQLiteStore, error) {
	return NewSQLiteStoreWithDSN(":memory:")
}

// NewSQLiteStoreWithDSN creates a store with a specific data source name.
// Use ":memory:" for in-memory or a file path for persistent storage.
func NewSQLiteStoreWithDSN(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Every :memory: connection is its own database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// =============================================================================
// Memo tags
// =============================================================================

// SetMemoTags replaces the tag set of one memo. An empty set removes it.
func (s *SQLiteStore) SetMemoTags(mt *MemoTags) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := setMemoTagsTx(tx, mt); err != nil {
		return err
	}
	return tx.Commit()
}

// Hydrate bulk-loads memo tag sets in one transaction.
// Called once at startup with every memo.
func (s *SQLiteStore) Hydrate(all []*MemoTags) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	for _, mt := range all {
		if err := setMemoTagsTx(tx, mt); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(all), nil
}

func setMemoTagsTx(tx *sql.Tx, mt *MemoTags) error {
	if mt.MemoID == "" {
		return fmt.Errorf("memo id is required")
	}
	if mt.UpdatedAt == 0 {
		mt.UpdatedAt = time.Now().Unix()
	}

	if _, err := tx.Exec(`DELETE FROM memo_tags WHERE memo_id = ?`, mt.MemoID); err != nil {
		return fmt.Errorf("clear tags for %s: %w", mt.MemoID, err)
	}
	for _, tag := range mt.Tags {
		if tag == "" {
			continue
		}
		if _, err := tx.Exec(`
			INSERT OR IGNORE INTO memo_tags (memo_id, tag, updated_at) VALUES (?, ?, ?)
		`, mt.MemoID, tag, mt.UpdatedAt); err != nil {
			return fmt.Errorf("insert tag %q for %s: %w", tag, mt.MemoID, err)
		}
	}
	return nil
}

// DeleteMemo forgets every tag of a memo.
func (s *SQLiteStore) DeleteMemo(memoID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM memo_tags WHERE memo_id = ?`, memoID)
	return err
}

// =============================================================================
// Tag queries
// =============================================================================

// ListTags returns every tag with its memo count, most used first.
func (s *SQLiteStore) ListTags() ([]Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT tag, COUNT(*) AS n FROM memo_tags
		GROUP BY tag
		ORDER BY n DESC, tag ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []Tag
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.Name, &t.Count); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// TagNames returns ListTags without counts.
func (s *SQLiteStore) TagNames() ([]string, error) {
	tags, err := s.ListTags()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}
	return names, nil
}

// CountTags returns the number of distinct tags.
func (s *SQLiteStore) CountTags() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRow(`SELECT COUNT(DISTINCT tag) FROM memo_tags`).Scan(&count)
	return count, err
}

// =============================================================================
// Export/Import
// =============================================================================

// Export serializes the catalog as JSON memo tag sets.
func (s *SQLiteStore) Export() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT memo_id, tag, updated_at FROM memo_tags ORDER BY memo_id, tag
	`)
	if err != nil {
		return nil, fmt.Errorf("export memo tags: %w", err)
	}
	defer rows.Close()

	var data []*MemoTags
	var cur *MemoTags
	for rows.Next() {
		var memoID, tag string
		var updatedAt int64
		if err := rows.Scan(&memoID, &tag, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan memo tag: %w", err)
		}
		if cur == nil || cur.MemoID != memoID {
			cur = &MemoTags{MemoID: memoID, UpdatedAt: updatedAt}
			data = append(data, cur)
		}
		cur.Tags = append(cur.Tags, tag)
		cur.UpdatedAt = max(cur.UpdatedAt, updatedAt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("export memo tags: %w", err)
	}

	return json.Marshal(data)
}

// Import replaces the catalog with an Export snapshot.
func (s *SQLiteStore) Import(data []byte) error {
	var all []*MemoTags
	if err := json.Unmarshal(data, &all); err != nil {
		return fmt.Errorf("decode import: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM memo_tags`); err != nil {
		return fmt.Errorf("clear memo tags: %w", err)
	}
	for _, mt := range all {
		if err := setMemoTagsTx(tx, mt); err != nil {
			return err
		}
	}
	return tx.Commit()
}
