package index

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS product_index (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	alias       TEXT NOT NULL UNIQUE,
	document_id TEXT NOT NULL
);`

// SQLiteStore keeps the index in a local SQLite database. Snapshot order is
// insertion order (rowid).
type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init sqlite schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Snapshot(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT alias, document_id FROM product_index ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query index: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Key, &e.DocumentID); err != nil {
			return nil, fmt.Errorf("scan index row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) Put(ctx context.Context, key, documentID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO product_index (alias, document_id) VALUES (?, ?)
		 ON CONFLICT(alias) DO UPDATE SET document_id = excluded.document_id`,
		key, documentID)
	if err != nil {
		return fmt.Errorf("put index entry: %w", err)
	}
	return nil
}
