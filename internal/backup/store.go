// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package backup

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const dbFile = "catalog.db"

// Store manages the backup catalog SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the catalog database at dir/catalog.db,
// creating the schema if it does not exist.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			uuid TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			path TEXT NOT NULL,
			parent TEXT,
			last_modified TEXT,
			page_count INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS pages (
			doc_uuid TEXT NOT NULL REFERENCES documents(uuid) ON DELETE CASCADE,
			idx INTEGER NOT NULL,
			file TEXT NOT NULL,
			PRIMARY KEY (doc_uuid, idx)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_path ON documents(path)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Rebuild replaces the catalog contents with the given documents in one
// transaction. Rebuilding from the same scan is idempotent.
func (s *Store) Rebuild(ctx context.Context, docs []Document) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{`DELETE FROM pages`, `DELETE FROM documents`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clearing catalog: %w", err)
		}
	}

	for _, d := range docs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO documents (uuid, name, path, parent, last_modified, page_count)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			d.UUID, d.Name, d.Path, d.Parent, d.LastModified.Format(time.RFC3339), len(d.Pages))
		if err != nil {
			return fmt.Errorf("inserting document %s: %w", d.UUID, err)
		}
		for i, file := range d.Pages {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO pages (doc_uuid, idx, file) VALUES (?, ?, ?)`,
				d.UUID, i, file)
			if err != nil {
				return fmt.Errorf("inserting page %d of %s: %w", i, d.UUID, err)
			}
		}
	}

	return tx.Commit()
}

// CatalogEntry is one catalog row returned by List.
type CatalogEntry struct {
	UUID         string
	Name         string
	Path         string
	PageCount    int
	LastModified time.Time
}

// List returns all catalogued documents ordered by display path.
func (s *Store) List(ctx context.Context) ([]CatalogEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT uuid, name, path, last_modified, page_count FROM documents ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var entries []CatalogEntry
	for rows.Next() {
		var e CatalogEntry
		var modified string
		if err := rows.Scan(&e.UUID, &e.Name, &e.Path, &modified, &e.PageCount); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		e.LastModified, _ = time.Parse(time.RFC3339, modified)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
