package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/talent-hub/internal/types"
	_ "modernc.org/sqlite"
)

const sqliteDocumentsTable = `CREATE TABLE IF NOT EXISTS documents (
	collection TEXT     NOT NULL,
	doc_key    TEXT     NOT NULL,
	value      TEXT     NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (collection, doc_key)
)`

// SQLiteStore implements Store over an embedded SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path and ensures the documents
// table exists.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is required for the sqlite backend")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	if _, err := db.ExecContext(ctx, sqliteDocumentsTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating documents table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// InsertCandidate implements Store.
func (s *SQLiteStore) InsertCandidate(ctx context.Context, c types.Candidate) error {
	value, err := encodeCandidate(c)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (collection, doc_key, value) VALUES (?, ?, ?)`,
		string(CollectionCandidate), c.DocumentKey(), value,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return &DuplicateKeyError{Key: c.DocumentKey(), Cause: err}
		}
		return fmt.Errorf("inserting candidate %d: %w", c.ID, err)
	}
	return nil
}

// GetCandidate implements Store.
func (s *SQLiteStore) GetCandidate(ctx context.Context, id int64) (*types.Candidate, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM documents WHERE collection = ? AND doc_key = ?`,
		string(CollectionCandidate), types.CandidateKey(id),
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting candidate %d: %w", id, err)
	}

	record, err := decodeDocument([]byte(raw))
	if err != nil {
		return nil, err
	}
	return DecodeCandidate(record)
}

// List implements Store.
func (s *SQLiteStore) List(ctx context.Context, collection Collection) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT value FROM documents WHERE collection = ? ORDER BY doc_key`,
		string(collection),
	)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", collection, err)
	}
	defer func() { _ = rows.Close() }()

	records := make([]Record, 0)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scanning %s document: %w", collection, err)
		}
		record, err := decodeDocument([]byte(raw))
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s: %w", collection, err)
	}
	return records, nil
}

// Put writes an arbitrary document, replacing any existing one with the same key.
// The service itself only writes candidates; Put seeds the catalog collections.
func (s *SQLiteStore) Put(ctx context.Context, collection Collection, key string, record Record) error {
	value, err := encodeRecord(record)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO documents (collection, doc_key, value) VALUES (?, ?, ?)`,
		string(collection), key, value,
	)
	if err != nil {
		return fmt.Errorf("putting %s/%s: %w", collection, key, err)
	}
	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
