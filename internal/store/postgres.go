package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonathan/talent-hub/internal/types"
)

const postgresDocumentsTable = `CREATE TABLE IF NOT EXISTS documents (
	collection TEXT        NOT NULL,
	doc_key    TEXT        NOT NULL,
	value      JSONB       NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (collection, doc_key)
)`

// uniqueViolation is the SQLSTATE for a primary key collision.
const uniqueViolation = "23505"

// PostgresStore implements Store over a PostgreSQL documents table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to databaseURL and ensures the documents table exists.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL is required for the postgres backend")
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, postgresDocumentsTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create documents table: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// InsertCandidate implements Store.
func (s *PostgresStore) InsertCandidate(ctx context.Context, c types.Candidate) error {
	value, err := encodeCandidate(c)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO documents (collection, doc_key, value) VALUES ($1, $2, $3)`,
		string(CollectionCandidate), c.DocumentKey(), value,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return &DuplicateKeyError{Key: c.DocumentKey(), Cause: err}
		}
		return fmt.Errorf("failed to insert candidate %d: %w", c.ID, err)
	}
	return nil
}

// GetCandidate implements Store.
func (s *PostgresStore) GetCandidate(ctx context.Context, id int64) (*types.Candidate, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT value FROM documents WHERE collection = $1 AND doc_key = $2`,
		string(CollectionCandidate), types.CandidateKey(id),
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get candidate %d: %w", id, err)
	}

	record, err := decodeDocument(raw)
	if err != nil {
		return nil, err
	}
	return DecodeCandidate(record)
}

// List implements Store.
func (s *PostgresStore) List(ctx context.Context, collection Collection) ([]Record, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT value FROM documents WHERE collection = $1 ORDER BY doc_key`,
		string(collection),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan %s document: %w", collection, err)
		}
		record, err := decodeDocument(raw)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", collection, err)
	}
	return records, nil
}

// Close implements Store.
func (s *PostgresStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
