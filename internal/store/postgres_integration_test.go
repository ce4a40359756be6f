//go:build integration

package store

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jonathan/talent-hub/internal/types"
)

func getTestPostgresStore(t *testing.T) *PostgresStore {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	s, err := NewPostgresStore(context.Background(), dsn)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	return s
}

func TestIntegration_PostgresStore_Candidate(t *testing.T) {
	s := getTestPostgresStore(t)
	defer func() { _ = s.Close() }()
	ctx := context.Background()

	id := time.Now().UnixNano() % 1_000_000_000
	c := types.Candidate{ID: id, Name: "Integration", Email: "it@example.com", CVText: "Go"}
	defer func() {
		_, _ = s.pool.Exec(ctx, "DELETE FROM documents WHERE collection = $1 AND doc_key = $2", string(CollectionCandidate), c.DocumentKey())
	}()

	if err := s.InsertCandidate(ctx, c); err != nil {
		t.Fatalf("InsertCandidate failed: %v", err)
	}

	err := s.InsertCandidate(ctx, c)
	var dup *DuplicateKeyError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateKeyError, got %v", err)
	}

	got, err := s.GetCandidate(ctx, id)
	if err != nil {
		t.Fatalf("GetCandidate failed: %v", err)
	}
	if *got != c {
		t.Errorf("GetCandidate = %+v, want %+v", *got, c)
	}

	records, err := s.List(ctx, CollectionCandidate)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) == 0 {
		t.Error("expected at least one candidate record")
	}

	if _, err := s.GetCandidate(ctx, -id); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
