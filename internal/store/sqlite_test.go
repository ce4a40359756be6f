package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/jonathan/talent-hub/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "talent_hub.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStore_InsertAndGetCandidate(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	c := types.Candidate{ID: 11, Name: "Ada", Email: "ada@example.com", CVText: "Go, SQL"}
	require.NoError(t, s.InsertCandidate(ctx, c))

	got, err := s.GetCandidate(ctx, 11)
	require.NoError(t, err)
	assert.Equal(t, c, *got)
}

func TestSQLiteStore_InsertCandidate_Duplicate(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	c := types.Candidate{ID: 11, Name: "Ada", Email: "ada@example.com", CVText: "Go"}
	require.NoError(t, s.InsertCandidate(ctx, c))

	err := s.InsertCandidate(ctx, c)
	var dup *DuplicateKeyError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "candidate::11", dup.Key)
}

func TestSQLiteStore_GetCandidate_NotFound(t *testing.T) {
	s := newTestSQLiteStore(t)

	_, err := s.GetCandidate(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStore_List(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	empty, err := s.List(ctx, CollectionSkill)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	require.NoError(t, s.Put(ctx, CollectionSkill, "skill::2", Record{"ID": 2, "SkillName": "SQL"}))
	require.NoError(t, s.Put(ctx, CollectionSkill, "skill::1", Record{"ID": 1, "SkillName": "Go"}))
	require.NoError(t, s.InsertCandidate(ctx, types.Candidate{ID: 1, Name: "Ada", Email: "a@b.c", CVText: "x"}))

	skills, err := s.List(ctx, CollectionSkill)
	require.NoError(t, err)
	require.Len(t, skills, 2)
	assert.Equal(t, "Go", skills[0]["SkillName"])
	assert.Equal(t, "SQL", skills[1]["SkillName"])

	candidates, err := s.List(ctx, CollectionCandidate)
	require.NoError(t, err)
	assert.Len(t, candidates, 1)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, Options{Backend: BackendSQLite, SQLitePath: filepath.Join(t.TempDir(), "open.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	require.NoError(t, s.Close())

	s, err = Open(ctx, Options{Backend: BackendCouchbase, QueryURL: "http://localhost:8093/query/service", Bucket: "hackathon"})
	require.NoError(t, err)
	assert.IsType(t, &CouchbaseStore{}, s)

	_, err = Open(ctx, Options{Backend: BackendPostgres})
	assert.Error(t, err)

	_, err = Open(ctx, Options{Backend: "mongo"})
	assert.Error(t, err)
}
