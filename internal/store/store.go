// Package store provides access to the document store holding skills, candidates,
// job ads and their skill links.
package store

import (
	"context"
	"fmt"

	"github.com/jonathan/talent-hub/internal/types"
	"github.com/mitchellh/mapstructure"
)

// Record is a single decoded document.
type Record = types.Record

// Collection names a partition of the document store holding one entity type.
type Collection string

// Collections known to the service.
const (
	CollectionSkill          Collection = "Skill"
	CollectionCandidate      Collection = "Candidate"
	CollectionCandidateSkill Collection = "CandidateSkill"
	CollectionAd             Collection = "Ad"
	CollectionAdSkill        Collection = "AdSkill"
)

// Collections returns every collection in aggregation order.
func Collections() []Collection {
	return []Collection{
		CollectionSkill,
		CollectionCandidate,
		CollectionCandidateSkill,
		CollectionAd,
		CollectionAdSkill,
	}
}

// Store is the read/write surface the service needs from a document store.
type Store interface {
	// InsertCandidate writes the baseline candidate under its document key.
	// It fails if a document with the same key already exists.
	InsertCandidate(ctx context.Context, c types.Candidate) error
	// GetCandidate returns the candidate with the given ID or ErrNotFound.
	GetCandidate(ctx context.Context, id int64) (*types.Candidate, error)
	// List returns every record of a collection. Never nil on success.
	List(ctx context.Context, collection Collection) ([]Record, error)
	// Close releases connections held by the store.
	Close() error
}

// Backend selects a Store implementation.
type Backend string

// Supported backends.
const (
	BackendCouchbase Backend = "couchbase"
	BackendPostgres  Backend = "postgres"
	BackendSQLite    Backend = "sqlite"
)

// Options configures Open.
type Options struct {
	Backend Backend

	// couchbase
	QueryURL string
	User     string
	Password string
	Bucket   string

	// postgres
	DatabaseURL string

	// sqlite
	SQLitePath string
}

// Open connects to the configured backend.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case BackendCouchbase, "":
		return NewCouchbaseStore(NewClient(opts.QueryURL, opts.User, opts.Password, nil), opts.Bucket)
	case BackendPostgres:
		return NewPostgresStore(ctx, opts.DatabaseURL)
	case BackendSQLite:
		return NewSQLiteStore(ctx, opts.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown store backend %q", opts.Backend)
	}
}

// DecodeCandidate converts a candidate document into its typed form.
func DecodeCandidate(record Record) (*types.Candidate, error) {
	var c types.Candidate
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &c,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build candidate decoder: %w", err)
	}
	if err := decoder.Decode(map[string]any(record)); err != nil {
		return nil, fmt.Errorf("failed to decode candidate record: %w", err)
	}
	return &c, nil
}
