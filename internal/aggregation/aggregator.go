// Package aggregation reads every collection of the store and merges the results
// into a single dataset.
package aggregation

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/talent-hub/internal/store"
	"github.com/jonathan/talent-hub/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Lister reads all records of a collection.
type Lister interface {
	List(ctx context.Context, collection store.Collection) ([]store.Record, error)
}

// AggregationError reports the first collection read that failed. No partial
// dataset accompanies it.
type AggregationError struct {
	Collection store.Collection
	Cause      error
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("failed to read %s records: %v", e.Collection, e.Cause)
}

func (e *AggregationError) Unwrap() error {
	return e.Cause
}

// Aggregator fetches the five collections concurrently
type Aggregator struct {
	store Lister
	log   *zap.Logger
}

// NewAggregator creates an Aggregator
func NewAggregator(store Lister, log *zap.Logger) *Aggregator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Aggregator{store: store, log: log}
}

// Fetch issues one read per collection. The reads are independent: records written
// while Fetch runs may or may not be included.
func (a *Aggregator) Fetch(ctx context.Context) (*types.Dataset, error) {
	start := time.Now()
	collections := store.Collections()
	results := make([][]store.Record, len(collections))

	g, gCtx := errgroup.WithContext(ctx)
	for i, collection := range collections {
		g.Go(func() error {
			records, err := a.store.List(gCtx, collection)
			if err != nil {
				return &AggregationError{Collection: collection, Cause: err}
			}
			results[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		a.log.Error("aggregation failed", zap.Error(err))
		return nil, err
	}

	dataset := &types.Dataset{
		Skills:          nonNil(results[0]),
		Candidates:      nonNil(results[1]),
		CandidateSkills: nonNil(results[2]),
		Ads:             nonNil(results[3]),
		AdSkills:        nonNil(results[4]),
	}
	a.log.Debug("aggregation finished",
		zap.Int("skills", len(dataset.Skills)),
		zap.Int("candidates", len(dataset.Candidates)),
		zap.Int("candidate_skills", len(dataset.CandidateSkills)),
		zap.Int("ads", len(dataset.Ads)),
		zap.Int("ad_skills", len(dataset.AdSkills)),
		zap.Duration("duration", time.Since(start)),
	)
	return dataset, nil
}

func nonNil(records []store.Record) []store.Record {
	if records == nil {
		return []store.Record{}
	}
	return records
}
