// Package ingestion validates a submitted candidate, persists the baseline record
// and triggers skill extraction for it.
package ingestion

import (
	"context"
	"time"

	"github.com/jonathan/talent-hub/internal/extraction"
	"github.com/jonathan/talent-hub/internal/logger"
	"github.com/jonathan/talent-hub/internal/types"
	"go.uber.org/zap"
)

// State is a stage of a single ingestion
type State string

// Ingestion states. Extracted and ExtractionFailed are terminal successes; the
// candidate is persisted in both.
const (
	StateReceived         State = "received"
	StateValidated        State = "validated"
	StatePersisted        State = "persisted"
	StateExtracted        State = "extracted"
	StateExtractionFailed State = "extraction_failed"
)

const logPreviewLimit = 120

// CandidateWriter persists baseline candidate records.
type CandidateWriter interface {
	InsertCandidate(ctx context.Context, c types.Candidate) error
}

// Outcome describes an ingestion that reached a terminal success state.
type Outcome struct {
	CandidateID int64
	State       State
	// Extraction is nil when the extractor could not be run at all.
	Extraction *extraction.Result
	// ExtractionErr is set when the extractor did not run to completion.
	ExtractionErr error
}

// Succeeded reports whether skill extraction completed cleanly.
func (o *Outcome) Succeeded() bool {
	return o.State == StateExtracted
}

// Details returns the extraction diagnostics for a failed extraction.
func (o *Outcome) Details() string {
	if o.Succeeded() {
		return ""
	}
	if o.ExtractionErr != nil {
		return o.ExtractionErr.Error()
	}
	return o.Extraction.Diagnostics()
}

// Orchestrator runs received → validated → persisted → extracted|extraction_failed.
type Orchestrator struct {
	store     CandidateWriter
	extractor extraction.SkillExtractor
	log       *zap.Logger
}

// NewOrchestrator creates an Orchestrator
func NewOrchestrator(store CandidateWriter, extractor extraction.SkillExtractor, log *zap.Logger) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{
		store:     store,
		extractor: extractor,
		log:       log,
	}
}

// Ingest runs a single ingestion. It returns *MissingFieldsError before any write,
// *PersistenceError when the baseline record cannot be stored, and otherwise an
// Outcome. No step is retried.
func (o *Orchestrator) Ingest(ctx context.Context, req *types.IngestRequest) (*Outcome, error) {
	if req == nil {
		req = &types.IngestRequest{}
	}
	o.log.Debug("candidate received", zap.Int64("candidate_id", int64(req.ID)), zap.String("state", string(StateReceived)))

	if missing := req.MissingFields(); len(missing) > 0 {
		o.log.Info("candidate rejected", zap.Strings("missing_fields", missing))
		return nil, &MissingFieldsError{Fields: missing}
	}
	candidate := req.Candidate()
	log := o.log.With(zap.Int64("candidate_id", candidate.ID))
	log.Debug("candidate validated", zap.String("cv_text", logger.Truncate(candidate.CVText, logPreviewLimit)))

	start := time.Now()
	if err := o.store.InsertCandidate(ctx, candidate); err != nil {
		log.Error("failed to persist candidate", zap.Error(err))
		return nil, newPersistenceError(candidate.ID, err)
	}
	log.Info("candidate persisted", zap.String("key", candidate.DocumentKey()))

	outcome := &Outcome{CandidateID: candidate.ID, State: StatePersisted}
	result, err := o.extract(ctx, candidate)
	outcome.Extraction = result

	switch {
	case err != nil:
		outcome.State = StateExtractionFailed
		outcome.ExtractionErr = err
		log.Warn("skill extraction could not run", zap.Error(err))
	case !result.Succeeded():
		outcome.State = StateExtractionFailed
		log.Warn("skill extraction failed",
			zap.Int("exit_code", result.ExitCode),
			zap.String("details", logger.Truncate(result.Diagnostics(), logPreviewLimit)),
		)
	default:
		outcome.State = StateExtracted
	}

	log.Info("candidate ingested",
		zap.String("state", string(outcome.State)),
		zap.Duration("duration", time.Since(start)),
	)
	return outcome, nil
}

func (o *Orchestrator) extract(ctx context.Context, c types.Candidate) (*extraction.Result, error) {
	if o.extractor == nil {
		return nil, &extraction.Error{Message: "no skill extractor configured"}
	}
	return o.extractor.Extract(ctx, c.CVText, c.ID)
}
