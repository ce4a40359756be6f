package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/jonathan/talent-hub/internal/ingestion"
	"github.com/jonathan/talent-hub/internal/server/middleware"
	"github.com/jonathan/talent-hub/internal/store"
	"github.com/jonathan/talent-hub/internal/types"
	"go.uber.org/zap"
)

// IngestResponse is returned when the candidate was persisted. Warning and Details
// are set when skill extraction failed.
type IngestResponse struct {
	Message string `json:"message,omitempty"`
	Warning string `json:"warning,omitempty"`
	Details string `json:"details,omitempty"`
}

// IngestErrorResponse is returned when the candidate was not persisted
type IngestErrorResponse struct {
	Error   string   `json:"error"`
	Fields  []string `json:"fields,omitempty"`
	Details string   `json:"details,omitempty"`
}

// handleCreateCandidate validates, persists and enriches a new candidate
func (s *Server) handleCreateCandidate(w http.ResponseWriter, r *http.Request) {
	if s.ingester == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Candidate ingestion is not configured")
		return
	}

	// Extraction is unbounded; lift the server write timeout for this request.
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
		s.log.Warn("failed to clear write deadline", zap.Error(err))
	}

	var req types.IngestRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	outcome, err := s.ingester.Ingest(r.Context(), &req)
	if err != nil {
		var (
			missing *ingestion.MissingFieldsError
			persist *ingestion.PersistenceError
		)
		switch {
		case errors.As(err, &missing):
			s.jsonResponse(w, HTTPStatus(err), IngestErrorResponse{
				Error:  "Missing required fields",
				Fields: missing.Fields,
			})
		case errors.As(err, &persist):
			s.jsonResponse(w, HTTPStatus(err), IngestErrorResponse{
				Error:   "Failed to insert candidate to DB",
				Details: persist.Details,
			})
		default:
			s.log.Error("candidate ingestion failed",
				zap.String("request_id", middleware.GetRequestID(r.Context())),
				zap.Error(err),
			)
			s.errorResponse(w, HTTPStatus(err), err.Error())
		}
		return
	}

	if !outcome.Succeeded() {
		s.jsonResponse(w, http.StatusCreated, IngestResponse{
			Warning: "Candidate saved, but skill extraction failed",
			Details: outcome.Details(),
		})
		return
	}

	s.jsonResponse(w, http.StatusOK, IngestResponse{
		Message: "Candidate added and processed successfully",
	})
}

// handleGetCandidate returns a persisted candidate by its ID
func (s *Server) handleGetCandidate(w http.ResponseWriter, r *http.Request) {
	if s.candidates == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Candidate store is not configured")
		return
	}

	// Any non-zero integer is a valid ID, matching what ingestion accepts.
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id == 0 {
		s.errorResponse(w, http.StatusBadRequest, "Invalid candidate ID")
		return
	}

	candidate, err := s.candidates.GetCandidate(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.errorResponse(w, http.StatusNotFound, "Candidate not found")
			return
		}
		s.errorResponse(w, HTTPStatus(err), "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, candidate)
}
