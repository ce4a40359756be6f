package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/talent-hub/internal/server/middleware"
	"github.com/jonathan/talent-hub/internal/summary"
	"github.com/jonathan/talent-hub/internal/types"
	"go.uber.org/zap"
)

const promptUnavailableMessage = "Prompt config could not be loaded"

// handleSummary generates a summary for the posted candidate data. Backend
// failures are reported inline in the summary text with status 200.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	var req types.SummaryRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	candidateData := req.Text()
	if candidateData == "" {
		s.errorResponse(w, http.StatusBadRequest, "No candidate data provided")
		return
	}

	if s.summarizer == nil || !s.summarizer.Available() {
		s.errorResponse(w, http.StatusInternalServerError, promptUnavailableMessage)
		return
	}

	text, err := s.summarizer.Generate(r.Context(), candidateData)
	if errors.Is(err, summary.ErrConfigUnavailable) {
		s.errorResponse(w, http.StatusInternalServerError, promptUnavailableMessage)
		return
	}
	if err != nil {
		s.log.Warn("summary generation failed",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.Error(err),
		)
	}

	s.jsonResponse(w, http.StatusOK, types.SummaryResponse{Summary: summary.InlineText(text, err)})
}
