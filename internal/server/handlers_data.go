package server

import (
	"net/http"

	"github.com/jonathan/talent-hub/internal/server/middleware"
	"go.uber.org/zap"
)

// handleData returns every skill, candidate, candidate skill, ad and ad skill
func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	if s.aggregator == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Data store is not configured")
		return
	}

	dataset, err := s.aggregator.Fetch(r.Context())
	if err != nil {
		s.log.Error("error fetching data",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.Error(err),
		)
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, dataset)
}
