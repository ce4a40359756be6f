// Package server provides the HTTP REST API for candidate ingestion, summaries and
// the aggregated dataset.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/talent-hub/internal/ingestion"
	"github.com/jonathan/talent-hub/internal/store"
)

// ErrBadRequest indicates a request body or parameter that could not be parsed
type ErrBadRequest struct {
	Field   string
	Message string
}

func (e *ErrBadRequest) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid request: %s", e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		badRequest *ErrBadRequest
		missing    *ingestion.MissingFieldsError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &badRequest), errors.As(err, &missing):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	default:
		// persistence, aggregation and prompt config failures
		return http.StatusInternalServerError
	}
}
