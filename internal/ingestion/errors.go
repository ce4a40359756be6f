package ingestion

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/talent-hub/internal/store"
)

// MissingFieldsError is returned when required request fields are absent or empty.
// Nothing has been written when it is returned.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// PersistenceError is returned when the baseline candidate record could not be
// written. Extraction is not attempted.
type PersistenceError struct {
	CandidateID int64
	// Details is the store's raw error body when it returned one.
	Details string
	Cause   error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist candidate %d: %v", e.CandidateID, e.Cause)
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}

func newPersistenceError(id int64, err error) *PersistenceError {
	details := err.Error()
	var queryErr *store.QueryError
	if errors.As(err, &queryErr) && queryErr.Body != "" {
		details = queryErr.Body
	}
	return &PersistenceError{CandidateID: id, Details: details, Cause: err}
}
