package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("document not found")

// QueryError is returned when the store answers a statement with a non-success
// status. Body holds the raw error body from the store.
type QueryError struct {
	StatusCode int
	Body       string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query failed with status %d: %s", e.StatusCode, e.Body)
}

// DuplicateKeyError is returned when an insert collides with an existing document.
type DuplicateKeyError struct {
	Key   string
	Cause error
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("document %s already exists", e.Key)
}

func (e *DuplicateKeyError) Unwrap() error {
	return e.Cause
}
