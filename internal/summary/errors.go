package summary

import (
	"errors"
	"fmt"
)

// ErrConfigUnavailable is returned when no prompt configuration was loaded at startup.
var ErrConfigUnavailable = errors.New("prompt configuration unavailable")

// GenerationError represents a failed call to the generative-text backend
type GenerationError struct {
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}
