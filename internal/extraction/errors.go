package extraction

import "fmt"

// Error represents an extractor run that did not complete
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("skill extraction: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("skill extraction: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
