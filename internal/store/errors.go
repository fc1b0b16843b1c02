package store

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTask     = errors.New("invalid task")
	ErrInvalidPriority = errors.New("invalid priority")
	ErrInvalidImport   = errors.New("invalid import")
	ErrPersist         = errors.New("failed to persist tasks")
)

// ValidationError is returned by Add when a required field is missing
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidTask
}

// ImportError is returned when a replacement collection is structurally invalid.
// Index is the offending element, or -1 when the payload as a whole is wrong.
type ImportError struct {
	Index  int
	Reason string
	Err    error
}

func (e *ImportError) Error() string {
	msg := "import failed: " + e.Reason
	if e.Index >= 0 {
		msg = fmt.Sprintf("import failed: task %d: %s", e.Index+1, e.Reason)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ImportError) Is(target error) bool {
	return target == ErrInvalidImport
}

func (e *ImportError) Unwrap() error {
	return e.Err
}
