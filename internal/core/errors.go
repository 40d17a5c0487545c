package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDocument means an import was rejected and the board left as it was.
	ErrInvalidDocument = errors.New("invalid board document")

	// ErrStorage means the board changed in memory but could not be saved.
	ErrStorage = errors.New("board storage unavailable")

	// ErrInvalidDueDate is returned by ParseDueDate.
	ErrInvalidDueDate = errors.New("due date must be YYYY-MM-DD")
)

// NotFoundError names a list or card an operation could not find. Operations
// treat it as a silent no-op; it is only logged.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}
