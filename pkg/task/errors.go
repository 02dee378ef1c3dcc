package task

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyTitle is matched by ValidationErrors for blank titles.
	ErrEmptyTitle = errors.New("title must not be empty")
	// ErrNotFound is matched by every NotFoundError.
	ErrNotFound = errors.New("task not found")
)

// ValidationError rejects user input. No state changes accompany it.
type ValidationError struct {
	Field  string
	Reason error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Reason }

type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task %q not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// PersistenceError reports a failed read or write of the task blob.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// ValidateTitle returns the trimmed title or a ValidationError.
func ValidateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", &ValidationError{Field: "title", Reason: ErrEmptyTitle}
	}
	return title, nil
}
