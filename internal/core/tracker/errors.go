package tracker

import (
	"errors"
	"fmt"
)

var (
	// ErrParse indicates user input that does not parse as a timestamp.
	ErrParse = errors.New("parse error")
	// ErrNoActiveDocument indicates a command that needs an open document ran without one.
	ErrNoActiveDocument = errors.New("no active document")
	// ErrPersist indicates settings or metadata could not be written.
	ErrPersist = errors.New("persistence failed")
)

// ParseError describes rejected input.
type ParseError struct {
	Input string
	Err   error
}

func (err *ParseError) Error() string {
	return fmt.Sprintf("parse %q: %v", err.Input, err.Err)
}

// Unwrap exposes both ErrParse and the underlying cause.
func (err *ParseError) Unwrap() []error {
	return []error{ErrParse, err.Err}
}

// PersistError wraps a write that failed after its retry.
type PersistError struct {
	Target string
	Err    error
}

func (err *PersistError) Error() string {
	return fmt.Sprintf("persist %s: %v", err.Target, err.Err)
}

func (err *PersistError) Unwrap() []error {
	return []error{ErrPersist, err.Err}
}
