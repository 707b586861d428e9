// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Per-line scansion conditions. These are recoverable: the line is
	// excluded from automatic scansion and the corpus run continues.
	ErrUnrecognizedCharacter = errors.New("unrecognized character")
	ErrUnscannable           = errors.New("no valid scansion")
	ErrAmbiguous             = errors.New("multiple valid scansions")
	ErrDepthExceeded         = errors.New("scansion search depth exceeded")

	// Corpus-level warnings.
	ErrDuplicateLocation = errors.New("duplicate line location")

	// ErrInternalConsistency indicates a rule-table defect, for example a
	// resolved scansion whose durations do not total 12.0. It must abort
	// the run rather than emit silently wrong statistics.
	ErrInternalConsistency = errors.New("internal consistency failure")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")

	// Database errors.
	ErrNotFound = errors.New("not found")
)

// LineError attaches a work identifier and location to a per-line condition.
type LineError struct {
	Err      error
	Work     string
	Location string
}

func (e *LineError) Error() string {
	if e.Work != "" {
		return fmt.Sprintf("%s %s: %v", e.Work, e.Location, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Location, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// NewLineError wraps err with the work and location that produced it.
func NewLineError(err error, work, location string) error {
	return &LineError{Err: err, Work: work, Location: location}
}

// IsRecoverable reports whether err is a per-line condition that should
// exclude the line but not abort the corpus run.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrUnrecognizedCharacter) ||
		errors.Is(err, ErrUnscannable) ||
		errors.Is(err, ErrAmbiguous) ||
		errors.Is(err, ErrDepthExceeded) ||
		errors.Is(err, ErrDuplicateLocation)
}
