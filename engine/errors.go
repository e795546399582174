/*
errors.go - Centralized error types for the advisory core

PURPOSE:
  All error types in one place. The taxonomy mirrors how failures degrade:
  only validation failures reject a whole batch; everything else degrades a
  single field or record.

ERROR CATEGORIES:
  1. Validation errors - missing required columns, reject the batch
  2. Scoring errors    - external model unavailable, degrade the record
  3. Lookup errors     - missing sessions and the like

SEE ALSO:
  - recommend.go: Degrades lots on scoring errors
  - leaderboard: Skips rows on scoring errors during ingest
*/
package engine

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrMissingColumns is returned when a batch lacks required columns.
	// This is the only batch-fatal error in the core.
	ErrMissingColumns = errors.New("missing required columns")

	// ErrScoringUnavailable is returned when an external scoring model call
	// fails. The affected record is excluded from scored output; the batch
	// continues.
	ErrScoringUnavailable = errors.New("scoring model unavailable")

	// ErrEmptyBatch is returned when a batch contains no records at all.
	ErrEmptyBatch = errors.New("empty batch")

	// ErrSessionNotFound is returned when an upload session id is unknown
	// or has expired.
	ErrSessionNotFound = errors.New("upload session not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ValidationError reports the missing columns of a rejected batch.
type ValidationError struct {
	Dataset string
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: missing required columns: %s", e.Dataset, strings.Join(e.Missing, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrMissingColumns }

// ScoringError wraps a failed external model call with the record it
// affected.
type ScoringError struct {
	Subject string // product id, store location, or series key
	Err     error
}

func (e *ScoringError) Error() string {
	return fmt.Sprintf("scoring %s: %v", e.Subject, e.Err)
}

func (e *ScoringError) Unwrap() error { return ErrScoringUnavailable }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrMissingColumns) || errors.Is(err, ErrEmptyBatch)
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSessionNotFound)
}
