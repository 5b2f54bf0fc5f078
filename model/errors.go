package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotOwner        = errors.New("caller does not manage this team")
	ErrNotCommissioner = errors.New("only the commissioner can do that")
	ErrUnknownManager  = errors.New("no manager with that identity")
)

// ValidationError is returned for malformed or out of range input. Nothing has
// been changed when it is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// QuotaExceededError means a team already holds as many keepers (or NA
// keepers) as the league allows.
type QuotaExceededError struct {
	Status  KeeperStatus
	Limit   int
	Current int
}

func (e *QuotaExceededError) Error() string {
	if e.Status == STATUS_KEEPING_NA {
		return fmt.Sprintf("NA keeper limit reached (%d of %d)", e.Current, e.Limit)
	}
	return fmt.Sprintf("keeper limit reached (%d of %d)", e.Current, e.Limit)
}

// AmbiguousMatchError is reported when a name lookup against an external source
// finds more than one plausible candidate.
type AmbiguousMatchError struct {
	Name       string
	Candidates []string
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("ambiguous match for '%s': %s", e.Name, strings.Join(e.Candidates, ", "))
}

// TransientWriteError wraps a failed write during a batch job. Batches record
// it and move on to the next player.
type TransientWriteError struct {
	Subject string
	Err     error
}

func (e *TransientWriteError) Error() string {
	return fmt.Sprintf("error writing %s: %v", e.Subject, e.Err)
}

func (e *TransientWriteError) Unwrap() error {
	return e.Err
}
