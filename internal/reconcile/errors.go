package reconcile

import (
	"errors"
	"fmt"
)

var (
	// ErrCommitFailed is wrapped by every CommitError.
	ErrCommitFailed = errors.New("failed to update cards")

	// ErrCommitInProgress is returned when the draft is touched while a
	// commit is in flight.
	ErrCommitInProgress = errors.New("commit already in progress")

	// ErrNilWriter is returned by New when no CardWriter is supplied.
	ErrNilWriter = errors.New("card writer cannot be nil")
)

// CommitError reports that at least one request of a commit failed.
// It does not say which requests landed; the stored deck must be re-read
// before it is trusted again.
type CommitError struct {
	Requests int
	Err      error
}

// Error implements the error interface.
func (e *CommitError) Error() string {
	return fmt.Sprintf("%s (%d requests): %v", ErrCommitFailed.Error(), e.Requests, e.Err)
}

// Unwrap exposes ErrCommitFailed and the underlying request errors.
func (e *CommitError) Unwrap() []error {
	return []error{ErrCommitFailed, e.Err}
}
