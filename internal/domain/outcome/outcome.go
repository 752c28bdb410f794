// internal/domain/outcome/outcome.go
package outcome

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the state services. Handlers and notifiers
// branch on these instead of inspecting error strings.
var (
	// ErrAuthRequired is returned when a mutating operation is invoked
	// without an authenticated user. No state change has happened.
	ErrAuthRequired = errors.New("authentication required")

	// ErrConflict marks a uniqueness violation that is benign from the
	// user's point of view (e.g. voting helpful twice).
	ErrConflict = errors.New("already done")

	// ErrNotFound is returned when the referenced row does not exist or
	// does not belong to the caller.
	ErrNotFound = errors.New("not found")
)

// RemoteError wraps a failed call against the backing store. The local
// cache keeps its pre-failure snapshot when one of these is returned.
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Remote wraps err as a RemoteError for the given operation.
func Remote(op string, err error) error {
	return &RemoteError{Op: op, Err: err}
}

// IsRemote reports whether err is (or wraps) a RemoteError.
func IsRemote(err error) bool {
	var re *RemoteError
	return errors.As(err, &re)
}

// ReconciliationError marks the partial failure of a two-step operation:
// the first step committed, the second failed, and nothing was rolled
// back. A later full re-fetch or cleanup job repairs the leftover row.
type ReconciliationError struct {
	Op  string
	Err error
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("%s needs reconciliation: %v", e.Op, e.Err)
}

func (e *ReconciliationError) Unwrap() error {
	return e.Err
}

// NeedsReconciliation wraps err as a ReconciliationError for op.
func NeedsReconciliation(op string, err error) error {
	return &ReconciliationError{Op: op, Err: err}
}

// IsReconciliation reports whether err marks a partial saga failure.
func IsReconciliation(err error) bool {
	var re *ReconciliationError
	return errors.As(err, &re)
}
