// Package errors defines the error taxonomy for settings operations.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by settings operations. Callers branch on these
// with errors.Is; the underlying cause is preserved through wrapping.
var (
	// ErrPersistence indicates a remote settings-store write failed.
	ErrPersistence = errors.New("settings: persistence failed")

	// ErrPermissionBlocked indicates the OS permission was previously denied
	// permanently and cannot be re-requested in-app.
	ErrPermissionBlocked = errors.New("settings: permission blocked")

	// ErrPermissionDenied indicates the user declined the OS permission prompt.
	ErrPermissionDenied = errors.New("settings: permission denied")

	// ErrValidationFailed indicates a password re-validation check failed.
	ErrValidationFailed = errors.New("settings: password validation failed")

	// ErrNoPendingReset indicates an OTP reset decision was requested while
	// no reset timer is active on the account.
	ErrNoPendingReset = errors.New("settings: no pending otp reset")

	// ErrIntrinsicAsset indicates an attempt to edit the denomination of an
	// asset that ships with the app and is not independently configurable.
	ErrIntrinsicAsset = errors.New("settings: intrinsic asset denomination is fixed")

	// ErrNoSession indicates an operation was invoked without a logged-in account.
	ErrNoSession = errors.New("settings: no active session")
)

// Persistence wraps a store failure for the given settings field.
func Persistence(field string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrPersistence, field, err)
}

// ItemResult records the outcome of one item in a bulk operation.
type ItemResult struct {
	ID  string
	Err error
}

// PartialBulkError reports a bulk operation in which some items failed.
// Successful items are not rolled back.
type PartialBulkError struct {
	Op      string
	Results []ItemResult
}

// Error implements the error interface.
func (e *PartialBulkError) Error() string {
	var failed []string
	for _, r := range e.Results {
		if r.Err != nil {
			failed = append(failed, r.ID)
		}
	}
	return fmt.Sprintf("%s: %d of %d items failed: %s", e.Op, len(failed), len(e.Results), strings.Join(failed, ", "))
}

// FailedCount returns the number of failed items.
func (e *PartialBulkError) FailedCount() int {
	n := 0
	for _, r := range e.Results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
