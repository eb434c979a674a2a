package ledger

import (
	"errors"
	"fmt"
)

// Error represents a failure detected by a ledger operation.
//
// A failed operation never reports changed=false as a stand-in for the
// error; callers always see the failure and decide whether to retry the
// whole observation or drop it. The ledger itself never retries.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Product, StoreID and Location identify the affected triple,
	// when the failure is triple-scoped.
	Product  string
	StoreID  int64
	Location string

	// Err is the underlying cause.
	Err error
}

// ErrorCode categorizes ledger errors.
type ErrorCode string

const (
	// ErrCodeStorageUnavailable indicates the underlying store could not
	// be reached or the operation failed at the storage layer.
	ErrCodeStorageUnavailable ErrorCode = "STORAGE_UNAVAILABLE"

	// ErrCodeInternalConsistency indicates an invariant the ledger relies
	// on was violated (e.g. a product referenced by recorded samples no
	// longer resolves). This means ledger corruption or a concurrency
	// control failure, and the operation aborts loudly.
	ErrCodeInternalConsistency ErrorCode = "INTERNAL_CONSISTENCY"
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Product != "" {
		return fmt.Sprintf("%s: %s (product=%q, store=%d, location=%q)",
			e.Code, e.Message, e.Product, e.StoreID, e.Location)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsStorageUnavailable reports whether err is a ledger error with code
// STORAGE_UNAVAILABLE.
func IsStorageUnavailable(err error) bool {
	var le *Error
	return errors.As(err, &le) && le.Code == ErrCodeStorageUnavailable
}

// IsInternalConsistency reports whether err is a ledger error with code
// INTERNAL_CONSISTENCY.
func IsInternalConsistency(err error) bool {
	var le *Error
	return errors.As(err, &le) && le.Code == ErrCodeInternalConsistency
}
