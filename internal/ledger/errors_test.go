package ledger

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_MessageFormats(t *testing.T) {
	withTriple := &Error{
		Code:     ErrCodeStorageUnavailable,
		Message:  "append sample",
		Product:  "Widget",
		StoreID:  1,
		Location: "Main St",
	}
	assert.Equal(t,
		`STORAGE_UNAVAILABLE: append sample (product="Widget", store=1, location="Main St")`,
		withTriple.Error())

	bare := &Error{Code: ErrCodeInternalConsistency, Message: "product vanished"}
	assert.Equal(t, "INTERNAL_CONSISTENCY: product vanished", bare.Error())
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("disk on fire")
	err := &Error{Code: ErrCodeStorageUnavailable, Message: "open", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, fmt.Errorf("outer: %w", err), cause)
}

func TestErrorPredicates(t *testing.T) {
	storage := fmt.Errorf("wrapped: %w", &Error{Code: ErrCodeStorageUnavailable, Message: "x"})
	consistency := &Error{Code: ErrCodeInternalConsistency, Message: "y"}

	assert.True(t, IsStorageUnavailable(storage))
	assert.False(t, IsInternalConsistency(storage))

	assert.True(t, IsInternalConsistency(consistency))
	assert.False(t, IsStorageUnavailable(consistency))

	assert.False(t, IsStorageUnavailable(errors.New("plain")))
	assert.False(t, IsStorageUnavailable(nil))
}
