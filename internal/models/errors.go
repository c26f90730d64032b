package models

import (
	"errors"
	"fmt"
)

// ErrNotFound signals a lookup by key or slug that resolved to nothing.
// It is a normal, non-exceptional outcome on detail reads.
var ErrNotFound = errors.New("not found")

// ErrConversionUnavailable signals that no exchange rate exists for a
// currency. Callers must render an unavailable state, never a zero value.
var ErrConversionUnavailable = errors.New("no exchange rate for currency")

// FetchError wraps a failed or timed-out gateway read. Initial catalog
// loads surface it as a retryable error state.
type FetchError struct {
	Collection string
	Err        error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s failed: %v", e.Collection, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError wraps err as a fetch failure for a collection.
func NewFetchError(collection string, err error) *FetchError {
	return &FetchError{Collection: collection, Err: err}
}

// IsFetchError reports whether err is a gateway fetch failure.
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}

// ValidationError aborts a write before any persistence happens.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// NewValidationError builds a validation failure with a formatted message.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is a write validation failure.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
