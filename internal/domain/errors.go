package domain

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrKeyNotFound   = errors.New("key not found")
	ErrCorruptLedger = errors.New("stored ledger is not a collection")

	// Writer validation, in the order they are checked
	ErrNameRequired            = errors.New("name is required")
	ErrAmountNotNumeric        = errors.New("amount must be a number")
	ErrAmountNotPositive       = errors.New("amount must be positive")
	ErrTransactionTypeRequired = errors.New("transaction type is required")
	ErrCategoryRequired        = errors.New("category is required")
	ErrUnknownCategory         = errors.New("category not found")
)

// ValidationError reports a rejected submission. Err is one of the writer
// validation sentinels.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// StorageError wraps a failed read or write against the blob store.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("ledger %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// MalformedRecordError describes a stored entry the aggregator could not
// fully trust. It is collected, never returned from a load.
type MalformedRecordError struct {
	Index  int
	ID     string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("record %d (%s): %s", e.Index, e.ID, e.Reason)
	}
	return fmt.Sprintf("record %d: %s", e.Index, e.Reason)
}

// IsValidationError reports whether err is a rejected submission.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsStorageError reports whether err came from the blob store.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
