// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrNoTransactions   = errors.New("payload has no transactions")
	ErrSnapshotNotFound = errors.New("snapshot not found")
	ErrConfigInvalid    = errors.New("invalid configuration")
	ErrUnknownDetailKey = errors.New("unknown detail key")
)

// CaptureError represents a failure to decode a captured activity payload.
type CaptureError struct {
	Source  string
	Message string
	Err     error
}

func (e *CaptureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("capture error [%s]: %s: %v", e.Source, e.Message, e.Err)
	}
	return fmt.Sprintf("capture error [%s]: %s", e.Source, e.Message)
}

func (e *CaptureError) Unwrap() error {
	return e.Err
}

// NewCaptureError creates a new CaptureError.
func NewCaptureError(source, message string, err error) *CaptureError {
	return &CaptureError{
		Source:  source,
		Message: message,
		Err:     err,
	}
}

// StoreError represents a snapshot store failure.
type StoreError struct {
	Operation  string
	SnapshotID string
	Err        error
}

func (e *StoreError) Error() string {
	if e.SnapshotID != "" {
		return fmt.Sprintf("store error [%s] %s: %v", e.Operation, e.SnapshotID, e.Err)
	}
	return fmt.Sprintf("store error [%s]: %v", e.Operation, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError.
func NewStoreError(operation, snapshotID string, err error) *StoreError {
	return &StoreError{
		Operation:  operation,
		SnapshotID: snapshotID,
		Err:        err,
	}
}

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

// Unwrap lets callers match validation failures against ErrConfigInvalid.
func (e *ValidationError) Unwrap() error {
	return ErrConfigInvalid
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
