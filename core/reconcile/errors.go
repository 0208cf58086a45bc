package reconcile

import (
	"errors"
	"fmt"
)

// ErrInvalidSnapshot indicates a snapshot that is empty or could not be parsed.
var ErrInvalidSnapshot = errors.New("snapshot empty or malformed")

// ValidationError describes why a snapshot cannot be used.
type ValidationError struct {
	// Source names the snapshot, if known.
	Source string
	// Message is a short description of the failure.
	Message string
	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	msg := ErrInvalidSnapshot.Error()
	if e.Source != "" {
		msg += " (" + e.Source + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidSnapshot
}
