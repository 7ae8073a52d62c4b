package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrValidation indicates user input was rejected.
	// The action that produced it must leave all state unchanged.
	ErrValidation = errors.New("validation failed")

	// ErrPlayback indicates that neither the audio player nor the
	// default-handler fallback could play a file.
	ErrPlayback = errors.New("playback failed")

	// ErrNoPlayer indicates no audio player command is installed.
	ErrNoPlayer = errors.New("no audio player available")

	// ErrUnsupportedPlatform indicates the operating system has no known
	// player or launcher.
	ErrUnsupportedPlatform = errors.New("unsupported platform")
)

// Validation field names.
const (
	FieldFilePath = "file path"
	FieldInterval = "interval"
)

// ValidationError describes a rejected user input.
// It matches ErrValidation with errors.Is.
type ValidationError struct {
	// Field names the rejected input.
	Field string

	// Value is the input as the user supplied it.
	Value string

	// Reason is a short human-readable explanation.
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// Unwrap allows errors.Is(err, ErrValidation).
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a ValidationError.
func NewValidationError(field, value, reason string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}

// PlaybackError records why both playback mechanisms failed for a file.
// It matches ErrPlayback, and the underlying causes, with errors.Is.
type PlaybackError struct {
	Path     string
	Primary  error
	Fallback error
}

func (e *PlaybackError) Error() string {
	if e.Fallback == nil {
		return fmt.Sprintf("playback failed for %s: %v", e.Path, e.Primary)
	}
	return fmt.Sprintf("playback failed for %s: %v; fallback: %v", e.Path, e.Primary, e.Fallback)
}

// Unwrap exposes ErrPlayback and the non-nil causes.
func (e *PlaybackError) Unwrap() []error {
	errs := []error{ErrPlayback}
	if e.Primary != nil {
		errs = append(errs, e.Primary)
	}
	if e.Fallback != nil {
		errs = append(errs, e.Fallback)
	}
	return errs
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
