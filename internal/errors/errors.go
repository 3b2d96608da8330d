// Package errors provides standardized domain errors that express business intent
// rather than infrastructure details. These errors should be used by use cases
// and mapped to appropriate HTTP status codes by handlers.
package errors

import (
	"errors"
	"fmt"
)

// Standard domain errors that can be used across all domain modules.
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a conflict with existing data (e.g., duplicate key).
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates the input data is invalid or fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates a missing or incorrect credential.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the actor does not own the resource it tried to touch.
	ErrForbidden = errors.New("forbidden")

	// ErrGone indicates the resource existed but reached a terminal state
	// (expired, revoked or exhausted).
	ErrGone = errors.New("gone")

	// ErrTransient indicates a storage failure that rolled back cleanly and is safe to retry.
	ErrTransient = errors.New("transient storage error")

	// ErrUpstreamUnavailable indicates that no upstream provider could answer.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// New creates a new error with the given message.
// This is a convenience wrapper around errors.New for consistency.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
// Use this to add context at each layer without losing the original error type.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is like Wrap but formats the message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// CodedError is a domain error that carries a stable machine-readable code and a
// message safe to show to API clients.
type CodedError struct {
	Code    string
	Message string
	err     error
}

// Coded wraps a sentinel with a client-facing code and message.
func Coded(sentinel error, code, message string) *CodedError {
	return &CodedError{Code: code, Message: message, err: sentinel}
}

func (e *CodedError) Error() string {
	return fmt.Sprintf("%s: %v", e.Message, e.err)
}

func (e *CodedError) Unwrap() error {
	return e.err
}

// Transient marks err as a retryable storage failure unless it already carries
// a domain sentinel. Domain errors raised inside a transaction keep their meaning.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	for _, sentinel := range []error{
		ErrNotFound, ErrConflict, ErrInvalidInput, ErrUnauthorized, ErrForbidden, ErrGone,
		ErrTransient,
	} {
		if errors.Is(err, sentinel) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", ErrTransient, err)
}

// Is reports whether any error in err's tree matches target.
// This is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
// This is a convenience wrapper around errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}
