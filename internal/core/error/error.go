package errx

import (
	"errors"
	"fmt"
)

// Kind classifies an error into the closed taxonomy the conversation loop
// understands. Every kind except StoreFailed is recoverable within a turn.
type Kind string

const (
	// MissingParameter means a step executor lacked a required field.
	// Surfaced to the model so it can ask the user; never fatal.
	MissingParameter Kind = "missing_parameter"
	// SearchFailed covers provider errors, empty results and malformed
	// responses from an external search.
	SearchFailed Kind = "search_failed"
	// ModelUnavailable means the language model could not be reached.
	ModelUnavailable Kind = "model_unavailable"
	// ModelTimeout means the language model call exceeded its deadline.
	ModelTimeout Kind = "model_timeout"
	// LoopBoundExceeded means the per-turn tool-cycle cap was hit.
	LoopBoundExceeded Kind = "loop_bound_exceeded"
	// InconsistentState covers corrupted or unexpected conversation state
	// (e.g. a resumed session with a broken history).
	InconsistentState Kind = "inconsistent_state"
	// StoreFailed covers session-store (Redis) faults.
	StoreFailed Kind = "store_failed"
)

const (
	// SystemErrorMessage is a user-facing fallback when internal errors occur.
	SystemErrorMessage = "internal server error"
	// RedisErrorMessage describes session store failures.
	RedisErrorMessage = "session store operation failed"
)

// AppError wraps an underlying error with a Kind and a safe message.
type AppError struct {
	Err     error
	Kind    Kind
	Message string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with the provided kind and safe message.
func New(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

// Newf creates a new AppError with a formatted message.
func Newf(kind Kind, format string, args ...any) *AppError {
	return &AppError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and safe message to an underlying error.
func Wrap(err error, kind Kind, message string) *AppError {
	return &AppError{Err: err, Kind: kind, Message: message}
}

// KindOf returns the Kind carried by err, or the empty string.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Is matches two AppErrors by kind, or falls through to the wrapped chain.
func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok {
		return e.Kind == t.Kind
	}
	return errors.Is(e.Err, target)
}

// As allows casting to AppError or the wrapped error in a chain.
func (e *AppError) As(target any) bool {
	if t, ok := target.(**AppError); ok {
		*t = e
		return true
	}
	return errors.As(e.Err, target)
}
