package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidResume rejects a create call with an empty or unusable
	// resume. Length limits are enforced at the HTTP boundary.
	ErrInvalidResume = errors.New("resume text is empty or invalid")

	// ErrSessionNotFound covers both unknown and expired session ids.
	ErrSessionNotFound = errors.New("session not found")

	// ErrNotOwner means the session exists but belongs to someone else.
	// Boundaries should collapse this with ErrSessionNotFound in responses
	// to avoid leaking session existence.
	ErrNotOwner = errors.New("session owned by another user")
)

// ModelErrorKind discriminates model-collaborator failures.
type ModelErrorKind string

const (
	// ModelErrContextLength means the message sequence exceeded the model's
	// input budget. Absorbed by the orchestrator's single truncate-and-retry;
	// only a second failure reaches the caller.
	ModelErrContextLength ModelErrorKind = "context_length_exceeded"

	ModelErrOther ModelErrorKind = "other"
)

// ModelError wraps any failure of the completion collaborator, including
// timeouts and empty responses.
type ModelError struct {
	Kind ModelErrorKind
	Err  error
}

func (e *ModelError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("model invocation failed (%s)", e.Kind)
	}
	return fmt.Sprintf("model invocation failed (%s): %v", e.Kind, e.Err)
}

func (e *ModelError) Unwrap() error { return e.Err }

// IsContextLengthExceeded reports whether err is a context-window overflow.
func IsContextLengthExceeded(err error) bool {
	var me *ModelError
	return errors.As(err, &me) && me.Kind == ModelErrContextLength
}
