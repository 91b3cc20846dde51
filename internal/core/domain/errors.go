package domain

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors shared across the orchestrator and the backend client.
// Boundaries map transport-level failures onto these so the dialog layer
// can branch with errors.Is.
var (
	// ErrAuthRejected: the backend no longer accepts the stored token.
	// The sole trigger for local token invalidation.
	ErrAuthRejected = errors.New("authentication rejected")

	// ErrRateLimited: the backend reports the spin resource is busy.
	ErrRateLimited = errors.New("rate limited by backend")

	// ErrOutOfRange: the backend reports the user is outside the venue
	// radius. Revokes the local geo grant.
	ErrOutOfRange = errors.New("outside venue radius")

	// ErrValidationFailed: malformed input rejected before or by the
	// backend. The current wizard step is re-prompted in place.
	ErrValidationFailed = errors.New("validation failed")

	// ErrBackendUnavailable: the backend is unreachable or returned a
	// malformed response. State is left unchanged.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrNotRegistered: login failed because the phone is unknown, so the
	// registration wizard should take over.
	ErrNotRegistered = errors.New("player not registered")
)

// APIError is a club API failure carrying the server-supplied message and,
// for rate limiting, the suggested wait. Kind is one of the sentinels above
// so callers branch with errors.Is.
type APIError struct {
	StatusCode int
	Message    string
	RetryAfter time.Duration
	Kind       error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend: %s (HTTP %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("backend: HTTP %d", e.StatusCode)
}

func (e *APIError) Unwrap() error { return e.Kind }
