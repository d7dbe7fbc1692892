package core

import "errors"

// Caller contract violations are the only error class surfaced as hard
// failures: they indicate a bug in the integrating system, not in
// conversational content. Everything originating from the NLU or generation
// boundary is absorbed and degraded gracefully instead.
var (
	// ErrMissingSessionID is returned when a turn is attempted without a
	// session identifier.
	ErrMissingSessionID = errors.New("session id is required")

	// ErrMissingUserID is returned when a turn is attempted without a user
	// identifier.
	ErrMissingUserID = errors.New("user id is required")

	// ErrEmptyMessage is returned when a turn is attempted with no text.
	ErrEmptyMessage = errors.New("message text is required")
)
