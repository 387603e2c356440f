package services

import "errors"

// Service-level error taxonomy. Handlers dispatch on these with errors.Is
// and map them to HTTP outcomes; anything else is a storage failure that
// gets a generic message (detail is logged server-side only).
var (
	// ErrInvalidTransition is a lifecycle action attempted from the wrong
	// state, e.g. starting an already-started session.
	ErrInvalidTransition = errors.New("invalid session state transition")

	// ErrForbidden means the actor lacks the role or ownership the action
	// requires.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound means a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is a uniqueness conflict that the operation's contract
	// does not absorb as idempotent success.
	ErrConflict = errors.New("conflict")

	// ErrInvalidRange rejects an inverted or malformed date range.
	ErrInvalidRange = errors.New("invalid date range")
)
