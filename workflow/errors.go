// Package workflow holds the approval state machine: which roles a
// pending application must pass through for its type, who may act on it,
// and how a decision moves it forward. It is pure — persistence and
// notification happen around it, never inside it.
package workflow

import "errors"

var (
	// ErrForbidden: the actor may not perform this action on this
	// application (wrong role, wrong level, not the owner).
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidTransition: the application is already terminal or the
	// state moved under the caller (lost CAS race). Distinct from
	// ErrForbidden so clients can tell "not yours" from "already decided".
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrValidation covers malformed decision input, e.g. a rejection
	// reason below the minimum length.
	ErrValidation = errors.New("validation failed")
)
