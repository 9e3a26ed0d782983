package models

import "errors"

// Domain errors returned by the pure model logic. Controllers map these to
// HTTP statuses; everything else bubbles up as a 500.
var (
	// ErrInvalidState means the operation is not legal from the item's
	// current lifecycle state (pledging a funded mission, responding to a
	// settled challenge, bidding on a closed request).
	ErrInvalidState = errors.New("operation not allowed in current state")

	// ErrNotAllowed means the acting user is not the party this operation
	// belongs to (wrong side of a challenge, not the payee of an entry).
	ErrNotAllowed = errors.New("user may not perform this operation")

	// ErrValidation means the input itself is bad (non-positive amount,
	// unknown action).
	ErrValidation = errors.New("invalid input")
)
