package service

import "errors"

// Stable error kinds surfaced to callers. Handlers map these to HTTP
// statuses; services wrap them with context via fmt.Errorf("...: %w", ...).
var (
	// ErrNotFound indicates an unknown user, room, or invite token.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument indicates a request value outside its allowed
	// range, such as a bet above the table maximum.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidState indicates a room transition attempted from the wrong
	// status. The transition performs no side effect, ledger calls included.
	ErrInvalidState = errors.New("invalid state")

	// ErrForbidden indicates the actor is not a party to the room or not
	// allowed to perform the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrInsufficientFunds indicates an available balance short of a freeze.
	ErrInsufficientFunds = errors.New("insufficient balance")

	// ErrInsufficientFrozen indicates a frozen balance short of an unfreeze
	// or settlement debit.
	ErrInsufficientFrozen = errors.New("insufficient frozen balance")

	// ErrAlreadyExpired indicates a time window that has already closed.
	ErrAlreadyExpired = errors.New("already expired")

	// ErrUnauthorized indicates an internal-key mismatch.
	ErrUnauthorized = errors.New("unauthorized")
)
