package multisig

import (
	"github.com/iov-one/quorum/errors"
)

// Error codes
// multisig takes 1030-1039
var (
	// ErrInvalidDestination is returned when a proposal names an empty
	// or malformed destination.
	ErrInvalidDestination = errors.Register(1030, "invalid destination")

	// ErrAlreadyExecuted is returned on any mutating call against a
	// proposal that reached its terminal state.
	ErrAlreadyExecuted = errors.Register(1031, "already executed")

	// ErrAlreadyConfirmed is returned when a principal confirms a
	// proposal it already stands behind.
	ErrAlreadyConfirmed = errors.Register(1032, "already confirmed")

	// ErrNotConfirmed is returned when a principal revokes a
	// confirmation it never gave.
	ErrNotConfirmed = errors.Register(1033, "not confirmed")

	// ErrInsufficientConfirmations is returned when execution is
	// requested below the quorum.
	ErrInsufficientConfirmations = errors.Register(1034, "insufficient confirmations")

	// ErrInvalidQuorum is returned when a reconfiguration requests a
	// threshold outside [1, number of principals].
	ErrInvalidQuorum = errors.Register(1035, "invalid quorum")

	// ErrExecutionFailed is returned when the invoker reported failure.
	// The proposal stays pending with its confirmations intact, so the
	// execution may be retried.
	ErrExecutionFailed = errors.Register(1036, "execution failed")
)
