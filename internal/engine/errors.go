package engine

import (
	"errors"
	"fmt"

	"collections-assign-backend/internal/eligibility"
)

// Error taxonomy of the assignment engine. Callers branch on these with
// errors.Is; none of them is ever swallowed internally.
var (
	// ErrNotFound: the ticket or resource does not exist.
	ErrNotFound = errors.New("not found")
	// ErrTerminal: the ticket is finalized and its assignment is immutable.
	ErrTerminal = errors.New("ticket already finalized")
	// ErrIneligibleResource: the agent may not take this ticket. Always
	// wrapped in an IneligibleError carrying the specific reason.
	ErrIneligibleResource = errors.New("resource not eligible")
	// ErrInvalidArgument: malformed input, e.g. an unparseable date or a
	// transfer with identical source and destination.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNothingToTransfer: the source agent has no open tickets. Informational,
	// not a fault.
	ErrNothingToTransfer = errors.New("nothing to transfer")
	// ErrTimeout: the caller's deadline expired before the commit point. The
	// operation left no observable state change and is safe to retry.
	ErrTimeout = errors.New("operation timed out")
	// ErrStoreUnavailable: the data store could not be reached. Fatal for the
	// call, not the process; the engine performs at most one attempt.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// IneligibleError reports which agent failed the eligibility rules and why.
type IneligibleError struct {
	ResourceID string
	Reason     eligibility.Reason
}

func (e *IneligibleError) Error() string {
	return fmt.Sprintf("resource %s not eligible: %s", e.ResourceID, e.Reason)
}

func (e *IneligibleError) Unwrap() error {
	return ErrIneligibleResource
}
