package scheduler

import "fmt"

// zeroCapacityError signals that the compositor allotted us no presents at
// startup. The owning connection must be torn down.
type zeroCapacityError struct{ allowed int }

func (e zeroCapacityError) Error() string {
	return fmt.Sprintf("compositor reported %d presents allowed at startup", e.allowed)
}

// IsZeroCapacity reports whether err indicates a zero initial capacity grant.
func IsZeroCapacity(err error) bool {
	_, ok := err.(zeroCapacityError)
	return ok
}

// inFlightUnderflowError signals that a completion report finalized more
// frames than we had in flight: the accounting has desynced from the
// compositor and is not recoverable locally.
type inFlightUnderflowError struct{ handled, inFlight int }

func (e inFlightUnderflowError) Error() string {
	return fmt.Sprintf("completion report finalized %d presents with only %d in flight", e.handled, e.inFlight)
}

// IsInFlightUnderflow reports whether err indicates an in-flight underflow.
func IsInFlightUnderflow(err error) bool {
	_, ok := err.(inFlightUnderflowError)
	return ok
}

// capacityDesyncError signals that the submit path was reached with zero
// allowed capacity after initialization and outside the pending path.
type capacityDesyncError struct{ inFlight int }

func (e capacityDesyncError) Error() string {
	return fmt.Sprintf("submit with zero allowed capacity, %d in flight", e.inFlight)
}

// IsCapacityDesync reports whether err indicates the zero-capacity submit
// invariant was violated.
func IsCapacityDesync(err error) bool {
	_, ok := err.(capacityDesyncError)
	return ok
}
