// Package scheduler paces frame submission to a compositor that accepts
// frames ahead of time and acknowledges them asynchronously. It is structured
// into small files by concern:
//
//   - scheduler.go: core Scheduler type, Config, constructor, teardown.
//   - submit.go: RequestPresent entry point and the guarded submit path.
//   - decide.go: the target-presentation-time decision function.
//   - callbacks.go: completion and forecast handlers from the channel.
//   - signal.go: the capacity-available signal for backpressure-aware callers.
//   - errors.go: error types and helpers (IsZeroCapacity, IsInFlightUnderflow).
//   - status.go: Snapshot/Status read-only views.
//   - metrics.go: prometheus collectors.
//
// A Scheduler is driven from two contexts: the rendering client calls
// RequestPresent, and the compositor channel delivers completion and forecast
// callbacks from its own dispatch goroutine. One mutex serializes both; no
// operation blocks. Callers that want backpressure watch CapacityWait rather
// than expecting RequestPresent to park.
package scheduler
