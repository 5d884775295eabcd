package types

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// True once the compositor's first capacity report has arrived.
	Initialized bool `json:"initialized"`
	// Frames submitted to the compositor and not yet finalized.
	FramesInFlight int `json:"frames_in_flight"`
	// Compositor-imposed in-flight limit from the most recent report.
	FramesInFlightAllowed int `json:"frames_in_flight_allowed"`
	// True while a submission is latched waiting for in-flight budget.
	Pending bool `json:"pending"`
	// Most recently targeted presentation time (unix nanoseconds, 0 = none).
	LastTargetedPresentUnixNano int64 `json:"last_targeted_present_unix_nano"`
	// Cached next-vsync estimate (unix nanoseconds).
	NextPresentationUnixNano int64 `json:"next_presentation_unix_nano"`
	// Vsync period in nanoseconds.
	PresentationIntervalNanos int64 `json:"presentation_interval_ns"`
	// Totals since construction.
	SubmitsTotal   uint64 `json:"submits_total"`
	PresentedTotal uint64 `json:"presented_total"`
	DeferredTotal  uint64 `json:"deferred_total"`
	// Uptime of the daemon in seconds.
	UptimeSeconds int64 `json:"uptime_seconds"`
	// Server time in unix seconds.
	ServerTimeUnix int64 `json:"server_time_unix"`
	// Terminal error, if the scheduler has failed.
	Error string `json:"error,omitempty"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
