package scheduler

import (
	"time"

	"pacerd/pkg/types"
)

// Snapshot is a read-only view of the scheduler state.
type Snapshot struct {
	Initialized           bool
	Pending               bool
	FramesInFlight        int
	FramesInFlightAllowed int
	LastTargetedPresent   time.Time
	Err                   error
}

// Snapshot returns a consistent view of the scheduler state.
func (s *Scheduler) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Initialized:           s.initialized,
		Pending:               s.pending,
		FramesInFlight:        s.framesInFlight,
		FramesInFlightAllowed: s.framesInFlightAllowed,
		LastTargetedPresent:   s.lastTargetedPresent,
		Err:                   s.err,
	}
}

// Ready reports whether the scheduler is initialized and has not failed.
func (s *Scheduler) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized && s.err == nil
}

// Status builds a detailed status response for /status.
func (s *Scheduler) Status() types.StatusResponse {
	info := s.cache.Current()

	s.mu.Lock()
	defer s.mu.Unlock()
	resp := types.StatusResponse{
		Initialized:               s.initialized,
		Pending:                   s.pending,
		FramesInFlight:            s.framesInFlight,
		FramesInFlightAllowed:     s.framesInFlightAllowed,
		NextPresentationUnixNano:  info.PresentationTime.UnixNano(),
		PresentationIntervalNanos: int64(info.PresentationInterval),
		SubmitsTotal:              s.submitsTotal,
		PresentedTotal:            s.presentedTotal,
		DeferredTotal:             s.deferredTotal,
		UptimeSeconds:             int64(s.now().Sub(s.start).Seconds()),
		ServerTimeUnix:            s.now().Unix(),
	}
	if !s.lastTargetedPresent.IsZero() {
		resp.LastTargetedPresentUnixNano = s.lastTargetedPresent.UnixNano()
	}
	if s.err != nil {
		resp.Error = s.err.Error()
	}
	return resp
}
