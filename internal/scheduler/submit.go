package scheduler

import "time"

// RequestPresent is called once per logical frame the client wants shown. If
// in-flight budget is available the frame is submitted immediately; otherwise
// the request latches as pending, the capacity signal is cleared, and the
// submission is retried from the next completion callback.
//
// frameWork, if non-nil, runs synchronously before RequestPresent returns
// whether or not submission proceeded. It represents the client's paint and
// serialization step, which overlaps with the compositor processing the
// previous submission instead of being serialized after it.
func (s *Scheduler) RequestPresent(frameWork func()) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.presentRequestedAt = s.now()

	// Throttle submission if we already have the maximum number of frames
	// in flight. Pending requests resume from the completion callback.
	if s.initialized && s.framesInFlight < s.maxInFlight {
		s.submitLocked()
	} else {
		s.pending = true
		s.deferredTotal++
		deferredTotal.Inc()
		s.capacity.Clear()
	}
	s.mu.Unlock()
	s.notifyFailure()

	if frameWork != nil {
		frameWork()
	}
}

// submitLocked performs one submission: computes the target presentation
// time, enforces monotonicity, dispatches the frame and queues the clear
// directive for the next frame's node graph. Caller holds s.mu.
func (s *Scheduler) submitLocked() {
	if s.framesInFlightAllowed == 0 {
		// Reachable only before initialization or while a submission is
		// already pending; anywhere else our accounting has desynced from
		// the compositor.
		if s.initialized && !s.pending {
			s.failLocked(capacityDesyncError{inFlight: s.framesInFlight})
		}
		return
	}

	s.pending = false
	s.framesInFlight++

	info := s.cache.Current()
	target := chooseTargetPresentationTime(
		s.presentRequestedAt,
		s.lastTargetedPresent,
		s.minBuildTime,
		s.maxInFlight,
		s.predictions,
		info,
	)
	s.presentRequestedAt = time.Time{}

	// The decision function already biases toward advancing past the last
	// target, but the clamp is the hard guarantee.
	if target.Before(s.lastTargetedPresent) {
		targetClampsTotal.Inc()
		s.log.Warn().
			Time("last", s.lastTargetedPresent).
			Time("computed", target).
			Msg("target presentation time regressed, clamping forward")
		target = s.lastTargetedPresent
	}
	s.lastTargetedPresent = target

	s.submitsTotal++
	submitsTotal.Inc()
	framesInFlightGauge.Set(float64(s.framesInFlight))

	s.ch.Submit(target, info.PresentationInterval*forecastSpanVsyncs, s.handleForecast)

	// A fresh node hierarchy goes down every frame; detach the previous
	// one so the next submit starts clean.
	s.ch.EnqueueClear()
}
