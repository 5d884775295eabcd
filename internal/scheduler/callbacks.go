package scheduler

import "pacerd/pkg/types"

// handleInit consumes the compositor's first capacity report. Submissions are
// held back until it arrives; a zero allowance means the connection is
// useless and must be torn down by its owner.
func (s *Scheduler) handleInit(info types.FuturePresentationTimes) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.framesInFlightAllowed = info.RemainingPresentsAllowed
	framesAllowedGauge.Set(float64(s.framesInFlightAllowed))
	if s.framesInFlightAllowed <= 0 {
		s.failLocked(zeroCapacityError{allowed: info.RemainingPresentsAllowed})
		s.mu.Unlock()
		s.notifyFailure()
		return
	}
	s.predictions = info.FuturePresentations
	s.cache.Record(info.FuturePresentations)

	// Signal starts high: the connection is available until a submission
	// has to wait for budget.
	s.capacity.Set()
	s.initialized = true

	s.log.Debug().
		Int("allowed", s.framesInFlightAllowed).
		Msg("compositor connection initialized")

	// Present once immediately so the compositor has content to show.
	s.presentRequestedAt = s.now()
	s.submitLocked()
	s.mu.Unlock()
	s.notifyFailure()
}

// handlePresented consumes a completion report from the channel. One report
// may finalize several presents when the client missed a vsync.
func (s *Scheduler) handlePresented(info types.FramePresentedInfo) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.framesInFlightAllowed = info.NumPresentsAllowed
	framesAllowedGauge.Set(float64(s.framesInFlightAllowed))

	s.framesInFlight -= info.NumPresentsHandled
	if s.framesInFlight < 0 {
		s.failLocked(inFlightUnderflowError{
			handled:  info.NumPresentsHandled,
			inFlight: s.framesInFlight + info.NumPresentsHandled,
		})
		s.mu.Unlock()
		s.notifyFailure()
		return
	}
	framesInFlightGauge.Set(float64(s.framesInFlight))

	if info.NumPresentsHandled > 1 {
		// We missed a frame at some point and a later vsync flushed
		// several presents at once. Pacing continues.
		batchedPresentsTotal.Inc()
		s.log.Warn().
			Int("handled", info.NumPresentsHandled).
			Msg("multiple presents finalized in a single vsync")
	}

	s.presentedTotal += uint64(info.NumPresentsHandled)
	presentedTotal.Add(float64(info.NumPresentsHandled))
	s.cache.RecordPresented(info.ActualPresentationTime)

	if s.onFramePresented != nil {
		s.onFramePresented(info)
	}

	if s.pending {
		s.submitLocked()
	}
	s.capacity.Set()
	s.mu.Unlock()
	s.notifyFailure()
}

// handleForecast consumes updated presentation predictions, replacing the
// queue wholesale.
func (s *Scheduler) handleForecast(info types.FuturePresentationTimes) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.framesInFlightAllowed = info.RemainingPresentsAllowed
	framesAllowedGauge.Set(float64(s.framesInFlightAllowed))
	s.predictions = info.FuturePresentations
	s.mu.Unlock()

	s.cache.Record(info.FuturePresentations)
}

// handleChannelError propagates a transport failure to the owner. The
// scheduler performs no retry of its own.
func (s *Scheduler) handleChannelError(err error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.failLocked(err)
	s.mu.Unlock()
	s.capacity.Set()
	s.notifyFailure()
}
