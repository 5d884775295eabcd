package scheduler

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"pacerd/internal/vsync"
	"pacerd/pkg/types"
)

// Channel is the compositor-facing connection the scheduler drives. It is an
// asynchronous request/response surface: replies and presented reports are
// delivered later, from the channel's own dispatch goroutine, never
// synchronously from Submit or RequestForecast. Delivery is assumed reliable
// and ordered.
type Channel interface {
	// Submit dispatches a frame targeting the given presentation time and
	// asks for updated predictions covering predictionSpan.
	Submit(target time.Time, predictionSpan time.Duration, reply func(types.FuturePresentationTimes))
	// RequestForecast asks for the compositor's current capacity and
	// upcoming presentation predictions.
	RequestForecast(span time.Duration, reply func(types.FuturePresentationTimes))
	// EnqueueClear queues a directive detaching the previous frame's
	// retained compositor-side state. Processed with the next submit.
	EnqueueClear()
	// SetPresentedHandler registers the callback fired when one or more
	// previously submitted frames are finalized.
	SetPresentedHandler(func(types.FramePresentedInfo))
	// SetErrorHandler registers the callback fired on transport failure.
	SetErrorHandler(func(error))
}

// Number of vsync intervals of prediction data requested with each submit.
const forecastSpanVsyncs = 6

// Config holds construction-time parameters for a Scheduler.
// Zero values mean "unspecified" and are replaced by defaults in New.
type Config struct {
	// Maximum frames that may be in flight simultaneously. Default 3.
	MaxFramesInFlight int
	// Estimate of how long the client needs to build a frame. Default 0.
	MinFrameBuildTime time.Duration
	// OnFramePresented is invoked once per completion report with the
	// compositor's actual presentation timestamp. It runs on the channel's
	// dispatch goroutine while the scheduler lock is held and must not call
	// back into the scheduler; it is meant for signaling and bookkeeping.
	OnFramePresented func(types.FramePresentedInfo)
	// OnError is invoked once if the scheduler fails terminally (transport
	// error or a fatal invariant violation). Recovery is the owner's
	// responsibility, typically by discarding the scheduler and
	// re-establishing the connection.
	OnError func(error)
	// Logger for pacing events. Nil disables logging.
	Logger *zerolog.Logger
	// Now overrides the clock, for tests.
	Now func() time.Time
}

const defaultMaxFramesInFlight = 3

// Scheduler owns the in-flight accounting, the pending-submit latch, the
// prediction queue and the monotone last-targeted presentation time for one
// compositor connection.
type Scheduler struct {
	ch    Channel
	cache *vsync.Cache
	log   zerolog.Logger

	maxInFlight  int
	minBuildTime time.Duration
	now          func() time.Time

	onFramePresented func(types.FramePresentedInfo)
	onError          func(error)

	capacity *signal
	start    time.Time

	mu                    sync.Mutex
	initialized           bool
	closed                bool
	pending               bool
	framesInFlight        int
	framesInFlightAllowed int
	lastTargetedPresent   time.Time
	presentRequestedAt    time.Time
	predictions           []types.PresentationPrediction
	submitsTotal          uint64
	presentedTotal        uint64
	deferredTotal         uint64
	err                   error
	errNotified           bool
}

// New wires a scheduler to the given channel and shared vsync cache, then
// requests the compositor's initial capacity forecast. The scheduler stays
// uninitialized (all RequestPresent calls latch as pending) until that reply
// arrives; a reported capacity of zero is a fatal startup failure delivered
// via Config.OnError.
func New(ch Channel, cache *vsync.Cache, cfg Config) *Scheduler {
	if cfg.MaxFramesInFlight <= 0 {
		cfg.MaxFramesInFlight = defaultMaxFramesInFlight
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}
	s := &Scheduler{
		ch:               ch,
		cache:            cache,
		log:              log,
		maxInFlight:      cfg.MaxFramesInFlight,
		minBuildTime:     cfg.MinFrameBuildTime,
		now:              cfg.Now,
		onFramePresented: cfg.OnFramePresented,
		onError:          cfg.OnError,
		capacity:         newSignal(),
		start:            cfg.Now(),
	}
	ch.SetErrorHandler(s.handleChannelError)
	ch.SetPresentedHandler(s.handlePresented)
	ch.RequestForecast(0, s.handleInit)
	return s
}

// Close tears the scheduler down. All later callbacks are no-ops and any
// pending submission is dropped. Waiters on the capacity signal are released.
func (s *Scheduler) Close() {
	s.mu.Lock()
	s.closed = true
	s.pending = false
	s.mu.Unlock()
	s.capacity.Set()
}

// CapacityAvailable reports whether submission capacity is currently
// available. Cleared when a submission latches waiting for budget, set again
// when the compositor restores capacity.
func (s *Scheduler) CapacityAvailable() bool { return s.capacity.IsSet() }

// CapacityWait returns a channel closed once capacity is available. The
// returned channel is invalidated by the next Clear; re-fetch it per wait.
func (s *Scheduler) CapacityWait() <-chan struct{} { return s.capacity.Wait() }

// notifyFailure delivers a terminal error to the OnError callback exactly
// once, outside the scheduler lock.
func (s *Scheduler) notifyFailure() {
	s.mu.Lock()
	if s.err == nil || s.errNotified {
		s.mu.Unlock()
		return
	}
	s.errNotified = true
	err := s.err
	s.mu.Unlock()
	if s.onError != nil {
		s.onError(err)
	}
}

// failLocked marks the scheduler terminally failed. Caller holds s.mu and is
// responsible for calling notifyFailure after unlocking.
func (s *Scheduler) failLocked(err error) {
	if s.closed && s.err != nil {
		return
	}
	s.closed = true
	if s.err == nil {
		s.err = err
	}
	s.log.Error().Err(err).Msg("scheduler failed")
}
