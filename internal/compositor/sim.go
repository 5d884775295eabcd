package compositor

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"pacerd/pkg/types"
)

// Config holds construction-time parameters for a Sim.
// Zero values mean "unspecified" and are replaced by defaults in NewSim.
type Config struct {
	// Vsync period of the simulated display. Default 1/60 s.
	Interval time.Duration
	// How far before each presentation the content latch happens. Default
	// half an interval.
	LatchOffset time.Duration
	// Maximum presents the client may have outstanding. Default 3.
	Capacity int
	// Predictions included in each forecast reply. Default 6.
	ForecastDepth int
	// Logger for vsync events. Nil disables logging.
	Logger *zerolog.Logger
}

const (
	defaultCapacity      = 3
	defaultForecastDepth = 6
)

// Sim is a vsync-clocked in-process compositor. Submissions decrement the
// capacity grant; each simulated vsync finalizes every due frame, restores
// their capacity and delivers the presented report, then answers any queued
// forecast requests. All handler and reply invocations happen on the vsync
// goroutine, never synchronously from Submit or RequestForecast.
type Sim struct {
	log           zerolog.Logger
	interval      time.Duration
	latchOffset   time.Duration
	forecastDepth int

	presented func(types.FramePresentedInfo)
	onError   func(error)

	mu       sync.Mutex
	capacity int
	frames   []simFrame
	replies  []pendingReply
	clears   int

	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

type simFrame struct {
	target time.Time
}

type pendingReply struct {
	reply func(types.FuturePresentationTimes)
}

// NewSim returns a stopped simulator; call Start to begin the vsync clock.
// Handlers must be registered before Start.
func NewSim(cfg Config) *Sim {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Second / 60
	}
	if cfg.LatchOffset <= 0 {
		cfg.LatchOffset = cfg.Interval / 2
	}
	if cfg.Capacity <= 0 {
		cfg.Capacity = defaultCapacity
	}
	if cfg.ForecastDepth <= 0 {
		cfg.ForecastDepth = defaultForecastDepth
	}
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}
	return &Sim{
		log:           log,
		interval:      cfg.Interval,
		latchOffset:   cfg.LatchOffset,
		forecastDepth: cfg.ForecastDepth,
		capacity:      cfg.Capacity,
		done:          make(chan struct{}),
	}
}

func (s *Sim) SetPresentedHandler(h func(types.FramePresentedInfo)) { s.presented = h }
func (s *Sim) SetErrorHandler(h func(error))                        { s.onError = h }

// Submit accepts a frame targeting the given presentation time. The reply,
// carrying refreshed predictions, is delivered on the next vsync.
func (s *Sim) Submit(target time.Time, predictionSpan time.Duration, reply func(types.FuturePresentationTimes)) {
	s.mu.Lock()
	if s.capacity <= 0 {
		// The pacing client is expected to respect the grant; dropping the
		// frame here would desync its accounting, so accept it and complain.
		s.log.Error().Time("target", target).Msg("submit beyond capacity grant")
	}
	s.capacity--
	s.frames = append(s.frames, simFrame{target: target})
	if reply != nil {
		s.replies = append(s.replies, pendingReply{reply: reply})
	}
	s.mu.Unlock()
}

// RequestForecast queues a capacity/prediction request answered on the next
// vsync.
func (s *Sim) RequestForecast(span time.Duration, reply func(types.FuturePresentationTimes)) {
	if reply == nil {
		return
	}
	s.mu.Lock()
	s.replies = append(s.replies, pendingReply{reply: reply})
	s.mu.Unlock()
}

// EnqueueClear records the clear directive. The simulator keeps no node
// graph; the count is exposed for tests.
func (s *Sim) EnqueueClear() {
	s.mu.Lock()
	s.clears++
	s.mu.Unlock()
}

// Clears returns how many clear directives have been enqueued.
func (s *Sim) Clears() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clears
}

// Start launches the vsync clock goroutine.
func (s *Sim) Start() {
	s.wg.Add(1)
	go s.run()
}

// Stop halts the vsync clock and waits for it to exit. No handlers fire
// afterwards.
func (s *Sim) Stop() {
	s.stopOnce.Do(func() { close(s.done) })
	s.wg.Wait()
}

func (s *Sim) run() {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			s.vsync(now)
		}
	}
}

// vsync finalizes due frames and answers queued replies. Handlers are
// invoked after the lock is released so they may call back into the
// simulator freely.
func (s *Sim) vsync(now time.Time) {
	s.mu.Lock()
	var due int
	remaining := s.frames[:0]
	for _, f := range s.frames {
		if !f.target.After(now) {
			due++
		} else {
			remaining = append(remaining, f)
		}
	}
	s.frames = remaining
	s.capacity += due

	var report *types.FramePresentedInfo
	if due > 0 {
		report = &types.FramePresentedInfo{
			ActualPresentationTime: now,
			NumPresentsHandled:     due,
			NumPresentsAllowed:     s.capacity,
		}
	}
	replies := s.replies
	s.replies = nil
	var forecast types.FuturePresentationTimes
	if len(replies) > 0 {
		forecast = s.forecastLocked(now)
	}
	presented := s.presented
	s.mu.Unlock()

	if report != nil {
		s.log.Debug().
			Int("handled", report.NumPresentsHandled).
			Int("allowed", report.NumPresentsAllowed).
			Msg("vsync finalized frames")
		if presented != nil {
			presented(*report)
		}
	}
	for _, p := range replies {
		p.reply(forecast)
	}
}

// forecastLocked builds predictions for the next forecastDepth vsyncs.
// Caller holds s.mu.
func (s *Sim) forecastLocked(now time.Time) types.FuturePresentationTimes {
	preds := make([]types.PresentationPrediction, 0, s.forecastDepth)
	for i := 1; i <= s.forecastDepth; i++ {
		present := now.Add(time.Duration(i) * s.interval)
		preds = append(preds, types.PresentationPrediction{
			LatchTime:        present.Add(-s.latchOffset),
			PresentationTime: present,
		})
	}
	return types.FuturePresentationTimes{
		FuturePresentations:      preds,
		RemainingPresentsAllowed: s.capacity,
	}
}
