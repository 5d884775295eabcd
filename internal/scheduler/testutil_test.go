package scheduler

import (
	"sync"
	"testing"
	"time"

	"pacerd/internal/vsync"
	"pacerd/pkg/types"
)

// fakeChannel records scheduler traffic and lets tests play the compositor
// by invoking the captured reply callbacks directly.
type fakeChannel struct {
	mu        sync.Mutex
	presented func(types.FramePresentedInfo)
	onError   func(error)
	forecasts []func(types.FuturePresentationTimes)
	submits   []fakeSubmit
	clears    int
}

type fakeSubmit struct {
	target time.Time
	span   time.Duration
	reply  func(types.FuturePresentationTimes)
}

func (f *fakeChannel) Submit(target time.Time, span time.Duration, reply func(types.FuturePresentationTimes)) {
	f.mu.Lock()
	f.submits = append(f.submits, fakeSubmit{target: target, span: span, reply: reply})
	f.mu.Unlock()
}

func (f *fakeChannel) RequestForecast(span time.Duration, reply func(types.FuturePresentationTimes)) {
	f.mu.Lock()
	f.forecasts = append(f.forecasts, reply)
	f.mu.Unlock()
}

func (f *fakeChannel) EnqueueClear() {
	f.mu.Lock()
	f.clears++
	f.mu.Unlock()
}

func (f *fakeChannel) SetPresentedHandler(h func(types.FramePresentedInfo)) { f.presented = h }
func (f *fakeChannel) SetErrorHandler(h func(error))                        { f.onError = h }

func (f *fakeChannel) submitCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.submits)
}

func (f *fakeChannel) submitTargets() []time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]time.Time, len(f.submits))
	for i, s := range f.submits {
		out[i] = s.target
	}
	return out
}

// replyInit answers the startup forecast request.
func (f *fakeChannel) replyInit(t *testing.T, info types.FuturePresentationTimes) {
	t.Helper()
	f.mu.Lock()
	if len(f.forecasts) == 0 {
		f.mu.Unlock()
		t.Fatalf("no forecast request outstanding")
	}
	reply := f.forecasts[0]
	f.forecasts = f.forecasts[1:]
	f.mu.Unlock()
	reply(info)
}

// replyLastSubmit answers the forecast attached to the most recent submit.
func (f *fakeChannel) replyLastSubmit(t *testing.T, info types.FuturePresentationTimes) {
	t.Helper()
	f.mu.Lock()
	if len(f.submits) == 0 {
		f.mu.Unlock()
		t.Fatalf("no submit outstanding")
	}
	reply := f.submits[len(f.submits)-1].reply
	f.mu.Unlock()
	reply(info)
}

// present delivers a completion report for n finalized frames.
func (f *fakeChannel) present(t *testing.T, n, allowed int, at time.Time) {
	t.Helper()
	if f.presented == nil {
		t.Fatalf("presented handler not registered")
	}
	f.presented(types.FramePresentedInfo{
		ActualPresentationTime: at,
		NumPresentsHandled:     n,
		NumPresentsAllowed:     allowed,
	})
}

type testEnv struct {
	fc    *fakeChannel
	cache *vsync.Cache
	sched *Scheduler
	now   time.Time
	errs  []error
}

// newTestEnv constructs a scheduler against the fake channel and completes
// the startup handshake with the given capacity grant.
func newTestEnv(t *testing.T, maxInFlight, allowed int) *testEnv {
	t.Helper()
	env := &testEnv{fc: &fakeChannel{}, cache: vsync.NewCache(testInterval), now: testBase}
	env.sched = New(env.fc, env.cache, Config{
		MaxFramesInFlight: maxInFlight,
		OnError:           func(err error) { env.errs = append(env.errs, err) },
		Now:               func() time.Time { return env.now },
	})
	env.fc.replyInit(t, types.FuturePresentationTimes{RemainingPresentsAllowed: allowed})
	return env
}

func (e *testEnv) advance(d time.Duration) { e.now = e.now.Add(d) }

func newCacheForTest() *vsync.Cache { return vsync.NewCache(testInterval) }
