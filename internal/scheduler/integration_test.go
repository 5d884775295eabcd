package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"pacerd/internal/compositor"
	"pacerd/internal/vsync"
	"pacerd/pkg/types"
)

// Drives a real producer loop against the simulated compositor and checks
// the pacing invariants end to end.
func TestSchedulerAgainstSimCompositor(t *testing.T) {
	const interval = 2 * time.Millisecond

	cache := vsync.NewCache(interval)
	sim := compositor.NewSim(compositor.Config{Interval: interval, Capacity: 3})

	var presented atomic.Uint64
	sched := New(sim, cache, Config{
		MaxFramesInFlight: 3,
		OnFramePresented: func(info types.FramePresentedInfo) {
			presented.Add(uint64(info.NumPresentsHandled))
		},
		OnError: func(err error) { t.Errorf("scheduler failed: %v", err) },
	})
	sim.Start()
	defer sim.Stop()
	defer sched.Close()

	deadline := time.After(2 * time.Second)
	for frames := 0; frames < 20; {
		if !sched.CapacityAvailable() {
			select {
			case <-sched.CapacityWait():
			case <-deadline:
				t.Fatalf("timed out waiting for capacity after %d frames", frames)
			}
			continue
		}
		sched.RequestPresent(nil)
		frames++

		snap := sched.Snapshot()
		if snap.FramesInFlight > 3 {
			t.Fatalf("frames in flight %d exceeds max", snap.FramesInFlight)
		}
		time.Sleep(interval / 2)
	}

	for presented.Load() < 5 {
		select {
		case <-deadline:
			t.Fatalf("only %d frames presented before deadline", presented.Load())
		default:
			time.Sleep(interval)
		}
	}
	if cache.LastPresented().IsZero() {
		t.Fatalf("cache never saw an actual presentation time")
	}
}
