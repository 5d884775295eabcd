package compositor

import (
	"testing"
	"time"

	"pacerd/pkg/types"
)

func TestSimForecast(t *testing.T) {
	sim := NewSim(Config{Interval: 2 * time.Millisecond, Capacity: 2, ForecastDepth: 4})
	sim.Start()
	defer sim.Stop()

	got := make(chan types.FuturePresentationTimes, 1)
	sim.RequestForecast(0, func(info types.FuturePresentationTimes) { got <- info })

	var info types.FuturePresentationTimes
	select {
	case info = <-got:
	case <-time.After(time.Second):
		t.Fatalf("forecast reply never arrived")
	}
	if info.RemainingPresentsAllowed != 2 {
		t.Fatalf("expected capacity 2, got %d", info.RemainingPresentsAllowed)
	}
	if len(info.FuturePresentations) != 4 {
		t.Fatalf("expected 4 predictions, got %d", len(info.FuturePresentations))
	}
	for i, p := range info.FuturePresentations {
		if !p.LatchTime.Before(p.PresentationTime) {
			t.Fatalf("prediction %d: latch %v not before present %v", i, p.LatchTime, p.PresentationTime)
		}
		if i > 0 && !info.FuturePresentations[i-1].LatchTime.Before(p.LatchTime) {
			t.Fatalf("predictions must ascend by latch time")
		}
	}
}

func TestSimPresentsSubmittedFrame(t *testing.T) {
	sim := NewSim(Config{Interval: 2 * time.Millisecond, Capacity: 2})
	reports := make(chan types.FramePresentedInfo, 4)
	sim.SetPresentedHandler(func(info types.FramePresentedInfo) { reports <- info })
	sim.Start()
	defer sim.Stop()

	sim.Submit(time.Now(), 0, nil)
	sim.EnqueueClear()

	select {
	case info := <-reports:
		if info.NumPresentsHandled != 1 {
			t.Fatalf("expected 1 present handled, got %d", info.NumPresentsHandled)
		}
		if info.NumPresentsAllowed != 2 {
			t.Fatalf("expected capacity restored to 2, got %d", info.NumPresentsAllowed)
		}
	case <-time.After(time.Second):
		t.Fatalf("presented report never arrived")
	}
	if sim.Clears() != 1 {
		t.Fatalf("expected 1 clear directive, got %d", sim.Clears())
	}
}

func TestSimHoldsFutureFrames(t *testing.T) {
	sim := NewSim(Config{Interval: 2 * time.Millisecond, Capacity: 2})
	reports := make(chan types.FramePresentedInfo, 4)
	sim.SetPresentedHandler(func(info types.FramePresentedInfo) { reports <- info })
	sim.Start()
	defer sim.Stop()

	// A frame targeting the far future must not finalize yet.
	sim.Submit(time.Now().Add(time.Minute), 0, nil)

	select {
	case info := <-reports:
		t.Fatalf("future frame finalized early: %+v", info)
	case <-time.After(20 * time.Millisecond):
	}
}
