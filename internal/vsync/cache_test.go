package vsync

import (
	"testing"
	"time"

	"pacerd/pkg/types"
)

func pred(latch, present int64) types.PresentationPrediction {
	return types.PresentationPrediction{
		LatchTime:        time.Unix(0, latch),
		PresentationTime: time.Unix(0, present),
	}
}

func TestDefaultsAreReasonable(t *testing.T) {
	c := NewCache(0)
	info := c.Current()
	if info.PresentationInterval < 10*time.Millisecond {
		t.Fatalf("default interval too small: %v", info.PresentationInterval)
	}
	if info.PresentationTime.Before(time.Now()) {
		t.Fatalf("default presentation time should be in the future, got %v", info.PresentationTime)
	}
}

func TestRecordSinglePrediction(t *testing.T) {
	c := NewCache(0)
	c.Record([]types.PresentationPrediction{pred(5, 10)})
	got := c.Current().PresentationTime
	if !got.Equal(time.Unix(0, 10)) {
		t.Fatalf("expected presentation time 10ns, got %v", got.UnixNano())
	}
}

func TestRecordFirstImprovement(t *testing.T) {
	c := NewCache(0)
	c.Record([]types.PresentationPrediction{pred(15, 20), pred(25, 30)})
	if got := c.Current().PresentationTime; !got.Equal(time.Unix(0, 20)) {
		t.Fatalf("expected 20ns after first record, got %v", got.UnixNano())
	}

	// Re-record with more future times: advance to the next improvement,
	// not the maximum.
	c.Record([]types.PresentationPrediction{pred(15, 20), pred(25, 30), pred(35, 40), pred(45, 50)})
	if got := c.Current().PresentationTime; !got.Equal(time.Unix(0, 30)) {
		t.Fatalf("expected 30ns after second record, got %v", got.UnixNano())
	}
}

func TestRecordIgnoresStalePredictions(t *testing.T) {
	c := NewCache(0)
	c.Record([]types.PresentationPrediction{pred(35, 40)})
	c.Record([]types.PresentationPrediction{pred(15, 20), pred(25, 30)})
	if got := c.Current().PresentationTime; !got.Equal(time.Unix(0, 40)) {
		t.Fatalf("stale predictions must not regress the estimate, got %v", got.UnixNano())
	}
}

func TestRecordPresented(t *testing.T) {
	c := NewCache(0)
	if !c.LastPresented().IsZero() {
		t.Fatalf("expected zero last presented before any report")
	}
	at := time.Unix(0, 12345)
	c.RecordPresented(at)
	if got := c.LastPresented(); !got.Equal(at) {
		t.Fatalf("expected %v got %v", at, got)
	}
}
