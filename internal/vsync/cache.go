// Package vsync caches the compositor's most recently advertised display
// timing. One Cache is shared by every scheduler in the process; construct it
// once at startup and inject it wherever frame pacing decisions are made.
package vsync

import (
	"sync"
	"time"

	"pacerd/pkg/types"
)

// DefaultPresentationInterval assumes a 60hz display until the compositor
// tells us otherwise.
const DefaultPresentationInterval = time.Second / 60

// Cache holds the latest known next-presentation estimate. Safe for
// concurrent use; a single mutex guards both read and write paths.
type Cache struct {
	mu            sync.Mutex
	next          time.Time
	interval      time.Duration
	lastPresented time.Time
}

// NewCache returns a cache using the given vsync period, or the 60hz default
// when interval is not positive.
func NewCache(interval time.Duration) *Cache {
	if interval <= 0 {
		interval = DefaultPresentationInterval
	}
	return &Cache{interval: interval}
}

// Current returns the latest cached estimate. It never blocks waiting for
// data; before anything has been recorded the presentation time is simply
// now plus one interval.
func (c *Cache) Current() types.VsyncInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := c.next
	if next.IsZero() {
		next = time.Now().Add(c.interval)
	}
	return types.VsyncInfo{PresentationTime: next, PresentationInterval: c.interval}
}

// Record advances the cached presentation time to the first prediction
// strictly later than the current value, then stops. First improvement, not
// maximum: the scan is cheap and biased toward the nearest qualifying future
// time. The interval is never recomputed from predictions.
func (c *Cache) Record(preds []types.PresentationPrediction) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range preds {
		if p.PresentationTime.After(c.next) {
			c.next = p.PresentationTime
			break
		}
	}
}

// RecordPresented notes the actual presentation time of a finalized frame.
// Instrumentation only; pacing decisions never read it.
func (c *Cache) RecordPresented(actual time.Time) {
	c.mu.Lock()
	c.lastPresented = actual
	c.mu.Unlock()
}

// LastPresented returns the most recent actual presentation time, or the
// zero time if no frame has been finalized yet.
func (c *Cache) LastPresented() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastPresented
}
