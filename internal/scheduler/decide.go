package scheduler

import (
	"time"

	"pacerd/pkg/types"
)

// chooseTargetPresentationTime picks the presentation time to target for the
// next frame. predictions are compositor forecasts in ascending latch order.
//
// The earliest acceptable latch is requestedAt plus the frame build estimate,
// and the earliest acceptable vsync is one interval past the last targeted
// present (two frames never target the same vsync slot). The first prediction
// satisfying both wins, pulled half an interval earlier to compensate for
// vsync drift at the cost of occasionally missing the slot. With no usable
// prediction (several missed vsyncs, stale data) the fallback is the nearest
// theoretically valid instant. Either way the target is capped at the latest
// time the in-flight budget could cover, bounding worst-case added latency.
//
// The caller enforces the monotonicity clamp against its last targeted time.
func chooseTargetPresentationTime(
	requestedAt time.Time,
	lastTargeted time.Time,
	minBuildTime time.Duration,
	maxInFlight int,
	predictions []types.PresentationPrediction,
	info types.VsyncInfo,
) time.Time {
	earliestLatch := requestedAt.Add(minBuildTime)
	earliestVsync := lastTargeted.Add(info.PresentationInterval)

	var target time.Time
	matched := false
	for _, p := range predictions {
		if !p.LatchTime.Before(earliestLatch) && !p.PresentationTime.Before(earliestVsync) {
			target = p.PresentationTime.Add(-info.PresentationInterval / 2)
			matched = true
			break
		}
	}
	if !matched {
		target = earliestLatch
		if earliestVsync.After(target) {
			target = earliestVsync
		}
	}

	latest := requestedAt.Add(info.PresentationInterval * time.Duration(maxInFlight))
	if target.After(latest) {
		target = latest
	}
	return target
}
