package types

import "time"

// VsyncInfo is the latest estimate of the compositor's display timing.
type VsyncInfo struct {
	// Earliest upcoming moment the compositor is expected to show a frame.
	PresentationTime time.Time
	// Period between consecutive display refreshes. Always > 0.
	PresentationInterval time.Duration
}

// PresentationPrediction is one compositor-supplied forecast: if a frame were
// latched at LatchTime, it would be shown at PresentationTime.
type PresentationPrediction struct {
	LatchTime        time.Time
	PresentationTime time.Time
}

// FuturePresentationTimes is the compositor's reply to a submit or forecast
// request: upcoming (latch, presentation) pairs in ascending latch order plus
// the remaining number of presents the client may have in flight.
type FuturePresentationTimes struct {
	FuturePresentations      []PresentationPrediction
	RemainingPresentsAllowed int
}

// FramePresentedInfo reports one or more finalized presents. The compositor
// may batch several presents into a single report when the client missed a
// vsync; NumPresentsHandled carries the batch size.
type FramePresentedInfo struct {
	ActualPresentationTime time.Time
	NumPresentsHandled     int
	NumPresentsAllowed     int
}
