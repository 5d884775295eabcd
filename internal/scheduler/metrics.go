package scheduler

import "github.com/prometheus/client_golang/prometheus"

var (
	framesInFlightGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "pacerd",
		Subsystem: "scheduler",
		Name:      "frames_in_flight",
		Help:      "Frames submitted to the compositor and not yet finalized",
	})

	framesAllowedGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "pacerd",
		Subsystem: "scheduler",
		Name:      "frames_in_flight_allowed",
		Help:      "Compositor-imposed in-flight limit from the latest report",
	})

	submitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "pacerd",
		Subsystem: "scheduler",
		Name:      "submits_total",
		Help:      "Total frames submitted to the compositor",
	})

	presentedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "pacerd",
		Subsystem: "scheduler",
		Name:      "presented_total",
		Help:      "Total frames finalized by the compositor",
	})

	deferredTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "pacerd",
		Subsystem: "scheduler",
		Name:      "deferred_total",
		Help:      "Total present requests latched waiting for in-flight budget",
	})

	batchedPresentsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "pacerd",
		Subsystem: "scheduler",
		Name:      "batched_presents_total",
		Help:      "Completion reports that finalized more than one present",
	})

	targetClampsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "pacerd",
		Subsystem: "scheduler",
		Name:      "target_clamps_total",
		Help:      "Computed target presentation times clamped forward for monotonicity",
	})
)

func init() {
	prometheus.MustRegister(
		framesInFlightGauge,
		framesAllowedGauge,
		submitsTotal,
		presentedTotal,
		deferredTotal,
		batchedPresentsTotal,
		targetClampsTotal,
	)
}
