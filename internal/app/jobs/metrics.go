package jobs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exposes the processor's observable state. Per-job failures are
// swallowed by the processor, so the failure counter is the reliable way to
// see them from the outside.
type Metrics struct {
	JobsCompleted prometheus.Counter
	JobsFailed    prometheus.Counter
	ScanErrors    prometheus.Counter
	ActiveJobs    prometheus.Gauge
}

// NewMetrics registers the processor metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		JobsCompleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "bakbak",
			Subsystem: "processor",
			Name:      "jobs_completed_total",
			Help:      "Transcription jobs that finished successfully.",
		}),
		JobsFailed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "bakbak",
			Subsystem: "processor",
			Name:      "jobs_failed_total",
			Help:      "Transcription jobs that ended in failure.",
		}),
		ScanErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "bakbak",
			Subsystem: "processor",
			Name:      "scan_errors_total",
			Help:      "Scan ticks that could not query pending jobs.",
		}),
		ActiveJobs: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "bakbak",
			Subsystem: "processor",
			Name:      "active_jobs",
			Help:      "Jobs currently being processed by this instance.",
		}),
	}
}
