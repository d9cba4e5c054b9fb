package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	syncWorkerIterationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledgersync",
		Subsystem: "sync_worker",
		Name:      "iterations_total",
		Help:      "Count of sync worker iterations.",
	}, []string{"status"})

	syncWorkerIterationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ledgersync",
		Subsystem: "sync_worker",
		Name:      "iteration_duration_seconds",
		Help:      "Duration of sync worker iterations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})

	syncWorkerRecoveredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ledgersync",
		Subsystem: "sync_worker",
		Name:      "recovered_pending_total",
		Help:      "Count of stale pending records moved to failed.",
	})
)

// SyncWorker tracks metrics for the periodic sync loop.
type SyncWorker struct{}

// NewSyncWorker constructs a SyncWorker metrics collector.
func NewSyncWorker() *SyncWorker {
	return &SyncWorker{}
}

// ObserveIteration records one loop iteration.
func (m SyncWorker) ObserveIteration(err error, started time.Time) {
	status := statusOf(err)
	syncWorkerIterationsTotal.WithLabelValues(status).Inc()
	syncWorkerIterationDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
}

// ObserveRecovered records stale pending records released by recovery.
func (m SyncWorker) ObserveRecovered(count int) {
	syncWorkerRecoveredTotal.Add(float64(count))
}
