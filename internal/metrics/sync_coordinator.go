package metrics

import (
	"time"

	"github.com/goodnatureofminers/ledgersync-backend/internal/ledgersync/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	syncJobsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledgersync",
		Subsystem: "sync_coordinator",
		Name:      "jobs_total",
		Help:      "Count of sync jobs by terminal state.",
	}, []string{"state"})

	syncJobDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "ledgersync",
		Subsystem: "sync_coordinator",
		Name:      "job_duration_seconds",
		Help:      "Duration of sync jobs.",
		Buckets:   []float64{.1, .5, 1, 5, 15, 30, 60, 120, 300, 600, 1800},
	})

	syncJobSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "ledgersync",
		Subsystem: "sync_coordinator",
		Name:      "job_size",
		Help:      "Number of records requested per sync job.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	})

	syncRecordsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledgersync",
		Subsystem: "sync_coordinator",
		Name:      "records_total",
		Help:      "Count of per-record sync outcomes.",
	}, []string{"outcome"})

	syncRecordDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ledgersync",
		Subsystem: "sync_coordinator",
		Name:      "record_duration_seconds",
		Help:      "Duration from claim to terminal state of a record.",
		Buckets:   []float64{.05, .1, .5, 1, 5, 15, 30, 60, 300, 900, 3600},
	}, []string{"outcome"})

	syncSubmitAttempts = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "ledgersync",
		Subsystem: "sync_coordinator",
		Name:      "submit_attempts",
		Help:      "Ledger submission attempts per record.",
		Buckets:   prometheus.LinearBuckets(1, 1, 10),
	})

	syncConfirmationPolls = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "ledgersync",
		Subsystem: "sync_coordinator",
		Name:      "confirmation_polls",
		Help:      "Confirmation polls per record.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
	})
)

// SyncCoordinator tracks metrics for batch synchronization.
type SyncCoordinator struct{}

// NewSyncCoordinator constructs a SyncCoordinator metrics collector.
func NewSyncCoordinator() *SyncCoordinator {
	return &SyncCoordinator{}
}

// ObserveJob records a finished job.
func (m SyncCoordinator) ObserveJob(snapshot model.JobSnapshot, started time.Time) {
	state := "completed"
	if snapshot.Cancelled {
		state = "cancelled"
	}
	_, _, failed := snapshot.Counts()
	if failed > 0 && state == "completed" {
		state = "partial"
	}
	syncJobsTotal.WithLabelValues(state).Inc()
	syncJobDuration.Observe(time.Since(started).Seconds())
	syncJobSize.Observe(float64(len(snapshot.RequestedRecordIDs)))
}

// ObserveRecord records the terminal outcome of one record.
func (m SyncCoordinator) ObserveRecord(result model.RecordResult, started time.Time) {
	outcome := "synced"
	switch {
	case result.Skipped:
		outcome = "skipped"
	case !result.Success:
		outcome = result.FailureReason
		if outcome == "" {
			outcome = model.FailureReason(result.Err)
		}
	}
	syncRecordsTotal.WithLabelValues(outcome).Inc()
	syncRecordDuration.WithLabelValues(outcome).Observe(time.Since(started).Seconds())
}

// ObserveSubmitAttempts records how many submissions a record needed.
func (m SyncCoordinator) ObserveSubmitAttempts(attempts int) {
	syncSubmitAttempts.Observe(float64(attempts))
}

// ObserveConfirmationPolls records how many polls a confirmation took.
func (m SyncCoordinator) ObserveConfirmationPolls(polls int) {
	syncConfirmationPolls.Observe(float64(polls))
}
