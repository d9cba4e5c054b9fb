package metrics

import (
	"time"

	"github.com/goodnatureofminers/ledgersync-backend/internal/ledgersync/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	verifierVerifyTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledgersync",
		Subsystem: "verifier",
		Name:      "verify_total",
		Help:      "Count of record verifications by outcome.",
	}, []string{"outcome"})

	verifierVerifyDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ledgersync",
		Subsystem: "verifier",
		Name:      "verify_duration_seconds",
		Help:      "Duration of a single record verification.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"outcome"})

	verifierBatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "ledgersync",
		Subsystem: "verifier",
		Name:      "batch_size",
		Help:      "Number of records per multi-record verification.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
	})
)

// Verifier tracks metrics for the integrity verifier.
type Verifier struct{}

// NewVerifier constructs a Verifier metrics collector.
func NewVerifier() *Verifier {
	return &Verifier{}
}

// ObserveVerify records one verification outcome.
func (m Verifier) ObserveVerify(err error, verified bool, started time.Time) {
	outcome := "mismatch"
	switch {
	case err != nil:
		outcome = model.FailureReason(err)
	case verified:
		outcome = "verified"
	}
	verifierVerifyTotal.WithLabelValues(outcome).Inc()
	verifierVerifyDuration.WithLabelValues(outcome).Observe(time.Since(started).Seconds())
}

// ObserveBatch records the size of a multi-record verification.
func (m Verifier) ObserveBatch(size int) {
	verifierBatchSize.Observe(float64(size))
}
