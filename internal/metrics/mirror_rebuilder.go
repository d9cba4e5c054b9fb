package metrics

import (
	"time"

	"github.com/goodnatureofminers/ledgersync-backend/internal/ledgersync/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mirrorProcessBatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledgersync",
		Subsystem: "mirror_rebuilder",
		Name:      "process_batch_total",
		Help:      "Count of processed height batches.",
	}, []string{"network", "status"})

	mirrorProcessBatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ledgersync",
		Subsystem: "mirror_rebuilder",
		Name:      "process_batch_duration_seconds",
		Help:      "Duration of processing a batch of heights.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	mirrorProcessBatchSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ledgersync",
		Subsystem: "mirror_rebuilder",
		Name:      "process_batch_size",
		Help:      "Number of heights processed per batch.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12), // 1..2048
	}, []string{"network"})

	mirrorProcessHeightDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ledgersync",
		Subsystem: "mirror_rebuilder",
		Name:      "process_height_duration_seconds",
		Help:      "Duration of scanning a single height.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	mirrorEntriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledgersync",
		Subsystem: "mirror_rebuilder",
		Name:      "entries_total",
		Help:      "Count of ledger entries found while scanning blocks.",
	}, []string{"network"})
)

// MirrorRebuilder tracks metrics for the ledger mirror rebuild pipeline.
type MirrorRebuilder struct {
	network model.Network
}

// NewMirrorRebuilder constructs a MirrorRebuilder with sane defaults.
func NewMirrorRebuilder(network model.Network) *MirrorRebuilder {
	if network == "" {
		network = "unknown"
	}
	return &MirrorRebuilder{network: network}
}

// ObserveProcessBatch records processing of a batch of heights.
func (m MirrorRebuilder) ObserveProcessBatch(err error, heights int, started time.Time) {
	status := statusOf(err)
	mirrorProcessBatchTotal.WithLabelValues(string(m.network), status).Inc()
	mirrorProcessBatchDuration.WithLabelValues(string(m.network), status).
		Observe(time.Since(started).Seconds())
	mirrorProcessBatchSize.WithLabelValues(string(m.network)).Observe(float64(heights))
}

// ObserveProcessHeight records scanning of a single height.
func (m MirrorRebuilder) ObserveProcessHeight(err error, _ uint64, started time.Time) {
	mirrorProcessHeightDuration.WithLabelValues(string(m.network), statusOf(err)).
		Observe(time.Since(started).Seconds())
}

// ObserveEntries records ledger entries found in a block.
func (m MirrorRebuilder) ObserveEntries(count int) {
	mirrorEntriesTotal.WithLabelValues(string(m.network)).Add(float64(count))
}
