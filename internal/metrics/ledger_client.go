// Package metrics exposes application metrics collectors.
package metrics

import (
	"time"

	"github.com/goodnatureofminers/ledgersync-backend/internal/ledgersync/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ledgerRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledgersync",
		Subsystem: "ledger_client",
		Name:      "operations_total",
		Help:      "Count of ledger node operations.",
	}, []string{"operation", "network", "status"})
	ledgerRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ledgersync",
		Subsystem: "ledger_client",
		Name:      "operation_duration_seconds",
		Help:      "Duration of ledger node operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "network", "status"})
)

// LedgerClient tracks metrics for calls to the ledger node.
type LedgerClient struct {
	network model.Network
}

// NewLedgerClient constructs a metrics collector for ledger calls.
func NewLedgerClient(network model.Network) *LedgerClient {
	if network == "" {
		network = "unknown"
	}
	return &LedgerClient{network: network}
}

// Observe records a single ledger call outcome and duration.
func (m LedgerClient) Observe(operation string, err error, started time.Time) {
	status := statusOf(err)
	ledgerRequestsTotal.WithLabelValues(operation, string(m.network), status).Inc()
	ledgerRequestDuration.WithLabelValues(operation, string(m.network), status).Observe(time.Since(started).Seconds())
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
