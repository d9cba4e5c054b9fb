package metrics

import (
	"errors"
	"time"

	"github.com/goodnatureofminers/ledgersync-backend/internal/ledgersync/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	postgresRepositoryRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledgersync",
		Subsystem: "postgres_repository",
		Name:      "operations_total",
		Help:      "Count of record store operations.",
	}, []string{"operation", "status"})
	postgresRepositoryRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ledgersync",
		Subsystem: "postgres_repository",
		Name:      "operation_duration_seconds",
		Help:      "Duration of record store operations.",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"operation", "status"})
)

// PostgresRepository tracks metrics for record store operations.
type PostgresRepository struct{}

// NewPostgresRepository creates a PostgresRepository metrics collector.
func NewPostgresRepository() *PostgresRepository {
	return &PostgresRepository{}
}

// Observe records duration and status of a record store operation. Lookups
// that miss are not counted as errors.
func (m PostgresRepository) Observe(operation string, err error, started time.Time) {
	status := statusOf(err)
	if errors.Is(err, model.ErrNotFound) {
		status = "not_found"
	}
	postgresRepositoryRequestsTotal.WithLabelValues(operation, status).Inc()
	postgresRepositoryRequestDuration.WithLabelValues(operation, status).Observe(time.Since(started).Seconds())
}
