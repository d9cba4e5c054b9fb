package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledgersync",
		Subsystem: "verification_cache",
		Name:      "lookups_total",
		Help:      "Count of verification cache lookups.",
	}, []string{"backend", "result"})

	cachePutsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledgersync",
		Subsystem: "verification_cache",
		Name:      "puts_total",
		Help:      "Count of verification cache writes by result.",
	}, []string{"backend", "result"})

	cacheInvalidationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledgersync",
		Subsystem: "verification_cache",
		Name:      "invalidations_total",
		Help:      "Count of verification cache invalidations.",
	}, []string{"backend"})
)

// VerificationCache tracks metrics for a verification cache backend.
type VerificationCache struct {
	backend string
}

// NewVerificationCache constructs a collector labelled with the cache backend.
func NewVerificationCache(backend string) *VerificationCache {
	if backend == "" {
		backend = "unknown"
	}
	return &VerificationCache{backend: backend}
}

// ObserveLookup records a hit, miss or error.
func (m VerificationCache) ObserveLookup(hit bool, err error) {
	result := "miss"
	switch {
	case err != nil:
		result = "error"
	case hit:
		result = "hit"
	}
	cacheLookupsTotal.WithLabelValues(m.backend, result).Inc()
}

// ObservePut records whether a write was stored, dropped as stale, or failed.
func (m VerificationCache) ObservePut(stored bool, err error) {
	result := "dropped"
	switch {
	case err != nil:
		result = "error"
	case stored:
		result = "stored"
	}
	cachePutsTotal.WithLabelValues(m.backend, result).Inc()
}

// ObserveInvalidate records one invalidation.
func (m VerificationCache) ObserveInvalidate() {
	cacheInvalidationsTotal.WithLabelValues(m.backend).Inc()
}
