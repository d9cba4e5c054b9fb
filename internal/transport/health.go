package transport

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// LedgerService is the gRPC health service name reporting ledger reachability.
const LedgerService = "ledger"

const defaultHealthInterval = 15 * time.Second

// HealthReporter publishes the ledger Ping result on a gRPC health server.
type HealthReporter struct {
	server   *health.Server
	ledger   Ledger
	interval time.Duration
	logger   *zap.Logger
	serving  bool
	checked  bool
}

// NewHealthReporter constructs a HealthReporter. The ledger service starts as
// NOT_SERVING until the first check.
func NewHealthReporter(server *health.Server, ledger Ledger, interval time.Duration, logger *zap.Logger) (*HealthReporter, error) {
	if server == nil {
		return nil, errors.New("health server is required")
	}
	if ledger == nil {
		return nil, errors.New("ledger is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if interval <= 0 {
		interval = defaultHealthInterval
	}
	server.SetServingStatus(LedgerService, healthpb.HealthCheckResponse_NOT_SERVING)
	return &HealthReporter{
		server:   server,
		ledger:   ledger,
		interval: interval,
		logger:   logger.Named("health"),
	}, nil
}

// Run checks the ledger every interval until ctx is done.
func (r *HealthReporter) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		r.Check(ctx)
		select {
		case <-ctx.Done():
			r.server.Shutdown()
			return
		case <-ticker.C:
		}
	}
}

// Check pings the ledger once and updates the serving status.
func (r *HealthReporter) Check(ctx context.Context) bool {
	pingCtx, cancel := context.WithTimeout(ctx, r.interval)
	defer cancel()

	ok := r.ledger.Ping(pingCtx)
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if ok {
		status = healthpb.HealthCheckResponse_SERVING
	}
	r.server.SetServingStatus(LedgerService, status)
	if !r.checked || ok != r.serving {
		r.logger.Info("ledger health changed", zap.Bool("serving", ok))
	}
	r.serving, r.checked = ok, true
	return ok
}
