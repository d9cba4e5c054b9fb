package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/ledgersync-backend/internal/app"
	"github.com/goodnatureofminers/ledgersync-backend/internal/ledgersync/service/syncer"
	"github.com/goodnatureofminers/ledgersync-backend/internal/metrics"
)

type config struct {
	MetricsAddr     string        `long:"metrics-addr" env:"SYNC_WORKER_METRICS_ADDR" description:"address serving /metrics, empty disables it" default:":8002"`
	ZMQAddr         string        `long:"zmq-addr" env:"SYNC_WORKER_ZMQ_ADDR" description:"bitcoind zmqpubhashblock endpoint waking the worker on new blocks"`
	Interval        time.Duration `long:"interval" env:"SYNC_WORKER_INTERVAL" description:"idle time between sync passes" default:"1m"`
	StalePendingAge time.Duration `long:"stale-pending-age" env:"SYNC_WORKER_STALE_PENDING_AGE" description:"pending records older than this are failed" default:"3h"`

	SyncWorkers         int           `long:"sync-workers" env:"SYNC_WORKER_SYNC_WORKERS" description:"records synced concurrently" default:"4"`
	SelectionLimit      int           `long:"selection-limit" env:"SYNC_WORKER_SELECTION_LIMIT" description:"records selected per pass" default:"500"`
	MaxSubmitAttempts   int           `long:"max-submit-attempts" env:"SYNC_WORKER_MAX_SUBMIT_ATTEMPTS" description:"ledger submit attempts per record" default:"3"`
	ConfirmationTimeout time.Duration `long:"confirmation-timeout" env:"SYNC_WORKER_CONFIRMATION_TIMEOUT" description:"per-record confirmation deadline" default:"2h"`

	app.StoreOptions
	app.LedgerOptions
	app.CacheOptions
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("sync worker failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	store, _, closeStore, err := app.OpenCachedStore(ctx, cfg.StoreOptions, cfg.CacheOptions, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	ledger, closeLedger, err := cfg.OpenLedger(logger)
	if err != nil {
		return fmt.Errorf("init ledger: %w", err)
	}
	defer closeLedger()

	coordinator, err := syncer.NewCoordinator(store, ledger, metrics.NewSyncCoordinator(), syncer.Config{
		WorkerCount:         cfg.SyncWorkers,
		SelectionLimit:      cfg.SelectionLimit,
		MaxSubmitAttempts:   cfg.MaxSubmitAttempts,
		ConfirmationTimeout: cfg.ConfirmationTimeout,
		ConfirmationDepth:   cfg.ConfirmationDepth,
	}, logger)
	if err != nil {
		return err
	}

	signals, err := startBlockSignal(ctx, cfg.ZMQAddr, logger)
	if err != nil {
		return err
	}

	worker, err := syncer.NewWorker(coordinator, metrics.NewSyncWorker(), syncer.WorkerConfig{
		Interval:        cfg.Interval,
		StalePendingAge: cfg.StalePendingAge,
	}, signals, logger)
	if err != nil {
		return err
	}

	if cfg.MetricsAddr != "" {
		go serveMetrics(ctx, cfg.MetricsAddr, logger)
	}

	logger.Info("sync worker started", zap.Duration("interval", cfg.Interval), zap.Bool("block_signal", signals != nil))
	return worker.Run(ctx)
}

func serveMetrics(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	s := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		if err := s.Shutdown(context.Background()); err != nil {
			logger.Error("Failed to shutdown metrics server", zap.Error(err))
		}
	}()
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logger.Error("metrics server stopped", zap.Error(err))
	}
}
