package syncer

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/ledgersync-backend/internal/clock"
)

// Worker periodically recovers stale pending records and syncs everything
// unsynced or failed. A receive on the signal channel cuts the idle wait short.
type Worker struct {
	syncer  Syncer
	metrics WorkerMetrics
	logger  *zap.Logger
	cfg     WorkerConfig
	signals <-chan struct{}
	backoff *clock.Backoff
	sleep   func(context.Context, time.Duration) error
}

// NewWorker creates a Worker. signals may be nil.
func NewWorker(syncer Syncer, metrics WorkerMetrics, cfg WorkerConfig, signals <-chan struct{}, logger *zap.Logger) (*Worker, error) {
	if syncer == nil {
		return nil, errors.New("syncer is required")
	}
	if metrics == nil {
		return nil, errors.New("sync worker metrics is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	cfg = cfg.withDefaults()
	return &Worker{
		syncer:  syncer,
		metrics: metrics,
		logger:  logger.Named("sync_worker"),
		cfg:     cfg,
		signals: signals,
		backoff: clock.NewBackoff(cfg.FailureBackoff, cfg.MaxFailureBackoff, backoffMultiplier),
		sleep:   clock.SleepWithContext,
	}, nil
}

// Run loops until ctx is done and returns ctx.Err().
func (w *Worker) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		wait := w.cfg.Interval
		if err := w.run(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			wait = w.backoff.Next()
			w.logger.Error("sync iteration failed", zap.Duration("retry_in", wait), zap.Error(err))
		} else {
			w.backoff.Reset()
		}

		if err := w.wait(ctx, wait); err != nil {
			return err
		}
	}
}

func (w *Worker) run(ctx context.Context) (err error) {
	started := time.Now()
	defer func() {
		w.metrics.ObserveIteration(err, started)
	}()

	recovered, err := w.syncer.RecoverStalePending(ctx, w.cfg.StalePendingAge)
	if err != nil {
		return err
	}
	w.metrics.ObserveRecovered(len(recovered))

	snap, err := w.syncer.Sync(ctx, nil)
	if err != nil {
		return err
	}
	if len(snap.RequestedRecordIDs) > 0 {
		synced, skipped, failed := snap.Counts()
		w.logger.Info("sync iteration finished",
			zap.String("job_id", snap.JobID),
			zap.Int("synced", synced),
			zap.Int("skipped", skipped),
			zap.Int("failed", failed))
	}
	return nil
}

func (w *Worker) wait(ctx context.Context, d time.Duration) error {
	if w.signals == nil {
		return w.sleep(ctx, d)
	}

	sleepCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- w.sleep(sleepCtx, d)
	}()

	select {
	case err := <-done:
		return err
	case _, ok := <-w.signals:
		if !ok {
			w.signals = nil
		} else {
			w.logger.Debug("woken by block signal")
		}
		cancel()
		<-done
		return ctx.Err()
	}
}
