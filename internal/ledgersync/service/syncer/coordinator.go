// Package syncer pushes record hashes onto the ledger. Each record moves
// unsynced/failed -> pending -> synced/failed independently of the others.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/ledgersync-backend/internal/clock"
	"github.com/goodnatureofminers/ledgersync-backend/internal/ledgersync/model"
	"github.com/goodnatureofminers/ledgersync-backend/pkg/workerpool"
)

var selectableStatuses = []model.SyncStatus{model.SyncUnsynced, model.SyncFailed}

// Coordinator runs sync jobs and answers status queries.
type Coordinator struct {
	store     RecordStore
	ledger    Ledger
	metrics   CoordinatorMetrics
	logger    *zap.Logger
	cfg       Config
	now       func() time.Time
	newID     func() string
	jobs      *registry
	processor *recordProcessor
}

// NewCoordinator creates a Coordinator.
func NewCoordinator(store RecordStore, ledger Ledger, metrics CoordinatorMetrics, cfg Config, logger *zap.Logger) (*Coordinator, error) {
	if store == nil {
		return nil, errors.New("record store is required")
	}
	if ledger == nil {
		return nil, errors.New("ledger is required")
	}
	if metrics == nil {
		return nil, errors.New("sync coordinator metrics is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	cfg = cfg.withDefaults()
	logger = logger.Named("sync_coordinator")

	c := &Coordinator{
		store:   store,
		ledger:  ledger,
		metrics: metrics,
		logger:  logger,
		cfg:     cfg,
		now:     time.Now,
		newID:   uuid.NewString,
		jobs:    newRegistry(cfg.JobRetention),
	}
	c.processor = &recordProcessor{
		store:   store,
		ledger:  ledger,
		metrics: metrics,
		logger:  logger.Named("record_processor"),
		cfg:     cfg,
		now:     func() time.Time { return c.now() },
		sleep:   clock.SleepWithContext,
	}
	return c, nil
}

// Sync synchronizes recordIDs, or every unsynced and failed record when
// recordIDs is empty, and returns once every record has a result.
func (c *Coordinator) Sync(ctx context.Context, recordIDs []string) (model.JobSnapshot, error) {
	job, err := c.newJob(ctx, recordIDs)
	if err != nil {
		return model.JobSnapshot{}, err
	}
	c.run(ctx, job)
	return job.Snapshot(), nil
}

// Start is Sync without waiting. The job keeps running after ctx is done;
// use Cancel to stop it.
func (c *Coordinator) Start(ctx context.Context, recordIDs []string) (model.JobSnapshot, error) {
	job, err := c.newJob(ctx, recordIDs)
	if err != nil {
		return model.JobSnapshot{}, err
	}
	go c.run(context.WithoutCancel(ctx), job)
	return job.Snapshot(), nil
}

// Job returns a snapshot of a running or recently finished job.
func (c *Coordinator) Job(jobID string) (model.JobSnapshot, error) {
	job, ok := c.jobs.get(jobID)
	if !ok {
		return model.JobSnapshot{}, fmt.Errorf("sync job %s: %w", jobID, model.ErrNotFound)
	}
	return job.Snapshot(), nil
}

// Wait blocks until the job completes or ctx is done.
func (c *Coordinator) Wait(ctx context.Context, jobID string) (model.JobSnapshot, error) {
	job, ok := c.jobs.get(jobID)
	if !ok {
		return model.JobSnapshot{}, fmt.Errorf("sync job %s: %w", jobID, model.ErrNotFound)
	}
	select {
	case <-ctx.Done():
		return job.Snapshot(), ctx.Err()
	case <-job.Done():
		return job.Snapshot(), nil
	}
}

// Cancel stops a job from claiming further records. Records already claimed
// finish normally. It returns false when the job has already completed.
func (c *Coordinator) Cancel(jobID string) (bool, error) {
	job, ok := c.jobs.get(jobID)
	if !ok {
		return false, fmt.Errorf("sync job %s: %w", jobID, model.ErrNotFound)
	}
	cancelled := job.Cancel()
	if cancelled {
		c.logger.Info("sync job cancelled", zap.String("job_id", jobID))
	}
	return cancelled, nil
}

// Status summarizes record sync states and ledger reachability.
func (c *Coordinator) Status(ctx context.Context) (model.SyncStatusSummary, error) {
	counts, err := c.store.SyncCounts(ctx)
	if err != nil {
		return model.SyncStatusSummary{}, fmt.Errorf("sync counts: %w", err)
	}
	network := model.NetworkDisconnected
	if c.ledger.Ping(ctx) {
		network = model.NetworkConnected
	}
	return model.SyncStatusSummary{
		LastSync:      counts.LastSync,
		PendingCount:  counts.Pending,
		FailedCount:   counts.Failed,
		UnsyncedCount: counts.Unsynced,
		SyncedCount:   counts.Synced,
		NetworkStatus: network,
	}, nil
}

// RecoverStalePending fails records that have been pending for longer than olderThan.
func (c *Coordinator) RecoverStalePending(ctx context.Context, olderThan time.Duration) ([]string, error) {
	now := c.now()
	ids, err := c.store.RecoverStalePending(ctx, now.Add(-olderThan), now)
	if err != nil {
		return nil, fmt.Errorf("recover stale pending: %w", err)
	}
	if len(ids) > 0 {
		c.logger.Warn("recovered stale pending records", zap.Strings("record_ids", ids))
	}
	return ids, nil
}

func (c *Coordinator) newJob(ctx context.Context, recordIDs []string) (*model.SyncJob, error) {
	ids := model.UniqueIDs(recordIDs)
	if len(ids) == 0 {
		records, err := c.store.ListBySyncStatus(ctx, selectableStatuses, c.cfg.SelectionLimit)
		if err != nil {
			return nil, fmt.Errorf("select records to sync: %w", err)
		}
		for _, rec := range records {
			ids = append(ids, rec.ID)
		}
	}
	job := model.NewSyncJob(c.newID(), ids, c.now().UTC())
	c.jobs.add(job, job.StartedAt)
	return job, nil
}

func (c *Coordinator) run(ctx context.Context, job *model.SyncJob) {
	started := time.Now()
	logger := c.logger.With(zap.String("job_id", job.JobID))
	logger.Info("sync job started", zap.Int("records", len(job.RequestedRecordIDs)))

	errs := workerpool.Each(ctx, c.cfg.WorkerCount, job.RequestedRecordIDs, func(ctx context.Context, id string) error {
		job.SetResult(id, c.processor.process(ctx, job, id))
		return nil
	})
	for i, err := range errs {
		if err != nil {
			job.SetResult(job.RequestedRecordIDs[i], model.RecordResult{Err: fmt.Errorf("%w: %w", model.ErrCancelled, err)})
		}
	}

	job.Complete(c.now().UTC())
	snap := job.Snapshot()
	c.metrics.ObserveJob(snap, started)

	synced, skipped, failed := snap.Counts()
	logger.Info("sync job finished",
		zap.Int("synced", synced),
		zap.Int("skipped", skipped),
		zap.Int("failed", failed),
		zap.Bool("cancelled", snap.Cancelled),
		zap.Duration("took", time.Since(started)))
}
