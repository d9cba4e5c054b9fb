package syncer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/ledgersync-backend/internal/clock"
	"github.com/goodnatureofminers/ledgersync-backend/internal/ledgersync/model"
)

// recordProcessor drives one record through claim, submission, confirmation
// and the final store transition.
type recordProcessor struct {
	store   RecordStore
	ledger  Ledger
	metrics CoordinatorMetrics
	logger  *zap.Logger
	cfg     Config
	now     func() time.Time
	sleep   func(context.Context, time.Duration) error
}

func (p *recordProcessor) process(ctx context.Context, job *model.SyncJob, id string) model.RecordResult {
	started := time.Now()
	result := p.sync(ctx, job, id)
	p.metrics.ObserveRecord(result, started)
	return result
}

func (p *recordProcessor) sync(ctx context.Context, job *model.SyncJob, id string) model.RecordResult {
	if job.Cancelled() {
		return model.RecordResult{Err: fmt.Errorf("record %s: %w", id, model.ErrCancelled)}
	}
	if err := ctx.Err(); err != nil {
		return model.RecordResult{Err: fmt.Errorf("record %s: %w: %w", id, model.ErrCancelled, err)}
	}

	rec, claimed, err := p.store.ClaimForSync(ctx, id, p.now())
	if err != nil {
		return model.RecordResult{Err: fmt.Errorf("claim %s: %w", id, err)}
	}
	if !claimed {
		return unclaimedResult(rec)
	}

	logger := p.logger.With(zap.String("record_id", id), zap.String("hash", rec.DatabaseHash))
	// bookkeeping after a claim must finish even when the job context ends
	storeCtx := context.WithoutCancel(ctx)

	sub, attempts, err := p.submit(ctx, id, rec.DatabaseHash)
	if err != nil {
		return p.fail(storeCtx, logger, id, attempts, err)
	}

	conf, err := p.confirm(ctx, sub)
	if err != nil {
		return p.fail(storeCtx, logger, id, attempts, err)
	}

	updated, err := p.store.MarkSynced(storeCtx, id, sub.Hash, p.now())
	if err != nil {
		logger.Error("mark synced failed", zap.String("reference", sub.Reference), zap.Error(err))
		return model.RecordResult{Err: fmt.Errorf("mark synced %s: %w", id, err), Attempts: attempts, Reference: sub.Reference}
	}
	if updated.SyncStatus != model.SyncSynced {
		logger.Info("payload changed while pending; record left unsynced",
			zap.String("database_hash", updated.DatabaseHash))
	}
	logger.Debug("record synced",
		zap.String("reference", sub.Reference),
		zap.Uint64("confirmations", conf.Confirmations))

	return model.RecordResult{
		Success:    true,
		Attempts:   attempts,
		LedgerHash: sub.Hash,
		Reference:  sub.Reference,
	}
}

func unclaimedResult(rec model.Record) model.RecordResult {
	switch {
	case rec.SyncStatus == model.SyncPending:
		return model.RecordResult{Err: fmt.Errorf("record %s: %w", rec.ID, model.ErrAlreadyInProgress)}
	case rec.SyncStatus == model.SyncSynced && rec.InSync():
		return model.RecordResult{Success: true, Skipped: true, LedgerHash: *rec.LedgerHash}
	default:
		return model.RecordResult{Err: fmt.Errorf("record %s in %s: %w", rec.ID, rec.SyncStatus, model.ErrStateConflict)}
	}
}

// submit retries transient ledger failures with exponential backoff up to
// MaxSubmitAttempts. Rejections are returned immediately.
func (p *recordProcessor) submit(ctx context.Context, id, hash string) (sub model.Submission, attempts int, err error) {
	defer func() {
		p.metrics.ObserveSubmitAttempts(attempts)
	}()

	backoff := clock.NewBackoff(p.cfg.SubmitBackoffInitial, p.cfg.SubmitBackoffMax, backoffMultiplier)
	for attempts < p.cfg.MaxSubmitAttempts {
		attempts++
		sub, err = p.ledger.Submit(ctx, id, hash)
		if err == nil {
			return sub, attempts, nil
		}
		if !errors.Is(err, model.ErrLedgerUnavailable) || attempts == p.cfg.MaxSubmitAttempts {
			break
		}
		delay := backoff.Next()
		p.logger.Warn("ledger submit failed; retrying",
			zap.String("record_id", id),
			zap.Int("attempt", attempts),
			zap.Duration("delay", delay),
			zap.Error(err))
		if sleepErr := p.sleep(ctx, delay); sleepErr != nil {
			return model.Submission{}, attempts, fmt.Errorf("submit %s: %w: %w", id, model.ErrCancelled, sleepErr)
		}
	}
	return model.Submission{}, attempts, fmt.Errorf("submit %s after %d attempts: %w", id, attempts, err)
}

// confirm polls until the submission reaches ConfirmationDepth, the poll
// budget is spent or ConfirmationTimeout elapses.
func (p *recordProcessor) confirm(ctx context.Context, sub model.Submission) (conf model.Confirmation, err error) {
	polls := 0
	defer func() {
		p.metrics.ObserveConfirmationPolls(polls)
	}()

	cctx, cancel := context.WithTimeout(ctx, p.cfg.ConfirmationTimeout)
	defer cancel()

	backoff := clock.NewBackoff(p.cfg.PollInitial, p.cfg.PollMax, backoffMultiplier)
	for polls < p.cfg.MaxConfirmationPolls {
		polls++
		conf, err = p.ledger.Confirmation(cctx, sub)
		switch {
		case err == nil && conf.Confirmations >= p.cfg.ConfirmationDepth:
			return conf, nil
		case err == nil, errors.Is(err, model.ErrLedgerUnavailable):
		case errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil:
			return model.Confirmation{}, p.timeout(sub, polls, err)
		default:
			return model.Confirmation{}, fmt.Errorf("confirm %s: %w", sub.Reference, err)
		}
		if polls == p.cfg.MaxConfirmationPolls {
			break
		}
		if sleepErr := p.sleep(cctx, backoff.Next()); sleepErr != nil {
			if ctx.Err() != nil {
				return model.Confirmation{}, fmt.Errorf("confirm %s: %w: %w", sub.Reference, model.ErrCancelled, ctx.Err())
			}
			return model.Confirmation{}, p.timeout(sub, polls, sleepErr)
		}
	}
	return model.Confirmation{}, p.timeout(sub, polls, err)
}

func (p *recordProcessor) timeout(sub model.Submission, polls int, cause error) error {
	if cause != nil {
		return fmt.Errorf("confirm %s after %d polls: %w (last error: %v)", sub.Reference, polls, model.ErrTimeout, cause)
	}
	return fmt.Errorf("confirm %s after %d polls: %w", sub.Reference, polls, model.ErrTimeout)
}

func (p *recordProcessor) fail(ctx context.Context, logger *zap.Logger, id string, attempts int, cause error) model.RecordResult {
	reason := model.FailureReason(cause)
	logger.Warn("record sync failed", zap.String("reason", reason), zap.Error(cause))
	if _, err := p.store.MarkFailed(ctx, id, reason, p.now()); err != nil {
		logger.Error("mark failed failed", zap.Error(err))
	}
	return model.RecordResult{Err: cause, FailureReason: reason, Attempts: attempts}
}
