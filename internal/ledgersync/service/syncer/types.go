package syncer

import (
	"context"
	"time"

	"github.com/goodnatureofminers/ledgersync-backend/internal/ledgersync/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	RecordStore interface {
		ListBySyncStatus(ctx context.Context, statuses []model.SyncStatus, limit int) ([]model.Record, error)
		ClaimForSync(ctx context.Context, id string, now time.Time) (model.Record, bool, error)
		MarkSynced(ctx context.Context, id, ledgerHash string, syncedAt time.Time) (model.Record, error)
		MarkFailed(ctx context.Context, id, reason string, at time.Time) (model.Record, error)
		RecoverStalePending(ctx context.Context, olderThan, now time.Time) ([]string, error)
		SyncCounts(ctx context.Context) (model.SyncCounts, error)
	}

	Ledger interface {
		Submit(ctx context.Context, recordID, hash string) (model.Submission, error)
		Confirmation(ctx context.Context, sub model.Submission) (model.Confirmation, error)
		Ping(ctx context.Context) bool
	}

	CoordinatorMetrics interface {
		ObserveJob(snapshot model.JobSnapshot, started time.Time)
		ObserveRecord(result model.RecordResult, started time.Time)
		ObserveSubmitAttempts(attempts int)
		ObserveConfirmationPolls(polls int)
	}

	WorkerMetrics interface {
		ObserveIteration(err error, started time.Time)
		ObserveRecovered(count int)
	}

	// Syncer is the part of the Coordinator driven by the Worker.
	Syncer interface {
		Sync(ctx context.Context, recordIDs []string) (model.JobSnapshot, error)
		RecoverStalePending(ctx context.Context, olderThan time.Duration) ([]string, error)
	}
)
