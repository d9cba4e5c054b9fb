package transport

import (
	"context"
	"time"

	"github.com/goodnatureofminers/ledgersync-backend/internal/ledgersync/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Verifier interface {
		Verify(ctx context.Context, recordID string) (model.VerificationResult, error)
		VerifyMultiple(ctx context.Context, recordIDs []string) map[string]model.BatchVerification
	}
	Syncer interface {
		Sync(ctx context.Context, recordIDs []string) (model.JobSnapshot, error)
		Start(ctx context.Context, recordIDs []string) (model.JobSnapshot, error)
		Job(jobID string) (model.JobSnapshot, error)
		Cancel(jobID string) (bool, error)
		Status(ctx context.Context) (model.SyncStatusSummary, error)
	}
	Ledger interface {
		ReadHistory(ctx context.Context, recordID string) ([]model.LedgerEntry, error)
		Ping(ctx context.Context) bool
	}
	RecordStore interface {
		Create(ctx context.Context, id string, payload model.Payload, now time.Time) (model.Record, error)
		UpdatePayload(ctx context.Context, id string, payload model.Payload, now time.Time, editWindow time.Duration) (model.Record, error)
	}
	VerificationCache interface {
		Get(ctx context.Context, recordID string) (model.VerificationResult, bool)
		Put(ctx context.Context, recordID string, result model.VerificationResult, ttl time.Duration) bool
	}
)
