// Package verifier compares the canonical hash of stored records with the
// hash currently anchored on the ledger.
package verifier

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/ledgersync-backend/internal/ledgersync/model"
	"github.com/goodnatureofminers/ledgersync-backend/pkg/workerpool"
)

const defaultWorkerCount = 8

// Service verifies records against the ledger. It never mutates the store.
type Service struct {
	store       RecordStore
	ledger      Ledger
	metrics     Metrics
	logger      *zap.Logger
	workerCount int
	now         func() time.Time
}

// NewService creates a verifier. workerCount bounds VerifyMultiple concurrency.
func NewService(store RecordStore, ledger Ledger, metrics Metrics, workerCount int, logger *zap.Logger) (*Service, error) {
	if store == nil {
		return nil, errors.New("record store is required")
	}
	if ledger == nil {
		return nil, errors.New("ledger is required")
	}
	if metrics == nil {
		return nil, errors.New("verifier metrics is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if workerCount <= 0 {
		workerCount = defaultWorkerCount
	}
	return &Service{
		store:       store,
		ledger:      ledger,
		metrics:     metrics,
		logger:      logger.Named("verifier"),
		workerCount: workerCount,
		now:         time.Now,
	}, nil
}

// Verify reports whether the record's current payload hash equals the ledger's
// current hash for it. A record never written to the ledger is unverified.
func (s *Service) Verify(ctx context.Context, recordID string) (result model.VerificationResult, err error) {
	started := time.Now()
	defer func() {
		s.metrics.ObserveVerify(err, result.Verified, started)
	}()

	computedAt := s.now().UTC()
	rec, err := s.store.Get(ctx, recordID)
	if err != nil {
		return model.VerificationResult{}, fmt.Errorf("load record %s: %w", recordID, err)
	}
	dbHash, err := rec.Payload.CanonicalHash()
	if err != nil {
		return model.VerificationResult{}, fmt.Errorf("hash record %s: %w", recordID, err)
	}

	ledgerHash := ""
	entry, err := s.ledger.ReadCurrent(ctx, recordID)
	switch {
	case err == nil:
		ledgerHash = entry.Hash
	case errors.Is(err, model.ErrNotFound):
		err = nil
	default:
		return model.VerificationResult{}, fmt.Errorf("read ledger %s: %w", recordID, err)
	}

	result = model.VerificationResult{
		RecordID:     recordID,
		Verified:     ledgerHash != "" && dbHash == ledgerHash,
		DatabaseHash: dbHash,
		LedgerHash:   ledgerHash,
		ComputedAt:   computedAt,
	}
	if !result.Verified {
		s.logger.Debug("record not verified",
			zap.String("record_id", recordID),
			zap.String("database_hash", dbHash),
			zap.String("ledger_hash", ledgerHash),
		)
	}
	return result, nil
}

// VerifyMultiple verifies each distinct ID independently. A failure for one
// ID is reported in its slot and does not affect the others.
func (s *Service) VerifyMultiple(ctx context.Context, recordIDs []string) map[string]model.BatchVerification {
	ids := model.UniqueIDs(recordIDs)
	s.metrics.ObserveBatch(len(ids))

	results := make([]model.VerificationResult, len(ids))
	index := make(map[string]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}
	errs := workerpool.Each(ctx, s.workerCount, ids, func(ctx context.Context, id string) error {
		r, err := s.Verify(ctx, id)
		results[index[id]] = r
		return err
	})

	out := make(map[string]model.BatchVerification, len(ids))
	for i, id := range ids {
		out[id] = model.BatchVerification{Result: results[i], Err: errs[i]}
	}
	return out
}
