package mirror

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/ledgersync-backend/internal/ledgersync/model"
	"github.com/goodnatureofminers/ledgersync-backend/pkg/batcher"
)

const (
	entryBatcherCapacity         = 1000
	entryBatcherFlushInterval    = 10 * time.Second
	entryBatcherFlushesPerSecond = 5
)

type entryWriter struct {
	repo    ClickhouseRepository
	batcher *batcher.Batcher[model.LedgerEntry]
}

func newEntryWriter(repo ClickhouseRepository, logger *zap.Logger) *entryWriter {
	w := &entryWriter{repo: repo}
	w.batcher = batcher.New[model.LedgerEntry](
		logger.Named("entryBatcher"),
		repo.InsertLedgerEntries,
		entryBatcherCapacity,
		entryBatcherFlushInterval,
		entryBatcherFlushesPerSecond,
	)
	return w
}

func (w *entryWriter) Start(ctx context.Context) {
	w.batcher.Start(ctx)
}

func (w *entryWriter) Stop() {
	w.batcher.Stop()
}

func (w *entryWriter) Err() error {
	return w.batcher.Err()
}

func (w *entryWriter) WriteEntries(ctx context.Context, entries []model.LedgerEntry) error {
	for _, e := range entries {
		if err := w.batcher.Add(ctx, e); err != nil {
			return err
		}
	}
	return nil
}
