package mirror

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/ledgersync-backend/pkg/workerpool"
)

type blockScanner struct {
	workerCount  int
	source       HistorySource
	entryWriter  EntryWriter
	metrics      RebuilderMetrics
	logger       *zap.Logger
	cancelWriter func()
}

func (p *blockScanner) SetCancelWriter(cancel func()) {
	p.cancelWriter = cancel
}

func (p *blockScanner) Scan(ctx context.Context, heights []uint64) error {
	return workerpool.Process(ctx, p.workerCount, heights, p.scanHeight, p.cancelWriter)
}

func (p *blockScanner) scanHeight(ctx context.Context, height uint64) (err error) {
	started := time.Now()
	defer func() {
		p.metrics.ObserveProcessHeight(err, height, started)
	}()

	entries, err := p.source.FetchEntries(ctx, height)
	if err != nil {
		p.logger.Error("fetch entries failed", zap.Uint64("height", height), zap.Error(err))
		return fmt.Errorf("fetch entries at height %d: %w", height, err)
	}
	if len(entries) == 0 {
		return nil
	}
	p.metrics.ObserveEntries(len(entries))

	if err = p.entryWriter.WriteEntries(ctx, entries); err != nil {
		p.logger.Error("write entries failed", zap.Uint64("height", height), zap.Error(err))
		return fmt.Errorf("write entries at height %d: %w", height, err)
	}
	return nil
}
