// Package mirror rebuilds the ClickHouse ledger mirror by scanning chain
// blocks for anchored record hashes.
package mirror

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/ledgersync-backend/internal/clock"
	"github.com/goodnatureofminers/ledgersync-backend/internal/ledgersync/model"
)

const (
	defaultWorkerCount    = 16
	defaultChunkSize      = 500
	defaultFollowInterval = time.Minute
)

// Config selects the block range and pacing of a rebuild.
type Config struct {
	Network model.Network
	// From is the first height to scan.
	From uint64
	// To is the last height to scan; zero means tip - ConfirmationDepth + 1.
	To                uint64
	ConfirmationDepth uint64
	// Resume starts at the highest mirrored height when it is above From.
	Resume         bool
	Follow         bool
	FollowInterval time.Duration
	ChunkSize      int
	WorkerCount    int
}

// Result describes one completed pass.
type Result struct {
	From    uint64
	To      uint64
	Heights int
}

type Rebuilder struct {
	logger      *zap.Logger
	cfg         Config
	metrics     RebuilderMetrics
	sleep       func(context.Context, time.Duration) error
	heightRange HeightRange
	newPipeline func() (BlockScanner, EntryWriter)
	lastScanned uint64
	scannedOnce bool
}

func NewRebuilder(
	repo ClickhouseRepository,
	source HistorySource,
	metrics RebuilderMetrics,
	cfg Config,
	logger *zap.Logger,
) (*Rebuilder, error) {
	if repo == nil {
		return nil, errors.New("clickhouse repository is required")
	}
	if source == nil {
		return nil, errors.New("history source is required")
	}
	if metrics == nil {
		return nil, errors.New("mirror rebuilder metrics is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if cfg.ConfirmationDepth == 0 {
		cfg.ConfirmationDepth = 1
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = defaultChunkSize
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = defaultWorkerCount
	}
	if cfg.FollowInterval <= 0 {
		cfg.FollowInterval = defaultFollowInterval
	}
	logger = logger.With(zap.String("network", string(cfg.Network)))

	return &Rebuilder{
		logger:  logger,
		cfg:     cfg,
		metrics: metrics,
		sleep:   clock.SleepWithContext,
		heightRange: &heightRange{
			source:     source,
			repository: repo,
			network:    cfg.Network,
			from:       cfg.From,
			to:         cfg.To,
			depth:      cfg.ConfirmationDepth,
			resume:     cfg.Resume,
		},
		newPipeline: func() (BlockScanner, EntryWriter) {
			w := newEntryWriter(repo, logger)
			return &blockScanner{
				workerCount: cfg.WorkerCount,
				source:      source,
				entryWriter: w,
				metrics:     metrics,
				logger:      logger.Named("blockScanner"),
			}, w
		},
	}, nil
}

// Run rebuilds once, then keeps following the tip when Follow is set.
func (r *Rebuilder) Run(ctx context.Context) error {
	for {
		if _, err := r.Rebuild(ctx); err != nil {
			return err
		}
		if !r.cfg.Follow {
			return nil
		}
		if err := r.sleep(ctx, r.cfg.FollowInterval); err != nil {
			return err
		}
	}
}

// Rebuild scans the resolved range once. Heights already scanned by an earlier
// pass of the same Rebuilder are skipped.
func (r *Rebuilder) Rebuild(ctx context.Context) (Result, error) {
	from, to, err := r.heightRange.Resolve(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("resolve height range: %w", err)
	}
	if r.scannedOnce && from <= r.lastScanned {
		from = r.lastScanned + 1
	}
	if from > to {
		r.logger.Debug("nothing to scan", zap.Uint64("from", from), zap.Uint64("to", to))
		return Result{From: from, To: to}, nil
	}

	scanner, writer := r.newPipeline()
	writerCtx, cancelWriter := context.WithCancel(ctx)
	scanner.SetCancelWriter(cancelWriter)
	writer.Start(writerCtx)

	r.logger.Info("scanning blocks", zap.Uint64("from", from), zap.Uint64("to", to))
	total, err := r.scanRange(ctx, scanner, writer, from, to)
	writer.Stop()
	cancelWriter()
	res := Result{From: from, To: to, Heights: total}
	if err != nil {
		return res, err
	}
	if err := writer.Err(); err != nil {
		return res, fmt.Errorf("flush entries: %w", err)
	}

	r.lastScanned = to
	r.scannedOnce = true
	r.logger.Info("scan finished", zap.Uint64("from", from), zap.Uint64("to", to), zap.Int("heights", total))
	return res, nil
}

func (r *Rebuilder) scanRange(ctx context.Context, scanner BlockScanner, writer EntryWriter, from, to uint64) (int, error) {
	total := 0
	for start := from; ; {
		end := min(to, start+uint64(r.cfg.ChunkSize)-1)
		heights := make([]uint64, 0, end-start+1)
		for h := start; h <= end; h++ {
			heights = append(heights, h)
		}

		started := time.Now()
		err := r.scanChunk(ctx, scanner, writer, heights)
		r.metrics.ObserveProcessBatch(err, len(heights), started)
		if err != nil {
			r.logger.Error("scan chunk failed", zap.Uint64("from", start), zap.Uint64("to", end), zap.Error(err))
			return total, err
		}
		total += len(heights)
		if end == to {
			return total, nil
		}
		start = end + 1
	}
}

func (r *Rebuilder) scanChunk(ctx context.Context, scanner BlockScanner, writer EntryWriter, heights []uint64) error {
	if err := scanner.Scan(ctx, heights); err != nil {
		return err
	}
	return writer.Err()
}
