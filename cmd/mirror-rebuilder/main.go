package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/ledgersync-backend/internal/app"
	"github.com/goodnatureofminers/ledgersync-backend/internal/ledgersync/ledger/bitcoin"
	"github.com/goodnatureofminers/ledgersync-backend/internal/ledgersync/model"
	"github.com/goodnatureofminers/ledgersync-backend/internal/ledgersync/repository/clickhouse"
	"github.com/goodnatureofminers/ledgersync-backend/internal/ledgersync/service/mirror"
	"github.com/goodnatureofminers/ledgersync-backend/internal/metrics"
	observedrpc "github.com/goodnatureofminers/ledgersync-backend/internal/pkg/btcd/rpcclient"
)

type config struct {
	app.RPCOptions
	ClickhouseDSN     string        `long:"clickhouse-dsn" env:"MIRROR_REBUILDER_CLICKHOUSE_DSN" description:"ClickHouse DSN" required:"true"`
	From              uint64        `long:"from" env:"MIRROR_REBUILDER_FROM" description:"first block height to scan"`
	To                uint64        `long:"to" env:"MIRROR_REBUILDER_TO" description:"last block height to scan, 0 scans up to the confirmed tip"`
	ConfirmationDepth uint64        `long:"confirmation-depth" env:"MIRROR_REBUILDER_CONFIRMATION_DEPTH" description:"confirmations a block needs before it is scanned" default:"1"`
	Resume            bool          `long:"resume" env:"MIRROR_REBUILDER_RESUME" description:"start at the highest mirrored height"`
	Follow            bool          `long:"follow" env:"MIRROR_REBUILDER_FOLLOW" description:"keep scanning new blocks"`
	FollowInterval    time.Duration `long:"follow-interval" env:"MIRROR_REBUILDER_FOLLOW_INTERVAL" description:"wait between follow passes" default:"1m"`
	ChunkSize         int           `long:"chunk-size" env:"MIRROR_REBUILDER_CHUNK_SIZE" description:"heights per processing chunk" default:"500"`
	Workers           int           `long:"workers" env:"MIRROR_REBUILDER_WORKERS" description:"concurrent block fetches" default:"16"`
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
		logger.Fatal("mirror rebuilder failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	network := model.Network(cfg.Network)

	repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, metrics.NewClickhouseRepository())
	if err != nil {
		return fmt.Errorf("init repository: %w", err)
	}
	defer func() {
		_ = repo.Close()
	}()

	rpc, err := cfg.NewRPCClient()
	if err != nil {
		return fmt.Errorf("init btc rpc client: %w", err)
	}
	defer func() {
		rpc.Shutdown()
		rpc.WaitForShutdown()
	}()

	source, err := bitcoin.NewHistorySource(observedrpc.NewObservedClient(rpc, metrics.NewLedgerClient(network)), network)
	if err != nil {
		return err
	}

	rebuilder, err := mirror.NewRebuilder(repo, source, metrics.NewMirrorRebuilder(network), mirror.Config{
		Network:           network,
		From:              cfg.From,
		To:                cfg.To,
		ConfirmationDepth: cfg.ConfirmationDepth,
		Resume:            cfg.Resume,
		Follow:            cfg.Follow,
		FollowInterval:    cfg.FollowInterval,
		ChunkSize:         cfg.ChunkSize,
		WorkerCount:       cfg.Workers,
	}, logger)
	if err != nil {
		return err
	}
	return rebuilder.Run(ctx)
}
