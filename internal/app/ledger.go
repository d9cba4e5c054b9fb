package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/ledgersync-backend/internal/ledgersync/ledger/bitcoin"
	memledger "github.com/goodnatureofminers/ledgersync-backend/internal/ledgersync/ledger/memory"
	"github.com/goodnatureofminers/ledgersync-backend/internal/ledgersync/model"
	"github.com/goodnatureofminers/ledgersync-backend/internal/ledgersync/repository/clickhouse"
	"github.com/goodnatureofminers/ledgersync-backend/internal/metrics"
	observedrpc "github.com/goodnatureofminers/ledgersync-backend/internal/pkg/btcd/rpcclient"
)

// LedgerOptions select and tune the ledger client.
type LedgerOptions struct {
	RPCOptions
	Ledger            string        `long:"ledger" env:"LEDGERSYNC_LEDGER" description:"ledger backend" choice:"bitcoin" choice:"memory" default:"bitcoin"`
	ClickhouseDSN     string        `long:"clickhouse-dsn" env:"LEDGERSYNC_CLICKHOUSE_DSN" description:"ClickHouse DSN of the ledger mirror"`
	ConfirmationDepth uint64        `long:"confirmation-depth" env:"LEDGERSYNC_CONFIRMATION_DEPTH" description:"confirmations required before a write counts" default:"1"`
	PollInterval      time.Duration `long:"poll-interval" env:"LEDGERSYNC_POLL_INTERVAL" description:"confirmation poll interval of blocking writes" default:"30s"`
	FeeRate           float64       `long:"fee-rate" env:"LEDGERSYNC_FEE_RATE" description:"anchor fee rate in sat/vB, 0 lets the wallet estimate"`
	SubmitsPerSecond  int           `long:"submits-per-second" env:"LEDGERSYNC_SUBMITS_PER_SECOND" description:"ledger submit rate limit, 0 disables it"`
}

// OpenLedger builds the configured ledger client. The returned close func is
// never nil.
func (o LedgerOptions) OpenLedger(logger *zap.Logger) (Ledger, func(), error) {
	switch o.Ledger {
	case "memory":
		logger.Warn("using in-memory ledger, entries are lost on exit")
		return memledger.New(o.ConfirmationDepth, time.Now), func() {}, nil
	case "bitcoin", "":
		network := model.Network(o.Network)
		mirror, err := clickhouse.NewRepository(o.ClickhouseDSN, metrics.NewClickhouseRepository())
		if err != nil {
			return nil, nil, fmt.Errorf("init ledger mirror: %w", err)
		}
		rpc, err := o.NewRPCClient()
		if err != nil {
			_ = mirror.Close()
			return nil, nil, fmt.Errorf("init btc rpc client: %w", err)
		}
		closeAll := func() {
			rpc.Shutdown()
			rpc.WaitForShutdown()
			if err := mirror.Close(); err != nil {
				logger.Warn("close clickhouse", zap.Error(err))
			}
		}

		client, err := bitcoin.NewClient(
			observedrpc.NewObservedClient(rpc, metrics.NewLedgerClient(network)),
			mirror,
			bitcoin.Config{
				Network:           network,
				ConfirmationDepth: o.ConfirmationDepth,
				PollInterval:      o.PollInterval,
				FeeRate:           o.FeeRate,
				SubmitsPerSecond:  o.SubmitsPerSecond,
			},
			logger,
		)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		return client, closeAll, nil
	default:
		return nil, nil, fmt.Errorf("unknown ledger %q", o.Ledger)
	}
}
