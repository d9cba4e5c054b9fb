// Package app builds the backends shared by the binaries from command-line
// options.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/btcsuite/btcd/rpcclient"

	"github.com/goodnatureofminers/ledgersync-backend/internal/ledgersync/model"
)

type (
	// RecordStore is the union of the record store contracts used by the services.
	RecordStore interface {
		Get(ctx context.Context, id string) (model.Record, error)
		Create(ctx context.Context, id string, payload model.Payload, now time.Time) (model.Record, error)
		UpdatePayload(ctx context.Context, id string, payload model.Payload, now time.Time, editWindow time.Duration) (model.Record, error)
		ListBySyncStatus(ctx context.Context, statuses []model.SyncStatus, limit int) ([]model.Record, error)
		ClaimForSync(ctx context.Context, id string, now time.Time) (model.Record, bool, error)
		MarkSynced(ctx context.Context, id, ledgerHash string, syncedAt time.Time) (model.Record, error)
		MarkFailed(ctx context.Context, id, reason string, at time.Time) (model.Record, error)
		RecoverStalePending(ctx context.Context, olderThan, now time.Time) ([]string, error)
		SyncCounts(ctx context.Context) (model.SyncCounts, error)
	}

	// Ledger is the ledger client contract.
	Ledger interface {
		Submit(ctx context.Context, recordID, hash string) (model.Submission, error)
		Confirmation(ctx context.Context, sub model.Submission) (model.Confirmation, error)
		Write(ctx context.Context, recordID, hash string) (model.LedgerEntry, error)
		ReadCurrent(ctx context.Context, recordID string) (model.LedgerEntry, error)
		ReadHistory(ctx context.Context, recordID string) ([]model.LedgerEntry, error)
		Ping(ctx context.Context) bool
	}

	// Cache is the verification cache contract.
	Cache interface {
		Get(ctx context.Context, recordID string) (model.VerificationResult, bool)
		Put(ctx context.Context, recordID string, result model.VerificationResult, ttl time.Duration) bool
		Invalidate(ctx context.Context, recordID string)
	}
)

// RPCOptions locate the Bitcoin node JSON-RPC endpoint.
type RPCOptions struct {
	RPCURL      string `long:"rpc-url" env:"LEDGERSYNC_RPC_URL" description:"Bitcoin RPC URL" default:"http://127.0.0.1:8332"`
	RPCUser     string `long:"rpc-user" env:"LEDGERSYNC_RPC_USER" description:"Bitcoin RPC username"`
	RPCPassword string `long:"rpc-password" env:"LEDGERSYNC_RPC_PASSWORD" description:"Bitcoin RPC password"`
	Network     string `long:"network" env:"LEDGERSYNC_NETWORK" description:"bitcoin network (mainnet, testnet, regtest, signet)" default:"regtest"`
}

// NewRPCClient connects to the node over HTTP POST mode.
func (o RPCOptions) NewRPCClient() (*rpcclient.Client, error) {
	parsed, err := url.Parse(o.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("parse rpc url: %w", err)
	}
	if parsed.Scheme != "http" {
		return nil, fmt.Errorf("rpc url scheme %q not supported, use http", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("rpc url missing host")
	}

	host := parsed.Host
	if parsed.Path != "" && parsed.Path != "/" {
		// wallet endpoints look like /wallet/<name>
		host += parsed.Path
	}
	cfg := &rpcclient.ConnConfig{
		Host:         host,
		User:         o.RPCUser,
		Pass:         o.RPCPassword,
		HTTPPostMode: true,
		DisableTLS:   true,
	}
	return rpcclient.New(cfg, nil)
}
