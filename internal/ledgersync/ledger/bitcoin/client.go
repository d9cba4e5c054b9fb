// Package bitcoin anchors record hashes in OP_RETURN outputs of wallet-funded
// Bitcoin transactions and reads them back through the ClickHouse mirror.
package bitcoin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/ledgersync-backend/internal/clock"
	"github.com/goodnatureofminers/ledgersync-backend/internal/ledgersync/model"
	"github.com/goodnatureofminers/ledgersync-backend/pkg/safe"
)

// rpcVerifyRejected is returned by the node when a transaction fails mempool policy.
const rpcVerifyRejected btcjson.RPCErrorCode = -26

// Config tunes the Bitcoin ledger client.
type Config struct {
	Network           model.Network
	ConfirmationDepth uint64
	PollInterval      time.Duration
	// FeeRate in satoshi per virtual byte; zero lets the wallet estimate.
	FeeRate          float64
	SubmitsPerSecond int
}

// Client implements the ledger contract on a Bitcoin node with a wallet.
type Client struct {
	rpc     RPC
	mirror  Mirror
	params  *chaincfg.Params
	cfg     Config
	limiter ratelimit.Limiter
	logger  *zap.Logger
	now     func() time.Time
	sleep   func(ctx context.Context, d time.Duration) error
}

// NewClient validates cfg and constructs a Client.
func NewClient(rpc RPC, mirror Mirror, cfg Config, logger *zap.Logger) (*Client, error) {
	if rpc == nil {
		return nil, errors.New("rpc client is required")
	}
	if mirror == nil {
		return nil, errors.New("ledger mirror is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	params, err := chainParamsForNetwork(cfg.Network)
	if err != nil {
		return nil, err
	}
	if cfg.ConfirmationDepth == 0 {
		cfg.ConfirmationDepth = 1
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 30 * time.Second
	}
	limiter := ratelimit.NewUnlimited()
	if cfg.SubmitsPerSecond > 0 {
		limiter = ratelimit.New(cfg.SubmitsPerSecond)
	}

	return &Client{
		rpc:     rpc,
		mirror:  mirror,
		params:  params,
		cfg:     cfg,
		limiter: limiter,
		logger:  logger.Named("bitcoin_ledger").With(zap.String("network", params.Name)),
		now:     time.Now,
		sleep:   clock.SleepWithContext,
	}, nil
}

// Network returns the network the client anchors to.
func (c *Client) Network() model.Network {
	return c.cfg.Network
}

// Submit anchors hash for recordID in a new wallet-funded transaction.
func (c *Client) Submit(ctx context.Context, recordID, hash string) (model.Submission, error) {
	script, err := EncodeAnchor(recordID, hash)
	if err != nil {
		return model.Submission{}, err
	}
	if err := ctx.Err(); err != nil {
		return model.Submission{}, err
	}
	c.limiter.Take()

	tx := wire.NewMsgTx(wire.TxVersion)
	tx.AddTxOut(wire.NewTxOut(0, script))

	lockUnspents := true
	opts := btcjson.FundRawTransactionOpts{LockUnspents: &lockUnspents}
	if c.cfg.FeeRate > 0 {
		// the wallet expects BTC per kvB
		feeRate := btcutil.Amount(c.cfg.FeeRate * 1000).ToBTC()
		opts.FeeRate = &feeRate
	}

	funded, err := c.rpc.FundRawTransaction(tx, opts, nil)
	if err != nil {
		return model.Submission{}, classify("fund anchor transaction", err)
	}
	signed, complete, err := c.rpc.SignRawTransactionWithWallet(funded.Transaction)
	if err != nil {
		return model.Submission{}, classify("sign anchor transaction", err)
	}
	if !complete {
		return model.Submission{}, fmt.Errorf("sign anchor transaction: wallet returned incomplete signatures: %w", model.ErrLedgerUnavailable)
	}
	txid, err := c.rpc.SendRawTransaction(signed, false)
	if err != nil {
		return model.Submission{}, classify("send anchor transaction", err)
	}

	c.logger.Debug("anchor transaction sent",
		zap.String("record_id", recordID),
		zap.String("txid", txid.String()),
	)
	return model.Submission{
		RecordID:    recordID,
		Hash:        hash,
		Reference:   txid.String(),
		SubmittedAt: c.now().UTC(),
	}, nil
}

// Confirmation reports how deeply sub is buried. Once it reaches the
// configured depth the entry is written to the mirror.
func (c *Client) Confirmation(ctx context.Context, sub model.Submission) (model.Confirmation, error) {
	txHash, err := chainhash.NewHashFromStr(sub.Reference)
	if err != nil {
		return model.Confirmation{}, fmt.Errorf("parse txid %q: %w", sub.Reference, model.ErrLedgerRejected)
	}
	if err := ctx.Err(); err != nil {
		return model.Confirmation{}, err
	}

	tx, err := c.rpc.GetRawTransactionVerbose(txHash)
	if err != nil {
		return model.Confirmation{}, fmt.Errorf("get anchor transaction %s: %w: %w", sub.Reference, model.ErrLedgerUnavailable, err)
	}
	if !anchors(*tx, sub.RecordID, sub.Hash) {
		return model.Confirmation{}, fmt.Errorf("transaction %s does not anchor %s: %w", sub.Reference, sub.RecordID, model.ErrLedgerRejected)
	}

	conf := model.Confirmation{
		Entry: model.LedgerEntry{
			Network:   c.cfg.Network,
			RecordID:  sub.RecordID,
			Hash:      sub.Hash,
			Reference: sub.Reference,
			Timestamp: sub.SubmittedAt,
		},
		Confirmations: tx.Confirmations,
	}
	if tx.Confirmations < c.cfg.ConfirmationDepth || tx.BlockHash == "" {
		return conf, nil
	}

	entry, err := c.entryFromTx(*tx, sub.RecordID, sub.Hash)
	if err != nil {
		return model.Confirmation{}, err
	}
	if err := c.mirror.InsertLedgerEntries(ctx, []model.LedgerEntry{entry}); err != nil {
		return model.Confirmation{}, fmt.Errorf("mirror ledger entry: %w: %w", model.ErrLedgerUnavailable, err)
	}
	conf.Entry = entry
	return conf, nil
}

// Write submits hash and waits until it reaches the configured depth.
func (c *Client) Write(ctx context.Context, recordID, hash string) (model.LedgerEntry, error) {
	sub, err := c.Submit(ctx, recordID, hash)
	if err != nil {
		return model.LedgerEntry{}, err
	}
	for {
		conf, err := c.Confirmation(ctx, sub)
		if err != nil && !errors.Is(err, model.ErrLedgerUnavailable) {
			return model.LedgerEntry{}, err
		}
		if err == nil && conf.Confirmations >= c.cfg.ConfirmationDepth {
			return conf.Entry, nil
		}
		if err := c.sleep(ctx, c.cfg.PollInterval); err != nil {
			return model.LedgerEntry{}, fmt.Errorf("wait for %s: %w: %w", sub.Reference, model.ErrTimeout, err)
		}
	}
}

// ReadCurrent returns the latest mirrored entry after checking it against the chain.
func (c *Client) ReadCurrent(ctx context.Context, recordID string) (model.LedgerEntry, error) {
	entry, err := c.mirror.LatestLedgerEntry(ctx, c.cfg.Network, recordID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.LedgerEntry{}, err
		}
		return model.LedgerEntry{}, fmt.Errorf("read ledger mirror: %w: %w", model.ErrLedgerUnavailable, err)
	}

	txHash, err := chainhash.NewHashFromStr(entry.Reference)
	if err != nil {
		return model.LedgerEntry{}, fmt.Errorf("mirror reference %q: %w", entry.Reference, model.ErrLedgerUnavailable)
	}
	tx, err := c.rpc.GetRawTransactionVerbose(txHash)
	if err != nil {
		return model.LedgerEntry{}, fmt.Errorf("get anchor transaction %s: %w: %w", entry.Reference, model.ErrLedgerUnavailable, err)
	}
	if !anchors(*tx, recordID, entry.Hash) || tx.Confirmations == 0 {
		c.logger.Warn("mirror entry not backed by chain",
			zap.String("record_id", recordID),
			zap.String("txid", entry.Reference),
			zap.Uint64("confirmations", tx.Confirmations),
		)
		return model.LedgerEntry{}, fmt.Errorf("mirror entry %s for %s not on chain: %w", entry.Reference, recordID, model.ErrLedgerUnavailable)
	}
	return entry, nil
}

// ReadHistory returns every mirrored entry for recordID, oldest first.
func (c *Client) ReadHistory(ctx context.Context, recordID string) ([]model.LedgerEntry, error) {
	entries, err := c.mirror.LedgerHistory(ctx, c.cfg.Network, recordID)
	if err != nil {
		return nil, fmt.Errorf("read ledger mirror: %w: %w", model.ErrLedgerUnavailable, err)
	}
	if entries == nil {
		entries = []model.LedgerEntry{}
	}
	return entries, nil
}

// Ping reports whether the node answers.
func (c *Client) Ping(_ context.Context) bool {
	_, err := c.rpc.GetBlockCount()
	return err == nil
}

func (c *Client) entryFromTx(tx btcjson.TxRawResult, recordID, hash string) (model.LedgerEntry, error) {
	blockHash, err := chainhash.NewHashFromStr(tx.BlockHash)
	if err != nil {
		return model.LedgerEntry{}, fmt.Errorf("parse block hash %q: %w", tx.BlockHash, model.ErrLedgerUnavailable)
	}
	header, err := c.rpc.GetBlockHeaderVerbose(blockHash)
	if err != nil {
		return model.LedgerEntry{}, fmt.Errorf("get block header %s: %w: %w", tx.BlockHash, model.ErrLedgerUnavailable, err)
	}
	height, err := safe.Uint64(header.Height)
	if err != nil {
		return model.LedgerEntry{}, fmt.Errorf("block %s height: %w: %w", tx.BlockHash, model.ErrLedgerUnavailable, err)
	}

	return model.LedgerEntry{
		Network:        c.cfg.Network,
		RecordID:       recordID,
		Hash:           hash,
		BlockReference: BlockReference(tx.BlockHash, height, tx.Txid),
		BlockHeight:    height,
		Reference:      tx.Txid,
		Timestamp:      time.Unix(tx.Blocktime, 0).UTC(),
	}, nil
}

// BlockReference formats the opaque block reference of an entry.
func BlockReference(blockHash string, height uint64, txid string) string {
	return fmt.Sprintf("%s:%d:%s", blockHash, height, txid)
}

func anchors(tx btcjson.TxRawResult, recordID, hash string) bool {
	for _, a := range anchorsOf(tx) {
		if a.recordID == recordID && a.hash == hash {
			return true
		}
	}
	return false
}

// classify maps node errors onto ledger sentinels: policy and malformed
// transaction errors are rejections, everything else is transient.
func classify(op string, err error) error {
	var rpcErr *btcjson.RPCError
	if errors.As(err, &rpcErr) {
		switch rpcErr.Code {
		case btcjson.ErrRPCVerify, rpcVerifyRejected, btcjson.ErrRPCDeserialization,
			btcjson.ErrRPCInvalidParameter, btcjson.ErrRPCType:
			return fmt.Errorf("%s: %w: %w", op, model.ErrLedgerRejected, err)
		}
	}
	return fmt.Errorf("%s: %w: %w", op, model.ErrLedgerUnavailable, err)
}

func chainParamsForNetwork(network model.Network) (*chaincfg.Params, error) {
	switch strings.ToLower(string(network)) {
	case "main", "mainnet", "bitcoin":
		return &chaincfg.MainNetParams, nil
	case "testnet", "testnet3":
		return &chaincfg.TestNet3Params, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	case "signet":
		return &chaincfg.SigNetParams, nil
	default:
		return nil, fmt.Errorf("unsupported network %q", network)
	}
}
