package bitcoin

import (
	"context"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/goodnatureofminers/ledgersync-backend/internal/ledgersync/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// RPC is the node and wallet surface used for anchoring and scanning.
	RPC interface {
		GetBlockCount() (int64, error)
		GetBlockHash(blockHeight int64) (*chainhash.Hash, error)
		GetBlockVerboseTx(blockHash *chainhash.Hash) (*btcjson.GetBlockVerboseTxResult, error)
		GetBlockHeaderVerbose(blockHash *chainhash.Hash) (*btcjson.GetBlockHeaderVerboseResult, error)
		GetRawTransactionVerbose(txHash *chainhash.Hash) (*btcjson.TxRawResult, error)
		FundRawTransaction(tx *wire.MsgTx, opts btcjson.FundRawTransactionOpts, isWitness *bool) (*btcjson.FundRawTransactionResult, error)
		SignRawTransactionWithWallet(tx *wire.MsgTx) (*wire.MsgTx, bool, error)
		SendRawTransaction(tx *wire.MsgTx, allowHighFees bool) (*chainhash.Hash, error)
	}

	// Mirror persists confirmed ledger entries for reads.
	Mirror interface {
		InsertLedgerEntries(ctx context.Context, entries []model.LedgerEntry) error
		LedgerHistory(ctx context.Context, network model.Network, recordID string) ([]model.LedgerEntry, error)
		LatestLedgerEntry(ctx context.Context, network model.Network, recordID string) (model.LedgerEntry, error)
	}
)
