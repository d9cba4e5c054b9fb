// Package rpcclient wraps the btcd RPC client with per-call metrics.
package rpcclient

import (
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// ObservedClient exposes the node and wallet calls used for anchoring, each
// observed by RPCMetrics.
type ObservedClient struct {
	client     Client
	rpcMetrics RPCMetrics
}

// NewObservedClient wraps client, usually a *rpcclient.Client from btcd.
func NewObservedClient(client Client, rpcMetrics RPCMetrics) *ObservedClient {
	return &ObservedClient{
		client:     client,
		rpcMetrics: rpcMetrics,
	}
}

func (r *ObservedClient) GetBlockCount() (count int64, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_block_count", err, started)
	}()
	return r.client.GetBlockCount()
}

func (r *ObservedClient) GetBlockHash(blockHeight int64) (hash *chainhash.Hash, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_block_hash", err, started)
	}()
	return r.client.GetBlockHash(blockHeight)
}

func (r *ObservedClient) GetBlockVerboseTx(blockHash *chainhash.Hash) (res *btcjson.GetBlockVerboseTxResult, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_block_verbose_tx", err, started)
	}()
	return r.client.GetBlockVerboseTx(blockHash)
}

func (r *ObservedClient) GetBlockHeaderVerbose(blockHash *chainhash.Hash) (res *btcjson.GetBlockHeaderVerboseResult, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_block_header_verbose", err, started)
	}()
	return r.client.GetBlockHeaderVerbose(blockHash)
}

func (r *ObservedClient) GetRawTransactionVerbose(txHash *chainhash.Hash) (res *btcjson.TxRawResult, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_raw_transaction_verbose", err, started)
	}()
	return r.client.GetRawTransactionVerbose(txHash)
}

func (r *ObservedClient) FundRawTransaction(tx *wire.MsgTx, opts btcjson.FundRawTransactionOpts, isWitness *bool) (res *btcjson.FundRawTransactionResult, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("fund_raw_transaction", err, started)
	}()
	return r.client.FundRawTransaction(tx, opts, isWitness)
}

func (r *ObservedClient) SignRawTransactionWithWallet(tx *wire.MsgTx) (signed *wire.MsgTx, complete bool, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("sign_raw_transaction_with_wallet", err, started)
	}()
	return r.client.SignRawTransactionWithWallet(tx)
}

func (r *ObservedClient) SendRawTransaction(tx *wire.MsgTx, allowHighFees bool) (txid *chainhash.Hash, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("send_raw_transaction", err, started)
	}()
	return r.client.SendRawTransaction(tx, allowHighFees)
}
