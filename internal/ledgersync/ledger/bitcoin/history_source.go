package bitcoin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/ledgersync-backend/internal/ledgersync/model"
	"github.com/goodnatureofminers/ledgersync-backend/pkg/safe"
)

// HistorySource reads anchored ledger entries block by block.
type HistorySource struct {
	rpc     RPC
	network model.Network
}

// NewHistorySource creates a HistorySource for the given network.
func NewHistorySource(rpc RPC, network model.Network) (*HistorySource, error) {
	if rpc == nil {
		return nil, errors.New("rpc client is required")
	}
	if _, err := chainParamsForNetwork(network); err != nil {
		return nil, err
	}
	return &HistorySource{rpc: rpc, network: network}, nil
}

// LatestHeight returns the height of the node's best block.
func (s *HistorySource) LatestHeight(_ context.Context) (uint64, error) {
	count, err := s.rpc.GetBlockCount()
	if err != nil {
		return 0, err
	}
	height, err := safe.Uint64(count)
	if err != nil {
		return 0, fmt.Errorf("block count overflow: %w", err)
	}
	return height, nil
}

// FetchEntries returns every anchor found in the block at height.
func (s *HistorySource) FetchEntries(ctx context.Context, height uint64) ([]model.LedgerEntry, error) {
	rpcHeight, err := safe.Int64(height)
	if err != nil {
		return nil, fmt.Errorf("block height %d exceeds rpc limit: %w", height, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hash, err := s.rpc.GetBlockHash(rpcHeight)
	if err != nil {
		return nil, fmt.Errorf("get block hash at height %d: %w", height, err)
	}
	block, err := s.rpc.GetBlockVerboseTx(hash)
	if err != nil {
		return nil, fmt.Errorf("get block %s: %w", hash, err)
	}

	timestamp := time.Unix(block.Time, 0).UTC()
	var entries []model.LedgerEntry
	for _, tx := range block.Tx {
		for _, a := range anchorsOf(tx) {
			entries = append(entries, model.LedgerEntry{
				Network:        s.network,
				RecordID:       a.recordID,
				Hash:           a.hash,
				BlockReference: BlockReference(block.Hash, height, tx.Txid),
				BlockHeight:    height,
				Reference:      tx.Txid,
				Timestamp:      timestamp,
			})
		}
	}
	return entries, nil
}
