package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/ledgersync-backend/internal/ledgersync/model"
)

const maxBlockHeightQuery = `
SELECT coalesce(max(block_height), toUInt64(0)) AS max_height
FROM ledger_entries
WHERE network = ?`

// MaxBlockHeight returns the highest block that contributed a mirrored entry.
func (r *Repository) MaxBlockHeight(ctx context.Context, network model.Network) (uint64, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("max_block_height", network, err, start)
	}()

	rows, err := r.conn.Query(ctx, maxBlockHeightQuery, string(network))
	if err != nil {
		return 0, fmt.Errorf("query max block height: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	var height uint64
	if !rows.Next() {
		return 0, fmt.Errorf("max block height not found")
	}

	if err = rows.Scan(&height); err != nil {
		return 0, fmt.Errorf("scan max block height: %w", err)
	}
	if err = rows.Err(); err != nil {
		return 0, fmt.Errorf("iterate max block height: %w", err)
	}

	return height, nil
}
