package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/ledgersync-backend/internal/ledgersync/model"
)

const ledgerHistoryQuery = `
SELECT
	hash,
	reference,
	block_reference,
	block_height,
	timestamp
FROM ledger_entries FINAL
WHERE network = ? AND record_id = ?
ORDER BY block_height ASC, reference ASC`

// LedgerHistory returns every mirrored entry for a record, oldest first.
func (r *Repository) LedgerHistory(ctx context.Context, network model.Network, recordID string) ([]model.LedgerEntry, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("ledger_history", network, err, start)
	}()

	rows, err := r.conn.Query(ctx, ledgerHistoryQuery, string(network), recordID)
	if err != nil {
		return nil, fmt.Errorf("query ledger history: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	var entries []model.LedgerEntry
	for rows.Next() {
		entry := model.LedgerEntry{Network: network, RecordID: recordID}
		if err = rows.Scan(
			&entry.Hash,
			&entry.Reference,
			&entry.BlockReference,
			&entry.BlockHeight,
			&entry.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger history: %w", err)
	}

	return entries, nil
}
