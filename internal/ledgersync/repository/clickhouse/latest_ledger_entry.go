package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/ledgersync-backend/internal/ledgersync/model"
)

const latestLedgerEntryQuery = `
SELECT
	hash,
	reference,
	block_reference,
	block_height,
	timestamp
FROM ledger_entries FINAL
WHERE network = ? AND record_id = ?
ORDER BY block_height DESC, reference DESC
LIMIT 1`

// LatestLedgerEntry returns the most recent mirrored entry for a record or
// model.ErrNotFound when the record was never mirrored.
func (r *Repository) LatestLedgerEntry(ctx context.Context, network model.Network, recordID string) (model.LedgerEntry, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("latest_ledger_entry", network, err, start)
	}()

	rows, err := r.conn.Query(ctx, latestLedgerEntryQuery, string(network), recordID)
	if err != nil {
		return model.LedgerEntry{}, fmt.Errorf("query latest ledger entry: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return model.LedgerEntry{}, fmt.Errorf("iterate latest ledger entry: %w", err)
		}
		return model.LedgerEntry{}, fmt.Errorf("ledger entry for %s: %w", recordID, model.ErrNotFound)
	}

	entry := model.LedgerEntry{Network: network, RecordID: recordID}
	if err = rows.Scan(
		&entry.Hash,
		&entry.Reference,
		&entry.BlockReference,
		&entry.BlockHeight,
		&entry.Timestamp,
	); err != nil {
		return model.LedgerEntry{}, fmt.Errorf("scan latest ledger entry: %w", err)
	}
	if err = rows.Err(); err != nil {
		return model.LedgerEntry{}, fmt.Errorf("iterate latest ledger entry: %w", err)
	}

	return entry, nil
}
