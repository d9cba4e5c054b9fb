package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/ledgersync-backend/internal/ledgersync/model"
)

const insertLedgerEntriesQuery = `
INSERT INTO ledger_entries (
	network,
	record_id,
	hash,
	reference,
	block_reference,
	block_height,
	timestamp
) VALUES`

// InsertLedgerEntries appends mirror rows. Re-inserting an entry with the same
// network, record and reference replaces the previous row on merge.
func (r *Repository) InsertLedgerEntries(ctx context.Context, entries []model.LedgerEntry) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_ledger_entries", firstNetwork(entries), err, start)
	}()

	if len(entries) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertLedgerEntriesQuery)
	if err != nil {
		return fmt.Errorf("prepare ledger entries batch: %w", err)
	}

	for _, entry := range entries {
		if err = batch.Append(
			string(entry.Network),
			entry.RecordID,
			entry.Hash,
			entry.Reference,
			entry.BlockReference,
			entry.BlockHeight,
			entry.Timestamp,
		); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append ledger entry %s: %w", entry.RecordID, err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert ledger entries: %w", err)
	}
	return nil
}

func firstNetwork(entries []model.LedgerEntry) model.Network {
	if len(entries) == 0 {
		return ""
	}
	return entries[0].Network
}
