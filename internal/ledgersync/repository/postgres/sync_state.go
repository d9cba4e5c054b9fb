package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/goodnatureofminers/ledgersync-backend/internal/ledgersync/model"
)

// StalePendingReason is stored as the last sync error of recovered records.
const StalePendingReason = "stale pending"

const (
	listBySyncStatusQuery = `
SELECT ` + recordColumns + `
FROM records
WHERE sync_status = ANY($1)
ORDER BY updated_at ASC, id ASC
LIMIT $2`

	claimForSyncQuery = `
UPDATE records
SET sync_status = 'pending',
	pending_since = $2,
	updated_at = $2
WHERE id = $1
	AND (sync_status IN ('unsynced', 'failed')
		OR (sync_status = 'synced' AND ledger_hash IS DISTINCT FROM database_hash))
RETURNING ` + recordColumns

	markSyncedQuery = `
UPDATE records
SET ledger_hash = $2,
	last_synced_at = $3,
	sync_status = CASE WHEN database_hash = $2 THEN 'synced' ELSE 'unsynced' END,
	pending_since = NULL,
	last_sync_error = '',
	updated_at = $3
WHERE id = $1 AND sync_status = 'pending'
RETURNING ` + recordColumns

	markFailedQuery = `
UPDATE records
SET sync_status = 'failed',
	sync_attempts = sync_attempts + 1,
	last_sync_error = $2,
	pending_since = NULL,
	updated_at = $3
WHERE id = $1 AND sync_status = 'pending'
RETURNING ` + recordColumns

	recoverStalePendingQuery = `
UPDATE records
SET sync_status = 'failed',
	sync_attempts = sync_attempts + 1,
	last_sync_error = $2,
	pending_since = NULL,
	updated_at = $3
WHERE sync_status = 'pending' AND pending_since < $1
RETURNING id`

	syncStatusQuery = `SELECT sync_status FROM records WHERE id = $1`

	syncCountsQuery = `
SELECT
	count(*) FILTER (WHERE sync_status = 'unsynced') AS unsynced,
	count(*) FILTER (WHERE sync_status = 'pending') AS pending,
	count(*) FILTER (WHERE sync_status = 'synced') AS synced,
	count(*) FILTER (WHERE sync_status = 'failed') AS failed,
	max(last_synced_at) AS last_sync
FROM records`
)

// ListBySyncStatus returns up to limit records in any of statuses, least
// recently updated first.
func (r *Repository) ListBySyncStatus(ctx context.Context, statuses []model.SyncStatus, limit int) (records []model.Record, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("list_by_sync_status", err, start)
	}()

	if len(statuses) == 0 || limit <= 0 {
		return nil, nil
	}
	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = string(s)
	}

	var rows []recordRow
	if err = r.db.SelectContext(ctx, &rows, listBySyncStatusQuery, pq.Array(values), limit); err != nil {
		return nil, fmt.Errorf("list records by sync status: %w", err)
	}

	records = make([]model.Record, 0, len(rows))
	for _, row := range rows {
		rec, convErr := row.toModel()
		if convErr != nil {
			err = convErr
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// ClaimForSync moves a record into pending if it is unsynced, failed, or
// synced with a stale ledger hash. When the claim does not apply it returns
// the current record and false.
func (r *Repository) ClaimForSync(ctx context.Context, id string, now time.Time) (rec model.Record, claimed bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("claim_for_sync", err, start)
	}()

	var row recordRow
	err = r.db.GetContext(ctx, &row, claimForSyncQuery, id, now.UTC())
	switch {
	case err == nil:
		rec, err = row.toModel()
		return rec, err == nil, err
	case errors.Is(err, sql.ErrNoRows):
		err = nil
	default:
		return model.Record{}, false, fmt.Errorf("claim record %s: %w", id, err)
	}

	if err = r.db.GetContext(ctx, &row, getRecordQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Record{}, false, fmt.Errorf("record %s: %w", id, model.ErrNotFound)
		}
		return model.Record{}, false, fmt.Errorf("get record %s: %w", id, err)
	}
	rec, err = row.toModel()
	return rec, false, err
}

// MarkSynced records a confirmed ledger write. The record becomes synced when
// the written hash still matches its database hash and unsynced otherwise.
func (r *Repository) MarkSynced(ctx context.Context, id, ledgerHash string, syncedAt time.Time) (rec model.Record, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("mark_synced", err, start)
	}()

	rec, err = r.transition(ctx, "mark synced", id, markSyncedQuery, id, ledgerHash, syncedAt.UTC())
	if err != nil {
		return model.Record{}, err
	}
	r.invalidate(ctx, id)
	return rec, nil
}

// MarkFailed moves a pending record to failed and counts the attempt.
func (r *Repository) MarkFailed(ctx context.Context, id, reason string, at time.Time) (rec model.Record, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("mark_failed", err, start)
	}()

	return r.transition(ctx, "mark failed", id, markFailedQuery, id, reason, at.UTC())
}

func (r *Repository) transition(ctx context.Context, op, id, query string, args ...any) (model.Record, error) {
	var row recordRow
	err := r.db.GetContext(ctx, &row, query, args...)
	if err == nil {
		return row.toModel()
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return model.Record{}, fmt.Errorf("%s %s: %w", op, id, err)
	}

	var status string
	if err = r.db.GetContext(ctx, &status, syncStatusQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Record{}, fmt.Errorf("%s %s: %w", op, id, model.ErrNotFound)
		}
		return model.Record{}, fmt.Errorf("%s %s: %w", op, id, err)
	}
	return model.Record{}, fmt.Errorf("%s %s from %s: %w", op, id, status, model.ErrStateConflict)
}

// RecoverStalePending fails records that entered pending before olderThan
// and returns their IDs.
func (r *Repository) RecoverStalePending(ctx context.Context, olderThan, now time.Time) (ids []string, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("recover_stale_pending", err, start)
	}()

	if err = r.db.SelectContext(ctx, &ids, recoverStalePendingQuery, olderThan.UTC(), StalePendingReason, now.UTC()); err != nil {
		return nil, fmt.Errorf("recover stale pending: %w", err)
	}
	return ids, nil
}

type syncCountsRow struct {
	Unsynced int          `db:"unsynced"`
	Pending  int          `db:"pending"`
	Synced   int          `db:"synced"`
	Failed   int          `db:"failed"`
	LastSync sql.NullTime `db:"last_sync"`
}

// SyncCounts aggregates records per sync status.
func (r *Repository) SyncCounts(ctx context.Context) (counts model.SyncCounts, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("sync_counts", err, start)
	}()

	var row syncCountsRow
	if err = r.db.GetContext(ctx, &row, syncCountsQuery); err != nil {
		return model.SyncCounts{}, fmt.Errorf("count records by sync status: %w", err)
	}

	counts = model.SyncCounts{
		Unsynced: row.Unsynced,
		Pending:  row.Pending,
		Synced:   row.Synced,
		Failed:   row.Failed,
	}
	if row.LastSync.Valid {
		t := row.LastSync.Time.UTC()
		counts.LastSync = &t
	}
	return counts, nil
}
