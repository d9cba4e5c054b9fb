package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/ledgersync-backend/internal/ledgersync/model"
)

const (
	getRecordQuery = `
SELECT ` + recordColumns + `
FROM records
WHERE id = $1`

	createRecordQuery = `
INSERT INTO records (id, payload, database_hash, sync_status, sync_attempts, last_sync_error, created_at, updated_at)
VALUES ($1, $2, $3, 'unsynced', 0, '', $4, $4)
ON CONFLICT (id) DO NOTHING
RETURNING ` + recordColumns

	lockRecordQuery = `
SELECT created_at
FROM records
WHERE id = $1
FOR UPDATE`

	updatePayloadQuery = `
UPDATE records
SET payload = $2,
	database_hash = $3,
	sync_status = CASE WHEN sync_status = 'pending' THEN 'pending' ELSE 'unsynced' END,
	updated_at = $4
WHERE id = $1
RETURNING ` + recordColumns
)

// Get returns a record or model.ErrNotFound.
func (r *Repository) Get(ctx context.Context, id string) (rec model.Record, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("get_record", err, start)
	}()

	var row recordRow
	if err = r.db.GetContext(ctx, &row, getRecordQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Record{}, fmt.Errorf("record %s: %w", id, model.ErrNotFound)
		}
		return model.Record{}, fmt.Errorf("get record %s: %w", id, err)
	}
	return row.toModel()
}

// Create inserts a new unsynced record.
func (r *Repository) Create(ctx context.Context, id string, payload model.Payload, now time.Time) (rec model.Record, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("create_record", err, start)
	}()

	if id == "" {
		return model.Record{}, errors.New("record id is required")
	}
	body, hash, err := encodePayload(payload)
	if err != nil {
		return model.Record{}, err
	}

	var row recordRow
	if err = r.db.GetContext(ctx, &row, createRecordQuery, id, body, hash, now.UTC()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Record{}, fmt.Errorf("record %s: %w", id, model.ErrAlreadyExists)
		}
		return model.Record{}, fmt.Errorf("create record %s: %w", id, err)
	}
	return row.toModel()
}

// UpdatePayload replaces the payload, recomputes the database hash and resets
// the sync status. A pending record stays pending; its in-flight sync notices
// the new hash when it completes. A positive editWindow rejects edits made
// more than editWindow after creation, measured against now.
func (r *Repository) UpdatePayload(ctx context.Context, id string, payload model.Payload, now time.Time, editWindow time.Duration) (rec model.Record, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("update_payload", err, start)
	}()

	body, hash, err := encodePayload(payload)
	if err != nil {
		return model.Record{}, err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Record{}, fmt.Errorf("begin update payload: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var createdAt time.Time
	if err = tx.GetContext(ctx, &createdAt, lockRecordQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Record{}, fmt.Errorf("record %s: %w", id, model.ErrNotFound)
		}
		return model.Record{}, fmt.Errorf("lock record %s: %w", id, err)
	}
	if editWindow > 0 && now.Sub(createdAt) > editWindow {
		err = fmt.Errorf("record %s created at %s: %w", id, createdAt.UTC().Format(time.RFC3339), model.ErrEditWindowClosed)
		return model.Record{}, err
	}

	var row recordRow
	if err = tx.GetContext(ctx, &row, updatePayloadQuery, id, body, hash, now.UTC()); err != nil {
		return model.Record{}, fmt.Errorf("update payload of %s: %w", id, err)
	}
	if err = tx.Commit(); err != nil {
		return model.Record{}, fmt.Errorf("commit update payload: %w", err)
	}

	r.invalidate(ctx, id)
	return row.toModel()
}

func (r *Repository) invalidate(ctx context.Context, id string) {
	if r.invalidator != nil {
		r.invalidator.Invalidate(ctx, id)
	}
}

func encodePayload(payload model.Payload) (string, string, error) {
	body, err := payload.CanonicalJSON()
	if err != nil {
		return "", "", err
	}
	hash, err := payload.CanonicalHash()
	if err != nil {
		return "", "", err
	}
	return string(body), hash, nil
}
