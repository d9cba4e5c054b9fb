// Package postgres stores records and their synchronization state in PostgreSQL.
// Every sync-state transition is a single conditional UPDATE, so concurrent
// coordinators never both move a record into pending.
package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/goodnatureofminers/ledgersync-backend/internal/ledgersync/model"
)

const recordColumns = `id, payload, database_hash, ledger_hash, sync_status, last_synced_at, sync_attempts, last_sync_error, pending_since, created_at, updated_at`

type Repository struct {
	db          *sqlx.DB
	metrics     Metrics
	invalidator Invalidator
}

// Open connects to PostgreSQL using the lib/pq driver.
func Open(dsn string) (*sqlx.DB, error) {
	if dsn == "" {
		return nil, errors.New("postgres dsn is required")
	}
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}
	return db, nil
}

// NewRepository wraps db. invalidator may be nil when no cache is configured.
func NewRepository(db *sqlx.DB, metrics Metrics, invalidator Invalidator) (*Repository, error) {
	if db == nil {
		return nil, errors.New("db is required")
	}
	if metrics == nil {
		return nil, errors.New("metrics is required")
	}
	return &Repository{db: db, metrics: metrics, invalidator: invalidator}, nil
}

type recordRow struct {
	ID            string         `db:"id"`
	Payload       []byte         `db:"payload"`
	DatabaseHash  string         `db:"database_hash"`
	LedgerHash    sql.NullString `db:"ledger_hash"`
	SyncStatus    string         `db:"sync_status"`
	LastSyncedAt  sql.NullTime   `db:"last_synced_at"`
	SyncAttempts  int            `db:"sync_attempts"`
	LastSyncError string         `db:"last_sync_error"`
	PendingSince  sql.NullTime   `db:"pending_since"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

func (row recordRow) toModel() (model.Record, error) {
	rec := model.Record{
		ID:            row.ID,
		DatabaseHash:  row.DatabaseHash,
		SyncStatus:    model.SyncStatus(row.SyncStatus),
		SyncAttempts:  row.SyncAttempts,
		LastSyncError: row.LastSyncError,
		CreatedAt:     row.CreatedAt.UTC(),
		UpdatedAt:     row.UpdatedAt.UTC(),
	}
	if len(row.Payload) > 0 {
		payload, err := model.DecodePayload(row.Payload)
		if err != nil {
			return model.Record{}, fmt.Errorf("decode payload of %s: %w", row.ID, err)
		}
		rec.Payload = payload
	}
	if row.LedgerHash.Valid {
		h := row.LedgerHash.String
		rec.LedgerHash = &h
	}
	if row.LastSyncedAt.Valid {
		t := row.LastSyncedAt.Time.UTC()
		rec.LastSyncedAt = &t
	}
	if row.PendingSince.Valid {
		t := row.PendingSince.Time.UTC()
		rec.PendingSince = &t
	}
	return rec, nil
}
