// Package model defines domain models for ledger reconciliation.
package model

import "time"

// SyncStatus describes where a record is in the ledger synchronization lifecycle.
type SyncStatus string

var (
	// SyncUnsynced marks a record whose current payload has not been written to the ledger.
	SyncUnsynced SyncStatus = "unsynced"
	// SyncPending marks a record with an in-flight ledger submission.
	SyncPending SyncStatus = "pending"
	// SyncSynced marks a record whose ledger hash is confirmed on the ledger.
	SyncSynced SyncStatus = "synced"
	// SyncFailed marks a record whose last synchronization attempt failed.
	SyncFailed SyncStatus = "failed"
)

// Valid reports whether s is a known status.
func (s SyncStatus) Valid() bool {
	switch s {
	case SyncUnsynced, SyncPending, SyncSynced, SyncFailed:
		return true
	default:
		return false
	}
}

// Syncable reports whether a record in status s may be claimed for a new sync.
func (s SyncStatus) Syncable() bool {
	return s == SyncUnsynced || s == SyncFailed
}

// Record is a supply-chain batch tracked against the ledger.
type Record struct {
	ID            string
	Payload       Payload
	DatabaseHash  string
	LedgerHash    *string
	SyncStatus    SyncStatus
	LastSyncedAt  *time.Time
	SyncAttempts  int
	LastSyncError string
	PendingSince  *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// InSync reports whether the ledger hash matches the current database hash.
func (r Record) InSync() bool {
	return r.LedgerHash != nil && *r.LedgerHash == r.DatabaseHash
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	out := r
	out.Payload = r.Payload.Clone()
	if r.LedgerHash != nil {
		h := *r.LedgerHash
		out.LedgerHash = &h
	}
	if r.LastSyncedAt != nil {
		t := *r.LastSyncedAt
		out.LastSyncedAt = &t
	}
	if r.PendingSince != nil {
		t := *r.PendingSince
		out.PendingSince = &t
	}
	return out
}

// SyncCounts aggregates record counts per sync status.
type SyncCounts struct {
	Unsynced int
	Pending  int
	Synced   int
	Failed   int
	LastSync *time.Time
}
