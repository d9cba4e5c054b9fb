package model

import "time"

// VerificationResult compares a record's database hash with its ledger hash.
type VerificationResult struct {
	RecordID     string    `json:"recordId"`
	Verified     bool      `json:"verified"`
	DatabaseHash string    `json:"databaseHash"`
	LedgerHash   string    `json:"ledgerHash"`
	ComputedAt   time.Time `json:"computedAt"`
}

// BatchVerification is one slot of a multi-record verification.
type BatchVerification struct {
	Result VerificationResult
	Err    error
}

// NetworkStatus is the reachability of the ledger.
type NetworkStatus string

var (
	NetworkConnected    NetworkStatus = "connected"
	NetworkDisconnected NetworkStatus = "disconnected"
)

// SyncStatusSummary is the aggregate synchronization state.
type SyncStatusSummary struct {
	LastSync      *time.Time
	PendingCount  int
	FailedCount   int
	UnsyncedCount int
	SyncedCount   int
	NetworkStatus NetworkStatus
}
