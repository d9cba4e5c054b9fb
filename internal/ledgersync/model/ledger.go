package model

import "time"

// Network names the ledger network a deployment anchors to.
type Network string

var (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet"
	Regtest Network = "regtest"
	Signet  Network = "signet"
	Memory  Network = "memory"
)

// LedgerEntry is an immutable record hash stored on the ledger.
type LedgerEntry struct {
	Network        Network
	RecordID       string
	Hash           string
	BlockReference string
	BlockHeight    uint64
	Reference      string
	Timestamp      time.Time
}

// Submission is the receipt of a ledger write accepted for processing.
type Submission struct {
	RecordID    string
	Hash        string
	Reference   string
	SubmittedAt time.Time
}

// Confirmation reports how deeply a submission is buried in the ledger.
type Confirmation struct {
	Entry         LedgerEntry
	Confirmations uint64
}
