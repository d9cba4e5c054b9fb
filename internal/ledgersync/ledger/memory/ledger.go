// Package memory implements the ledger contract in process memory. Faults can
// be injected per record so callers can exercise retry and failure paths.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/goodnatureofminers/ledgersync-backend/internal/ledgersync/model"
)

const writePollLimit = 1000

type transaction struct {
	sub           model.Submission
	polls         int
	confirmations uint64
	entry         *model.LedgerEntry
}

type faults struct {
	rejected       bool
	failSubmits    int
	mempoolPolls   int
	submitAttempts int
}

// Ledger is an append-only in-memory ledger. It is safe for concurrent use.
type Ledger struct {
	depth uint64
	now   func() time.Time

	mu        sync.Mutex
	seq       uint64
	height    uint64
	available bool
	stalled   bool
	txs       map[string]*transaction
	history   map[string][]model.LedgerEntry
	faults    map[string]*faults
}

// New returns a Ledger confirming writes at the given depth.
func New(depth uint64, now func() time.Time) *Ledger {
	if depth == 0 {
		depth = 1
	}
	if now == nil {
		now = time.Now
	}
	return &Ledger{
		depth:     depth,
		now:       now,
		available: true,
		txs:       make(map[string]*transaction),
		history:   make(map[string][]model.LedgerEntry),
		faults:    make(map[string]*faults),
	}
}

// Network returns model.Memory.
func (l *Ledger) Network() model.Network {
	return model.Memory
}

// Submit records a pending write of hash for recordID.
func (l *Ledger) Submit(ctx context.Context, recordID, hash string) (model.Submission, error) {
	if err := ctx.Err(); err != nil {
		return model.Submission{}, err
	}
	if recordID == "" {
		return model.Submission{}, fmt.Errorf("empty record id: %w", model.ErrLedgerRejected)
	}
	if !model.ValidHash(hash) {
		return model.Submission{}, fmt.Errorf("malformed hash %q: %w", hash, model.ErrLedgerRejected)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f := l.faultsLocked(recordID)
	f.submitAttempts++
	if !l.available {
		return model.Submission{}, fmt.Errorf("submit %s: %w", recordID, model.ErrLedgerUnavailable)
	}
	if f.rejected {
		return model.Submission{}, fmt.Errorf("submit %s: %w", recordID, model.ErrLedgerRejected)
	}
	if f.failSubmits > 0 {
		f.failSubmits--
		return model.Submission{}, fmt.Errorf("submit %s: %w", recordID, model.ErrLedgerUnavailable)
	}

	l.seq++
	sub := model.Submission{
		RecordID:    recordID,
		Hash:        hash,
		Reference:   fmt.Sprintf("mem-%d", l.seq),
		SubmittedAt: l.now().UTC(),
	}
	l.txs[sub.Reference] = &transaction{sub: sub}
	return sub, nil
}

// Confirmation advances the submission by one confirmation per call unless
// confirmations are stalled. At the configured depth the entry is appended.
func (l *Ledger) Confirmation(ctx context.Context, sub model.Submission) (model.Confirmation, error) {
	if err := ctx.Err(); err != nil {
		return model.Confirmation{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.available {
		return model.Confirmation{}, fmt.Errorf("confirmation %s: %w", sub.Reference, model.ErrLedgerUnavailable)
	}
	tx, ok := l.txs[sub.Reference]
	if !ok || tx.sub.RecordID != sub.RecordID || tx.sub.Hash != sub.Hash {
		return model.Confirmation{}, fmt.Errorf("unknown submission %s: %w", sub.Reference, model.ErrLedgerRejected)
	}

	if tx.entry == nil && !l.stalled {
		tx.polls++
		if tx.polls > l.faultsLocked(sub.RecordID).mempoolPolls {
			tx.confirmations++
		}
		if tx.confirmations >= l.depth {
			l.height++
			entry := model.LedgerEntry{
				Network:        model.Memory,
				RecordID:       sub.RecordID,
				Hash:           sub.Hash,
				BlockReference: fmt.Sprintf("mem-block-%d:%d:%s", l.height, l.height, sub.Reference),
				BlockHeight:    l.height,
				Reference:      sub.Reference,
				Timestamp:      l.now().UTC(),
			}
			tx.entry = &entry
			l.history[sub.RecordID] = append(l.history[sub.RecordID], entry)
		}
	}

	conf := model.Confirmation{
		Entry: model.LedgerEntry{
			Network:   model.Memory,
			RecordID:  sub.RecordID,
			Hash:      sub.Hash,
			Reference: sub.Reference,
			Timestamp: sub.SubmittedAt,
		},
		Confirmations: tx.confirmations,
	}
	if tx.entry != nil {
		conf.Entry = *tx.entry
	}
	return conf, nil
}

// Write submits hash and polls until it is confirmed.
func (l *Ledger) Write(ctx context.Context, recordID, hash string) (model.LedgerEntry, error) {
	sub, err := l.Submit(ctx, recordID, hash)
	if err != nil {
		return model.LedgerEntry{}, err
	}
	for i := 0; i < writePollLimit; i++ {
		conf, err := l.Confirmation(ctx, sub)
		if err != nil {
			return model.LedgerEntry{}, err
		}
		if conf.Confirmations >= l.depth {
			return conf.Entry, nil
		}
	}
	return model.LedgerEntry{}, fmt.Errorf("write %s: %w", recordID, model.ErrTimeout)
}

// ReadCurrent returns the most recent entry for recordID.
func (l *Ledger) ReadCurrent(ctx context.Context, recordID string) (model.LedgerEntry, error) {
	if err := ctx.Err(); err != nil {
		return model.LedgerEntry{}, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.available {
		return model.LedgerEntry{}, fmt.Errorf("read %s: %w", recordID, model.ErrLedgerUnavailable)
	}
	entries := l.history[recordID]
	if len(entries) == 0 {
		return model.LedgerEntry{}, fmt.Errorf("ledger entry %s: %w", recordID, model.ErrNotFound)
	}
	return entries[len(entries)-1], nil
}

// ReadHistory returns every entry for recordID, oldest first.
func (l *Ledger) ReadHistory(ctx context.Context, recordID string) ([]model.LedgerEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.available {
		return nil, fmt.Errorf("history %s: %w", recordID, model.ErrLedgerUnavailable)
	}
	return append([]model.LedgerEntry{}, l.history[recordID]...), nil
}

// Ping reports whether the ledger is available.
func (l *Ledger) Ping(_ context.Context) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.available
}

// SetAvailable toggles whether every call fails with ErrLedgerUnavailable.
func (l *Ledger) SetAvailable(available bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.available = available
}

// StallConfirmations freezes or resumes confirmation progress for all submissions.
func (l *Ledger) StallConfirmations(stalled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stalled = stalled
}

// RejectRecord makes every later Submit for recordID fail with ErrLedgerRejected.
func (l *Ledger) RejectRecord(recordID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.faultsLocked(recordID).rejected = true
}

// FailSubmissions makes the next n Submit calls for recordID fail with ErrLedgerUnavailable.
func (l *Ledger) FailSubmissions(recordID string, n int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.faultsLocked(recordID).failSubmits = n
}

// HoldInMempool keeps submissions for recordID unconfirmed for the first polls calls.
func (l *Ledger) HoldInMempool(recordID string, polls int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.faultsLocked(recordID).mempoolPolls = polls
}

// SubmitCount returns how many times Submit was called for recordID.
func (l *Ledger) SubmitCount(recordID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if f, ok := l.faults[recordID]; ok {
		return f.submitAttempts
	}
	return 0
}

func (l *Ledger) faultsLocked(recordID string) *faults {
	f, ok := l.faults[recordID]
	if !ok {
		f = &faults{}
		l.faults[recordID] = f
	}
	return f
}
