// Package memory is an in-process record store with the same transition rules
// as the PostgreSQL store. It backs tests and the --store=memory mode.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/goodnatureofminers/ledgersync-backend/internal/ledgersync/model"
)

// StalePendingReason is stored as the last sync error of recovered records.
const StalePendingReason = "stale pending"

// Invalidator drops cached verification results for a record.
type Invalidator interface {
	Invalidate(ctx context.Context, recordID string)
}

type Repository struct {
	mu          sync.Mutex
	records     map[string]model.Record
	invalidator Invalidator
}

// NewRepository returns an empty store. invalidator may be nil.
func NewRepository(invalidator Invalidator) *Repository {
	return &Repository{
		records:     make(map[string]model.Record),
		invalidator: invalidator,
	}
}

func (r *Repository) Get(_ context.Context, id string) (model.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok {
		return model.Record{}, fmt.Errorf("record %s: %w", id, model.ErrNotFound)
	}
	return rec.Clone(), nil
}

func (r *Repository) Create(_ context.Context, id string, payload model.Payload, now time.Time) (model.Record, error) {
	if id == "" {
		return model.Record{}, errors.New("record id is required")
	}
	hash, err := payload.CanonicalHash()
	if err != nil {
		return model.Record{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[id]; ok {
		return model.Record{}, fmt.Errorf("record %s: %w", id, model.ErrAlreadyExists)
	}
	now = now.UTC()
	rec := model.Record{
		ID:           id,
		Payload:      payload.Clone(),
		DatabaseHash: hash,
		SyncStatus:   model.SyncUnsynced,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.records[id] = rec
	return rec.Clone(), nil
}

// UpdatePayload follows the same rules as the PostgreSQL store: pending stays
// pending, every other status resets to unsynced.
func (r *Repository) UpdatePayload(ctx context.Context, id string, payload model.Payload, now time.Time, editWindow time.Duration) (model.Record, error) {
	hash, err := payload.CanonicalHash()
	if err != nil {
		return model.Record{}, err
	}

	r.mu.Lock()
	rec, ok := r.records[id]
	if !ok {
		r.mu.Unlock()
		return model.Record{}, fmt.Errorf("record %s: %w", id, model.ErrNotFound)
	}
	if editWindow > 0 && now.Sub(rec.CreatedAt) > editWindow {
		r.mu.Unlock()
		return model.Record{}, fmt.Errorf("record %s created at %s: %w", id, rec.CreatedAt.Format(time.RFC3339), model.ErrEditWindowClosed)
	}
	rec.Payload = payload.Clone()
	rec.DatabaseHash = hash
	if rec.SyncStatus != model.SyncPending {
		rec.SyncStatus = model.SyncUnsynced
	}
	rec.UpdatedAt = now.UTC()
	r.records[id] = rec
	out := rec.Clone()
	r.mu.Unlock()

	r.invalidate(ctx, id)
	return out, nil
}

func (r *Repository) ListBySyncStatus(_ context.Context, statuses []model.SyncStatus, limit int) ([]model.Record, error) {
	if len(statuses) == 0 || limit <= 0 {
		return nil, nil
	}
	wanted := make(map[model.SyncStatus]struct{}, len(statuses))
	for _, s := range statuses {
		wanted[s] = struct{}{}
	}

	r.mu.Lock()
	out := make([]model.Record, 0)
	for _, rec := range r.records {
		if _, ok := wanted[rec.SyncStatus]; ok {
			out = append(out, rec.Clone())
		}
	}
	r.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.Before(out[j].UpdatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func claimable(rec model.Record) bool {
	if rec.SyncStatus.Syncable() {
		return true
	}
	return rec.SyncStatus == model.SyncSynced && !rec.InSync()
}

func (r *Repository) ClaimForSync(_ context.Context, id string, now time.Time) (model.Record, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok {
		return model.Record{}, false, fmt.Errorf("record %s: %w", id, model.ErrNotFound)
	}
	if !claimable(rec) {
		return rec.Clone(), false, nil
	}
	now = now.UTC()
	rec.SyncStatus = model.SyncPending
	rec.PendingSince = &now
	rec.UpdatedAt = now
	r.records[id] = rec
	return rec.Clone(), true, nil
}

func (r *Repository) MarkSynced(ctx context.Context, id, ledgerHash string, syncedAt time.Time) (model.Record, error) {
	r.mu.Lock()
	rec, err := r.pending("mark synced", id)
	if err != nil {
		r.mu.Unlock()
		return model.Record{}, err
	}
	syncedAt = syncedAt.UTC()
	h := ledgerHash
	rec.LedgerHash = &h
	rec.LastSyncedAt = &syncedAt
	rec.SyncStatus = model.SyncUnsynced
	if rec.DatabaseHash == ledgerHash {
		rec.SyncStatus = model.SyncSynced
	}
	rec.PendingSince = nil
	rec.LastSyncError = ""
	rec.UpdatedAt = syncedAt
	r.records[id] = rec
	out := rec.Clone()
	r.mu.Unlock()

	r.invalidate(ctx, id)
	return out, nil
}

func (r *Repository) MarkFailed(_ context.Context, id, reason string, at time.Time) (model.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, err := r.pending("mark failed", id)
	if err != nil {
		return model.Record{}, err
	}
	fail(&rec, reason, at)
	r.records[id] = rec
	return rec.Clone(), nil
}

func (r *Repository) RecoverStalePending(_ context.Context, olderThan, now time.Time) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var ids []string
	for id, rec := range r.records {
		if rec.SyncStatus != model.SyncPending || rec.PendingSince == nil || !rec.PendingSince.Before(olderThan) {
			continue
		}
		fail(&rec, StalePendingReason, now)
		r.records[id] = rec
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *Repository) SyncCounts(_ context.Context) (model.SyncCounts, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var counts model.SyncCounts
	for _, rec := range r.records {
		switch rec.SyncStatus {
		case model.SyncUnsynced:
			counts.Unsynced++
		case model.SyncPending:
			counts.Pending++
		case model.SyncSynced:
			counts.Synced++
		case model.SyncFailed:
			counts.Failed++
		}
		if rec.LastSyncedAt != nil && (counts.LastSync == nil || rec.LastSyncedAt.After(*counts.LastSync)) {
			t := *rec.LastSyncedAt
			counts.LastSync = &t
		}
	}
	return counts, nil
}

// pending must be called with r.mu held.
func (r *Repository) pending(op, id string) (model.Record, error) {
	rec, ok := r.records[id]
	if !ok {
		return model.Record{}, fmt.Errorf("%s %s: %w", op, id, model.ErrNotFound)
	}
	if rec.SyncStatus != model.SyncPending {
		return model.Record{}, fmt.Errorf("%s %s from %s: %w", op, id, rec.SyncStatus, model.ErrStateConflict)
	}
	return rec, nil
}

func fail(rec *model.Record, reason string, at time.Time) {
	at = at.UTC()
	rec.SyncStatus = model.SyncFailed
	rec.SyncAttempts++
	rec.LastSyncError = reason
	rec.PendingSince = nil
	rec.UpdatedAt = at
}

func (r *Repository) invalidate(ctx context.Context, id string) {
	if r.invalidator != nil {
		r.invalidator.Invalidate(ctx, id)
	}
}
