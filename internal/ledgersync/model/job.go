package model

import (
	"sort"
	"sync"
	"time"
)

// RecordResult is the outcome of one record inside a SyncJob.
type RecordResult struct {
	Success       bool
	Skipped       bool
	FailureReason string
	Err           error
	Attempts      int
	LedgerHash    string
	Reference     string
}

// SyncJob tracks one batch synchronization attempt. It is safe for concurrent use.
type SyncJob struct {
	JobID              string
	RequestedRecordIDs []string
	StartedAt          time.Time

	mu          sync.RWMutex
	completedAt *time.Time
	cancelled   bool
	results     map[string]RecordResult
	done        chan struct{}
}

// NewSyncJob creates a job for the given record IDs, dropping duplicates.
func NewSyncJob(jobID string, recordIDs []string, startedAt time.Time) *SyncJob {
	return &SyncJob{
		JobID:              jobID,
		RequestedRecordIDs: UniqueIDs(recordIDs),
		StartedAt:          startedAt,
		results:            make(map[string]RecordResult, len(recordIDs)),
		done:               make(chan struct{}),
	}
}

// UniqueIDs returns ids without duplicates or empty values, in first-seen order.
func UniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// SetResult records the outcome for a record.
func (j *SyncJob) SetResult(recordID string, result RecordResult) {
	if result.Err != nil && result.FailureReason == "" {
		result.FailureReason = FailureReason(result.Err)
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.results[recordID] = result
}

// Cancel marks the job cancelled. It returns false once the job has completed.
func (j *SyncJob) Cancel() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.completedAt != nil {
		return false
	}
	j.cancelled = true
	return true
}

// Cancelled reports whether Cancel was called before completion.
func (j *SyncJob) Cancelled() bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.cancelled
}

// Complete marks the job terminal and releases waiters.
func (j *SyncJob) Complete(at time.Time) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.completedAt != nil {
		return
	}
	j.completedAt = &at
	close(j.done)
}

// Done is closed when the job completes.
func (j *SyncJob) Done() <-chan struct{} {
	return j.done
}

// Snapshot returns an immutable copy of the job state.
func (j *SyncJob) Snapshot() JobSnapshot {
	j.mu.RLock()
	defer j.mu.RUnlock()

	results := make(map[string]RecordResult, len(j.results))
	for id, r := range j.results {
		results[id] = r
	}
	var completedAt *time.Time
	if j.completedAt != nil {
		t := *j.completedAt
		completedAt = &t
	}
	return JobSnapshot{
		JobID:              j.JobID,
		RequestedRecordIDs: append([]string(nil), j.RequestedRecordIDs...),
		StartedAt:          j.StartedAt,
		CompletedAt:        completedAt,
		Cancelled:          j.cancelled,
		Results:            results,
	}
}

// JobSnapshot is a point-in-time copy of a SyncJob.
type JobSnapshot struct {
	JobID              string
	RequestedRecordIDs []string
	StartedAt          time.Time
	CompletedAt        *time.Time
	Cancelled          bool
	Results            map[string]RecordResult
}

// Counts returns the number of successful, skipped and failed results.
// Skipped results are also counted as successful.
func (s JobSnapshot) Counts() (synced, skipped, failed int) {
	for _, r := range s.Results {
		switch {
		case r.Success && r.Skipped:
			synced++
			skipped++
		case r.Success:
			synced++
		default:
			failed++
		}
	}
	return synced, skipped, failed
}

// SortedRecordIDs returns result keys in lexical order.
func (s JobSnapshot) SortedRecordIDs() []string {
	ids := make([]string, 0, len(s.Results))
	for id := range s.Results {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
