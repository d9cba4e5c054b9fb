package model

import (
	"context"
	"errors"
)

var (
	// ErrNotFound reports a missing record or ledger entry.
	ErrNotFound = errors.New("not found")
	// ErrLedgerUnavailable reports a transient failure reaching the ledger.
	ErrLedgerUnavailable = errors.New("ledger unavailable")
	// ErrLedgerRejected reports a ledger refusing a write.
	ErrLedgerRejected = errors.New("ledger rejected write")
	// ErrAlreadyInProgress reports a record already claimed by another sync.
	ErrAlreadyInProgress = errors.New("sync already in progress")
	// ErrTimeout reports an exceeded confirmation deadline or poll budget.
	ErrTimeout = errors.New("confirmation timeout")
	// ErrCancelled reports a record skipped because its job was cancelled.
	ErrCancelled = errors.New("sync job cancelled")
	// ErrEditWindowClosed reports a payload edit outside the allowed window.
	ErrEditWindowClosed = errors.New("edit window closed")
	// ErrAlreadyExists reports a create for a record ID that is taken.
	ErrAlreadyExists = errors.New("already exists")
	// ErrStateConflict reports a sync transition attempted from the wrong state.
	ErrStateConflict = errors.New("sync state conflict")
)

// FailureReason maps an error onto a stable machine-readable reason.
func FailureReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrLedgerUnavailable):
		return "ledger_unavailable"
	case errors.Is(err, ErrLedgerRejected):
		return "ledger_rejected"
	case errors.Is(err, ErrAlreadyInProgress):
		return "already_in_progress"
	case errors.Is(err, ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, ErrCancelled), errors.Is(err, context.Canceled):
		return "cancelled"
	case errors.Is(err, ErrEditWindowClosed):
		return "edit_window_closed"
	case errors.Is(err, ErrAlreadyExists):
		return "already_exists"
	case errors.Is(err, ErrStateConflict):
		return "state_conflict"
	default:
		return "internal"
	}
}
