package transport

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/ledgersync-backend/internal/ledgersync/model"
)

type verifyResponse struct {
	BatchID        string    `json:"batchId"`
	Verified       bool      `json:"verified"`
	BlockchainHash string    `json:"blockchainHash"`
	DatabaseHash   string    `json:"databaseHash"`
	Timestamp      time.Time `json:"timestamp"`
	Cached         bool      `json:"cached,omitempty"`
}

type verifyMultipleItem struct {
	BatchID        string     `json:"batchId"`
	Verified       bool       `json:"verified"`
	BlockchainHash string     `json:"blockchainHash,omitempty"`
	DatabaseHash   string     `json:"databaseHash,omitempty"`
	Timestamp      *time.Time `json:"timestamp,omitempty"`
	Error          string     `json:"error,omitempty"`
}

type syncDetail struct {
	BatchID       string `json:"batchId"`
	Success       bool   `json:"success"`
	Skipped       bool   `json:"skipped,omitempty"`
	FailureReason string `json:"failureReason,omitempty"`
	Error         string `json:"error,omitempty"`
	Attempts      int    `json:"attempts"`
	LedgerHash    string `json:"ledgerHash,omitempty"`
	Reference     string `json:"reference,omitempty"`
}

type syncResponse struct {
	JobID       string       `json:"jobId"`
	Synced      int          `json:"synced"`
	Failed      int          `json:"failed"`
	Skipped     int          `json:"skipped"`
	Cancelled   bool         `json:"cancelled"`
	StartedAt   time.Time    `json:"startedAt"`
	CompletedAt *time.Time   `json:"completedAt,omitempty"`
	Details     []syncDetail `json:"details"`
}

type statusResponse struct {
	LastSync      *time.Time `json:"lastSync"`
	PendingSync   int        `json:"pendingSync"`
	FailedSync    int        `json:"failedSync"`
	UnsyncedCount int        `json:"unsyncedCount"`
	SyncedCount   int        `json:"syncedCount"`
	NetworkStatus string     `json:"networkStatus"`
}

type historyItem struct {
	Hash           string    `json:"hash"`
	BlockReference string    `json:"blockReference"`
	BlockHeight    uint64    `json:"blockHeight,omitempty"`
	Reference      string    `json:"transactionId,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

type recordResponse struct {
	BatchID       string        `json:"batchId"`
	Payload       model.Payload `json:"payload"`
	DatabaseHash  string        `json:"databaseHash"`
	LedgerHash    *string       `json:"ledgerHash"`
	SyncStatus    string        `json:"syncStatus"`
	LastSyncedAt  *time.Time    `json:"lastSyncedAt"`
	SyncAttempts  int           `json:"syncAttempts"`
	LastSyncError string        `json:"lastSyncError,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason"`
}

func newVerifyResponse(res model.VerificationResult, cached bool) verifyResponse {
	return verifyResponse{
		BatchID:        res.RecordID,
		Verified:       res.Verified,
		BlockchainHash: res.LedgerHash,
		DatabaseHash:   res.DatabaseHash,
		Timestamp:      res.ComputedAt,
		Cached:         cached,
	}
}

func newSyncResponse(snap model.JobSnapshot) syncResponse {
	synced, skipped, failed := snap.Counts()
	resp := syncResponse{
		JobID:       snap.JobID,
		Synced:      synced,
		Failed:      failed,
		Skipped:     skipped,
		Cancelled:   snap.Cancelled,
		StartedAt:   snap.StartedAt,
		CompletedAt: snap.CompletedAt,
		Details:     make([]syncDetail, 0, len(snap.Results)),
	}
	for _, id := range snap.SortedRecordIDs() {
		r := snap.Results[id]
		d := syncDetail{
			BatchID:       id,
			Success:       r.Success,
			Skipped:       r.Skipped,
			FailureReason: r.FailureReason,
			Attempts:      r.Attempts,
			LedgerHash:    r.LedgerHash,
			Reference:     r.Reference,
		}
		if r.Err != nil {
			d.Error = r.Err.Error()
			if d.FailureReason == "" {
				d.FailureReason = model.FailureReason(r.Err)
			}
		}
		resp.Details = append(resp.Details, d)
	}
	return resp
}

func newRecordResponse(rec model.Record) recordResponse {
	return recordResponse{
		BatchID:       rec.ID,
		Payload:       rec.Payload,
		DatabaseHash:  rec.DatabaseHash,
		LedgerHash:    rec.LedgerHash,
		SyncStatus:    string(rec.SyncStatus),
		LastSyncedAt:  rec.LastSyncedAt,
		SyncAttempts:  rec.SyncAttempts,
		LastSyncError: rec.LastSyncError,
		CreatedAt:     rec.CreatedAt,
		UpdatedAt:     rec.UpdatedAt,
	}
}

// errBadRequest marks malformed request bodies.
var errBadRequest = errors.New("bad request")

func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrAlreadyInProgress), errors.Is(err, model.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, model.ErrLedgerUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, model.ErrLedgerRejected):
		return http.StatusUnprocessableEntity
	case errors.Is(err, model.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, model.ErrEditWindowClosed):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Warn("write response failed", zap.Error(err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	reason := model.FailureReason(err)
	if errors.Is(err, errBadRequest) {
		reason = "bad_request"
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("method", r.Method), zap.String("path", r.URL.Path), zap.Error(err))
	}
	h.writeJSON(w, status, errorResponse{Error: err.Error(), Reason: reason})
}
