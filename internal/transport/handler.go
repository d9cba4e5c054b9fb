// Package transport exposes the ledger sync API over HTTP and the ledger
// health over gRPC.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	gwruntime "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/ledgersync-backend/internal/ledgersync/model"
)

const (
	// DefaultPrefix is the path prefix of every HTTP route.
	DefaultPrefix       = "/api/blockchain"
	defaultCacheTTL     = 5 * time.Minute
	maxRequestBodyBytes = 1 << 20
)

// Config tunes the HTTP handler.
type Config struct {
	Prefix   string
	CacheTTL time.Duration
	// EditWindow limits payload edits to records younger than it; zero disables the check.
	EditWindow time.Duration
}

// Handler serves the ledger sync HTTP routes.
type Handler struct {
	verifier Verifier
	syncer   Syncer
	ledger   Ledger
	store    RecordStore
	cache    VerificationCache
	cfg      Config
	logger   *zap.Logger
	now      func() time.Time
}

// NewHandler validates dependencies and constructs a Handler. cache may be nil.
func NewHandler(
	verifier Verifier,
	syncer Syncer,
	ledger Ledger,
	store RecordStore,
	cache VerificationCache,
	cfg Config,
	logger *zap.Logger,
) (*Handler, error) {
	if verifier == nil {
		return nil, errors.New("verifier is required")
	}
	if syncer == nil {
		return nil, errors.New("syncer is required")
	}
	if ledger == nil {
		return nil, errors.New("ledger is required")
	}
	if store == nil {
		return nil, errors.New("record store is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultPrefix
	}
	cfg.Prefix = strings.TrimRight(cfg.Prefix, "/")
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}

	return &Handler{
		verifier: verifier,
		syncer:   syncer,
		ledger:   ledger,
		store:    store,
		cache:    cache,
		cfg:      cfg,
		logger:   logger.Named("http"),
		now:      time.Now,
	}, nil
}

// Register binds every route on mux.
func (h *Handler) Register(mux *gwruntime.ServeMux) error {
	routes := []struct {
		method  string
		path    string
		handler gwruntime.HandlerFunc
	}{
		{http.MethodGet, "/verify/{batchId}", h.verify},
		{http.MethodPost, "/verify-multiple", h.verifyMultiple},
		{http.MethodPost, "/sync", h.sync},
		{http.MethodGet, "/sync/jobs/{jobId}", h.job},
		{http.MethodDelete, "/sync/jobs/{jobId}", h.cancelJob},
		{http.MethodGet, "/status", h.status},
		{http.MethodGet, "/history/{batchId}", h.history},
		{http.MethodPost, "/records", h.createRecord},
		{http.MethodPut, "/records/{batchId}", h.updateRecord},
	}
	for _, rt := range routes {
		if err := mux.HandlePath(rt.method, h.cfg.Prefix+rt.path, rt.handler); err != nil {
			return fmt.Errorf("register %s %s: %w", rt.method, rt.path, err)
		}
	}
	return nil
}

func (h *Handler) verify(w http.ResponseWriter, r *http.Request, params map[string]string) {
	id := params["batchId"]
	ctx := r.Context()

	if h.cache != nil {
		if res, ok := h.cache.Get(ctx, id); ok {
			h.writeJSON(w, http.StatusOK, newVerifyResponse(res, true))
			return
		}
	}

	res, err := h.verifier.Verify(ctx, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if h.cache != nil {
		h.cache.Put(ctx, id, res, h.cfg.CacheTTL)
	}
	h.writeJSON(w, http.StatusOK, newVerifyResponse(res, false))
}

type batchIDsRequest struct {
	BatchIDs []string `json:"batchIds"`
}

func (h *Handler) verifyMultiple(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var req batchIDsRequest
	if err := decodeBody(r, &req, false); err != nil {
		h.writeError(w, r, err)
		return
	}
	if len(req.BatchIDs) == 0 {
		h.writeError(w, r, fmt.Errorf("%w: batchIds is required", errBadRequest))
		return
	}

	ids := model.UniqueIDs(req.BatchIDs)
	verified := h.verifier.VerifyMultiple(r.Context(), ids)
	results := make([]verifyMultipleItem, 0, len(ids))
	for _, id := range ids {
		item := verifyMultipleItem{BatchID: id}
		v, ok := verified[id]
		switch {
		case !ok:
			item.Error = "not processed"
		case v.Err != nil:
			item.Error = model.FailureReason(v.Err)
		default:
			computedAt := v.Result.ComputedAt
			item.Verified = v.Result.Verified
			item.BlockchainHash = v.Result.LedgerHash
			item.DatabaseHash = v.Result.DatabaseHash
			item.Timestamp = &computedAt
		}
		results = append(results, item)
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

func (h *Handler) sync(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var req batchIDsRequest
	if err := decodeBody(r, &req, true); err != nil {
		h.writeError(w, r, err)
		return
	}
	async, err := queryBool(r, "async")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if async {
		snap, err := h.syncer.Start(r.Context(), req.BatchIDs)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		h.writeJSON(w, http.StatusAccepted, map[string]string{"jobId": snap.JobID})
		return
	}

	// Records already submitted keep polling for confirmation after the
	// client goes away.
	snap, err := h.syncer.Sync(context.WithoutCancel(r.Context()), req.BatchIDs)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, newSyncResponse(snap))
}

func (h *Handler) job(w http.ResponseWriter, r *http.Request, params map[string]string) {
	snap, err := h.syncer.Job(params["jobId"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, newSyncResponse(snap))
}

func (h *Handler) cancelJob(w http.ResponseWriter, r *http.Request, params map[string]string) {
	jobID := params["jobId"]
	cancelled, err := h.syncer.Cancel(jobID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"jobId": jobID, "cancelled": cancelled})
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	summary, err := h.syncer.Status(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, statusResponse{
		LastSync:      summary.LastSync,
		PendingSync:   summary.PendingCount,
		FailedSync:    summary.FailedCount,
		UnsyncedCount: summary.UnsyncedCount,
		SyncedCount:   summary.SyncedCount,
		NetworkStatus: string(summary.NetworkStatus),
	})
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request, params map[string]string) {
	entries, err := h.ledger.ReadHistory(r.Context(), params["batchId"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	items := make([]historyItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, historyItem{
			Hash:           e.Hash,
			BlockReference: e.BlockReference,
			BlockHeight:    e.BlockHeight,
			Reference:      e.Reference,
			Timestamp:      e.Timestamp,
		})
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"history": items})
}

type recordRequest struct {
	BatchID string        `json:"batchId"`
	Payload model.Payload `json:"payload"`
}

func (h *Handler) createRecord(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var req recordRequest
	if err := decodeBody(r, &req, false); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.BatchID == "" || req.Payload == nil {
		h.writeError(w, r, fmt.Errorf("%w: batchId and payload are required", errBadRequest))
		return
	}

	rec, err := h.store.Create(r.Context(), req.BatchID, req.Payload, h.now())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, newRecordResponse(rec))
}

func (h *Handler) updateRecord(w http.ResponseWriter, r *http.Request, params map[string]string) {
	var req recordRequest
	if err := decodeBody(r, &req, false); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.Payload == nil {
		h.writeError(w, r, fmt.Errorf("%w: payload is required", errBadRequest))
		return
	}

	rec, err := h.store.UpdatePayload(r.Context(), params["batchId"], req.Payload, h.now(), h.cfg.EditWindow)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, newRecordResponse(rec))
}

func decodeBody(r *http.Request, dst any, allowEmpty bool) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil {
		if allowEmpty && errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: decode body: %w", errBadRequest, err)
	}
	return nil
}

func queryBool(r *http.Request, key string) (bool, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: query %s: %w", errBadRequest, key, err)
	}
	return v, nil
}
