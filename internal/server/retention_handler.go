// Package server exposes the retention engine over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/at-ishikawa/retention/internal/config"
	"github.com/at-ishikawa/retention/internal/item"
	"github.com/at-ishikawa/retention/internal/learning"
	"github.com/at-ishikawa/retention/internal/retention"
	"github.com/at-ishikawa/retention/internal/srs"
	"github.com/at-ishikawa/retention/internal/statistics"
)

// RoutePrefix is the common path of every retention route.
const RoutePrefix = "/agents/retention"

// ReportRequest is the body of POST /agents/retention/report.
type ReportRequest struct {
	ItemID         string     `json:"item_id" validate:"required"`
	OwnerID        string     `json:"owner_id" validate:"required"`
	Quality        *int       `json:"quality" validate:"required,min=0,max=5"`
	ResponseTimeMs int        `json:"response_time_ms" validate:"min=0"`
	Timestamp      *time.Time `json:"timestamp,omitempty"`
}

// AddItemRequest is the body of POST /agents/retention/items.
type AddItemRequest struct {
	OwnerID    string `json:"owner_id" validate:"required"`
	ContentRef string `json:"content_ref"`
	ItemID     string `json:"item_id,omitempty"`
}

// DueItemsResponse is the body returned by GET /agents/retention/due/{owner_id}.
type DueItemsResponse struct {
	DueItems []srs.Item `json:"due_items"`
}

// ReviewHistoryResponse is the body returned by GET /agents/retention/items/{item_id}/reviews.
type ReviewHistoryResponse struct {
	Reviews []learning.ReviewLog `json:"reviews"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RetentionHandler serves the retention routes.
type RetentionHandler struct {
	manager     *retention.Manager
	due         *retention.DueQuery
	repo        item.ItemRepository
	maxDueLimit int
	now         func() time.Time

	validate *validator.Validate
	trans    ut.Translator
}

// NewRetentionHandler creates a new RetentionHandler.
func NewRetentionHandler(repo item.ItemRepository, manager *retention.Manager, cfg config.RetentionConfig) (*RetentionHandler, error) {
	validate, trans, err := config.NewValidator()
	if err != nil {
		return nil, fmt.Errorf("config.NewValidator() > %w", err)
	}
	return &RetentionHandler{
		manager:     manager,
		due:         retention.NewDueQuery(repo, cfg.DefaultDueLimit),
		repo:        repo,
		maxDueLimit: cfg.MaxDueLimit,
		now:         time.Now,
		validate:    validate,
		trans:       trans,
	}, nil
}

// Routes returns the mux serving every retention route.
func (h *RetentionHandler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+RoutePrefix+"/report", h.ReportQuality)
	mux.HandleFunc("GET "+RoutePrefix+"/due/{owner_id}", h.DueItems)
	mux.HandleFunc("POST "+RoutePrefix+"/items", h.AddItem)
	mux.HandleFunc("GET "+RoutePrefix+"/items/{item_id}", h.GetItem)
	mux.HandleFunc("GET "+RoutePrefix+"/items/{item_id}/reviews", h.ReviewHistory)
	mux.HandleFunc("GET "+RoutePrefix+"/stats/{owner_id}", h.Statistics)
	return mux
}

// ReportQuality applies a quality report and returns the new schedule.
func (h *RetentionHandler) ReportQuality(w http.ResponseWriter, r *http.Request) {
	var req ReportRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	report := srs.QualityReport{
		ItemID:          req.ItemID,
		OwnerID:         req.OwnerID,
		Quality:         *req.Quality,
		ResponseLatency: time.Duration(req.ResponseTimeMs) * time.Millisecond,
	}
	if req.Timestamp != nil {
		report.Timestamp = *req.Timestamp
	}

	result, err := h.manager.ReportQuality(r.Context(), report)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// DueItems lists the owner's due items. limit is capped at the configured maximum.
func (h *RetentionHandler) DueItems(w http.ResponseWriter, r *http.Request) {
	ownerID := r.PathValue("owner_id")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, fmt.Errorf("%w: limit must be a positive integer", srs.ErrInvalidArgument))
			return
		}
		limit = parsed
	}
	if h.maxDueLimit > 0 && limit > h.maxDueLimit {
		limit = h.maxDueLimit
	}

	items, err := h.due.DueItems(r.Context(), ownerID, h.now().UTC(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DueItemsResponse{DueItems: items})
}

// AddItem seeds a new item.
func (h *RetentionHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	created, err := h.manager.AddItem(r.Context(), retention.SeedRequest{
		OwnerID:    req.OwnerID,
		ContentRef: req.ContentRef,
		ItemID:     req.ItemID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// GetItem returns a single item.
func (h *RetentionHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	it, err := h.manager.GetItem(r.Context(), r.PathValue("item_id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

// ReviewHistory lists the recorded reviews of an item, oldest first.
func (h *RetentionHandler) ReviewHistory(w http.ResponseWriter, r *http.Request) {
	logs, err := h.manager.ReviewHistory(r.Context(), r.PathValue("item_id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ReviewHistoryResponse{Reviews: logs})
}

// Statistics summarises the owner's items.
func (h *RetentionHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	ownerID := r.PathValue("owner_id")
	items, err := h.repo.ListByOwner(r.Context(), ownerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statistics.Calculate(ownerID, items, h.now().UTC()))
}

func (h *RetentionHandler) decode(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", srs.ErrInvalidArgument, err)
	}

	if err := h.validate.Struct(dst); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return fmt.Errorf("%w: %v", srs.ErrInvalidArgument, err)
		}
		messages := make([]string, 0, len(validationErrors))
		for _, fieldErr := range validationErrors {
			messages = append(messages, fieldErr.Translate(h.trans))
		}
		sentinel := srs.ErrInvalidArgument
		if validationErrors[0].Field() == "quality" && validationErrors[0].Tag() != "required" {
			sentinel = srs.ErrInvalidQuality
		}
		return fmt.Errorf("%w: %s", sentinel, strings.Join(messages, ", "))
	}
	return nil
}

// StatusCode maps an engine error to its HTTP status.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, srs.ErrInvalidQuality), errors.Is(err, srs.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, srs.ErrItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, srs.ErrItemExists), errors.Is(err, srs.ErrOwnerMismatch):
		return http.StatusConflict
	case errors.Is(err, srs.ErrStorage), errors.Is(err, srs.ErrConflict):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := StatusCode(err)
	if status >= http.StatusInternalServerError {
		slog.Default().Error("Request failed", "status", status, "error", err)
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Default().Warn("Failed to write response", "error", err)
	}
}
