package audit

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	dErrors "taxiassoc/pkg/errors"
	"taxiassoc/pkg/httputil"
)

// Handler exposes read-only audit queries. Entries are never written over HTTP.
type Handler struct {
	store  Store
	logger *slog.Logger
}

func NewHandler(store Store, logger *slog.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/audit-logs", h.handleRecent)
	r.Get("/audit-logs/table/{table}", h.handleByTable)
	r.Get("/audit-logs/table/{table}/record/{recordID}", h.handleByRecord)
}

func (h *Handler) handleRecent(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	entries, err := h.store.ListRecent(r.Context(), limit)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list audit entries", "error", err)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list audit entries"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "audit entries retrieved", entries)
}

func (h *Handler) handleByTable(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")
	entries, err := h.store.ListByTable(r.Context(), table)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list audit entries", "table", table, "error", err)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list audit entries"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "audit entries retrieved", entries)
}

func (h *Handler) handleByRecord(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")
	recordID, err := strconv.ParseInt(chi.URLParam(r, "recordID"), 10, 64)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "record id must be an integer"))
		return
	}

	entries, err := h.store.ListByRecord(r.Context(), table, recordID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list audit entries", "table", table, "error", err)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list audit entries"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "audit entries retrieved", entries)
}
