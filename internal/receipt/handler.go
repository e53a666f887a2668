package receipt

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	dErrors "taxiassoc/pkg/errors"
	"taxiassoc/pkg/httputil"
)

// Handler exposes receipt issuing and lookups over HTTP.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/receipts", func(r chi.Router) {
		r.Post("/", h.generate)
		r.Get("/", h.list)
		r.Get("/member/{memberID}", h.listByMember)
		r.Get("/number/{number}", h.getByNumber)
		r.Get("/{id}", h.getByID)
	})
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	rec, err := h.service.Generate(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, "receipt generated", rec)
}

func (h *Handler) getByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid id"))
		return
	}
	rec, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "receipt retrieved", rec)
}

func (h *Handler) getByNumber(w http.ResponseWriter, r *http.Request) {
	rec, err := h.service.GetByNumber(r.Context(), chi.URLParam(r, "number"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "receipt retrieved", rec)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if q.Get("from") != "" || q.Get("to") != "" {
		from, err := parseDate(q.Get("from"))
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		to, err := parseDate(q.Get("to"))
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		receipts, err := h.service.ListByDateRange(r.Context(), from, to)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, "receipts retrieved", receipts)
		return
	}

	var (
		receipts []Receipt
		err      error
	)
	if issuer := q.Get("issuedBy"); issuer != "" {
		receipts, err = h.service.ListByIssuer(r.Context(), issuer)
	} else {
		receipts, err = h.service.List(r.Context())
	}
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "receipts retrieved", receipts)
}

func (h *Handler) listByMember(w http.ResponseWriter, r *http.Request) {
	memberID, err := strconv.ParseInt(chi.URLParam(r, "memberID"), 10, 64)
	if err != nil || memberID <= 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid id"))
		return
	}
	receipts, err := h.service.ListByMember(r.Context(), memberID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "receipts retrieved", receipts)
}

func parseDate(value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, dErrors.New(dErrors.CodeBadRequest, "dates must use YYYY-MM-DD")
	}
	return t, nil
}
