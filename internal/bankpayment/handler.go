package bankpayment

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	dErrors "taxiassoc/pkg/errors"
	"taxiassoc/pkg/httputil"
)

// Handler exposes bank payment capture and verification over HTTP.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/bank-payments", func(r chi.Router) {
		r.Post("/", h.record)
		r.Get("/", h.list)
		r.Get("/member/{memberID}", h.listByMember)
		r.Get("/reference/{reference}", h.getByReference)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.getByID)
			r.Post("/verify", h.verify)
		})
	})
}

func (h *Handler) record(w http.ResponseWriter, r *http.Request) {
	var req RecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	p, err := h.service.Record(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, "bank payment recorded", p)
}

func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	p, err := h.service.Verify(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "bank payment verified", p)
}

func (h *Handler) getByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	p, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "bank payment retrieved", p)
}

func (h *Handler) getByReference(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetByReference(r.Context(), chi.URLParam(r, "reference"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "bank payment retrieved", p)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var (
		payments []BankPayment
		err      error
	)
	switch r.URL.Query().Get("filter") {
	case "unverified":
		payments, err = h.service.ListUnverified(r.Context())
	case "verified":
		payments, err = h.service.ListVerified(r.Context())
	default:
		payments, err = h.service.List(r.Context())
	}
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "bank payments retrieved", payments)
}

func (h *Handler) listByMember(w http.ResponseWriter, r *http.Request) {
	memberID, err := pathID(r, "memberID")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	payments, err := h.service.ListByMember(r.Context(), memberID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "bank payments retrieved", payments)
}

func pathID(r *http.Request, key string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, key), 10, 64)
	if err != nil || id <= 0 {
		return 0, dErrors.New(dErrors.CodeBadRequest, "invalid id")
	}
	return id, nil
}
