package fine

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	dErrors "taxiassoc/pkg/errors"
	"taxiassoc/pkg/httputil"
)

// Handler exposes fine management over HTTP.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/fines", func(r chi.Router) {
		r.Post("/", h.issue)
		r.Get("/", h.list)
		r.Get("/member/{memberID}", h.listByMember)
		r.Get("/totals/outstanding", h.totalOutstanding)
		r.Get("/totals/collected", h.totalCollected)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.getByID)
			r.Post("/payment", h.processPayment)
			r.Put("/status", h.updateStatus)
			r.Put("/receipt", h.attachReceipt)
		})
	})
}

func (h *Handler) issue(w http.ResponseWriter, r *http.Request) {
	var req IssueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	f, err := h.service.Issue(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, "fine issued", f)
}

func (h *Handler) processPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req ProcessPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	f, err := h.service.ProcessPayment(r.Context(), id, req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "fine payment processed", f)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	f, err := h.service.UpdateStatus(r.Context(), id, req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "fine status updated", f)
}

func (h *Handler) attachReceipt(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req AttachReceiptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	f, err := h.service.AttachReceipt(r.Context(), id, req.ReceiptNumber)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "receipt attached", f)
}

func (h *Handler) getByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	f, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "fine retrieved", f)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var (
		fines []Fine
		err   error
	)
	switch status := r.URL.Query().Get("status"); status {
	case "":
		fines, err = h.service.List(r.Context())
	default:
		fines, err = h.service.ListByStatus(r.Context(), Status(status))
	}
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "fines retrieved", fines)
}

func (h *Handler) listByMember(w http.ResponseWriter, r *http.Request) {
	memberID, err := pathID(r, "memberID")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	fines, err := h.service.ListByMember(r.Context(), memberID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "fines retrieved", fines)
}

func (h *Handler) totalOutstanding(w http.ResponseWriter, r *http.Request) {
	total, err := h.service.TotalOutstanding(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "outstanding fine total", map[string]float64{"total": total})
}

func (h *Handler) totalCollected(w http.ResponseWriter, r *http.Request) {
	total, err := h.service.TotalCollected(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "collected fine total", map[string]float64{"total": total})
}

func pathID(r *http.Request, key string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, key), 10, 64)
	if err != nil || id <= 0 {
		return 0, dErrors.New(dErrors.CodeBadRequest, "invalid id")
	}
	return id, nil
}
