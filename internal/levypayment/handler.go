package levypayment

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	dErrors "taxiassoc/pkg/errors"
	"taxiassoc/pkg/httputil"
)

// Handler exposes levy payment management over HTTP.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/levy-payments", func(r chi.Router) {
		r.Post("/", h.record)
		r.Get("/", h.list)
		r.Get("/member/{memberID}", h.listByMember)
		r.Get("/totals/outstanding", h.totalOutstanding)
		r.Get("/totals/collected", h.totalCollected)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.getByID)
			r.Post("/payment", h.process)
			r.Put("/receipt", h.attachReceipt)
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
	httputil.WriteJSON(w, http.StatusCreated, "levy payment recorded", p)
}

func (h *Handler) process(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req ProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	p, err := h.service.Process(r.Context(), id, req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "levy payment processed", p)
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
	p, err := h.service.AttachReceipt(r.Context(), id, req.ReceiptNumber)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "receipt attached", p)
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
	httputil.WriteJSON(w, http.StatusOK, "levy payment retrieved", p)
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
		payments, err := h.service.ListByDateRange(r.Context(), from, to)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, "levy payments retrieved", payments)
		return
	}

	var (
		payments []Payment
		err      error
	)
	switch status := q.Get("status"); status {
	case "":
		payments, err = h.service.List(r.Context())
	default:
		payments, err = h.service.ListByStatus(r.Context(), Status(status))
	}
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "levy payments retrieved", payments)
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
	httputil.WriteJSON(w, http.StatusOK, "levy payments retrieved", payments)
}

func (h *Handler) totalOutstanding(w http.ResponseWriter, r *http.Request) {
	total, err := h.service.TotalOutstanding(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "outstanding levy total", map[string]float64{"total": total})
}

func (h *Handler) totalCollected(w http.ResponseWriter, r *http.Request) {
	total, err := h.service.TotalCollected(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "collected levy total", map[string]float64{"total": total})
}

func pathID(r *http.Request, key string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, key), 10, 64)
	if err != nil || id <= 0 {
		return 0, dErrors.New(dErrors.CodeBadRequest, "invalid id")
	}
	return id, nil
}

func parseDate(value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, dErrors.New(dErrors.CodeBadRequest, "dates must use YYYY-MM-DD")
	}
	return t, nil
}
