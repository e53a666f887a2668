package application

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	dErrors "taxiassoc/pkg/errors"
	"taxiassoc/pkg/httputil"
)

// Handler exposes membership application review over HTTP.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/applications", func(r chi.Router) {
		r.Post("/", h.submit)
		r.Get("/", h.list)
		r.Get("/pending/secretary", h.pendingSecretary)
		r.Get("/pending/chairperson", h.pendingChairperson)
		r.Get("/count", h.countByStatus)
		r.Get("/documents", h.listDocumentsByType)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.getByID)
			r.Post("/review/secretary", h.secretaryReview)
			r.Post("/review/chairperson", h.chairpersonReview)
			r.Put("/status", h.updateStatus)
			r.Post("/documents", h.attachDocument)
			r.Get("/documents", h.listDocuments)
		})
	})
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	a, err := h.service.Submit(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, "application submitted", a)
}

func (h *Handler) secretaryReview(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.service.SecretaryReview, "secretary review recorded")
}

func (h *Handler) chairpersonReview(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.service.ChairpersonReview, "chairperson review recorded")
}

func (h *Handler) review(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id int64, req ReviewRequest) (*Application, error), message string) {
	id, err := pathID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	a, err := fn(r.Context(), id, req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, message, a)
}

func (h *Handler) getByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	a, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "application retrieved", a)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	a, err := h.service.UpdateStatus(r.Context(), id, req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "application status updated", a)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var (
		apps []Application
		err  error
	)
	switch status := r.URL.Query().Get("status"); status {
	case "":
		apps, err = h.service.List(r.Context())
	default:
		apps, err = h.service.ListByStatus(r.Context(), Status(status))
	}
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "applications retrieved", apps)
}

func (h *Handler) pendingSecretary(w http.ResponseWriter, r *http.Request) {
	apps, err := h.service.ListPendingSecretary(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "applications retrieved", apps)
}

func (h *Handler) pendingChairperson(w http.ResponseWriter, r *http.Request) {
	apps, err := h.service.ListPendingChairperson(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "applications retrieved", apps)
}

func (h *Handler) countByStatus(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.CountByStatus(r.Context(), Status(r.URL.Query().Get("status")))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "application count", map[string]int64{"count": count})
}

func (h *Handler) attachDocument(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req AttachDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	d, err := h.service.AttachDocument(r.Context(), id, req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, "document attached", d)
}

func (h *Handler) listDocuments(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	documents, err := h.service.ListDocuments(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "documents retrieved", documents)
}

func (h *Handler) listDocumentsByType(w http.ResponseWriter, r *http.Request) {
	documents, err := h.service.ListDocumentsByType(r.Context(), r.URL.Query().Get("type"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "documents retrieved", documents)
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, dErrors.New(dErrors.CodeBadRequest, "invalid id")
	}
	return id, nil
}
