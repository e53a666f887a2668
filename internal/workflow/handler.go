package workflow

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	dErrors "taxiassoc/pkg/errors"
	"taxiassoc/pkg/httputil"
)

// Handler exposes the disciplinary workflow over HTTP.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/workflows", func(r chi.Router) {
		r.Post("/", h.initiate)
		r.Get("/ongoing", h.listOngoing)
		r.Get("/pending/secretary", h.listPendingSecretary)
		r.Get("/pending/chairperson", h.listPendingChairperson)
		r.Get("/fine/{fineID}", h.getByFine)
		r.Get("/member/{memberID}", h.listByMember)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.getByID)
			r.Post("/decision/secretary", h.secretaryDecide)
			r.Post("/decision/chairperson", h.chairpersonDecide)
		})
	})
}

func (h *Handler) initiate(w http.ResponseWriter, r *http.Request) {
	var req InitiateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	workflow, err := h.service.Initiate(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, "workflow initiated", workflow)
}

func (h *Handler) secretaryDecide(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req SecretaryDecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	workflow, err := h.service.SecretaryDecide(r.Context(), id, req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "secretary decision recorded", workflow)
}

func (h *Handler) chairpersonDecide(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req ChairpersonDecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	workflow, err := h.service.ChairpersonDecide(r.Context(), id, req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "chairperson decision recorded", workflow)
}

func (h *Handler) getByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	workflow, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "workflow retrieved", workflow)
}

func (h *Handler) getByFine(w http.ResponseWriter, r *http.Request) {
	fineID, err := pathID(r, "fineID")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	workflow, err := h.service.GetByFineID(r.Context(), fineID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "workflow retrieved", workflow)
}

func (h *Handler) listByMember(w http.ResponseWriter, r *http.Request) {
	memberID, err := pathID(r, "memberID")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	workflows, err := h.service.ListByMember(r.Context(), memberID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "workflows retrieved", workflows)
}

func (h *Handler) listPendingSecretary(w http.ResponseWriter, r *http.Request) {
	workflows, err := h.service.ListPendingSecretary(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "workflows retrieved", workflows)
}

func (h *Handler) listPendingChairperson(w http.ResponseWriter, r *http.Request) {
	workflows, err := h.service.ListPendingChairperson(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "workflows retrieved", workflows)
}

func (h *Handler) listOngoing(w http.ResponseWriter, r *http.Request) {
	workflows, err := h.service.ListOngoing(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "workflows retrieved", workflows)
}

func pathID(r *http.Request, key string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, key), 10, 64)
	if err != nil || id <= 0 {
		return 0, dErrors.New(dErrors.CodeBadRequest, "invalid id")
	}
	return id, nil
}
