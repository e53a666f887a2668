package member

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	dErrors "taxiassoc/pkg/errors"
	"taxiassoc/pkg/httputil"
)

// Handler exposes the member registry over HTTP.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/members", func(r chi.Router) {
		r.Post("/", h.create)
		r.Get("/", h.list)
		r.Get("/count/active", h.countActive)
		r.Get("/squad/{squadNumber}", h.getBySquadNumber)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.getByID)
			r.Put("/", h.update)
			r.Delete("/", h.delete)
			r.Post("/blacklist", h.blacklist)
			r.Post("/unblacklist", h.unblacklist)
		})
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	m, err := h.service.Create(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, "member created", m)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	m, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "member updated", m)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "member deleted", nil)
}

func (h *Handler) getByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	m, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "member retrieved", m)
}

func (h *Handler) getBySquadNumber(w http.ResponseWriter, r *http.Request) {
	m, err := h.service.GetBySquadNumber(r.Context(), chi.URLParam(r, "squadNumber"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "member retrieved", m)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var (
		members []Member
		err     error
	)
	switch {
	case r.URL.Query().Get("search") != "":
		members, err = h.service.Search(r.Context(), r.URL.Query().Get("search"))
	case r.URL.Query().Get("filter") == "active":
		members, err = h.service.ListActive(r.Context())
	case r.URL.Query().Get("filter") == "blacklisted":
		members, err = h.service.ListBlacklisted(r.Context())
	default:
		members, err = h.service.List(r.Context())
	}
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "members retrieved", members)
}

func (h *Handler) blacklist(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	m, err := h.service.Blacklist(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "member blacklisted", m)
}

func (h *Handler) unblacklist(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	m, err := h.service.Unblacklist(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "member removed from blacklist", m)
}

func (h *Handler) countActive(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.CountActive(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "active member count", map[string]int64{"count": count})
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, dErrors.New(dErrors.CodeBadRequest, "invalid id")
	}
	return id, nil
}
