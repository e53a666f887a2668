package notification

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	dErrors "taxiassoc/pkg/errors"
	"taxiassoc/pkg/httputil"
)

// Handler exposes notification dispatch and read tracking over HTTP.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/notifications", func(r chi.Router) {
		r.Post("/", h.send)
		r.Get("/unread", h.listAllUnread)
		r.Get("/{id}", h.getByID)
		r.Post("/{id}/read", h.markRead)
		r.Route("/member/{memberID}", func(r chi.Router) {
			r.Get("/", h.listByMember)
			r.Get("/unread", h.listUnreadByMember)
			r.Get("/unread/count", h.countUnread)
			r.Post("/read-all", h.markAllRead)
			r.Post("/payment-reminder", h.paymentReminder)
		})
	})
}

func (h *Handler) send(w http.ResponseWriter, r *http.Request) {
	var req SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	n, err := h.service.Send(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, "notification sent", n)
}

func (h *Handler) paymentReminder(w http.ResponseWriter, r *http.Request) {
	memberID, err := pathID(r, "memberID")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	n, err := h.service.PaymentReminder(r.Context(), memberID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, "payment reminder sent", n)
}

func (h *Handler) getByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	n, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "notification retrieved", n)
}

func (h *Handler) markRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	n, err := h.service.MarkRead(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "notification marked read", n)
}

func (h *Handler) markAllRead(w http.ResponseWriter, r *http.Request) {
	memberID, err := pathID(r, "memberID")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	count, err := h.service.MarkAllReadForMember(r.Context(), memberID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "notifications marked read", map[string]int64{"count": count})
}

func (h *Handler) listByMember(w http.ResponseWriter, r *http.Request) {
	memberID, err := pathID(r, "memberID")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	notifications, err := h.service.ListByMember(r.Context(), memberID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "notifications retrieved", notifications)
}

func (h *Handler) listUnreadByMember(w http.ResponseWriter, r *http.Request) {
	memberID, err := pathID(r, "memberID")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	notifications, err := h.service.ListUnreadByMember(r.Context(), memberID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "notifications retrieved", notifications)
}

func (h *Handler) listAllUnread(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.service.ListAllUnread(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "notifications retrieved", notifications)
}

func (h *Handler) countUnread(w http.ResponseWriter, r *http.Request) {
	memberID, err := pathID(r, "memberID")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	count, err := h.service.CountUnread(r.Context(), memberID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "unread notification count", map[string]int64{"count": count})
}

func pathID(r *http.Request, key string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, key), 10, 64)
	if err != nil || id <= 0 {
		return 0, dErrors.New(dErrors.CodeBadRequest, "invalid id")
	}
	return id, nil
}
