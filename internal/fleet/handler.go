package fleet

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	dErrors "taxiassoc/pkg/errors"
	"taxiassoc/pkg/httputil"
)

// Handler exposes the taxi, driver and route registries over HTTP.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/taxis", func(r chi.Router) {
		r.Post("/", h.createTaxi)
		r.Get("/", h.listTaxis)
		r.Get("/plate/{plate}", h.getTaxiByPlate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.getTaxi)
			r.Delete("/", h.deleteTaxi)
			r.Put("/driver/{driverID}", h.assignDriver)
			r.Put("/route/{routeID}", h.assignRoute)
		})
	})
	r.Route("/drivers", func(r chi.Router) {
		r.Post("/", h.createDriver)
		r.Get("/", h.listDrivers)
		r.Get("/{id}", h.getDriver)
		r.Delete("/{id}", h.deleteDriver)
	})
	r.Route("/routes", func(r chi.Router) {
		r.Post("/", h.createRoute)
		r.Get("/", h.listRoutes)
		r.Get("/{id}", h.getRoute)
		r.Delete("/{id}", h.deleteRoute)
		r.Post("/{id}/deactivate", h.deactivateRoute)
	})
}

func (h *Handler) createTaxi(w http.ResponseWriter, r *http.Request) {
	var req CreateTaxiRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	t, err := h.service.CreateTaxi(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, "taxi created", t)
}

func (h *Handler) getTaxi(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	t, err := h.service.GetTaxi(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "taxi retrieved", t)
}

func (h *Handler) getTaxiByPlate(w http.ResponseWriter, r *http.Request) {
	t, err := h.service.GetTaxiByPlate(r.Context(), chi.URLParam(r, "plate"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "taxi retrieved", t)
}

func (h *Handler) listTaxis(w http.ResponseWriter, r *http.Request) {
	if routeParam := r.URL.Query().Get("routeId"); routeParam != "" {
		routeID, err := strconv.ParseInt(routeParam, 10, 64)
		if err != nil || routeID <= 0 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid route id"))
			return
		}
		taxis, err := h.service.ListTaxisByRoute(r.Context(), routeID)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, "taxis retrieved", taxis)
		return
	}
	taxis, err := h.service.ListTaxis(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "taxis retrieved", taxis)
}

func (h *Handler) deleteTaxi(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.service.DeleteTaxi(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "taxi deleted", nil)
}

func (h *Handler) assignDriver(w http.ResponseWriter, r *http.Request) {
	taxiID, err := pathID(r, "id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	driverID, err := pathID(r, "driverID")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	t, err := h.service.AssignDriver(r.Context(), taxiID, driverID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "driver assigned", t)
}

func (h *Handler) assignRoute(w http.ResponseWriter, r *http.Request) {
	taxiID, err := pathID(r, "id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	routeID, err := pathID(r, "routeID")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	t, err := h.service.AssignRoute(r.Context(), taxiID, routeID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "route assigned", t)
}

func (h *Handler) createDriver(w http.ResponseWriter, r *http.Request) {
	var req CreateDriverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	d, err := h.service.CreateDriver(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, "driver created", d)
}

func (h *Handler) getDriver(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	d, err := h.service.GetDriver(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "driver retrieved", d)
}

func (h *Handler) listDrivers(w http.ResponseWriter, r *http.Request) {
	drivers, err := h.service.ListDrivers(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "drivers retrieved", drivers)
}

func (h *Handler) deleteDriver(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.service.DeleteDriver(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "driver deleted", nil)
}

func (h *Handler) createRoute(w http.ResponseWriter, r *http.Request) {
	var req CreateRouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	rt, err := h.service.CreateRoute(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, "route created", rt)
}

func (h *Handler) getRoute(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	rt, err := h.service.GetRoute(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "route retrieved", rt)
}

func (h *Handler) listRoutes(w http.ResponseWriter, r *http.Request) {
	var (
		routes []Route
		err    error
	)
	if r.URL.Query().Get("filter") == "active" {
		routes, err = h.service.ListActiveRoutes(r.Context())
	} else {
		routes, err = h.service.ListRoutes(r.Context())
	}
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "routes retrieved", routes)
}

func (h *Handler) deleteRoute(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.service.DeleteRoute(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "route deleted", nil)
}

func (h *Handler) deactivateRoute(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	rt, err := h.service.DeactivateRoute(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, "route deactivated", rt)
}

func pathID(r *http.Request, key string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, key), 10, 64)
	if err != nil || id <= 0 {
		return 0, dErrors.New(dErrors.CodeBadRequest, "invalid id")
	}
	return id, nil
}
