// Package httptransport assembles the HTTP surface: middleware chain, health
// and metrics endpoints, and the versioned API the back-office frontend
// consumes.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"taxiassoc/internal/platform/config"
	"taxiassoc/internal/platform/metrics"
	"taxiassoc/internal/platform/middleware"
	"taxiassoc/pkg/httputil"
)

// Registrar is implemented by every domain handler.
type Registrar interface {
	Register(r chi.Router)
}

// NewRouter builds the full router. Everything under /api/v1 requires a valid
// bearer token; /healthz and /metrics stay open for probes and scrapers.
func NewRouter(logger *slog.Logger, m *metrics.Metrics, validator middleware.TokenValidator, handlers ...Registrar) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Latency(m))
	r.Use(middleware.Timeout(config.RequestTimeout))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, "ok", nil)
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.ContentTypeJSON)
		api.Use(middleware.RequireAuth(validator, logger))
		for _, h := range handlers {
			h.Register(api)
		}
	})

	return r
}
