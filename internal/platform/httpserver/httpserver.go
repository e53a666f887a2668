// Package httpserver builds the process HTTP server with timeouts aligned
// to the request deadline the middleware enforces.
package httpserver

import (
	"net/http"
	"time"

	"taxiassoc/internal/platform/config"
)

// New builds the server. WriteTimeout sits above config.RequestTimeout so
// the middleware deadline fires first and the client gets a proper error
// body instead of a dropped connection.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       config.RequestTimeout,
		WriteTimeout:      config.RequestTimeout + 5*time.Second,
		IdleTimeout:       2 * time.Minute,
	}
}
