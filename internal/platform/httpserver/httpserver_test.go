package httpserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"taxiassoc/internal/platform/config"
)

func TestNewTimeouts(t *testing.T) {
	srv := New(":8080", http.NewServeMux())

	assert.Equal(t, ":8080", srv.Addr)
	assert.Equal(t, config.RequestTimeout, srv.ReadTimeout)
	assert.Greater(t, srv.WriteTimeout, config.RequestTimeout,
		"write timeout must outlast the middleware request deadline")
	assert.NotZero(t, srv.IdleTimeout)
}
