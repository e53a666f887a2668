// Package httputil centralizes the JSON response envelope so every handler
// renders success and failure the same way.
package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "taxiassoc/pkg/errors"
)

// Envelope is the uniform response body: {success, message, data}.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// WriteJSON renders a success envelope with the given status and payload.
func WriteJSON(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Envelope{Success: true, Message: message, Data: data})
}

// WriteError translates a domain error to its HTTP status and renders a
// failure envelope. Internal causes are never exposed.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(dErrors.ToHTTPStatus(code))
	_ = json.NewEncoder(w).Encode(Envelope{Success: false, Message: dErrors.MessageOf(err), Data: nil})
}
