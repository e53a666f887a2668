package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"taxiassoc/pkg/requestcontext"
)

// TokenValidator validates a bearer token and returns the principal it was
// issued to. Token issuance happens outside this service.
type TokenValidator interface {
	Validate(tokenString string) (principal string, err error)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(fmt.Appendf(nil, `{"success":false,"message":"%s","data":null}`, message))
}

// RequireAuth validates the Authorization header and stores the principal in
// the request context for services and the audit recorder.
func RequireAuth(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || token == "" {
				writeJSONError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			principal, err := validator.Validate(token)
			if err != nil {
				logger.WarnContext(r.Context(), "unauthorized access - invalid token",
					"error", err,
					"request_id", requestcontext.RequestID(r.Context()),
				)
				writeJSONError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := requestcontext.WithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
