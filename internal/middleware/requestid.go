package middleware

import (
	"net/http"

	"github.com/google/uuid"
)

// RequestID tags every request with a correlation ID, preserving one the
// caller already supplied. Handlers read it back off the request header when
// building error envelopes.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
			r.Header.Set("X-Request-ID", id)
		}
		w.Header().Set("X-Request-ID", id)

		next.ServeHTTP(w, r)
	})
}
