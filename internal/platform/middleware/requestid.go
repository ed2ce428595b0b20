package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"teamup/pkg/requestcontext"
)

// RequestID assigns every request a UUID (or adopts the caller's
// X-Request-ID) and pins the request time so all downstream time reads within
// one action agree.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		ctx = requestcontext.WithTime(ctx, requestcontext.Now(ctx))

		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
