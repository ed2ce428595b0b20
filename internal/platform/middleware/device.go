package middleware

import (
	"fmt"
	"net/http"

	"github.com/mssola/useragent"

	"teamup/pkg/requestcontext"
)

// Device summarizes the caller's browser and OS into the request context so
// submission and login logs can record which client shapes produce which
// phone spellings.
func Device(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.UserAgent()
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}

		ua := useragent.New(raw)
		name, version := ua.Browser()
		summary := fmt.Sprintf("%s/%s (%s)", name, version, ua.OS())
		if ua.Mobile() {
			summary += " mobile"
		}

		ctx := requestcontext.WithDevice(r.Context(), summary)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
