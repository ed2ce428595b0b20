// Package httpapi assembles the full router: middleware chain, per-domain
// handlers, and operational endpoints. No business logic lives here.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"teamup/internal/platform/middleware"
	"teamup/pkg/platform/httputil"
)

// Registrar is implemented by every per-domain handler.
type Registrar interface {
	Register(r chi.Router)
}

// HealthChecker reports whether a backing dependency is reachable. Optional;
// nil checkers are skipped.
type HealthChecker func() error

// NewRouter wires the middleware chain and mounts every handler.
func NewRouter(tokens middleware.TokenValidator, identities middleware.IdentityReader, logger *slog.Logger, health HealthChecker, handlers ...Registrar) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Device)
	r.Use(middleware.Session(tokens, identities, logger))

	for _, h := range handlers {
		h.Register(r)
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if health != nil {
			if err := health(); err != nil {
				httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}
