// Package handler exposes phone-to-post resolution over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"teamup/internal/posts/models"
	"teamup/internal/resolver"
	dErrors "teamup/pkg/domain-errors"
	"teamup/pkg/platform/httputil"
	"teamup/pkg/requestcontext"
)

// Service defines the resolution operations the handler needs.
type Service interface {
	Resolve(ctx context.Context, rawPhone string) (resolver.Resolution, error)
	ResolveNormalized(ctx context.Context, rawPhone string) (resolver.Resolution, error)
}

// Handler wires the resolve endpoint to the resolver service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a resolver handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the resolve endpoint on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/posts/resolve", h.HandleResolve)
}

// ResolveRequest is the HTTP request body for POST /posts/resolve.
type ResolveRequest struct {
	Phone string `json:"phone"`
	Match string `json:"match"`
}

// Validate implements the Validatable interface for httputil.DecodeAndPrepare.
// An empty match mode selects the literal comparison.
func (r *ResolveRequest) Validate() error {
	r.Phone = strings.TrimSpace(r.Phone)
	if r.Phone == "" {
		return dErrors.New(dErrors.CodeBadRequest, "phone is required")
	}
	switch resolver.MatchMode(r.Match) {
	case "", resolver.MatchLiteral, resolver.MatchNormalized:
		return nil
	default:
		return dErrors.New(dErrors.CodeBadRequest, "match must be literal or normalized")
	}
}

// ResolveResponse is the body for a successful resolution. Posts holds one
// entry for a unique match and the full candidate list for an ambiguous one.
type ResolveResponse struct {
	Outcome resolver.Outcome `json:"outcome"`
	Posts   []models.Post    `json:"posts"`
}

// HandleResolve handles POST /posts/resolve. A miss is reported as 404 with
// the no_post_found code the empty state is keyed on; an ambiguous result is
// a legitimate disambiguation branch and stays 200.
func (h *Handler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ResolveRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	resolve := h.service.Resolve
	if resolver.MatchMode(req.Match) == resolver.MatchNormalized {
		resolve = h.service.ResolveNormalized
	}

	res, err := resolve(ctx, req.Phone)
	if err != nil {
		h.logger.ErrorContext(ctx, "resolution failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "phone resolved",
		"request_id", requestID,
		"outcome", res.Outcome,
		"candidates", len(res.Posts),
	)

	if res.Outcome == resolver.OutcomeNotFound {
		httputil.WriteJSON(w, http.StatusNotFound, map[string]string{
			"error":             "no_post_found",
			"error_description": "no post is registered under this phone",
		})
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ResolveResponse{Outcome: res.Outcome, Posts: res.Posts})
}
