// Package handler exposes the merged feed over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"teamup/internal/listing"
	"teamup/internal/posts/models"
	dErrors "teamup/pkg/domain-errors"
	"teamup/pkg/platform/httputil"
	"teamup/pkg/requestcontext"
)

// Aggregator defines the feed operation the handler needs.
type Aggregator interface {
	List(ctx context.Context, currentIdentity string, filter listing.Filter, scope listing.Scope, limit int) ([]listing.Item, error)
}

// Handler wires the listings endpoints to the aggregator.
type Handler struct {
	aggregator   Aggregator
	logger       *slog.Logger
	previewLimit int
}

// New constructs a listings handler. previewLimit caps the landing-page feed.
func New(aggregator Aggregator, logger *slog.Logger, previewLimit int) *Handler {
	return &Handler{aggregator: aggregator, logger: logger, previewLimit: previewLimit}
}

// Register mounts the listings endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/listings", h.HandleList)
	r.Get("/listings/preview", h.HandlePreview)
}

// ListResponse is the body for GET /listings.
type ListResponse struct {
	Items []listing.Item `json:"items"`
	Count int            `json:"count"`
}

// HandleList handles GET /listings?track=&role=&scope=&limit=.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	q := r.URL.Query()

	scope, err := listing.ParseScope(q.Get("scope"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	filter := listing.Filter{
		Track: models.Track(q.Get("track")),
		Role:  q.Get("role"),
	}
	if filter.Track != "" && !filter.Track.Valid() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "unknown track"))
		return
	}

	limit := 0
	if raw := q.Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "limit must be a non-negative integer"))
			return
		}
	}

	items, err := h.aggregator.List(ctx, requestcontext.Identity(ctx), filter, scope, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "feed assembly failed",
			"request_id", requestID,
			"scope", scope,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	if items == nil {
		items = []listing.Item{}
	}
	httputil.WriteJSON(w, http.StatusOK, ListResponse{Items: items, Count: len(items)})
}

// HandlePreview handles GET /listings/preview: the unfiltered newest slice of
// both kinds, sized for the landing page.
func (h *Handler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	items, err := h.aggregator.List(ctx, requestcontext.Identity(ctx), listing.Filter{}, listing.ScopeAll, h.previewLimit)
	if err != nil {
		h.logger.ErrorContext(ctx, "preview feed assembly failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	if items == nil {
		items = []listing.Item{}
	}
	httputil.WriteJSON(w, http.StatusOK, ListResponse{Items: items, Count: len(items)})
}
