// Package handler exposes post lifecycle endpoints for both collections.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"teamup/internal/posts/models"
	"teamup/internal/posts/service"
	dErrors "teamup/pkg/domain-errors"
	"teamup/pkg/platform/httputil"
	"teamup/pkg/requestcontext"
)

// Service defines the post lifecycle operations the handler needs.
type Service interface {
	CreateIndividual(ctx context.Context, in service.CreateIndividualInput) (*models.IndividualPost, error)
	UpdateIndividual(ctx context.Context, id uuid.UUID, in service.UpdateIndividualInput) (*models.IndividualPost, error)
	DeleteIndividual(ctx context.Context, id uuid.UUID) error
	CreateTeam(ctx context.Context, in service.CreateTeamInput) (*models.TeamPost, error)
	UpdateTeam(ctx context.Context, id uuid.UUID, in service.UpdateTeamInput) (*models.TeamPost, error)
	DeleteTeam(ctx context.Context, id uuid.UUID) error
}

// Handler wires post lifecycle endpoints to the post service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a posts handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts post lifecycle endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/individuals", h.HandleCreateIndividual)
	r.Put("/individuals/{id}", h.HandleUpdateIndividual)
	r.Delete("/individuals/{id}", h.HandleDeleteIndividual)
	r.Post("/teams", h.HandleCreateTeam)
	r.Put("/teams/{id}", h.HandleUpdateTeam)
	r.Delete("/teams/{id}", h.HandleDeleteTeam)
}

// HandleCreateIndividual handles POST /individuals.
func (h *Handler) HandleCreateIndividual(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateIndividualRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	post, err := h.service.CreateIndividual(ctx, req.ToInput())
	if err != nil {
		h.logger.ErrorContext(ctx, "individual post creation failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, post)
}

// HandleUpdateIndividual handles PUT /individuals/{id}.
func (h *Handler) HandleUpdateIndividual(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	id, ok := parseID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[UpdateIndividualRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	post, err := h.service.UpdateIndividual(ctx, id, req.ToInput())
	if err != nil {
		h.logger.ErrorContext(ctx, "individual post update failed",
			"request_id", requestID,
			"post_id", id,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, post)
}

// HandleDeleteIndividual handles DELETE /individuals/{id}.
func (h *Handler) HandleDeleteIndividual(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteIndividual(ctx, id); err != nil {
		h.logger.ErrorContext(ctx, "individual post delete failed",
			"request_id", requestcontext.RequestID(ctx),
			"post_id", id,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleCreateTeam handles POST /teams.
func (h *Handler) HandleCreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateTeamRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	post, err := h.service.CreateTeam(ctx, req.ToInput())
	if err != nil {
		h.logger.ErrorContext(ctx, "team post creation failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, post)
}

// HandleUpdateTeam handles PUT /teams/{id}.
func (h *Handler) HandleUpdateTeam(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	id, ok := parseID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[UpdateTeamRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	post, err := h.service.UpdateTeam(ctx, id, req.ToInput())
	if err != nil {
		h.logger.ErrorContext(ctx, "team post update failed",
			"request_id", requestID,
			"post_id", id,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, post)
}

// HandleDeleteTeam handles DELETE /teams/{id}.
func (h *Handler) HandleDeleteTeam(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteTeam(ctx, id); err != nil {
		h.logger.ErrorContext(ctx, "team post delete failed",
			"request_id", requestcontext.RequestID(ctx),
			"post_id", id,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid post id"))
		return uuid.Nil, false
	}
	return id, true
}
