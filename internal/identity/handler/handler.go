// Package handler exposes the session identity lifecycle over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"teamup/internal/audit"
	"teamup/internal/platform/middleware"
	dErrors "teamup/pkg/domain-errors"
	"teamup/pkg/platform/httputil"
	"teamup/pkg/requestcontext"
)

// Service defines the identity operations the handler needs.
type Service interface {
	Login(ctx context.Context, sessionID, raw string) (string, error)
	Logout(ctx context.Context, sessionID string) error
}

// TokenIssuer signs session tokens for the session cookie.
type TokenIssuer interface {
	Generate(sessionID string) (string, error)
}

// Handler wires session endpoints to the identity service.
type Handler struct {
	service    Service
	tokens     TokenIssuer
	audit      *audit.Publisher
	logger     *slog.Logger
	sessionTTL time.Duration
}

// New constructs a session handler with its dependencies.
func New(service Service, tokens TokenIssuer, auditPub *audit.Publisher, logger *slog.Logger, sessionTTL time.Duration) *Handler {
	return &Handler{
		service:    service,
		tokens:     tokens,
		audit:      auditPub,
		logger:     logger,
		sessionTTL: sessionTTL,
	}
}

// Register mounts session endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/session/login", h.HandleLogin)
	r.Post("/session/logout", h.HandleLogout)
	r.Get("/session", h.HandleCurrent)
}

// LoginRequest is the HTTP request body for POST /session/login.
type LoginRequest struct {
	Phone string `json:"phone"`
}

// Validate implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *LoginRequest) Validate() error {
	if strings.TrimSpace(r.Phone) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "phone is required")
	}
	return nil
}

// SessionResponse is the body for login and current-session reads. Phone is
// null when nobody is logged in.
type SessionResponse struct {
	Phone *string `json:"phone"`
}

// HandleLogin handles POST /session/login. Reuses the session ID from an
// existing valid cookie so re-login replaces the identity in place; otherwise
// mints a fresh session.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[LoginRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	sessionID := requestcontext.SessionID(ctx)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	canonical, err := h.service.Login(ctx, sessionID, req.Phone)
	if err != nil {
		h.logger.ErrorContext(ctx, "login failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	token, err := h.tokens.Generate(sessionID)
	if err != nil {
		h.logger.ErrorContext(ctx, "session token signing failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(dErrors.CodeInternal, "could not issue session token", err))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	h.audit.Emit(ctx, audit.Event{
		Action:   audit.ActionSessionLogin,
		Identity: canonical,
	})
	h.logger.InfoContext(ctx, "session identity set",
		"request_id", requestID,
		"phone", canonical,
	)
	httputil.WriteJSON(w, http.StatusOK, SessionResponse{Phone: &canonical})
}

// HandleLogout handles POST /session/logout. Logging out an anonymous session
// still clears the cookie and returns 204.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	sessionID := requestcontext.SessionID(ctx)
	if err := h.service.Logout(ctx, sessionID); err != nil {
		h.logger.ErrorContext(ctx, "logout failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	h.audit.Emit(ctx, audit.Event{
		Action:   audit.ActionSessionLogout,
		Identity: requestcontext.Identity(ctx),
	})
	w.WriteHeader(http.StatusNoContent)
}

// HandleCurrent handles GET /session. The session middleware has already
// resolved the cookie, so this only reflects the request context back.
func (h *Handler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	var resp SessionResponse
	if current := requestcontext.Identity(r.Context()); current != "" {
		resp.Phone = &current
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}
