package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"teamup/pkg/requestcontext"
)

// SessionCookie is the well-known cookie carrying the signed session token.
const SessionCookie = "teamup_session"

// TokenValidator validates a session token and returns its session ID.
type TokenValidator interface {
	ValidateSession(tokenString string) (string, error)
}

// IdentityReader resolves a session ID to the current canonical phone.
type IdentityReader interface {
	Current(ctx context.Context, sessionID string) (string, error)
}

// Session resolves the session cookie into a session ID and canonical
// identity, injecting both into the request context. Requests without a
// cookie, or with an invalid or expired token, proceed anonymously; ownership
// checks simply come back false. A failing identity store also degrades to
// anonymous rather than blocking reads, since identity only gates edit
// affordances.
func Session(tokens TokenValidator, identities IdentityReader, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			sessionID, err := tokens.ValidateSession(cookie.Value)
			if err != nil {
				logger.WarnContext(ctx, "discarding invalid session token",
					"request_id", requestcontext.RequestID(ctx),
					"error", err,
				)
				next.ServeHTTP(w, r)
				return
			}

			ctx = requestcontext.WithSessionID(ctx, sessionID)

			current, err := identities.Current(ctx, sessionID)
			if err != nil {
				logger.ErrorContext(ctx, "session identity lookup failed",
					"request_id", requestcontext.RequestID(ctx),
					"error", err,
				)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
			if current != "" {
				ctx = requestcontext.WithIdentity(ctx, current)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
