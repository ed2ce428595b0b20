// Package identity holds the session identity: the canonical phone of
// "whoever is using this client session".
//
// The identity is an informal credential, not an authenticated principal.
// It is set on login or registration, survives reloads of the same client,
// and disappears only on explicit logout or storage clearing. Every ownership
// decision in the system reduces to comparing this value against a post's
// stored contact field, with both sides normalized at comparison time.
package identity

import (
	"context"
	"errors"
	"strings"

	"teamup/internal/phone"
	dErrors "teamup/pkg/domain-errors"
	"teamup/pkg/platform/sentinel"
)

// Store persists one canonical phone per session under a well-known key.
// Implementations return sentinel.ErrNotFound when the session has no
// identity.
type Store interface {
	Get(ctx context.Context, sessionID string) (string, error)
	Put(ctx context.Context, sessionID, canonicalPhone string) error
	Delete(ctx context.Context, sessionID string) error
}

// Service owns the login/logout/current lifecycle around a Store.
type Service struct {
	store Store
}

// NewService constructs the identity service over the given store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Login normalizes the raw phone and persists it as the session identity.
// Returns the canonical form the session will be known by.
func (s *Service) Login(ctx context.Context, sessionID, raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", dErrors.New(dErrors.CodeBadRequest, "phone is required")
	}
	if sessionID == "" {
		return "", dErrors.New(dErrors.CodeBadRequest, "session id is required")
	}

	canonical := phone.Normalize(raw)
	if err := s.store.Put(ctx, sessionID, canonical); err != nil {
		return "", dErrors.Wrap(dErrors.CodeUnavailable, "could not persist session identity", err)
	}
	return canonical, nil
}

// Logout clears the session identity. Logging out a session that was never
// logged in is a no-op.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.store.Delete(ctx, sessionID); err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(dErrors.CodeUnavailable, "could not clear session identity", err)
	}
	return nil
}

// Current reads the session identity, re-normalizing on every load.
// Identities captured under the older, looser rule (the legacy client only
// stripped spaces before storing) self-heal here without a write.
// Returns "" when nobody is logged in on this session.
func (s *Service) Current(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", nil
	}
	stored, err := s.store.Get(ctx, sessionID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", dErrors.Wrap(dErrors.CodeUnavailable, "could not read session identity", err)
	}
	return phone.Normalize(stored), nil
}

// IsOwner reports whether the current canonical identity owns a post whose
// identity field holds ownerField. The stored field is re-normalized at
// comparison time; write-time normalization is never trusted. Pure and
// side-effect free.
func IsOwner(current, ownerField string) bool {
	return current != "" && current == phone.Normalize(ownerField)
}
