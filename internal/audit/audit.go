// Package audit records who changed which post, keyed by session identity.
// Post lifecycle writes are the only mutations in the system, so the trail is
// small but answers the one recurring moderation question: which phone
// created or removed a given post, and when.
package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"teamup/pkg/requestcontext"
)

// Action names one auditable change.
type Action string

const (
	ActionPostCreated   Action = "post_created"
	ActionPostUpdated   Action = "post_updated"
	ActionPostDeleted   Action = "post_deleted"
	ActionSessionLogin  Action = "session_login"
	ActionSessionLogout Action = "session_logout"
)

// Event is one audit record.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Action    Action    `json:"action"`
	PostKind  string    `json:"post_kind,omitempty"`
	PostID    string    `json:"post_id,omitempty"`
	Identity  string    `json:"identity,omitempty"`
	Device    string    `json:"device,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Store appends events somewhere durable enough for the deployment: memory
// in dev, Kafka in production.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Publisher stamps and emits events with fail-open semantics: an unreachable
// audit sink must never block a post submission, so failures are logged and
// swallowed.
type Publisher struct {
	store  Store
	logger *slog.Logger
}

// NewPublisher constructs a publisher over the given store.
func NewPublisher(store Store, logger *slog.Logger) *Publisher {
	return &Publisher{store: store, logger: logger}
}

// Emit stamps the event with ID, timestamp, and request-scoped metadata, then
// appends it. Never returns an error to the caller.
func (p *Publisher) Emit(ctx context.Context, event Event) {
	if p == nil || p.store == nil {
		return
	}
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.Device == "" {
		event.Device = requestcontext.Device(ctx)
	}

	if err := p.store.Append(ctx, event); err != nil {
		p.logger.ErrorContext(ctx, "audit append failed",
			"action", event.Action,
			"request_id", event.RequestID,
			"error", err,
		)
	}
}
