package audit

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamup/pkg/requestcontext"
)

func TestPublisherStampsEvents(t *testing.T) {
	store := NewInMemoryStore()
	pub := NewPublisher(store, slog.Default())

	ctx := requestcontext.WithRequestID(context.Background(), "req-1")
	ctx = requestcontext.WithDevice(ctx, "Firefox/142 (Linux)")

	pub.Emit(ctx, Event{
		Action:   ActionPostCreated,
		PostKind: "individual",
		PostID:   "some-id",
		Identity: "+201012345678",
	})

	events := store.Events()
	require.Len(t, events, 1)
	assert.NotZero(t, events[0].ID)
	assert.False(t, events[0].Timestamp.IsZero())
	assert.Equal(t, "req-1", events[0].RequestID)
	assert.Equal(t, "Firefox/142 (Linux)", events[0].Device)
	assert.Equal(t, ActionPostCreated, events[0].Action)
}

type failingStore struct{}

func (failingStore) Append(context.Context, Event) error {
	return errors.New("sink unreachable")
}

// Audit is fail-open: a dead sink must not block post submissions.
func TestPublisherSwallowsStoreFailure(t *testing.T) {
	pub := NewPublisher(failingStore{}, slog.Default())
	pub.Emit(context.Background(), Event{Action: ActionPostDeleted})
}

func TestNilPublisherIsSafe(t *testing.T) {
	var pub *Publisher
	pub.Emit(context.Background(), Event{Action: ActionPostCreated})
}
