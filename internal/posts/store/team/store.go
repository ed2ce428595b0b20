// Package team persists the teams collection: teams looking for members.
package team

import (
	"context"

	"github.com/google/uuid"

	"teamup/internal/posts/models"
)

// Store is the query surface the engine needs from the teams collection.
// Mirrors the individuals store but keys ownership lookups on the contact
// field. FindByContactIn matches stored values exactly as written; callers
// that want equivalence pass the full variation set.
type Store interface {
	ListAll(ctx context.Context) ([]*models.TeamPost, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.TeamPost, error)
	FindByContactIn(ctx context.Context, contacts []string) ([]*models.TeamPost, error)
	Insert(ctx context.Context, post *models.TeamPost) error
	Update(ctx context.Context, post *models.TeamPost) error
	Delete(ctx context.Context, id uuid.UUID) error
}
