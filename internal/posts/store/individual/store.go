// Package individual persists the individuals collection: people looking for
// a team.
package individual

import (
	"context"

	"github.com/google/uuid"

	"teamup/internal/posts/models"
)

// Store is the query surface the engine needs from the individuals
// collection. No joins and no transactions with the teams collection; the two
// stores are deliberately disjoint.
//
// ListAll returns the full collection ordered by creation time descending;
// ordering is the store's responsibility, not recomputed by callers.
// FindByPhoneIn matches the stored phone field against the given spellings
// exactly as stored; it never normalizes. Multiple matches are legitimate
// (historical data lacked a uniqueness constraint).
type Store interface {
	ListAll(ctx context.Context) ([]*models.IndividualPost, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.IndividualPost, error)
	FindByPhoneIn(ctx context.Context, phones []string) ([]*models.IndividualPost, error)
	Insert(ctx context.Context, post *models.IndividualPost) error
	Update(ctx context.Context, post *models.IndividualPost) error
	Delete(ctx context.Context, id uuid.UUID) error
}
