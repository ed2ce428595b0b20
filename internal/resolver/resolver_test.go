package resolver

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamup/internal/posts/models"
	"teamup/internal/posts/store/individual"
	"teamup/internal/posts/store/team"
	dErrors "teamup/pkg/domain-errors"
)

func newIndividual(t *testing.T, name, phone string, createdAt time.Time) *models.IndividualPost {
	t.Helper()
	return &models.IndividualPost{
		ID:        uuid.New(),
		Name:      name,
		Track:     models.TrackOS,
		Roles:     []string{"backend"},
		Phone:     phone,
		Status:    models.StatusOpen,
		CreatedAt: createdAt,
	}
}

func newTeam(t *testing.T, name, contact string, createdAt time.Time) *models.TeamPost {
	t.Helper()
	return &models.TeamPost{
		ID:            uuid.New(),
		TeamName:      name,
		Track:         models.TrackPWD,
		CurrentSize:   3,
		NeededMembers: 2,
		RequiredRoles: []string{"frontend"},
		Contact:       contact,
		Status:        models.StatusOpen,
		CreatedAt:     createdAt,
	}
}

func TestResolveUniqueIndividual(t *testing.T) {
	ctx := context.Background()
	inds := individual.NewInMemory()
	teams := team.NewInMemory()
	require.NoError(t, inds.Insert(ctx, newIndividual(t, "Sara", "01012345678", time.Now())))

	svc := New(inds, teams, nil)

	res, err := svc.Resolve(ctx, "01012345678")
	require.NoError(t, err)
	assert.Equal(t, OutcomeUnique, res.Outcome)
	require.Len(t, res.Posts, 1)
	assert.Equal(t, models.KindIndividual, res.Posts[0].Kind)
	assert.Equal(t, "Sara", res.Posts[0].DisplayName())
}

func TestResolveAmbiguousAcrossCollections(t *testing.T) {
	ctx := context.Background()
	inds := individual.NewInMemory()
	teams := team.NewInMemory()
	require.NoError(t, inds.Insert(ctx, newIndividual(t, "Sara", "01012345678", time.Now().Add(-time.Hour))))
	require.NoError(t, teams.Insert(ctx, newTeam(t, "Nightshift", "01012345678", time.Now())))

	svc := New(inds, teams, nil)

	res, err := svc.Resolve(ctx, "01012345678")
	require.NoError(t, err)
	assert.Equal(t, OutcomeAmbiguous, res.Outcome)
	require.Len(t, res.Posts, 2)
	// Newest first for the disambiguation step.
	assert.Equal(t, models.KindTeam, res.Posts[0].Kind)
	assert.Equal(t, models.KindIndividual, res.Posts[1].Kind)
}

// Documents the historical literal-match behavior: an equivalent spelling of
// a stored number resolves to nothing.
func TestResolveLiteralMissesEquivalentSpelling(t *testing.T) {
	ctx := context.Background()
	inds := individual.NewInMemory()
	teams := team.NewInMemory()
	require.NoError(t, inds.Insert(ctx, newIndividual(t, "Sara", "01012345678", time.Now())))

	svc := New(inds, teams, nil)

	res, err := svc.Resolve(ctx, "+201012345678")
	require.NoError(t, err)
	assert.Equal(t, OutcomeNotFound, res.Outcome)
	assert.Empty(t, res.Posts)
}

func TestResolveNormalizedFindsEquivalentSpelling(t *testing.T) {
	ctx := context.Background()
	inds := individual.NewInMemory()
	teams := team.NewInMemory()
	require.NoError(t, inds.Insert(ctx, newIndividual(t, "Sara", "01012345678", time.Now())))

	svc := New(inds, teams, nil)

	res, err := svc.ResolveNormalized(ctx, "+201012345678")
	require.NoError(t, err)
	assert.Equal(t, OutcomeUnique, res.Outcome)
	require.Len(t, res.Posts, 1)
	assert.Equal(t, "Sara", res.Posts[0].DisplayName())
}

func TestResolveNormalizedDeduplicatesCandidates(t *testing.T) {
	ctx := context.Background()
	inds := individual.NewInMemory()
	teams := team.NewInMemory()
	// One device, two legacy spellings, two distinct posts.
	require.NoError(t, inds.Insert(ctx, newIndividual(t, "Sara", "01012345678", time.Now().Add(-time.Minute))))
	require.NoError(t, teams.Insert(ctx, newTeam(t, "Nightshift", "+201012345678", time.Now())))

	svc := New(inds, teams, nil)

	res, err := svc.ResolveNormalized(ctx, "01012345678")
	require.NoError(t, err)
	assert.Equal(t, OutcomeAmbiguous, res.Outcome)
	assert.Len(t, res.Posts, 2)
}

func TestResolveEmptyPhoneRejected(t *testing.T) {
	svc := New(individual.NewInMemory(), team.NewInMemory(), nil)

	_, err := svc.Resolve(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, dErrors.CodeBadRequest, dErrors.CodeOf(err))
}

type failingIndividuals struct {
	individual.Store
}

func (failingIndividuals) FindByPhoneIn(context.Context, []string) ([]*models.IndividualPost, error) {
	return nil, errors.New("collection unreachable")
}

func TestResolveSurfacesStoreFailure(t *testing.T) {
	svc := New(failingIndividuals{individual.NewInMemory()}, team.NewInMemory(), nil)

	_, err := svc.Resolve(context.Background(), "01012345678")
	require.Error(t, err)
	assert.Equal(t, dErrors.CodeUnavailable, dErrors.CodeOf(err))
}
