package listing

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

type fixture struct {
	inds  *individual.InMemory
	teams *team.InMemory
	agg   *Aggregator
	ctx   context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		inds:  individual.NewInMemory(),
		teams: team.NewInMemory(),
		ctx:   context.Background(),
	}
	f.agg = New(f.inds, f.teams, nil)
	return f
}

func (f *fixture) addIndividual(t *testing.T, name string, track models.Track, roles []string, phone string, createdAt time.Time) {
	t.Helper()
	require.NoError(t, f.inds.Insert(f.ctx, &models.IndividualPost{
		ID:        uuid.New(),
		Name:      name,
		Track:     track,
		Roles:     roles,
		Phone:     phone,
		Status:    models.StatusOpen,
		CreatedAt: createdAt,
	}))
}

func (f *fixture) addTeam(t *testing.T, name string, track models.Track, roles []string, contact string, createdAt time.Time) {
	t.Helper()
	require.NoError(t, f.teams.Insert(f.ctx, &models.TeamPost{
		ID:            uuid.New(),
		TeamName:      name,
		Track:         track,
		CurrentSize:   2,
		NeededMembers: 1,
		RequiredRoles: roles,
		Contact:       contact,
		Status:        models.StatusOpen,
		CreatedAt:     createdAt,
	}))
}

func names(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.DisplayName()
	}
	return out
}

func TestListMergeOrdering(t *testing.T) {
	f := newFixture(t)
	base := time.Now()
	f.addIndividual(t, "A", models.TrackOS, []string{"backend"}, "0100", base.Add(2*time.Second))
	f.addTeam(t, "B", models.TrackOS, []string{"backend"}, "0101", base.Add(1*time.Second))
	f.addIndividual(t, "C", models.TrackOS, []string{"backend"}, "0102", base.Add(3*time.Second))

	feed, err := f.agg.List(f.ctx, "", Filter{}, ScopeAll, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A", "B"}, names(feed))
}

func TestListTrackFilterAppliesToBothKinds(t *testing.T) {
	f := newFixture(t)
	now := time.Now()
	f.addIndividual(t, "os-person", models.TrackOS, []string{"backend"}, "0100", now)
	f.addIndividual(t, "pwd-person", models.TrackPWD, []string{"backend"}, "0101", now.Add(time.Second))
	f.addTeam(t, "os-team", models.TrackOS, []string{"qa"}, "0102", now.Add(2*time.Second))
	f.addTeam(t, "uiux-team", models.TrackUIUX, []string{"qa"}, "0103", now.Add(3*time.Second))

	feed, err := f.agg.List(f.ctx, "", Filter{Track: models.TrackOS}, ScopeAll, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"os-team", "os-person"}, names(feed))
}

func TestListRoleFilterUsesPerKindRoleSet(t *testing.T) {
	f := newFixture(t)
	now := time.Now()
	f.addIndividual(t, "backend-person", models.TrackOS, []string{"backend", "devops"}, "0100", now)
	f.addIndividual(t, "qa-person", models.TrackOS, []string{"qa"}, "0101", now.Add(time.Second))
	f.addTeam(t, "needs-backend", models.TrackOS, []string{"backend"}, "0102", now.Add(2*time.Second))
	f.addTeam(t, "needs-mobile", models.TrackOS, []string{"mobile"}, "0103", now.Add(3*time.Second))

	feed, err := f.agg.List(f.ctx, "", Filter{Role: "backend"}, ScopeAll, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"needs-backend", "backend-person"}, names(feed))
}

func TestListScopeDropsOtherKindAfterFiltering(t *testing.T) {
	f := newFixture(t)
	now := time.Now()
	f.addIndividual(t, "person", models.TrackOS, []string{"backend"}, "0100", now)
	f.addTeam(t, "squad", models.TrackOS, []string{"backend"}, "0101", now.Add(time.Second))

	feed, err := f.agg.List(f.ctx, "", Filter{}, ScopeIndividuals, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"person"}, names(feed))

	feed, err = f.agg.List(f.ctx, "", Filter{Track: models.TrackOS}, ScopeTeams, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"squad"}, names(feed))
}

func TestListLimitTruncatesPreviewFeed(t *testing.T) {
	f := newFixture(t)
	base := time.Now()
	for i, name := range []string{"one", "two", "three", "four"} {
		f.addIndividual(t, name, models.TrackOS, []string{"backend"}, "010"+name, base.Add(time.Duration(i)*time.Second))
	}

	feed, err := f.agg.List(f.ctx, "", Filter{}, ScopeAll, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"four", "three"}, names(feed))
}

func TestListTagsOwnershipAgainstSessionIdentity(t *testing.T) {
	f := newFixture(t)
	now := time.Now()
	// Legacy spelling in the store; ownership still recognized because the
	// stored field is re-normalized at comparison time.
	f.addIndividual(t, "mine", models.TrackOS, []string{"backend"}, "01012345678", now)
	f.addTeam(t, "not-mine", models.TrackOS, []string{"backend"}, "01099999999", now.Add(time.Second))

	feed, err := f.agg.List(f.ctx, "+201012345678", Filter{}, ScopeAll, 0)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.False(t, feed[0].IsOwner)
	assert.True(t, feed[1].IsOwner)
}

func TestListAnonymousOwnsNothing(t *testing.T) {
	f := newFixture(t)
	f.addIndividual(t, "somebody", models.TrackOS, []string{"backend"}, "01012345678", time.Now())

	feed, err := f.agg.List(f.ctx, "", Filter{}, ScopeAll, 0)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.False(t, feed[0].IsOwner)
}

type failingTeams struct {
	team.Store
}

func (failingTeams) ListAll(context.Context) ([]*models.TeamPost, error) {
	return nil, errors.New("collection unreachable")
}

// A feed must never silently show one collection while the other is down.
func TestListFailsWholeCallOnPartialFetchFailure(t *testing.T) {
	f := newFixture(t)
	f.addIndividual(t, "person", models.TrackOS, []string{"backend"}, "0100", time.Now())

	broken := New(f.inds, failingTeams{f.teams}, nil)
	_, err := broken.List(f.ctx, "", Filter{}, ScopeAll, 0)
	require.Error(t, err)
	assert.Equal(t, dErrors.CodeUnavailable, dErrors.CodeOf(err))
}

func TestParseScope(t *testing.T) {
	for in, want := range map[string]Scope{
		"":            ScopeAll,
		"all":         ScopeAll,
		"individuals": ScopeIndividuals,
		"teams":       ScopeTeams,
	} {
		got, err := ParseScope(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseScope("everything")
	require.Error(t, err)
}
