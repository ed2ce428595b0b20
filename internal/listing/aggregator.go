// Package listing merges the two post collections into one browsable feed.
package listing

import (
	"context"
	"slices"
	"sort"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"teamup/internal/identity"
	"teamup/internal/listing/metrics"
	"teamup/internal/posts/models"
	"teamup/internal/posts/store/individual"
	"teamup/internal/posts/store/team"
	dErrors "teamup/pkg/domain-errors"
)

// Scope restricts the feed to one post kind.
type Scope string

const (
	ScopeAll         Scope = "all"
	ScopeIndividuals Scope = "individuals"
	ScopeTeams       Scope = "teams"
)

// ParseScope maps the wire value onto a Scope, defaulting to all.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case "", ScopeAll:
		return ScopeAll, nil
	case ScopeIndividuals:
		return ScopeIndividuals, nil
	case ScopeTeams:
		return ScopeTeams, nil
	default:
		return "", dErrors.New(dErrors.CodeBadRequest, "scope must be all, individuals, or teams")
	}
}

// Filter narrows the feed. Zero values mean "no restriction".
type Filter struct {
	Track models.Track
	Role  string
}

// Item is one feed entry: the tagged post plus the ownership flag the caller
// uses to show edit affordances.
type Item struct {
	models.Post
	IsOwner bool `json:"is_owner"`
}

// Aggregator assembles the feed from two fresh snapshots per call. Nothing is
// cached or incrementally patched; a filter change simply recomputes.
type Aggregator struct {
	individuals individual.Store
	teams       team.Store
	metrics     *metrics.Metrics
}

// New constructs the aggregator over the two collection stores. metrics may
// be nil in tests.
func New(individuals individual.Store, teams team.Store, m *metrics.Metrics) *Aggregator {
	return &Aggregator{individuals: individuals, teams: teams, metrics: m}
}

// List fetches both collections, filters per kind, tags ownership against the
// current session identity, applies the scope, and returns the merged feed
// newest first. limit > 0 truncates for preview feeds.
//
// All-or-nothing: if either fetch fails the whole call fails. A feed showing
// only one collection would be misleadingly incomplete.
func (a *Aggregator) List(ctx context.Context, currentIdentity string, filter Filter, scope Scope, limit int) ([]Item, error) {
	ctx, span := otel.Tracer("teamup").Start(ctx, "listing.list")
	span.SetAttributes(attribute.String("scope", string(scope)))
	defer span.End()

	fetchStart := time.Now()
	var (
		inds []*models.IndividualPost
		tms  []*models.TeamPost
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		inds, err = a.individuals.ListAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		tms, err = a.teams.ListAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeUnavailable, "listings are temporarily unavailable", err)
	}
	fetchDuration := time.Since(fetchStart)

	var feed []Item
	if scope != ScopeTeams {
		for _, p := range inds {
			if !matches(filter, p.Track, p.Roles) {
				continue
			}
			feed = append(feed, Item{
				Post:    models.WrapIndividual(p),
				IsOwner: identity.IsOwner(currentIdentity, p.OwnerKey()),
			})
		}
	}
	if scope != ScopeIndividuals {
		for _, p := range tms {
			if !matches(filter, p.Track, p.RequiredRoles) {
				continue
			}
			feed = append(feed, Item{
				Post:    models.WrapTeam(p),
				IsOwner: identity.IsOwner(currentIdentity, p.OwnerKey()),
			})
		}
	}

	// Each source list arrives time-ordered, but interleaving two
	// chronological streams needs a re-sort of the union.
	if scope == ScopeAll {
		sort.SliceStable(feed, func(i, j int) bool {
			return feed[i].CreatedAt().After(feed[j].CreatedAt())
		})
	}

	if limit > 0 && len(feed) > limit {
		feed = feed[:limit]
	}

	if a.metrics != nil {
		a.metrics.ObserveFeed(string(scope), len(feed), fetchDuration)
	}
	return feed, nil
}

// matches applies the track and role filters to one post's fields.
func matches(f Filter, track models.Track, roles []string) bool {
	if f.Track != "" && track != f.Track {
		return false
	}
	if f.Role != "" && !slices.Contains(roles, f.Role) {
		return false
	}
	return true
}
