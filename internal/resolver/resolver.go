// Package resolver maps a raw phone string to zero, one, or many owned posts
// across the two collections.
package resolver

import (
	"context"
	"sort"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"teamup/internal/phone"
	"teamup/internal/posts/models"
	"teamup/internal/posts/store/individual"
	"teamup/internal/posts/store/team"
	"teamup/internal/resolver/metrics"
	dErrors "teamup/pkg/domain-errors"
)

// Outcome classifies a resolution by match count.
type Outcome string

const (
	OutcomeNotFound  Outcome = "not_found"
	OutcomeUnique    Outcome = "unique"
	OutcomeAmbiguous Outcome = "ambiguous"
)

// MatchMode selects how the input is compared against stored identity fields.
//
// MatchLiteral reproduces the historical behavior: the input must equal the
// stored value byte for byte. A user who registered with "01012345678" and
// searches with "+201012345678" gets nothing. Whether that is a deliberate
// simplification or an unfixed defect is unsettled, so both behaviors stay
// available and separately tested rather than silently merged.
//
// MatchNormalized broadens the comparison to the full variation set of the
// input and de-duplicates candidates by canonical identity before
// classifying.
type MatchMode string

const (
	MatchLiteral    MatchMode = "literal"
	MatchNormalized MatchMode = "normalized"
)

// Resolution is the classified result of one lookup. Posts is empty for
// NotFound, holds exactly one entry for Unique, and two or more for
// Ambiguous, newest first.
type Resolution struct {
	Outcome Outcome
	Posts   []models.Post
}

// Service runs lookups against the two collections concurrently.
type Service struct {
	individuals individual.Store
	teams       team.Store
	metrics     *metrics.Metrics
}

// New constructs the resolver over the two collection stores. metrics may be
// nil in tests.
func New(individuals individual.Store, teams team.Store, m *metrics.Metrics) *Service {
	return &Service{individuals: individuals, teams: teams, metrics: m}
}

// Resolve looks up posts whose identity field literally equals rawPhone.
func (s *Service) Resolve(ctx context.Context, rawPhone string) (Resolution, error) {
	return s.resolve(ctx, MatchLiteral, rawPhone, []string{rawPhone})
}

// ResolveNormalized looks up posts whose identity field matches any spelling
// of rawPhone, de-duplicated by post identity.
func (s *Service) ResolveNormalized(ctx context.Context, rawPhone string) (Resolution, error) {
	return s.resolve(ctx, MatchNormalized, rawPhone, phone.Variations(rawPhone))
}

func (s *Service) resolve(ctx context.Context, mode MatchMode, rawPhone string, spellings []string) (Resolution, error) {
	ctx, span := otel.Tracer("teamup").Start(ctx, "resolver.resolve")
	span.SetAttributes(attribute.String("match_mode", string(mode)))
	defer span.End()

	if rawPhone == "" {
		return Resolution{}, dErrors.New(dErrors.CodeBadRequest, "phone is required")
	}

	// Both results are needed before classification; this is a join, not a
	// race. The shared context cancels the surviving fetch on first failure.
	var (
		inds  []*models.IndividualPost
		teams []*models.TeamPost
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		inds, err = s.individuals.FindByPhoneIn(gctx, spellings)
		return err
	})
	g.Go(func() error {
		var err error
		teams, err = s.teams.FindByContactIn(gctx, spellings)
		return err
	})
	if err := g.Wait(); err != nil {
		return Resolution{}, dErrors.Wrap(dErrors.CodeUnavailable, "post lookup failed", err)
	}

	candidates := make([]models.Post, 0, len(inds)+len(teams))
	for _, p := range inds {
		candidates = append(candidates, models.WrapIndividual(p))
	}
	for _, p := range teams {
		candidates = append(candidates, models.WrapTeam(p))
	}
	if mode == MatchNormalized {
		candidates = dedupeByIdentity(candidates)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].CreatedAt().After(candidates[j].CreatedAt())
	})

	res := Resolution{Posts: candidates}
	switch len(candidates) {
	case 0:
		res.Outcome = OutcomeNotFound
	case 1:
		res.Outcome = OutcomeUnique
	default:
		res.Outcome = OutcomeAmbiguous
	}

	if s.metrics != nil {
		s.metrics.IncResolution(string(mode), string(res.Outcome))
	}
	span.SetAttributes(attribute.String("outcome", string(res.Outcome)))
	return res, nil
}

// dedupeByIdentity drops candidates already seen under the same kind and post
// ID. Variation queries can return one record several times when multiple
// spellings of the same number are stored across legacy rows.
func dedupeByIdentity(posts []models.Post) []models.Post {
	type key struct {
		kind models.Kind
		id   string
	}
	seen := make(map[key]struct{}, len(posts))
	out := posts[:0]
	for _, p := range posts {
		k := key{kind: p.Kind, id: p.ID().String()}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, p)
	}
	return out
}
