// Package service owns post lifecycle semantics: creation, owner-gated
// updates and deletes, and the rule that the stored identity field never
// changes after creation.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"teamup/internal/audit"
	"teamup/internal/identity"
	"teamup/internal/posts/metrics"
	"teamup/internal/posts/models"
	"teamup/internal/posts/store/individual"
	"teamup/internal/posts/store/team"
	dErrors "teamup/pkg/domain-errors"
	"teamup/pkg/platform/sentinel"
	pstrings "teamup/pkg/platform/strings"
	"teamup/pkg/requestcontext"
)

// Service coordinates the two post collections. Mutations on existing posts
// require the session identity to own the post's stored phone or contact
// field under phone equivalence.
type Service struct {
	individuals individual.Store
	teams       team.Store
	audit       *audit.Publisher
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

// New constructs the post lifecycle service. Audit and metrics may be nil.
func New(individuals individual.Store, teams team.Store, auditPub *audit.Publisher, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		individuals: individuals,
		teams:       teams,
		audit:       auditPub,
		metrics:     m,
		logger:      logger,
	}
}

// CreateIndividualInput carries the submission form fields for a person
// looking for a team. The phone is stored verbatim.
type CreateIndividualInput struct {
	Name        string
	Track       models.Track
	Roles       []string
	Skills      string
	Description string
	Phone       string
	Language    string
}

// UpdateIndividualInput carries the editable fields. The phone is absent on
// purpose: the stored identity field never changes after creation.
type UpdateIndividualInput struct {
	Name        string
	Track       models.Track
	Roles       []string
	Skills      string
	Description string
	Language    string
	Status      models.Status
}

// CreateTeamInput carries the submission form fields for a recruiting team.
// The contact is stored verbatim.
type CreateTeamInput struct {
	TeamName      string
	Track         models.Track
	CurrentSize   int
	NeededMembers int
	RequiredRoles []string
	ProjectIdea   string
	Contact       string
}

// UpdateTeamInput carries the editable fields. The contact is absent for the
// same reason UpdateIndividualInput omits the phone.
type UpdateTeamInput struct {
	TeamName      string
	Track         models.Track
	CurrentSize   int
	NeededMembers int
	RequiredRoles []string
	ProjectIdea   string
	Status        models.Status
}

// CreateIndividual validates and inserts a new individual post.
func (s *Service) CreateIndividual(ctx context.Context, in CreateIndividualInput) (*models.IndividualPost, error) {
	post, err := models.NewIndividualPost(in.Name, in.Track, in.Roles, in.Skills, in.Description, in.Phone, in.Language, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if err := s.individuals.Insert(ctx, post); err != nil {
		return nil, translateStoreErr(err, "insert individual post")
	}

	s.recordMutation(ctx, models.KindIndividual, audit.ActionPostCreated, post.ID, post.Phone)
	return post, nil
}

// UpdateIndividual replaces the editable fields of an owned post. The stored
// phone and creation time survive every update.
func (s *Service) UpdateIndividual(ctx context.Context, id uuid.UUID, in UpdateIndividualInput) (*models.IndividualPost, error) {
	existing, err := s.individuals.FindByID(ctx, id)
	if err != nil {
		return nil, translateStoreErr(err, "load individual post")
	}
	if err := s.requireOwner(ctx, existing.OwnerKey()); err != nil {
		return nil, err
	}
	if err := validateEdit(in.Name, in.Track, in.Roles, in.Status); err != nil {
		return nil, err
	}

	updated := *existing
	updated.Name = in.Name
	updated.Track = in.Track
	updated.Roles = pstrings.DedupeAndTrim(in.Roles)
	updated.Skills = in.Skills
	updated.Description = in.Description
	updated.Language = in.Language
	updated.Status = in.Status

	if err := s.individuals.Update(ctx, &updated); err != nil {
		return nil, translateStoreErr(err, "update individual post")
	}

	s.recordMutation(ctx, models.KindIndividual, audit.ActionPostUpdated, updated.ID, updated.Phone)
	return &updated, nil
}

// DeleteIndividual removes an owned post by id.
func (s *Service) DeleteIndividual(ctx context.Context, id uuid.UUID) error {
	existing, err := s.individuals.FindByID(ctx, id)
	if err != nil {
		return translateStoreErr(err, "load individual post")
	}
	if err := s.requireOwner(ctx, existing.OwnerKey()); err != nil {
		return err
	}
	if err := s.individuals.Delete(ctx, id); err != nil {
		return translateStoreErr(err, "delete individual post")
	}

	s.recordMutation(ctx, models.KindIndividual, audit.ActionPostDeleted, id, existing.Phone)
	return nil
}

// CreateTeam validates and inserts a new team post.
func (s *Service) CreateTeam(ctx context.Context, in CreateTeamInput) (*models.TeamPost, error) {
	post, err := models.NewTeamPost(in.TeamName, in.Track, in.CurrentSize, in.NeededMembers, in.RequiredRoles, in.ProjectIdea, in.Contact, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if err := s.teams.Insert(ctx, post); err != nil {
		return nil, translateStoreErr(err, "insert team post")
	}

	s.recordMutation(ctx, models.KindTeam, audit.ActionPostCreated, post.ID, post.Contact)
	return post, nil
}

// UpdateTeam replaces the editable fields of an owned team post. The stored
// contact and creation time survive every update.
func (s *Service) UpdateTeam(ctx context.Context, id uuid.UUID, in UpdateTeamInput) (*models.TeamPost, error) {
	existing, err := s.teams.FindByID(ctx, id)
	if err != nil {
		return nil, translateStoreErr(err, "load team post")
	}
	if err := s.requireOwner(ctx, existing.OwnerKey()); err != nil {
		return nil, err
	}
	if err := validateEdit(in.TeamName, in.Track, in.RequiredRoles, in.Status); err != nil {
		return nil, err
	}
	if in.CurrentSize < 1 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "current size must be at least 1")
	}
	if in.NeededMembers < 1 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "needed members must be at least 1")
	}

	updated := *existing
	updated.TeamName = in.TeamName
	updated.Track = in.Track
	updated.CurrentSize = in.CurrentSize
	updated.NeededMembers = in.NeededMembers
	updated.RequiredRoles = pstrings.DedupeAndTrim(in.RequiredRoles)
	updated.ProjectIdea = in.ProjectIdea
	updated.Status = in.Status

	if err := s.teams.Update(ctx, &updated); err != nil {
		return nil, translateStoreErr(err, "update team post")
	}

	s.recordMutation(ctx, models.KindTeam, audit.ActionPostUpdated, updated.ID, updated.Contact)
	return &updated, nil
}

// DeleteTeam removes an owned team post by id.
func (s *Service) DeleteTeam(ctx context.Context, id uuid.UUID) error {
	existing, err := s.teams.FindByID(ctx, id)
	if err != nil {
		return translateStoreErr(err, "load team post")
	}
	if err := s.requireOwner(ctx, existing.OwnerKey()); err != nil {
		return err
	}
	if err := s.teams.Delete(ctx, id); err != nil {
		return translateStoreErr(err, "delete team post")
	}

	s.recordMutation(ctx, models.KindTeam, audit.ActionPostDeleted, id, existing.Contact)
	return nil
}

// requireOwner compares the session identity against the stored identity
// field under phone equivalence. Anonymous sessions own nothing.
func (s *Service) requireOwner(ctx context.Context, ownerField string) error {
	current := requestcontext.Identity(ctx)
	if current == "" {
		return dErrors.New(dErrors.CodeUnauthorized, "login required")
	}
	if !identity.IsOwner(current, ownerField) {
		return dErrors.New(dErrors.CodeForbidden, "post belongs to a different phone")
	}
	return nil
}

func (s *Service) recordMutation(ctx context.Context, kind models.Kind, action audit.Action, id uuid.UUID, ownerField string) {
	if s.metrics != nil {
		s.metrics.IncMutation(string(kind), string(action))
	}
	s.audit.Emit(ctx, audit.Event{
		Action:   action,
		PostKind: string(kind),
		PostID:   id.String(),
		Identity: requestcontext.Identity(ctx),
	})
	s.logger.InfoContext(ctx, "post mutation applied",
		"action", action,
		"kind", kind,
		"post_id", id,
		"owner_field", ownerField,
		"request_id", requestcontext.RequestID(ctx),
	)
}

// validateEdit checks the fields shared by both update paths. Creation
// validates through the model constructors instead.
func validateEdit(name string, track models.Track, roles []string, status models.Status) error {
	if name == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "name cannot be empty")
	}
	if !track.Valid() {
		return dErrors.New(dErrors.CodeInvariantViolation, "unknown track")
	}
	if len(pstrings.DedupeAndTrim(roles)) == 0 {
		return dErrors.New(dErrors.CodeInvariantViolation, "at least one role is required")
	}
	if !status.Valid() {
		return dErrors.New(dErrors.CodeInvariantViolation, "unknown status")
	}
	return nil
}

func translateStoreErr(err error, op string) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.Wrap(dErrors.CodeNotFound, "post not found", err)
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.Wrap(dErrors.CodeConflict, "post already exists", err)
	default:
		return dErrors.Wrap(dErrors.CodeUnavailable, op+" failed", err)
	}
}
