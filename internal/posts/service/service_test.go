package service

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"teamup/internal/audit"
	"teamup/internal/posts/models"
	"teamup/internal/posts/store/individual"
	"teamup/internal/posts/store/team"
	dErrors "teamup/pkg/domain-errors"
	"teamup/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite

	individuals *individual.InMemory
	teams       *team.InMemory
	sink        *audit.InMemoryStore
	svc         *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.individuals = individual.NewInMemory()
	s.teams = team.NewInMemory()
	s.sink = audit.NewInMemoryStore()
	s.svc = New(s.individuals, s.teams, audit.NewPublisher(s.sink, slog.Default()), nil, slog.Default())
}

func (s *ServiceSuite) asIdentity(phone string) context.Context {
	return requestcontext.WithIdentity(context.Background(), phone)
}

func (s *ServiceSuite) createIndividual(ctx context.Context, phone string) *models.IndividualPost {
	post, err := s.svc.CreateIndividual(ctx, CreateIndividualInput{
		Name:     "Sara",
		Track:    models.TrackOS,
		Roles:    []string{"backend"},
		Phone:    phone,
		Language: "ar",
	})
	s.Require().NoError(err)
	return post
}

func (s *ServiceSuite) createTeam(ctx context.Context, contact string) *models.TeamPost {
	post, err := s.svc.CreateTeam(ctx, CreateTeamInput{
		TeamName:      "nullpointers",
		Track:         models.TrackUIUX,
		CurrentSize:   3,
		NeededMembers: 2,
		RequiredRoles: []string{"ui-ux", "qa"},
		Contact:       contact,
	})
	s.Require().NoError(err)
	return post
}

func (s *ServiceSuite) TestCreateIndividualStoresVerbatimPhone() {
	post := s.createIndividual(context.Background(), "0101 234 5678")

	stored, err := s.individuals.FindByID(context.Background(), post.ID)
	s.Require().NoError(err)
	s.Equal("0101 234 5678", stored.Phone)
	s.Equal(models.StatusOpen, stored.Status)
}

func (s *ServiceSuite) TestCreateRejectsUnknownTrack() {
	_, err := s.svc.CreateIndividual(context.Background(), CreateIndividualInput{
		Name:  "Sara",
		Track: "Web3",
		Roles: []string{"backend"},
		Phone: "01012345678",
	})
	s.Require().Error(err)
	s.Equal(dErrors.CodeInvariantViolation, dErrors.CodeOf(err))
}

func (s *ServiceSuite) TestUpdateByOwnerAcrossSpellings() {
	// Stored with the local spelling; session identity is canonical.
	post := s.createIndividual(context.Background(), "01012345678")

	updated, err := s.svc.UpdateIndividual(s.asIdentity("+201012345678"), post.ID, UpdateIndividualInput{
		Name:   "Sara M.",
		Track:  models.TrackPWD,
		Roles:  []string{"frontend"},
		Status: models.StatusClosed,
	})
	s.Require().NoError(err)
	s.Equal("Sara M.", updated.Name)
	s.Equal(models.StatusClosed, updated.Status)
	s.Equal("01012345678", updated.Phone, "identity field survives updates")
	s.Equal(post.CreatedAt, updated.CreatedAt)
}

func (s *ServiceSuite) TestUpdateByNonOwnerForbidden() {
	post := s.createIndividual(context.Background(), "01012345678")

	_, err := s.svc.UpdateIndividual(s.asIdentity("+201099999999"), post.ID, UpdateIndividualInput{
		Name:   "Mallory",
		Track:  models.TrackOS,
		Roles:  []string{"backend"},
		Status: models.StatusOpen,
	})
	s.Require().Error(err)
	s.Equal(dErrors.CodeForbidden, dErrors.CodeOf(err))
}

func (s *ServiceSuite) TestUpdateAnonymousUnauthorized() {
	post := s.createIndividual(context.Background(), "01012345678")

	_, err := s.svc.UpdateIndividual(context.Background(), post.ID, UpdateIndividualInput{
		Name:   "Nobody",
		Track:  models.TrackOS,
		Roles:  []string{"backend"},
		Status: models.StatusOpen,
	})
	s.Require().Error(err)
	s.Equal(dErrors.CodeUnauthorized, dErrors.CodeOf(err))
}

func (s *ServiceSuite) TestUpdateUnknownIDNotFound() {
	_, err := s.svc.UpdateIndividual(s.asIdentity("+201012345678"), uuid.New(), UpdateIndividualInput{
		Name:   "Sara",
		Track:  models.TrackOS,
		Roles:  []string{"backend"},
		Status: models.StatusOpen,
	})
	s.Require().Error(err)
	s.Equal(dErrors.CodeNotFound, dErrors.CodeOf(err))
}

func (s *ServiceSuite) TestDeleteByOwner() {
	post := s.createIndividual(context.Background(), "01012345678")

	s.Require().NoError(s.svc.DeleteIndividual(s.asIdentity("+201012345678"), post.ID))

	_, err := s.individuals.FindByID(context.Background(), post.ID)
	s.Require().Error(err)
}

func (s *ServiceSuite) TestDeleteByNonOwnerForbidden() {
	post := s.createIndividual(context.Background(), "01012345678")

	err := s.svc.DeleteIndividual(s.asIdentity("+201099999999"), post.ID)
	s.Require().Error(err)
	s.Equal(dErrors.CodeForbidden, dErrors.CodeOf(err))

	_, findErr := s.individuals.FindByID(context.Background(), post.ID)
	s.NoError(findErr, "rejected delete must leave the post in place")
}

func (s *ServiceSuite) TestTeamUpdatePreservesContact() {
	post := s.createTeam(context.Background(), "01055555555")

	updated, err := s.svc.UpdateTeam(s.asIdentity("+201055555555"), post.ID, UpdateTeamInput{
		TeamName:      "nullpointers",
		Track:         models.TrackUIUX,
		CurrentSize:   4,
		NeededMembers: 1,
		RequiredRoles: []string{"qa"},
		ProjectIdea:   "accessibility checker",
		Status:        models.StatusOpen,
	})
	s.Require().NoError(err)
	s.Equal("01055555555", updated.Contact)
	s.Equal(4, updated.CurrentSize)
}

func (s *ServiceSuite) TestTeamUpdateRejectsZeroSize() {
	post := s.createTeam(context.Background(), "01055555555")

	_, err := s.svc.UpdateTeam(s.asIdentity("+201055555555"), post.ID, UpdateTeamInput{
		TeamName:      "nullpointers",
		Track:         models.TrackUIUX,
		CurrentSize:   0,
		NeededMembers: 1,
		RequiredRoles: []string{"qa"},
		Status:        models.StatusOpen,
	})
	s.Require().Error(err)
	s.Equal(dErrors.CodeInvariantViolation, dErrors.CodeOf(err))
}

func (s *ServiceSuite) TestMutationsEmitAuditTrail() {
	ctx := s.asIdentity("+201012345678")
	post := s.createIndividual(ctx, "01012345678")
	_, err := s.svc.UpdateIndividual(ctx, post.ID, UpdateIndividualInput{
		Name:   "Sara",
		Track:  models.TrackOS,
		Roles:  []string{"backend"},
		Status: models.StatusClosed,
	})
	s.Require().NoError(err)
	s.Require().NoError(s.svc.DeleteIndividual(ctx, post.ID))

	events := s.sink.Events()
	s.Require().Len(events, 3)
	s.Equal(audit.ActionPostCreated, events[0].Action)
	s.Equal(audit.ActionPostUpdated, events[1].Action)
	s.Equal(audit.ActionPostDeleted, events[2].Action)
	s.Equal(post.ID.String(), events[2].PostID)
	s.Equal("+201012345678", events[1].Identity)
}
