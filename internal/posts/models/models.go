// Package models defines the two post shapes on the board and the tagged
// union that carries them through the resolver and aggregator.
package models

import (
	"time"

	"github.com/google/uuid"

	dErrors "teamup/pkg/domain-errors"
	pstrings "teamup/pkg/platform/strings"
)

// Track is the coarse category shared by both post kinds.
type Track string

const (
	TrackPWD  Track = "PWD"
	TrackOS   Track = "OS"
	TrackUIUX Track = "UI-UX"
)

// Tracks lists the closed set of valid tracks.
var Tracks = []Track{TrackPWD, TrackOS, TrackUIUX}

// Valid reports whether the track is one of the known categories.
func (t Track) Valid() bool {
	for _, known := range Tracks {
		if t == known {
			return true
		}
	}
	return false
}

// Status marks whether a post is still recruiting.
type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s Status) Valid() bool {
	return s == StatusOpen || s == StatusClosed
}

// IndividualPost is a person looking for a team. Ownership key: Phone.
type IndividualPost struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Track       Track     `json:"track"`
	Roles       []string  `json:"roles"`
	Skills      string    `json:"skills"`
	Description string    `json:"description"`
	Phone       string    `json:"phone"`
	Language    string    `json:"language"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// OwnerKey returns the stored identity field gating edits and deletes.
func (p *IndividualPost) OwnerKey() string { return p.Phone }

// TeamPost is a team looking for members. Ownership key: Contact.
type TeamPost struct {
	ID            uuid.UUID `json:"id"`
	TeamName      string    `json:"team_name"`
	Track         Track     `json:"track"`
	CurrentSize   int       `json:"current_size"`
	NeededMembers int       `json:"needed_members"`
	RequiredRoles []string  `json:"required_roles"`
	ProjectIdea   string    `json:"project_idea"`
	Contact       string    `json:"contact"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// OwnerKey returns the stored identity field gating edits and deletes.
func (p *TeamPost) OwnerKey() string { return p.Contact }

// NewIndividualPost validates and constructs an individual post. The phone is
// stored exactly as given; normalization happens at comparison time, never at
// write time, so legacy and fresh records live under one rule.
func NewIndividualPost(name string, track Track, roles []string, skills, description, phone, language string, now time.Time) (*IndividualPost, error) {
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "name cannot be empty")
	}
	if !track.Valid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "unknown track")
	}
	roles = pstrings.DedupeAndTrim(roles)
	if len(roles) == 0 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "at least one role is required")
	}
	if phone == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "phone cannot be empty")
	}
	return &IndividualPost{
		ID:          uuid.New(),
		Name:        name,
		Track:       track,
		Roles:       roles,
		Skills:      skills,
		Description: description,
		Phone:       phone,
		Language:    language,
		Status:      StatusOpen,
		CreatedAt:   now,
	}, nil
}

// NewTeamPost validates and constructs a team post. Same storage rule as
// NewIndividualPost: the contact field is stored verbatim.
func NewTeamPost(teamName string, track Track, currentSize, neededMembers int, requiredRoles []string, projectIdea, contact string, now time.Time) (*TeamPost, error) {
	if teamName == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "team name cannot be empty")
	}
	if !track.Valid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "unknown track")
	}
	if currentSize < 1 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "current size must be at least 1")
	}
	if neededMembers < 1 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "needed members must be at least 1")
	}
	requiredRoles = pstrings.DedupeAndTrim(requiredRoles)
	if len(requiredRoles) == 0 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "at least one required role is needed")
	}
	if contact == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "contact cannot be empty")
	}
	return &TeamPost{
		ID:            uuid.New(),
		TeamName:      teamName,
		Track:         track,
		CurrentSize:   currentSize,
		NeededMembers: neededMembers,
		RequiredRoles: requiredRoles,
		ProjectIdea:   projectIdea,
		Contact:       contact,
		Status:        StatusOpen,
		CreatedAt:     now,
	}, nil
}

// Kind tags which collection a post came from.
type Kind string

const (
	KindIndividual Kind = "individual"
	KindTeam       Kind = "team"
)

// Post is the tagged union carried through the resolver and aggregator.
// Exactly one of Individual or Team is non-nil, matching Kind. Downstream
// code switches on Kind instead of probing field presence.
type Post struct {
	Kind       Kind            `json:"kind"`
	Individual *IndividualPost `json:"individual,omitempty"`
	Team       *TeamPost       `json:"team,omitempty"`
}

// WrapIndividual tags an individual post.
func WrapIndividual(p *IndividualPost) Post {
	return Post{Kind: KindIndividual, Individual: p}
}

// WrapTeam tags a team post.
func WrapTeam(p *TeamPost) Post {
	return Post{Kind: KindTeam, Team: p}
}

// ID returns the post's identifier regardless of kind.
func (p Post) ID() uuid.UUID {
	if p.Kind == KindTeam {
		return p.Team.ID
	}
	return p.Individual.ID
}

// CreatedAt returns the creation time regardless of kind.
func (p Post) CreatedAt() time.Time {
	if p.Kind == KindTeam {
		return p.Team.CreatedAt
	}
	return p.Individual.CreatedAt
}

// Track returns the post's track regardless of kind.
func (p Post) Track() Track {
	if p.Kind == KindTeam {
		return p.Team.Track
	}
	return p.Individual.Track
}

// Roles returns the role set the post is filtered on: offered roles for an
// individual, required roles for a team.
func (p Post) Roles() []string {
	if p.Kind == KindTeam {
		return p.Team.RequiredRoles
	}
	return p.Individual.Roles
}

// OwnerKey returns the stored identity field regardless of kind.
func (p Post) OwnerKey() string {
	if p.Kind == KindTeam {
		return p.Team.OwnerKey()
	}
	return p.Individual.OwnerKey()
}

// DisplayName returns what a disambiguation step shows for this post.
func (p Post) DisplayName() string {
	if p.Kind == KindTeam {
		return p.Team.TeamName
	}
	return p.Individual.Name
}
