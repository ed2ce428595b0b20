package handler

import (
	"strings"

	"teamup/internal/posts/models"
	"teamup/internal/posts/service"
	dErrors "teamup/pkg/domain-errors"
)

// CreateIndividualRequest is the HTTP request body for POST /individuals.
type CreateIndividualRequest struct {
	Name        string   `json:"name"`
	Track       string   `json:"track"`
	Roles       []string `json:"roles"`
	Skills      string   `json:"skills"`
	Description string   `json:"description"`
	Phone       string   `json:"phone"`
	Language    string   `json:"language"`
}

// Validate implements the Validatable interface for httputil.DecodeAndPrepare.
// Vocabulary checks (track, roles) happen in the model constructor; here only
// shape and presence.
func (r *CreateIndividualRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Phone = strings.TrimSpace(r.Phone)
	if r.Name == "" {
		return dErrors.New(dErrors.CodeBadRequest, "name is required")
	}
	if r.Phone == "" {
		return dErrors.New(dErrors.CodeBadRequest, "phone is required")
	}
	if len(r.Roles) == 0 {
		return dErrors.New(dErrors.CodeBadRequest, "at least one role is required")
	}
	return nil
}

// ToInput maps the request onto the service input.
func (r *CreateIndividualRequest) ToInput() service.CreateIndividualInput {
	return service.CreateIndividualInput{
		Name:        r.Name,
		Track:       models.Track(r.Track),
		Roles:       r.Roles,
		Skills:      r.Skills,
		Description: r.Description,
		Phone:       r.Phone,
		Language:    r.Language,
	}
}

// UpdateIndividualRequest is the HTTP request body for PUT /individuals/{id}.
// The phone is deliberately absent; the stored identity field never changes.
type UpdateIndividualRequest struct {
	Name        string   `json:"name"`
	Track       string   `json:"track"`
	Roles       []string `json:"roles"`
	Skills      string   `json:"skills"`
	Description string   `json:"description"`
	Language    string   `json:"language"`
	Status      string   `json:"status"`
}

// Validate implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *UpdateIndividualRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return dErrors.New(dErrors.CodeBadRequest, "name is required")
	}
	if len(r.Roles) == 0 {
		return dErrors.New(dErrors.CodeBadRequest, "at least one role is required")
	}
	if r.Status == "" {
		r.Status = string(models.StatusOpen)
	}
	return nil
}

// ToInput maps the request onto the service input.
func (r *UpdateIndividualRequest) ToInput() service.UpdateIndividualInput {
	return service.UpdateIndividualInput{
		Name:        r.Name,
		Track:       models.Track(r.Track),
		Roles:       r.Roles,
		Skills:      r.Skills,
		Description: r.Description,
		Language:    r.Language,
		Status:      models.Status(r.Status),
	}
}

// CreateTeamRequest is the HTTP request body for POST /teams.
type CreateTeamRequest struct {
	TeamName      string   `json:"team_name"`
	Track         string   `json:"track"`
	CurrentSize   int      `json:"current_size"`
	NeededMembers int      `json:"needed_members"`
	RequiredRoles []string `json:"required_roles"`
	ProjectIdea   string   `json:"project_idea"`
	Contact       string   `json:"contact"`
}

// Validate implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *CreateTeamRequest) Validate() error {
	r.TeamName = strings.TrimSpace(r.TeamName)
	r.Contact = strings.TrimSpace(r.Contact)
	if r.TeamName == "" {
		return dErrors.New(dErrors.CodeBadRequest, "team_name is required")
	}
	if r.Contact == "" {
		return dErrors.New(dErrors.CodeBadRequest, "contact is required")
	}
	if len(r.RequiredRoles) == 0 {
		return dErrors.New(dErrors.CodeBadRequest, "at least one required role is needed")
	}
	return nil
}

// ToInput maps the request onto the service input.
func (r *CreateTeamRequest) ToInput() service.CreateTeamInput {
	return service.CreateTeamInput{
		TeamName:      r.TeamName,
		Track:         models.Track(r.Track),
		CurrentSize:   r.CurrentSize,
		NeededMembers: r.NeededMembers,
		RequiredRoles: r.RequiredRoles,
		ProjectIdea:   r.ProjectIdea,
		Contact:       r.Contact,
	}
}

// UpdateTeamRequest is the HTTP request body for PUT /teams/{id}. The contact
// is absent for the same reason UpdateIndividualRequest omits the phone.
type UpdateTeamRequest struct {
	TeamName      string   `json:"team_name"`
	Track         string   `json:"track"`
	CurrentSize   int      `json:"current_size"`
	NeededMembers int      `json:"needed_members"`
	RequiredRoles []string `json:"required_roles"`
	ProjectIdea   string   `json:"project_idea"`
	Status        string   `json:"status"`
}

// Validate implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *UpdateTeamRequest) Validate() error {
	r.TeamName = strings.TrimSpace(r.TeamName)
	if r.TeamName == "" {
		return dErrors.New(dErrors.CodeBadRequest, "team_name is required")
	}
	if len(r.RequiredRoles) == 0 {
		return dErrors.New(dErrors.CodeBadRequest, "at least one required role is needed")
	}
	if r.Status == "" {
		r.Status = string(models.StatusOpen)
	}
	return nil
}

// ToInput maps the request onto the service input.
func (r *UpdateTeamRequest) ToInput() service.UpdateTeamInput {
	return service.UpdateTeamInput{
		TeamName:      r.TeamName,
		Track:         models.Track(r.Track),
		CurrentSize:   r.CurrentSize,
		NeededMembers: r.NeededMembers,
		RequiredRoles: r.RequiredRoles,
		ProjectIdea:   r.ProjectIdea,
		Status:        models.Status(r.Status),
	}
}
