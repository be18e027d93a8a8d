package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/mvannatta/postqueue/internal/events"
	"github.com/mvannatta/postqueue/internal/idgen"
	"github.com/mvannatta/postqueue/internal/model"
)

// createCampaignInput holds parameters for creating a campaign.
type createCampaignInput struct {
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	ProjectID   string     `json:"project_id,omitempty"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
}

// handleCreateCampaign handles POST /v1/campaigns.
func (s *PostsServer) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var in createCampaignInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	now := time.Now().UTC()
	id, err := idgen.Generate(idgen.CampaignPrefix)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate ID")
		return
	}

	c := &model.Campaign{
		ID:          id,
		Owner:       ownerFromRequest(r),
		Name:        in.Name,
		Description: in.Description,
		ProjectID:   in.ProjectID,
		StartsAt:    in.StartsAt,
		EndsAt:      in.EndsAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := model.ValidateCampaign(c); err != nil {
		writeError(w, http.StatusBadRequest, "invalid campaign: "+err.Error())
		return
	}

	if err := s.store.CreateCampaign(r.Context(), c); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create campaign")
		return
	}

	s.recordAndPublish(r.Context(), events.TopicCampaignCreated, c.ID, c.Owner, events.CampaignCreated{Campaign: c})

	writeJSON(w, http.StatusCreated, c)
}

// handleListCampaigns handles GET /v1/campaigns.
func (s *PostsServer) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := s.store.ListCampaigns(r.Context(), ownerFromRequest(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list campaigns")
		return
	}
	if campaigns == nil {
		campaigns = []*model.Campaign{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"campaigns": campaigns})
}

// handleGetCampaign handles GET /v1/campaigns/{id}.
func (s *PostsServer) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	c, err := s.store.GetCampaign(r.Context(), ownerFromRequest(r), id)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "campaign not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get campaign")
		return
	}

	writeJSON(w, http.StatusOK, c)
}

// updateCampaignInput holds partial-update parameters for a campaign.
// Pointer fields indicate optionality: nil means "don't change".
type updateCampaignInput struct {
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	ProjectID   *string    `json:"project_id,omitempty"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
}

// handleUpdateCampaign handles PATCH /v1/campaigns/{id}.
func (s *PostsServer) handleUpdateCampaign(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	var in updateCampaignInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	c, err := s.store.GetCampaign(r.Context(), ownerFromRequest(r), id)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "campaign not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get campaign")
		return
	}

	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if in.ProjectID != nil {
		c.ProjectID = *in.ProjectID
	}
	if in.StartsAt != nil {
		c.StartsAt = in.StartsAt
	}
	if in.EndsAt != nil {
		c.EndsAt = in.EndsAt
	}
	c.UpdatedAt = time.Now().UTC()

	if err := model.ValidateCampaign(c); err != nil {
		writeError(w, http.StatusBadRequest, "invalid campaign: "+err.Error())
		return
	}

	if err := s.store.UpdateCampaign(r.Context(), c); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update campaign")
		return
	}

	s.recordAndPublish(r.Context(), events.TopicCampaignUpdated, c.ID, c.Owner, events.CampaignUpdated{Campaign: c})

	writeJSON(w, http.StatusOK, c)
}

// handleDeleteCampaign handles DELETE /v1/campaigns/{id}.
func (s *PostsServer) handleDeleteCampaign(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	owner := ownerFromRequest(r)
	if err := s.store.DeleteCampaign(r.Context(), owner, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "campaign not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete campaign")
		return
	}

	s.recordAndPublish(r.Context(), events.TopicCampaignDeleted, id, owner, events.CampaignDeleted{CampaignID: id})

	w.WriteHeader(http.StatusNoContent)
}

// createProjectInput holds parameters for creating a project.
type createProjectInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// handleCreateProject handles POST /v1/projects.
func (s *PostsServer) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var in createProjectInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if in.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	now := time.Now().UTC()
	id, err := idgen.Generate(idgen.ProjectPrefix)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate ID")
		return
	}

	p := &model.Project{
		ID:          id,
		Owner:       ownerFromRequest(r),
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.CreateProject(r.Context(), p); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create project")
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

// handleListProjects handles GET /v1/projects.
func (s *PostsServer) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.store.ListProjects(r.Context(), ownerFromRequest(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list projects")
		return
	}
	if projects == nil {
		projects = []*model.Project{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"projects": projects})
}

// handleGetProject handles GET /v1/projects/{id}.
func (s *PostsServer) handleGetProject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	p, err := s.store.GetProject(r.Context(), ownerFromRequest(r), id)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "project not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get project")
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// handleDeleteProject handles DELETE /v1/projects/{id}.
func (s *PostsServer) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := s.store.DeleteProject(r.Context(), ownerFromRequest(r), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "project not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete project")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
