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

// createDraftInput holds parameters for creating a blog draft.
type createDraftInput struct {
	Title     string   `json:"title"`
	Body      string   `json:"body,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	ProjectID string   `json:"project_id,omitempty"`
}

// handleCreateDraft handles POST /v1/drafts.
func (s *PostsServer) handleCreateDraft(w http.ResponseWriter, r *http.Request) {
	var in createDraftInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	now := time.Now().UTC()
	id, err := idgen.Generate(idgen.DraftPrefix)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate ID")
		return
	}

	d := &model.BlogDraft{
		ID:        id,
		Owner:     ownerFromRequest(r),
		Title:     in.Title,
		Body:      in.Body,
		Tags:      in.Tags,
		ProjectID: in.ProjectID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := model.ValidateBlogDraft(d); err != nil {
		writeError(w, http.StatusBadRequest, "invalid draft: "+err.Error())
		return
	}

	if err := s.store.CreateBlogDraft(r.Context(), d); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create draft")
		return
	}

	s.recordAndPublish(r.Context(), events.TopicDraftCreated, d.ID, d.Owner, events.DraftCreated{Draft: d})

	writeJSON(w, http.StatusCreated, d)
}

// handleListDrafts handles GET /v1/drafts.
func (s *PostsServer) handleListDrafts(w http.ResponseWriter, r *http.Request) {
	drafts, err := s.store.ListBlogDrafts(r.Context(), ownerFromRequest(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list drafts")
		return
	}
	if drafts == nil {
		drafts = []*model.BlogDraft{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"drafts": drafts})
}

// handleGetDraft handles GET /v1/drafts/{id}.
func (s *PostsServer) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	d, err := s.store.GetBlogDraft(r.Context(), ownerFromRequest(r), id)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "draft not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get draft")
		return
	}

	writeJSON(w, http.StatusOK, d)
}

// updateDraftInput holds partial-update parameters for a blog draft.
// Pointer fields indicate optionality: nil means "don't change".
type updateDraftInput struct {
	Title     *string  `json:"title,omitempty"`
	Body      *string  `json:"body,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	ProjectID *string  `json:"project_id,omitempty"`
	Published *bool    `json:"published,omitempty"`
}

// handleUpdateDraft handles PATCH /v1/drafts/{id}.
func (s *PostsServer) handleUpdateDraft(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	var in updateDraftInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	d, err := s.store.GetBlogDraft(r.Context(), ownerFromRequest(r), id)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "draft not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get draft")
		return
	}

	if in.Title != nil {
		d.Title = *in.Title
	}
	if in.Body != nil {
		d.Body = *in.Body
	}
	if in.Tags != nil {
		d.Tags = in.Tags
	}
	if in.ProjectID != nil {
		d.ProjectID = *in.ProjectID
	}
	if in.Published != nil {
		d.Published = *in.Published
	}
	d.UpdatedAt = time.Now().UTC()

	if err := model.ValidateBlogDraft(d); err != nil {
		writeError(w, http.StatusBadRequest, "invalid draft: "+err.Error())
		return
	}

	if err := s.store.UpdateBlogDraft(r.Context(), d); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update draft")
		return
	}

	s.recordAndPublish(r.Context(), events.TopicDraftUpdated, d.ID, d.Owner, events.DraftUpdated{Draft: d})

	writeJSON(w, http.StatusOK, d)
}

// handleDeleteDraft handles DELETE /v1/drafts/{id}.
func (s *PostsServer) handleDeleteDraft(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	owner := ownerFromRequest(r)
	if err := s.store.DeleteBlogDraft(r.Context(), owner, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "draft not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete draft")
		return
	}

	s.recordAndPublish(r.Context(), events.TopicDraftDeleted, id, owner, events.DraftDeleted{DraftID: id})

	w.WriteHeader(http.StatusNoContent)
}
