package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mvannatta/postqueue/internal/model"
)

// handleCreatePost handles POST /v1/posts.
func (s *PostsServer) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var in createPostInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	post, err := s.createPost(r.Context(), ownerFromRequest(r), in)
	if err != nil {
		var ie inputError
		if errors.As(err, &ie) {
			writeError(w, http.StatusBadRequest, ie.Error())
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusCreated, post)
}

// handleListPosts handles GET /v1/posts.
func (s *PostsServer) handleListPosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.PostFilter{
		Owner:      ownerFromRequest(r),
		CampaignID: q.Get("campaign_id"),
		ProjectID:  q.Get("project_id"),
		Search:     q.Get("search"),
		Sort:       q.Get("sort"),
	}

	if v := q.Get("status"); v != "" {
		for _, st := range strings.Split(v, ",") {
			filter.Status = append(filter.Status, model.Status(st))
		}
	}
	if v := q.Get("platform"); v != "" {
		for _, p := range strings.Split(v, ",") {
			filter.Platform = append(filter.Platform, model.Platform(p))
		}
	}
	if v := q.Get("due"); v == "1" || v == "true" {
		filter.DueOnly = true
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}

	posts, total, err := s.store.ListPosts(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list posts")
		return
	}

	// Ensure posts is never null in JSON output.
	if posts == nil {
		posts = []*model.Post{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"posts": posts,
		"total": total,
	})
}

// handleGetPost handles GET /v1/posts/{id}.
func (s *PostsServer) handleGetPost(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	post, err := s.store.GetPost(r.Context(), ownerFromRequest(r), id)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "post not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get post")
		return
	}

	writeJSON(w, http.StatusOK, post)
}

// handleUpdatePost handles PATCH /v1/posts/{id}.
func (s *PostsServer) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	var in updatePostInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	post, err := s.updatePost(r.Context(), ownerFromRequest(r), id, in)
	if err != nil {
		var ie inputError
		if errors.As(err, &ie) {
			writeError(w, http.StatusBadRequest, ie.Error())
			return
		}
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "post not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, post)
}

// handleDeletePost handles DELETE /v1/posts/{id}.
func (s *PostsServer) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := s.deletePost(r.Context(), ownerFromRequest(r), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "post not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete post")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// transitionBody is the optional JSON body of a transition request. Only
// schedule reads it.
type transitionBody struct {
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}

// handleTransition is the shared implementation of the five lifecycle
// endpoints. Conflicts come back as 400 with the transition reason.
func (s *PostsServer) handleTransition(w http.ResponseWriter, r *http.Request, action model.Action) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	var body transitionBody
	_ = json.NewDecoder(r.Body).Decode(&body)

	post, err := s.transitionPost(r.Context(), ownerFromRequest(r), id, action, body.ScheduledAt)
	if err != nil {
		if reason, ok := conflictStatus(err); ok {
			writeError(w, http.StatusBadRequest, reason)
			return
		}
		var ie inputError
		if errors.As(err, &ie) {
			writeError(w, http.StatusBadRequest, ie.Error())
			return
		}
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "post not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, post)
}

// handleSchedulePost handles POST /v1/posts/{id}/schedule.
func (s *PostsServer) handleSchedulePost(w http.ResponseWriter, r *http.Request) {
	s.handleTransition(w, r, model.ActionSchedule)
}

// handleUnschedulePost handles POST /v1/posts/{id}/unschedule.
func (s *PostsServer) handleUnschedulePost(w http.ResponseWriter, r *http.Request) {
	s.handleTransition(w, r, model.ActionUnschedule)
}

// handlePublishPost handles POST /v1/posts/{id}/publish.
func (s *PostsServer) handlePublishPost(w http.ResponseWriter, r *http.Request) {
	s.handleTransition(w, r, model.ActionPublish)
}

// handleArchivePost handles POST /v1/posts/{id}/archive.
func (s *PostsServer) handleArchivePost(w http.ResponseWriter, r *http.Request) {
	s.handleTransition(w, r, model.ActionArchive)
}

// handleRestorePost handles POST /v1/posts/{id}/restore.
func (s *PostsServer) handleRestorePost(w http.ResponseWriter, r *http.Request) {
	s.handleTransition(w, r, model.ActionRestore)
}

// handleResetPosts handles POST /v1/posts/reset. Refused outside test setups.
func (s *PostsServer) handleResetPosts(w http.ResponseWriter, r *http.Request) {
	if !s.allowReset() {
		writeError(w, http.StatusForbidden, "reset is disabled in this environment")
		return
	}

	n, err := s.resetPosts(r.Context(), ownerFromRequest(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to reset posts")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"deleted": n})
}

// handleGetEvents handles GET /v1/posts/{id}/events.
func (s *PostsServer) handleGetEvents(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	// Confirm the post is visible to the caller before exposing its history.
	if _, err := s.store.GetPost(r.Context(), ownerFromRequest(r), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "post not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get post")
		return
	}

	evts, err := s.store.GetEvents(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get events")
		return
	}
	if evts == nil {
		evts = []*model.Event{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"events": evts})
}
