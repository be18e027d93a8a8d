package server

import (
	"encoding/json"
	"net/http"
)

// defaultOwner is the acting identity when the request carries no X-Owner
// header. Single-user deployments never set the header.
const defaultOwner = "default"

// NewHTTPHandler returns an http.Handler with all routes registered.
// When authToken is non-empty, requests (except GET /v1/health) must include
// a valid Authorization: Bearer <token> header.
func (s *PostsServer) NewHTTPHandler(authToken string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/posts", s.handleCreatePost)
	mux.HandleFunc("GET /v1/posts", s.handleListPosts)
	mux.HandleFunc("POST /v1/posts/reset", s.handleResetPosts)
	mux.HandleFunc("GET /v1/posts/{id}", s.handleGetPost)
	mux.HandleFunc("PATCH /v1/posts/{id}", s.handleUpdatePost)
	mux.HandleFunc("DELETE /v1/posts/{id}", s.handleDeletePost)
	mux.HandleFunc("POST /v1/posts/{id}/schedule", s.handleSchedulePost)
	mux.HandleFunc("POST /v1/posts/{id}/unschedule", s.handleUnschedulePost)
	mux.HandleFunc("POST /v1/posts/{id}/publish", s.handlePublishPost)
	mux.HandleFunc("POST /v1/posts/{id}/archive", s.handleArchivePost)
	mux.HandleFunc("POST /v1/posts/{id}/restore", s.handleRestorePost)
	mux.HandleFunc("GET /v1/posts/{id}/events", s.handleGetEvents)
	mux.HandleFunc("POST /v1/campaigns", s.handleCreateCampaign)
	mux.HandleFunc("GET /v1/campaigns", s.handleListCampaigns)
	mux.HandleFunc("GET /v1/campaigns/{id}", s.handleGetCampaign)
	mux.HandleFunc("PATCH /v1/campaigns/{id}", s.handleUpdateCampaign)
	mux.HandleFunc("DELETE /v1/campaigns/{id}", s.handleDeleteCampaign)
	mux.HandleFunc("POST /v1/projects", s.handleCreateProject)
	mux.HandleFunc("GET /v1/projects", s.handleListProjects)
	mux.HandleFunc("GET /v1/projects/{id}", s.handleGetProject)
	mux.HandleFunc("DELETE /v1/projects/{id}", s.handleDeleteProject)
	mux.HandleFunc("POST /v1/drafts", s.handleCreateDraft)
	mux.HandleFunc("GET /v1/drafts", s.handleListDrafts)
	mux.HandleFunc("GET /v1/drafts/{id}", s.handleGetDraft)
	mux.HandleFunc("PATCH /v1/drafts/{id}", s.handleUpdateDraft)
	mux.HandleFunc("DELETE /v1/drafts/{id}", s.handleDeleteDraft)
	mux.HandleFunc("POST /v1/media", s.handleUploadMedia)
	mux.HandleFunc("GET /v1/notifications/settings", s.handleGetNotifySettings)
	mux.HandleFunc("PUT /v1/notifications/settings", s.handlePutNotifySettings)
	mux.HandleFunc("GET /v1/notifications/log", s.handleGetNotifyLog)
	mux.HandleFunc("DELETE /v1/notifications/log/{id}", s.handleClearNotifyLog)
	mux.HandleFunc("GET /v1/health", s.handleHealth)
	return AuthMiddleware(authToken, RecoveryMiddleware(s.logger, mux))
}

// handleHealth handles GET /v1/health.
func (s *PostsServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ownerFromRequest resolves the acting identity for a request.
func ownerFromRequest(r *http.Request) string {
	if v := r.Header.Get("X-Owner"); v != "" {
		return v
	}
	return defaultOwner
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
