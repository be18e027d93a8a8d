package server

import (
	"encoding/json"
	"net/http"

	"github.com/mvannatta/postqueue/internal/model"
)

// handleGetNotifySettings handles GET /v1/notifications/settings.
func (s *PostsServer) handleGetNotifySettings(w http.ResponseWriter, r *http.Request) {
	enabled, err := s.gate.Enabled(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read notification settings")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"enabled": enabled})
}

// handlePutNotifySettings handles PUT /v1/notifications/settings.
func (s *PostsServer) handlePutNotifySettings(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Enabled *bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.Enabled == nil {
		writeError(w, http.StatusBadRequest, "enabled is required")
		return
	}

	if err := s.gate.SetEnabled(r.Context(), *body.Enabled); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update notification settings")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"enabled": *body.Enabled})
}

// handleGetNotifyLog handles GET /v1/notifications/log. The log is the
// already-notified ledger, oldest first.
func (s *PostsServer) handleGetNotifyLog(w http.ResponseWriter, r *http.Request) {
	entries, err := s.gate.Entries(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read notification log")
		return
	}
	if entries == nil {
		entries = []*model.NotifyEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

// handleClearNotifyLog handles DELETE /v1/notifications/log/{id}. Clearing a
// post's entry re-arms it for one more due alert. Clearing an absent entry
// is a no-op, not an error.
func (s *PostsServer) handleClearNotifyLog(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := s.gate.Clear(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to clear notification log entry")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
