package server

import (
	"io"
	"net/http"

	"github.com/mvannatta/postqueue/internal/idgen"
)

// maxMediaBytes caps a single upload at 10 MiB.
const maxMediaBytes = 10 << 20

// handleUploadMedia handles POST /v1/media. The body is the raw blob; the
// Content-Type header is stored with the object. Returns the stable URL to
// embed in post content.
func (s *PostsServer) handleUploadMedia(w http.ResponseWriter, r *http.Request) {
	if s.media == nil {
		writeError(w, http.StatusNotImplemented, "media storage is not configured")
		return
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxMediaBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read body")
		return
	}
	if len(data) == 0 {
		writeError(w, http.StatusBadRequest, "empty body")
		return
	}
	if len(data) > maxMediaBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "media exceeds the 10 MiB limit")
		return
	}

	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	id, err := idgen.Generate(idgen.MediaPrefix)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate ID")
		return
	}

	// Keyed by owner so URLs cannot collide across accounts.
	key := ownerFromRequest(r) + "/" + id
	url, err := s.media.Put(r.Context(), key, contentType, data)
	if err != nil {
		s.logger.Error("media upload failed", "key", key, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store media")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"id":  id,
		"url": url,
	})
}
