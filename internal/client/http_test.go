package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mvannatta/postqueue/internal/model"
)

type testHandler struct {
	// captured from the request
	method      string
	path        string
	query       string
	body        string
	contentType string
	auth        string
	owner       string

	// canned response
	statusCode   int
	responseBody string
}

func (h *testHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.method = r.Method
	h.path = r.URL.Path
	h.query = r.URL.RawQuery
	h.contentType = r.Header.Get("Content-Type")
	h.auth = r.Header.Get("Authorization")
	h.owner = r.Header.Get("X-Owner")
	if r.Body != nil {
		data, _ := io.ReadAll(r.Body)
		h.body = string(data)
	}

	w.Header().Set("Content-Type", "application/json")
	if h.statusCode != 0 {
		w.WriteHeader(h.statusCode)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	if h.responseBody != "" {
		_, _ = w.Write([]byte(h.responseBody))
	}
}

// newTestClient creates an HTTPClient pointed at a test server with the given handler.
func newTestClient(h http.Handler) (*HTTPClient, *httptest.Server) {
	srv := httptest.NewServer(h)
	c := NewHTTPClient(srv.URL, "", "")
	return c, srv
}

// --- Post CRUD ---

func TestHTTPClient_CreatePost(t *testing.T) {
	h := &testHandler{
		statusCode: http.StatusCreated,
		responseBody: `{
			"id": "ps-abc123",
			"owner": "default",
			"platform": "twitter",
			"status": "draft",
			"content": {"text": "Hello world"},
			"created_at": "2026-08-15T10:00:00Z",
			"updated_at": "2026-08-15T10:00:00Z"
		}`,
	}
	c, srv := newTestClient(h)
	defer srv.Close()

	post, err := c.CreatePost(context.Background(), &CreatePostRequest{
		Platform: "twitter",
		Content:  model.Content{Text: "Hello world"},
	})
	if err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}

	if h.method != http.MethodPost || h.path != "/v1/posts" {
		t.Errorf("request = %s %s, want POST /v1/posts", h.method, h.path)
	}
	if h.contentType != "application/json" {
		t.Errorf("content-type = %q, want application/json", h.contentType)
	}

	var reqBody map[string]any
	if err := json.Unmarshal([]byte(h.body), &reqBody); err != nil {
		t.Fatalf("unmarshaling request body: %v", err)
	}
	if reqBody["platform"] != "twitter" {
		t.Errorf("request body platform = %v, want twitter", reqBody["platform"])
	}

	if post.ID != "ps-abc123" || post.Status != model.StatusDraft {
		t.Errorf("got id=%q status=%q", post.ID, post.Status)
	}
	if post.Content.Text != "Hello world" {
		t.Errorf("content text = %q", post.Content.Text)
	}
}

func TestHTTPClient_GetPost_PathEscape(t *testing.T) {
	h := &testHandler{responseBody: `{"id": "ps-abc", "status": "draft"}`}
	c, srv := newTestClient(h)
	defer srv.Close()

	if _, err := c.GetPost(context.Background(), "ps-abc"); err != nil {
		t.Fatalf("GetPost() error = %v", err)
	}
	if h.path != "/v1/posts/ps-abc" {
		t.Errorf("path = %q", h.path)
	}
}

func TestHTTPClient_ListPosts_Query(t *testing.T) {
	h := &testHandler{responseBody: `{"posts": [], "total": 0}`}
	c, srv := newTestClient(h)
	defer srv.Close()

	_, err := c.ListPosts(context.Background(), &ListPostsRequest{
		Status:   []string{"scheduled", "draft"},
		Platform: []string{"reddit"},
		Search:   "launch",
		DueOnly:  true,
		Sort:     "-scheduled_at",
		Limit:    10,
		Offset:   20,
	})
	if err != nil {
		t.Fatalf("ListPosts() error = %v", err)
	}

	for _, want := range []string{
		"status=scheduled%2Cdraft",
		"platform=reddit",
		"search=launch",
		"due=true",
		"limit=10",
		"offset=20",
	} {
		if !strings.Contains(h.query, want) {
			t.Errorf("query %q missing %q", h.query, want)
		}
	}
}

func TestHTTPClient_ListPosts_Response(t *testing.T) {
	h := &testHandler{responseBody: `{
		"posts": [
			{"id": "ps-a", "status": "scheduled", "scheduled_at": "2026-09-01T12:00:00Z"},
			{"id": "ps-b", "status": "draft"}
		],
		"total": 2
	}`}
	c, srv := newTestClient(h)
	defer srv.Close()

	resp, err := c.ListPosts(context.Background(), &ListPostsRequest{})
	if err != nil {
		t.Fatalf("ListPosts() error = %v", err)
	}
	if resp.Total != 2 || len(resp.Posts) != 2 {
		t.Fatalf("total=%d len=%d", resp.Total, len(resp.Posts))
	}
	if resp.Posts[0].ScheduledAt == nil {
		t.Error("expected scheduled_at on ps-a")
	}
}

func TestHTTPClient_UpdatePost(t *testing.T) {
	h := &testHandler{responseBody: `{"id": "ps-abc", "status": "draft", "content": {"text": "edited"}}`}
	c, srv := newTestClient(h)
	defer srv.Close()

	post, err := c.UpdatePost(context.Background(), "ps-abc", &UpdatePostRequest{
		Content: &model.Content{Text: "edited"},
	})
	if err != nil {
		t.Fatalf("UpdatePost() error = %v", err)
	}
	if h.method != http.MethodPatch || h.path != "/v1/posts/ps-abc" {
		t.Errorf("request = %s %s", h.method, h.path)
	}
	if post.Content.Text != "edited" {
		t.Errorf("content = %q", post.Content.Text)
	}
}

func TestHTTPClient_DeletePost(t *testing.T) {
	h := &testHandler{statusCode: http.StatusNoContent}
	c, srv := newTestClient(h)
	defer srv.Close()

	if err := c.DeletePost(context.Background(), "ps-abc"); err != nil {
		t.Fatalf("DeletePost() error = %v", err)
	}
	if h.method != http.MethodDelete || h.path != "/v1/posts/ps-abc" {
		t.Errorf("request = %s %s", h.method, h.path)
	}
}

func TestHTTPClient_ResetPosts(t *testing.T) {
	h := &testHandler{responseBody: `{"deleted": 7}`}
	c, srv := newTestClient(h)
	defer srv.Close()

	n, err := c.ResetPosts(context.Background())
	if err != nil {
		t.Fatalf("ResetPosts() error = %v", err)
	}
	if n != 7 {
		t.Errorf("deleted = %d, want 7", n)
	}
	if h.method != http.MethodPost || h.path != "/v1/posts/reset" {
		t.Errorf("request = %s %s", h.method, h.path)
	}
}

// --- Transitions ---

func TestHTTPClient_SchedulePost(t *testing.T) {
	h := &testHandler{responseBody: `{"id": "ps-abc", "status": "scheduled", "scheduled_at": "2026-09-01T12:00:00Z"}`}
	c, srv := newTestClient(h)
	defer srv.Close()

	at := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	post, err := c.SchedulePost(context.Background(), "ps-abc", at)
	if err != nil {
		t.Fatalf("SchedulePost() error = %v", err)
	}
	if h.method != http.MethodPost || h.path != "/v1/posts/ps-abc/schedule" {
		t.Errorf("request = %s %s", h.method, h.path)
	}

	var reqBody map[string]any
	if err := json.Unmarshal([]byte(h.body), &reqBody); err != nil {
		t.Fatalf("unmarshaling request body: %v", err)
	}
	if reqBody["scheduled_at"] == nil {
		t.Error("request body scheduled_at is nil")
	}
	if post.Status != model.StatusScheduled {
		t.Errorf("status = %q", post.Status)
	}
}

func TestHTTPClient_Transitions(t *testing.T) {
	for _, tc := range []struct {
		name   string
		action string
		call   func(c *HTTPClient) (*model.Post, error)
	}{
		{"Unschedule", "unschedule", func(c *HTTPClient) (*model.Post, error) {
			return c.UnschedulePost(context.Background(), "ps-abc")
		}},
		{"Publish", "publish", func(c *HTTPClient) (*model.Post, error) {
			return c.PublishPost(context.Background(), "ps-abc")
		}},
		{"Archive", "archive", func(c *HTTPClient) (*model.Post, error) {
			return c.ArchivePost(context.Background(), "ps-abc")
		}},
		{"Restore", "restore", func(c *HTTPClient) (*model.Post, error) {
			return c.RestorePost(context.Background(), "ps-abc")
		}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			h := &testHandler{responseBody: `{"id": "ps-abc", "status": "draft"}`}
			c, srv := newTestClient(h)
			defer srv.Close()

			if _, err := tc.call(c); err != nil {
				t.Fatalf("%s error = %v", tc.name, err)
			}
			want := "/v1/posts/ps-abc/" + tc.action
			if h.method != http.MethodPost || h.path != want {
				t.Errorf("request = %s %s, want POST %s", h.method, h.path, want)
			}
		})
	}
}

func TestHTTPClient_TransitionConflict(t *testing.T) {
	h := &testHandler{statusCode: http.StatusBadRequest, responseBody: `{"error": "already archived"}`}
	c, srv := newTestClient(h)
	defer srv.Close()

	_, err := c.ArchivePost(context.Background(), "ps-abc")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != 400 || apiErr.Message != "already archived" {
		t.Errorf("got %d %q", apiErr.StatusCode, apiErr.Message)
	}
}

func TestHTTPClient_NotFound(t *testing.T) {
	h := &testHandler{statusCode: http.StatusNotFound, responseBody: `{"error": "post not found"}`}
	c, srv := newTestClient(h)
	defer srv.Close()

	_, err := c.GetPost(context.Background(), "ps-missing")
	if !IsNotFound(err) {
		t.Fatalf("expected IsNotFound, got %v", err)
	}
}

// --- Campaigns / projects / drafts ---

func TestHTTPClient_CreateCampaign(t *testing.T) {
	h := &testHandler{statusCode: http.StatusCreated, responseBody: `{"id": "cp-xyz", "name": "Launch"}`}
	c, srv := newTestClient(h)
	defer srv.Close()

	campaign, err := c.CreateCampaign(context.Background(), &CreateCampaignRequest{Name: "Launch"})
	if err != nil {
		t.Fatalf("CreateCampaign() error = %v", err)
	}
	if campaign.ID != "cp-xyz" {
		t.Errorf("id = %q", campaign.ID)
	}
	if h.path != "/v1/campaigns" {
		t.Errorf("path = %q", h.path)
	}
}

func TestHTTPClient_ListCampaigns(t *testing.T) {
	h := &testHandler{responseBody: `{"campaigns": [{"id": "cp-a"}, {"id": "cp-b"}]}`}
	c, srv := newTestClient(h)
	defer srv.Close()

	campaigns, err := c.ListCampaigns(context.Background())
	if err != nil {
		t.Fatalf("ListCampaigns() error = %v", err)
	}
	if len(campaigns) != 2 {
		t.Errorf("len = %d", len(campaigns))
	}
}

func TestHTTPClient_CreateDraft(t *testing.T) {
	h := &testHandler{statusCode: http.StatusCreated, responseBody: `{"id": "bl-1", "title": "Announcing", "tags": ["go", "release"]}`}
	c, srv := newTestClient(h)
	defer srv.Close()

	draft, err := c.CreateDraft(context.Background(), &CreateDraftRequest{
		Title: "Announcing",
		Tags:  []string{"go", "release"},
	})
	if err != nil {
		t.Fatalf("CreateDraft() error = %v", err)
	}
	if draft.ID != "bl-1" || len(draft.Tags) != 2 {
		t.Errorf("got %+v", draft)
	}
}

func TestHTTPClient_CreateProject(t *testing.T) {
	h := &testHandler{statusCode: http.StatusCreated, responseBody: `{"id": "pj-1", "name": "Website"}`}
	c, srv := newTestClient(h)
	defer srv.Close()

	project, err := c.CreateProject(context.Background(), "Website", "")
	if err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}
	if project.ID != "pj-1" {
		t.Errorf("id = %q", project.ID)
	}
}

// --- Media ---

func TestHTTPClient_UploadMedia(t *testing.T) {
	h := &testHandler{statusCode: http.StatusCreated, responseBody: `{"id": "md-1", "url": "https://media.example.com/default/md-1"}`}
	c, srv := newTestClient(h)
	defer srv.Close()

	media, err := c.UploadMedia(context.Background(), "image/png", []byte("png-bytes"))
	if err != nil {
		t.Fatalf("UploadMedia() error = %v", err)
	}
	if h.method != http.MethodPost || h.path != "/v1/media" {
		t.Errorf("request = %s %s", h.method, h.path)
	}
	if h.contentType != "image/png" || h.body != "png-bytes" {
		t.Errorf("got contentType=%q body=%q", h.contentType, h.body)
	}
	if media.URL == "" {
		t.Error("expected a URL")
	}
}

// --- Notifications ---

func TestHTTPClient_NotifySettings(t *testing.T) {
	h := &testHandler{responseBody: `{"enabled": false}`}
	c, srv := newTestClient(h)
	defer srv.Close()

	enabled, err := c.GetNotifySettings(context.Background())
	if err != nil {
		t.Fatalf("GetNotifySettings() error = %v", err)
	}
	if enabled {
		t.Error("expected disabled")
	}

	if err := c.SetNotifySettings(context.Background(), true); err != nil {
		t.Fatalf("SetNotifySettings() error = %v", err)
	}
	if h.method != http.MethodPut || h.path != "/v1/notifications/settings" {
		t.Errorf("request = %s %s", h.method, h.path)
	}
	if !strings.Contains(h.body, `"enabled":true`) {
		t.Errorf("body = %q", h.body)
	}
}

func TestHTTPClient_NotifyLog(t *testing.T) {
	h := &testHandler{responseBody: `{"entries": [{"post_id": "ps-a", "owner": "default", "notified_at": "2026-08-15T10:00:00Z"}]}`}
	c, srv := newTestClient(h)
	defer srv.Close()

	entries, err := c.GetNotifyLog(context.Background())
	if err != nil {
		t.Fatalf("GetNotifyLog() error = %v", err)
	}
	if len(entries) != 1 || entries[0].PostID != "ps-a" {
		t.Fatalf("entries = %+v", entries)
	}

	h.statusCode = http.StatusNoContent
	h.responseBody = ""
	if err := c.ClearNotifyLog(context.Background(), "ps-a"); err != nil {
		t.Fatalf("ClearNotifyLog() error = %v", err)
	}
	if h.method != http.MethodDelete || h.path != "/v1/notifications/log/ps-a" {
		t.Errorf("request = %s %s", h.method, h.path)
	}
}

// --- Identity headers ---

func TestHTTPClient_IdentityHeaders(t *testing.T) {
	h := &testHandler{responseBody: `{"status": "ok"}`}
	srv := httptest.NewServer(h)
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "sekret", "alice")
	if _, err := c.Health(context.Background()); err != nil {
		t.Fatalf("Health() error = %v", err)
	}
	if h.auth != "Bearer sekret" {
		t.Errorf("auth header = %q", h.auth)
	}
	if h.owner != "alice" {
		t.Errorf("owner header = %q", h.owner)
	}
}

