package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mvannatta/postqueue/internal/model"
)

// HTTPClient implements PostsClient using the HTTP/JSON REST API.
type HTTPClient struct {
	baseURL    string
	token      string
	owner      string
	httpClient *http.Client
}

// NewHTTPClient creates a new HTTP client targeting the given base URL
// (e.g. "http://localhost:8080"). When token is non-empty, an Authorization
// header is set on every request; when owner is non-empty, requests act as
// that identity.
func NewHTTPClient(baseURL, token, owner string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		owner:      owner,
		httpClient: &http.Client{},
	}
}

// Close is a no-op for the HTTP client.
func (c *HTTPClient) Close() error { return nil }

// --- Post CRUD ---

func (c *HTTPClient) CreatePost(ctx context.Context, req *CreatePostRequest) (*model.Post, error) {
	var post model.Post
	if err := c.doJSON(ctx, http.MethodPost, "/v1/posts", req, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *HTTPClient) GetPost(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	if err := c.doJSON(ctx, http.MethodGet, "/v1/posts/"+url.PathEscape(id), nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *HTTPClient) ListPosts(ctx context.Context, req *ListPostsRequest) (*ListPostsResponse, error) {
	q := url.Values{}
	if len(req.Status) > 0 {
		q.Set("status", strings.Join(req.Status, ","))
	}
	if len(req.Platform) > 0 {
		q.Set("platform", strings.Join(req.Platform, ","))
	}
	if req.CampaignID != "" {
		q.Set("campaign_id", req.CampaignID)
	}
	if req.ProjectID != "" {
		q.Set("project_id", req.ProjectID)
	}
	if req.Search != "" {
		q.Set("search", req.Search)
	}
	if req.DueOnly {
		q.Set("due", "true")
	}
	if req.Sort != "" {
		q.Set("sort", req.Sort)
	}
	if req.Limit > 0 {
		q.Set("limit", fmt.Sprintf("%d", req.Limit))
	}
	if req.Offset > 0 {
		q.Set("offset", fmt.Sprintf("%d", req.Offset))
	}

	path := "/v1/posts"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp ListPostsResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) UpdatePost(ctx context.Context, id string, req *UpdatePostRequest) (*model.Post, error) {
	var post model.Post
	if err := c.doJSON(ctx, http.MethodPatch, "/v1/posts/"+url.PathEscape(id), req, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *HTTPClient) DeletePost(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/v1/posts/"+url.PathEscape(id), nil, nil)
}

func (c *HTTPClient) ResetPosts(ctx context.Context) (int64, error) {
	var resp struct {
		Deleted int64 `json:"deleted"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/v1/posts/reset", nil, &resp); err != nil {
		return 0, err
	}
	return resp.Deleted, nil
}

// --- Lifecycle transitions ---

func (c *HTTPClient) transition(ctx context.Context, id, action string, body any) (*model.Post, error) {
	var post model.Post
	path := "/v1/posts/" + url.PathEscape(id) + "/" + action
	if err := c.doJSON(ctx, http.MethodPost, path, body, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *HTTPClient) SchedulePost(ctx context.Context, id string, at time.Time) (*model.Post, error) {
	return c.transition(ctx, id, "schedule", map[string]any{"scheduled_at": at})
}

func (c *HTTPClient) UnschedulePost(ctx context.Context, id string) (*model.Post, error) {
	return c.transition(ctx, id, "unschedule", nil)
}

func (c *HTTPClient) PublishPost(ctx context.Context, id string) (*model.Post, error) {
	return c.transition(ctx, id, "publish", nil)
}

func (c *HTTPClient) ArchivePost(ctx context.Context, id string) (*model.Post, error) {
	return c.transition(ctx, id, "archive", nil)
}

func (c *HTTPClient) RestorePost(ctx context.Context, id string) (*model.Post, error) {
	return c.transition(ctx, id, "restore", nil)
}

// --- Events ---

func (c *HTTPClient) GetEvents(ctx context.Context, postID string) ([]*model.Event, error) {
	var resp struct {
		Events []*model.Event `json:"events"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/posts/"+url.PathEscape(postID)+"/events", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Events, nil
}

// --- Campaigns ---

func (c *HTTPClient) CreateCampaign(ctx context.Context, req *CreateCampaignRequest) (*model.Campaign, error) {
	var campaign model.Campaign
	if err := c.doJSON(ctx, http.MethodPost, "/v1/campaigns", req, &campaign); err != nil {
		return nil, err
	}
	return &campaign, nil
}

func (c *HTTPClient) GetCampaign(ctx context.Context, id string) (*model.Campaign, error) {
	var campaign model.Campaign
	if err := c.doJSON(ctx, http.MethodGet, "/v1/campaigns/"+url.PathEscape(id), nil, &campaign); err != nil {
		return nil, err
	}
	return &campaign, nil
}

func (c *HTTPClient) ListCampaigns(ctx context.Context) ([]*model.Campaign, error) {
	var resp struct {
		Campaigns []*model.Campaign `json:"campaigns"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/campaigns", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Campaigns, nil
}

func (c *HTTPClient) UpdateCampaign(ctx context.Context, id string, req *UpdateCampaignRequest) (*model.Campaign, error) {
	var campaign model.Campaign
	if err := c.doJSON(ctx, http.MethodPatch, "/v1/campaigns/"+url.PathEscape(id), req, &campaign); err != nil {
		return nil, err
	}
	return &campaign, nil
}

func (c *HTTPClient) DeleteCampaign(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/v1/campaigns/"+url.PathEscape(id), nil, nil)
}

// --- Projects ---

func (c *HTTPClient) CreateProject(ctx context.Context, name, description string) (*model.Project, error) {
	body := map[string]string{"name": name}
	if description != "" {
		body["description"] = description
	}
	var project model.Project
	if err := c.doJSON(ctx, http.MethodPost, "/v1/projects", body, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (c *HTTPClient) GetProject(ctx context.Context, id string) (*model.Project, error) {
	var project model.Project
	if err := c.doJSON(ctx, http.MethodGet, "/v1/projects/"+url.PathEscape(id), nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (c *HTTPClient) ListProjects(ctx context.Context) ([]*model.Project, error) {
	var resp struct {
		Projects []*model.Project `json:"projects"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/projects", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Projects, nil
}

func (c *HTTPClient) DeleteProject(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/v1/projects/"+url.PathEscape(id), nil, nil)
}

// --- Blog drafts ---

func (c *HTTPClient) CreateDraft(ctx context.Context, req *CreateDraftRequest) (*model.BlogDraft, error) {
	var draft model.BlogDraft
	if err := c.doJSON(ctx, http.MethodPost, "/v1/drafts", req, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

func (c *HTTPClient) GetDraft(ctx context.Context, id string) (*model.BlogDraft, error) {
	var draft model.BlogDraft
	if err := c.doJSON(ctx, http.MethodGet, "/v1/drafts/"+url.PathEscape(id), nil, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

func (c *HTTPClient) ListDrafts(ctx context.Context) ([]*model.BlogDraft, error) {
	var resp struct {
		Drafts []*model.BlogDraft `json:"drafts"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/drafts", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Drafts, nil
}

func (c *HTTPClient) UpdateDraft(ctx context.Context, id string, req *UpdateDraftRequest) (*model.BlogDraft, error) {
	var draft model.BlogDraft
	if err := c.doJSON(ctx, http.MethodPatch, "/v1/drafts/"+url.PathEscape(id), req, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

func (c *HTTPClient) DeleteDraft(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/v1/drafts/"+url.PathEscape(id), nil, nil)
}

// --- Media ---

func (c *HTTPClient) UploadMedia(ctx context.Context, contentType string, data []byte) (*MediaResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/media", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	c.setIdentity(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, apiError(resp.StatusCode, respBody)
	}

	var media MediaResponse
	if err := json.Unmarshal(respBody, &media); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &media, nil
}

// --- Notifications ---

func (c *HTTPClient) GetNotifySettings(ctx context.Context) (bool, error) {
	var resp struct {
		Enabled bool `json:"enabled"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/notifications/settings", nil, &resp); err != nil {
		return false, err
	}
	return resp.Enabled, nil
}

func (c *HTTPClient) SetNotifySettings(ctx context.Context, enabled bool) error {
	return c.doJSON(ctx, http.MethodPut, "/v1/notifications/settings", map[string]bool{"enabled": enabled}, nil)
}

func (c *HTTPClient) GetNotifyLog(ctx context.Context) ([]*model.NotifyEntry, error) {
	var resp struct {
		Entries []*model.NotifyEntry `json:"entries"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/notifications/log", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Entries, nil
}

func (c *HTTPClient) ClearNotifyLog(ctx context.Context, postID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/v1/notifications/log/"+url.PathEscape(postID), nil, nil)
}

// --- Health ---

func (c *HTTPClient) Health(ctx context.Context) (string, error) {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/health", nil, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}

// --- internal helpers ---

// APIError represents an error response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == http.StatusNotFound
}

func apiError(status int, body []byte) error {
	var errResp struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
		return &APIError{StatusCode: status, Message: errResp.Error}
	}
	return &APIError{StatusCode: status, Message: string(body)}
}

// setIdentity applies the auth token and owner headers to a request.
func (c *HTTPClient) setIdentity(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.owner != "" {
		req.Header.Set("X-Owner", c.owner)
	}
}

// doJSON performs an HTTP request with optional JSON body and decodes the JSON response.
// If result is nil, the response body is discarded (for DELETE/204 responses).
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.setIdentity(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	// 204 No Content: success with no body.
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return apiError(resp.StatusCode, respBody)
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
