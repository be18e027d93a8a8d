// Package client provides a transport-agnostic interface for the postqueue
// service and an HTTP/JSON implementation that talks to the REST API.
package client

import (
	"context"
	"time"

	"github.com/mvannatta/postqueue/internal/model"
)

// PostsClient is the interface that all postq CLI commands use to communicate
// with the server. It is implemented by HTTPClient (default) and can be
// backed by any transport.
type PostsClient interface {
	// Post CRUD
	CreatePost(ctx context.Context, req *CreatePostRequest) (*model.Post, error)
	GetPost(ctx context.Context, id string) (*model.Post, error)
	ListPosts(ctx context.Context, req *ListPostsRequest) (*ListPostsResponse, error)
	UpdatePost(ctx context.Context, id string, req *UpdatePostRequest) (*model.Post, error)
	DeletePost(ctx context.Context, id string) error
	ResetPosts(ctx context.Context) (int64, error)

	// Lifecycle transitions
	SchedulePost(ctx context.Context, id string, at time.Time) (*model.Post, error)
	UnschedulePost(ctx context.Context, id string) (*model.Post, error)
	PublishPost(ctx context.Context, id string) (*model.Post, error)
	ArchivePost(ctx context.Context, id string) (*model.Post, error)
	RestorePost(ctx context.Context, id string) (*model.Post, error)

	// Events
	GetEvents(ctx context.Context, postID string) ([]*model.Event, error)

	// Campaigns
	CreateCampaign(ctx context.Context, req *CreateCampaignRequest) (*model.Campaign, error)
	GetCampaign(ctx context.Context, id string) (*model.Campaign, error)
	ListCampaigns(ctx context.Context) ([]*model.Campaign, error)
	UpdateCampaign(ctx context.Context, id string, req *UpdateCampaignRequest) (*model.Campaign, error)
	DeleteCampaign(ctx context.Context, id string) error

	// Projects
	CreateProject(ctx context.Context, name, description string) (*model.Project, error)
	GetProject(ctx context.Context, id string) (*model.Project, error)
	ListProjects(ctx context.Context) ([]*model.Project, error)
	DeleteProject(ctx context.Context, id string) error

	// Blog drafts
	CreateDraft(ctx context.Context, req *CreateDraftRequest) (*model.BlogDraft, error)
	GetDraft(ctx context.Context, id string) (*model.BlogDraft, error)
	ListDrafts(ctx context.Context) ([]*model.BlogDraft, error)
	UpdateDraft(ctx context.Context, id string, req *UpdateDraftRequest) (*model.BlogDraft, error)
	DeleteDraft(ctx context.Context, id string) error

	// Media
	UploadMedia(ctx context.Context, contentType string, data []byte) (*MediaResponse, error)

	// Notifications
	GetNotifySettings(ctx context.Context) (bool, error)
	SetNotifySettings(ctx context.Context, enabled bool) error
	GetNotifyLog(ctx context.Context) ([]*model.NotifyEntry, error)
	ClearNotifyLog(ctx context.Context, postID string) error

	// Health
	Health(ctx context.Context) (string, error)

	// Lifecycle
	Close() error
}

// CreatePostRequest holds parameters for creating a post.
type CreatePostRequest struct {
	Platform    string        `json:"platform"`
	Content     model.Content `json:"content"`
	ScheduledAt *time.Time    `json:"scheduled_at,omitempty"`
	CampaignID  string        `json:"campaign_id,omitempty"`
	ProjectID   string        `json:"project_id,omitempty"`
}

// ListPostsRequest holds parameters for listing posts.
type ListPostsRequest struct {
	Status     []string `json:"status,omitempty"`
	Platform   []string `json:"platform,omitempty"`
	CampaignID string   `json:"campaign_id,omitempty"`
	ProjectID  string   `json:"project_id,omitempty"`
	Search     string   `json:"search,omitempty"`
	DueOnly    bool     `json:"due_only,omitempty"`
	Sort       string   `json:"sort,omitempty"`
	Limit      int      `json:"limit,omitempty"`
	Offset     int      `json:"offset,omitempty"`
}

// ListPostsResponse is the response from ListPosts.
type ListPostsResponse struct {
	Posts []*model.Post `json:"posts"`
	Total int           `json:"total"`
}

// UpdatePostRequest holds optional parameters for updating a post.
// Nil pointer fields mean "don't change".
type UpdatePostRequest struct {
	Content    *model.Content `json:"content,omitempty"`
	CampaignID *string        `json:"campaign_id,omitempty"`
	ProjectID  *string        `json:"project_id,omitempty"`
}

// CreateCampaignRequest holds parameters for creating a campaign.
type CreateCampaignRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	ProjectID   string     `json:"project_id,omitempty"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
}

// UpdateCampaignRequest holds optional parameters for updating a campaign.
type UpdateCampaignRequest struct {
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	ProjectID   *string    `json:"project_id,omitempty"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
}

// CreateDraftRequest holds parameters for creating a blog draft.
type CreateDraftRequest struct {
	Title     string   `json:"title"`
	Body      string   `json:"body,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	ProjectID string   `json:"project_id,omitempty"`
}

// UpdateDraftRequest holds optional parameters for updating a blog draft.
type UpdateDraftRequest struct {
	Title     *string  `json:"title,omitempty"`
	Body      *string  `json:"body,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	ProjectID *string  `json:"project_id,omitempty"`
	Published *bool    `json:"published,omitempty"`
}

// MediaResponse is the response from UploadMedia.
type MediaResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}
