package store

import (
	"context"
	"encoding/json"

	"github.com/mvannatta/postqueue/internal/model"
)

// Store defines the persistence interface for posts and their companions.
// All single-record operations are owner-scoped: a record that exists but
// belongs to someone else behaves exactly like a missing record.
type Store interface {
	// Post CRUD
	CreatePost(ctx context.Context, post *model.Post) error
	GetPost(ctx context.Context, owner, id string) (*model.Post, error)
	ListPosts(ctx context.Context, filter model.PostFilter) ([]*model.Post, int, error) // returns posts, total count, error
	UpdatePost(ctx context.Context, post *model.Post) error
	DeletePost(ctx context.Context, owner, id string) error
	DeleteAllPosts(ctx context.Context, owner string) (int64, error)

	// Campaigns
	CreateCampaign(ctx context.Context, c *model.Campaign) error
	GetCampaign(ctx context.Context, owner, id string) (*model.Campaign, error)
	ListCampaigns(ctx context.Context, owner string) ([]*model.Campaign, error)
	UpdateCampaign(ctx context.Context, c *model.Campaign) error
	DeleteCampaign(ctx context.Context, owner, id string) error

	// Projects
	CreateProject(ctx context.Context, p *model.Project) error
	GetProject(ctx context.Context, owner, id string) (*model.Project, error)
	ListProjects(ctx context.Context, owner string) ([]*model.Project, error)
	DeleteProject(ctx context.Context, owner, id string) error

	// Blog drafts
	CreateBlogDraft(ctx context.Context, d *model.BlogDraft) error
	GetBlogDraft(ctx context.Context, owner, id string) (*model.BlogDraft, error)
	ListBlogDrafts(ctx context.Context, owner string) ([]*model.BlogDraft, error)
	UpdateBlogDraft(ctx context.Context, d *model.BlogDraft) error
	DeleteBlogDraft(ctx context.Context, owner, id string) error

	// Notification ledger
	MarkNotified(ctx context.Context, owner, postID string) error
	ClearNotified(ctx context.Context, postID string) error
	IsNotified(ctx context.Context, postID string) (bool, error)
	ListNotified(ctx context.Context) ([]*model.NotifyEntry, error)

	// Settings KV
	SetSetting(ctx context.Context, key string, value json.RawMessage) error
	GetSetting(ctx context.Context, key string) (json.RawMessage, error)

	// Events
	RecordEvent(ctx context.Context, event *model.Event) error
	GetEvents(ctx context.Context, postID string) ([]*model.Event, error)

	// Transaction support
	RunInTransaction(ctx context.Context, fn func(tx Store) error) error

	// Lifecycle
	Close() error
}
