package events

import (
	"context"

	"github.com/mvannatta/postqueue/internal/model"
)

// Event topic constants
const (
	TopicPostCreated     = "posts.post.created"
	TopicPostUpdated     = "posts.post.updated"
	TopicPostScheduled   = "posts.post.scheduled"
	TopicPostUnscheduled = "posts.post.unscheduled"
	TopicPostPublished   = "posts.post.published"
	TopicPostArchived    = "posts.post.archived"
	TopicPostRestored    = "posts.post.restored"
	TopicPostDeleted     = "posts.post.deleted"
	TopicPostDue         = "posts.post.due"

	// Campaign events
	TopicCampaignCreated = "posts.campaign.created"
	TopicCampaignUpdated = "posts.campaign.updated"
	TopicCampaignDeleted = "posts.campaign.deleted"

	// Blog draft events
	TopicDraftCreated = "posts.draft.created"
	TopicDraftUpdated = "posts.draft.updated"
	TopicDraftDeleted = "posts.draft.deleted"
)

// Event types

type PostCreated struct {
	Post *model.Post `json:"post"`
}

type PostUpdated struct {
	Post    *model.Post    `json:"post"`
	Changes map[string]any `json:"changes"` // field name -> new value
}

type PostTransitioned struct {
	Post   *model.Post `json:"post"`
	Action string      `json:"action"`
	From   string      `json:"from"`
}

type PostDeleted struct {
	PostID string `json:"post_id"`
}

// PostDue is emitted once per scheduled post when its time arrives.
type PostDue struct {
	PostID      string `json:"post_id"`
	Owner       string `json:"owner"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	ScheduledAt string `json:"scheduled_at"`
}

// Campaign events

type CampaignCreated struct {
	Campaign *model.Campaign `json:"campaign"`
}

type CampaignUpdated struct {
	Campaign *model.Campaign `json:"campaign"`
}

type CampaignDeleted struct {
	CampaignID string `json:"campaign_id"`
}

// Blog draft events

type DraftCreated struct {
	Draft *model.BlogDraft `json:"draft"`
}

type DraftUpdated struct {
	Draft *model.BlogDraft `json:"draft"`
}

type DraftDeleted struct {
	DraftID string `json:"draft_id"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
