package model

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Platform identifies the social network a post is composed for.
type Platform string

const (
	PlatformTwitter  Platform = "twitter"
	PlatformLinkedIn Platform = "linkedin"
	PlatformReddit   Platform = "reddit"
)

// String returns the string representation of the platform.
func (p Platform) String() string {
	return string(p)
}

// IsValid checks whether the platform is a known value.
func (p Platform) IsValid() bool {
	switch p {
	case PlatformTwitter, PlatformLinkedIn, PlatformReddit:
		return true
	}
	return false
}

// Status represents the current lifecycle state of a post.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusScheduled Status = "scheduled"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsValid checks whether the status is a known value.
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusScheduled, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// Content is the platform-keyed body of a post. Text is required for every
// platform; the remaining fields apply only to the platforms noted.
type Content struct {
	Text       string   `json:"text"`
	Title      string   `json:"title,omitempty"`      // reddit
	Subreddit  string   `json:"subreddit,omitempty"`  // reddit
	Visibility string   `json:"visibility,omitempty"` // linkedin: public, connections
	MediaURLs  []string `json:"media_urls,omitempty"`
}

// previewLimit is the maximum preview length used for notification bodies.
const previewLimit = 100

// Preview returns the content text truncated to 100 characters, with a
// trailing ellipsis marker when truncated. Empty text returns "".
func (c Content) Preview() string {
	text := strings.TrimSpace(c.Text)
	if utf8.RuneCountInString(text) <= previewLimit {
		return text
	}
	return string([]rune(text)[:previewLimit]) + "..."
}

// Post is the core scheduled-content record.
type Post struct {
	ID          string     `json:"id"`
	Owner       string     `json:"owner"`
	Platform    Platform   `json:"platform"`
	Status      Status     `json:"status"`
	Content     Content    `json:"content"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CampaignID  string     `json:"campaign_id,omitempty"`
	ProjectID   string     `json:"project_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Due reports whether the post is scheduled and its scheduled time is at or
// before now. The comparison is inclusive: scheduled exactly at now is due.
func (p *Post) Due(now time.Time) bool {
	if p.Status != StatusScheduled || p.ScheduledAt == nil {
		return false
	}
	return !p.ScheduledAt.After(now)
}
