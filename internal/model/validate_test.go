package model

import (
	"strings"
	"testing"
	"time"
)

func validPost() *Post {
	now := time.Now().UTC()
	return &Post{
		ID:        "ps-test1",
		Owner:     "alice",
		Platform:  PlatformTwitter,
		Status:    StatusDraft,
		Content:   Content{Text: "hello"},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestValidatePost_Valid(t *testing.T) {
	if err := ValidatePost(validPost()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidatePost(t *testing.T) {
	when := time.Now().UTC()
	for _, tc := range []struct {
		name      string
		mutate    func(*Post)
		wantField string
	}{
		{"MissingOwner", func(p *Post) { p.Owner = "" }, "owner"},
		{"BadPlatform", func(p *Post) { p.Platform = "myspace" }, "platform"},
		{"BadStatus", func(p *Post) { p.Status = "pending" }, "status"},
		{"EmptyText", func(p *Post) { p.Content.Text = "   " }, "content.text"},
		{"TwitterTooLong", func(p *Post) { p.Content.Text = strings.Repeat("a", 281) }, "content.text"},
		{"ScheduledWithoutTime", func(p *Post) { p.Status = StatusScheduled }, "scheduled_at"},
		{"RedditMissingTitle", func(p *Post) {
			p.Platform = PlatformReddit
			p.Content.Subreddit = "golang"
		}, "content.title"},
		{"RedditMissingSubreddit", func(p *Post) {
			p.Platform = PlatformReddit
			p.Content.Title = "Title"
		}, "content.subreddit"},
		{"LinkedInBadVisibility", func(p *Post) {
			p.Platform = PlatformLinkedIn
			p.Content.Visibility = "everyone"
		}, "content.visibility"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			p := validPost()
			tc.mutate(p)
			err := ValidatePost(p)
			if err == nil {
				t.Fatal("expected validation error")
			}
			ve, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			for _, fe := range ve.Errors {
				if fe.Field == tc.wantField {
					return
				}
			}
			t.Fatalf("no error on field %q: %v", tc.wantField, err)
		})
	}

	// Scheduled with a time is fine regardless of past/future.
	p := validPost()
	p.Status = StatusScheduled
	p.ScheduledAt = &when
	if err := ValidatePost(p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateCampaign(t *testing.T) {
	start := time.Now().UTC()
	end := start.Add(-time.Hour)

	if err := ValidateCampaign(&Campaign{Owner: "alice", Name: "Launch"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateCampaign(&Campaign{Name: "Launch"}); err == nil {
		t.Fatal("expected error for missing owner")
	}
	if err := ValidateCampaign(&Campaign{Owner: "alice", Name: " "}); err == nil {
		t.Fatal("expected error for blank name")
	}
	if err := ValidateCampaign(&Campaign{Owner: "alice", Name: "Launch", StartsAt: &start, EndsAt: &end}); err == nil {
		t.Fatal("expected error for ends_at before starts_at")
	}
}

func TestValidateBlogDraft(t *testing.T) {
	if err := ValidateBlogDraft(&BlogDraft{Owner: "alice", Title: "Notes"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateBlogDraft(&BlogDraft{Title: "Notes"}); err == nil {
		t.Fatal("expected error for missing owner")
	}
	if err := ValidateBlogDraft(&BlogDraft{Owner: "alice"}); err == nil {
		t.Fatal("expected error for missing title")
	}
}
