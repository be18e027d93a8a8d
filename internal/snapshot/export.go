package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/mvannatta/postqueue/internal/model"
	"github.com/mvannatta/postqueue/internal/store"
)

// header is the first JSONL record written by ExportJSONL.
type header struct {
	Version       string    `json:"version"`
	Type          string    `json:"type"`
	Timestamp     time.Time `json:"timestamp"`
	PostCount     int       `json:"post_count"`
	CampaignCount int       `json:"campaign_count"`
	ProjectCount  int       `json:"project_count"`
	DraftCount    int       `json:"draft_count"`
}

// record wraps a single JSONL line with a type discriminator.
type record struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// ExportJSONL writes all of the owner's posts, campaigns, projects, and blog
// drafts as JSONL to w. Records are sorted by ID within each type.
func ExportJSONL(ctx context.Context, s store.Store, owner string, w io.Writer) error {
	posts, _, err := s.ListPosts(ctx, model.PostFilter{Owner: owner, Sort: "created_at"})
	if err != nil {
		return fmt.Errorf("list posts: %w", err)
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].ID < posts[j].ID
	})

	campaigns, err := s.ListCampaigns(ctx, owner)
	if err != nil {
		return fmt.Errorf("list campaigns: %w", err)
	}
	sort.Slice(campaigns, func(i, j int) bool {
		return campaigns[i].ID < campaigns[j].ID
	})

	projects, err := s.ListProjects(ctx, owner)
	if err != nil {
		return fmt.Errorf("list projects: %w", err)
	}
	sort.Slice(projects, func(i, j int) bool {
		return projects[i].ID < projects[j].ID
	})

	drafts, err := s.ListBlogDrafts(ctx, owner)
	if err != nil {
		return fmt.Errorf("list blog drafts: %w", err)
	}
	sort.Slice(drafts, func(i, j int) bool {
		return drafts[i].ID < drafts[j].ID
	})

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	// Write header.
	if err := enc.Encode(header{
		Version:       "1",
		Type:          "header",
		Timestamp:     time.Now().UTC(),
		PostCount:     len(posts),
		CampaignCount: len(campaigns),
		ProjectCount:  len(projects),
		DraftCount:    len(drafts),
	}); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}

	for _, p := range projects {
		if err := enc.Encode(record{Type: "project", Data: p}); err != nil {
			return fmt.Errorf("encode project %s: %w", p.ID, err)
		}
	}
	for _, c := range campaigns {
		if err := enc.Encode(record{Type: "campaign", Data: c}); err != nil {
			return fmt.Errorf("encode campaign %s: %w", c.ID, err)
		}
	}
	for _, p := range posts {
		if err := enc.Encode(record{Type: "post", Data: p}); err != nil {
			return fmt.Errorf("encode post %s: %w", p.ID, err)
		}
	}
	for _, d := range drafts {
		if err := enc.Encode(record{Type: "draft", Data: d}); err != nil {
			return fmt.Errorf("encode draft %s: %w", d.ID, err)
		}
	}

	return nil
}
