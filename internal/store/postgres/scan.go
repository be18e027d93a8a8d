package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/mvannatta/postqueue/internal/model"
)

// scannable is the interface satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// scanPost scans a single row into a model.Post.
// The row must contain columns in the order defined by postColumns.
func scanPost(row scannable) (*model.Post, error) {
	var p model.Post
	var (
		content     []byte
		scheduledAt sql.NullTime
		publishedAt sql.NullTime
		campaignID  sql.NullString
		projectID   sql.NullString
	)

	err := row.Scan(
		&p.ID,
		&p.Owner,
		&p.Platform,
		&p.Status,
		&content,
		&scheduledAt,
		&publishedAt,
		&campaignID,
		&projectID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(content, &p.Content); err != nil {
		return nil, fmt.Errorf("unmarshal content: %w", err)
	}
	p.CampaignID = campaignID.String
	p.ProjectID = projectID.String

	if scheduledAt.Valid {
		t := scheduledAt.Time
		p.ScheduledAt = &t
	}
	if publishedAt.Valid {
		t := publishedAt.Time
		p.PublishedAt = &t
	}

	return &p, nil
}

// scanPostWithTotal scans a row that has a leading total_count column
// followed by the standard post columns. Used by queryListPosts with
// COUNT(*) OVER().
func scanPostWithTotal(row scannable) (*model.Post, int, error) {
	var total int
	var p model.Post
	var (
		content     []byte
		scheduledAt sql.NullTime
		publishedAt sql.NullTime
		campaignID  sql.NullString
		projectID   sql.NullString
	)

	err := row.Scan(
		&total,
		&p.ID,
		&p.Owner,
		&p.Platform,
		&p.Status,
		&content,
		&scheduledAt,
		&publishedAt,
		&campaignID,
		&projectID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, 0, err
	}

	if err := json.Unmarshal(content, &p.Content); err != nil {
		return nil, 0, fmt.Errorf("unmarshal content: %w", err)
	}
	p.CampaignID = campaignID.String
	p.ProjectID = projectID.String

	if scheduledAt.Valid {
		t := scheduledAt.Time
		p.ScheduledAt = &t
	}
	if publishedAt.Valid {
		t := publishedAt.Time
		p.PublishedAt = &t
	}

	return &p, total, nil
}

// scanCampaign scans a single row into a model.Campaign.
func scanCampaign(row scannable) (*model.Campaign, error) {
	var c model.Campaign
	var (
		description sql.NullString
		projectID   sql.NullString
		startsAt    sql.NullTime
		endsAt      sql.NullTime
	)
	err := row.Scan(
		&c.ID,
		&c.Owner,
		&c.Name,
		&description,
		&projectID,
		&startsAt,
		&endsAt,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Description = description.String
	c.ProjectID = projectID.String
	if startsAt.Valid {
		t := startsAt.Time
		c.StartsAt = &t
	}
	if endsAt.Valid {
		t := endsAt.Time
		c.EndsAt = &t
	}
	return &c, nil
}

// scanCampaigns scans multiple rows into a slice of model.Campaign pointers.
func scanCampaigns(rows *sql.Rows) ([]*model.Campaign, error) {
	var campaigns []*model.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return campaigns, nil
}

// scanProject scans a single row into a model.Project.
func scanProject(row scannable) (*model.Project, error) {
	var p model.Project
	var description sql.NullString
	err := row.Scan(
		&p.ID,
		&p.Owner,
		&p.Name,
		&description,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Description = description.String
	return &p, nil
}

// scanProjects scans multiple rows into a slice of model.Project pointers.
func scanProjects(rows *sql.Rows) ([]*model.Project, error) {
	var projects []*model.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return projects, nil
}

// scanBlogDraft scans a single row into a model.BlogDraft.
func scanBlogDraft(row scannable) (*model.BlogDraft, error) {
	var d model.BlogDraft
	var (
		body      sql.NullString
		tags      pq.StringArray
		projectID sql.NullString
	)
	err := row.Scan(
		&d.ID,
		&d.Owner,
		&d.Title,
		&body,
		&tags,
		&projectID,
		&d.Published,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	d.Body = body.String
	d.Tags = []string(tags)
	d.ProjectID = projectID.String
	return &d, nil
}

// scanBlogDrafts scans multiple rows into a slice of model.BlogDraft pointers.
func scanBlogDrafts(rows *sql.Rows) ([]*model.BlogDraft, error) {
	var drafts []*model.BlogDraft
	for rows.Next() {
		d, err := scanBlogDraft(rows)
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return drafts, nil
}

// scanEvent scans a single row into a model.Event.
func scanEvent(row scannable) (*model.Event, error) {
	var e model.Event
	var (
		actor   sql.NullString
		payload []byte
	)
	err := row.Scan(&e.ID, &e.Topic, &e.PostID, &actor, &payload, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	e.Actor = actor.String
	if len(payload) > 0 {
		e.Payload = json.RawMessage(payload)
	}
	return &e, nil
}

// scanEvents scans multiple rows into a slice of model.Event pointers.
func scanEvents(rows *sql.Rows) ([]*model.Event, error) {
	var events []*model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// nullTimePtr converts a *time.Time to a sql.NullTime.
func nullTimePtr(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// nullString converts a string to sql.NullString; empty string is null.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
