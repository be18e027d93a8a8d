package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/mvannatta/postqueue/internal/model"
)

// postColumns is the column list used for SELECT statements on the posts table.
const postColumns = `id, owner, platform, status, content,
	scheduled_at, published_at, campaign_id, project_id, created_at, updated_at`

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func queryCreatePost(ctx context.Context, db executor, p *model.Post) error {
	content, err := json.Marshal(p.Content)
	if err != nil {
		return fmt.Errorf("marshal content: %w", err)
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO posts (
			id, owner, platform, status, content,
			scheduled_at, published_at, campaign_id, project_id, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9, $10, $11
		)`,
		p.ID,
		p.Owner,
		string(p.Platform),
		string(p.Status),
		content,
		nullTimePtr(p.ScheduledAt),
		nullTimePtr(p.PublishedAt),
		nullString(p.CampaignID),
		nullString(p.ProjectID),
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func queryGetPost(ctx context.Context, db executor, owner, id string) (*model.Post, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE id = $1 AND owner = $2`, id, owner)
	return scanPost(row)
}

func queryListPosts(ctx context.Context, db executor, filter model.PostFilter) ([]*model.Post, int, error) {
	var (
		whereClauses []string
		args         []any
		argIdx       int
	)

	nextArg := func() string {
		argIdx++
		return fmt.Sprintf("$%d", argIdx)
	}

	if filter.Owner != "" {
		whereClauses = append(whereClauses, "owner = "+nextArg())
		args = append(args, filter.Owner)
	}

	if len(filter.Status) > 0 {
		placeholders := make([]string, len(filter.Status))
		for i, s := range filter.Status {
			placeholders[i] = nextArg()
			args = append(args, string(s))
		}
		whereClauses = append(whereClauses, "status IN ("+strings.Join(placeholders, ", ")+")")
	}

	if len(filter.Platform) > 0 {
		placeholders := make([]string, len(filter.Platform))
		for i, p := range filter.Platform {
			placeholders[i] = nextArg()
			args = append(args, string(p))
		}
		whereClauses = append(whereClauses, "platform IN ("+strings.Join(placeholders, ", ")+")")
	}

	if filter.CampaignID != "" {
		whereClauses = append(whereClauses, "campaign_id = "+nextArg())
		args = append(args, filter.CampaignID)
	}

	if filter.ProjectID != "" {
		whereClauses = append(whereClauses, "project_id = "+nextArg())
		args = append(args, filter.ProjectID)
	}

	if filter.Search != "" {
		p := nextArg()
		whereClauses = append(whereClauses,
			fmt.Sprintf("(content->>'text' ILIKE '%%' || %s || '%%' OR content->>'title' ILIKE '%%' || %s || '%%')", p, p))
		args = append(args, filter.Search)
	}

	if filter.DueOnly {
		whereClauses = append(whereClauses,
			"status = 'scheduled' AND scheduled_at IS NOT NULL AND scheduled_at <= NOW()")
	}

	whereSQL := ""
	if len(whereClauses) > 0 {
		whereSQL = " WHERE " + strings.Join(whereClauses, " AND ")
	}

	// Single query with COUNT(*) OVER() to get total and rows atomically.
	dataQuery := "SELECT COUNT(*) OVER() AS total_count, " + postColumns + " FROM posts" + whereSQL + " ORDER BY " + parseSortClause(filter.Sort)

	if filter.Limit > 0 {
		dataQuery += " LIMIT " + nextArg()
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		dataQuery += " OFFSET " + nextArg()
		args = append(args, filter.Offset)
	}

	rows, err := db.QueryContext(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []*model.Post
	var total int
	for rows.Next() {
		p, t, err := scanPostWithTotal(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan posts: %w", err)
		}
		total = t
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("scan posts: %w", err)
	}

	return posts, total, nil
}

func queryUpdatePost(ctx context.Context, db executor, p *model.Post) error {
	content, err := json.Marshal(p.Content)
	if err != nil {
		return fmt.Errorf("marshal content: %w", err)
	}
	return db.QueryRowContext(ctx, `
		UPDATE posts SET
			platform = $3,
			status = $4,
			content = $5,
			scheduled_at = $6,
			published_at = $7,
			campaign_id = $8,
			project_id = $9,
			updated_at = NOW()
		WHERE id = $1 AND owner = $2
		RETURNING updated_at`,
		p.ID,
		p.Owner,
		string(p.Platform),
		string(p.Status),
		content,
		nullTimePtr(p.ScheduledAt),
		nullTimePtr(p.PublishedAt),
		nullString(p.CampaignID),
		nullString(p.ProjectID),
	).Scan(&p.UpdatedAt)
}

func queryDeletePost(ctx context.Context, db executor, owner, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1 AND owner = $2`, id, owner)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func queryDeleteAllPosts(ctx context.Context, db executor, owner string) (int64, error) {
	res, err := db.ExecContext(ctx, `DELETE FROM posts WHERE owner = $1`, owner)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func queryCreateCampaign(ctx context.Context, db executor, c *model.Campaign) error {
	return db.QueryRowContext(ctx, `
		INSERT INTO campaigns (id, owner, name, description, project_id, starts_at, ends_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`,
		c.ID,
		c.Owner,
		c.Name,
		c.Description,
		nullString(c.ProjectID),
		nullTimePtr(c.StartsAt),
		nullTimePtr(c.EndsAt),
	).Scan(&c.CreatedAt, &c.UpdatedAt)
}

func queryGetCampaign(ctx context.Context, db executor, owner, id string) (*model.Campaign, error) {
	row := db.QueryRowContext(ctx, `
		SELECT id, owner, name, description, project_id, starts_at, ends_at, created_at, updated_at
		FROM campaigns WHERE id = $1 AND owner = $2`, id, owner)
	return scanCampaign(row)
}

func queryListCampaigns(ctx context.Context, db executor, owner string) ([]*model.Campaign, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, owner, name, description, project_id, starts_at, ends_at, created_at, updated_at
		FROM campaigns
		WHERE owner = $1
		ORDER BY created_at DESC`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCampaigns(rows)
}

func queryUpdateCampaign(ctx context.Context, db executor, c *model.Campaign) error {
	return db.QueryRowContext(ctx, `
		UPDATE campaigns SET
			name = $3,
			description = $4,
			project_id = $5,
			starts_at = $6,
			ends_at = $7,
			updated_at = NOW()
		WHERE id = $1 AND owner = $2
		RETURNING updated_at`,
		c.ID,
		c.Owner,
		c.Name,
		c.Description,
		nullString(c.ProjectID),
		nullTimePtr(c.StartsAt),
		nullTimePtr(c.EndsAt),
	).Scan(&c.UpdatedAt)
}

func queryDeleteCampaign(ctx context.Context, db executor, owner, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM campaigns WHERE id = $1 AND owner = $2`, id, owner)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func queryCreateProject(ctx context.Context, db executor, p *model.Project) error {
	return db.QueryRowContext(ctx, `
		INSERT INTO projects (id, owner, name, description)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`,
		p.ID, p.Owner, p.Name, p.Description,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
}

func queryGetProject(ctx context.Context, db executor, owner, id string) (*model.Project, error) {
	row := db.QueryRowContext(ctx, `
		SELECT id, owner, name, description, created_at, updated_at
		FROM projects WHERE id = $1 AND owner = $2`, id, owner)
	return scanProject(row)
}

func queryListProjects(ctx context.Context, db executor, owner string) ([]*model.Project, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, owner, name, description, created_at, updated_at
		FROM projects
		WHERE owner = $1
		ORDER BY created_at DESC`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProjects(rows)
}

func queryDeleteProject(ctx context.Context, db executor, owner, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1 AND owner = $2`, id, owner)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func queryCreateBlogDraft(ctx context.Context, db executor, d *model.BlogDraft) error {
	return db.QueryRowContext(ctx, `
		INSERT INTO blog_drafts (id, owner, title, body, tags, project_id, published)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`,
		d.ID,
		d.Owner,
		d.Title,
		d.Body,
		pq.Array(d.Tags),
		nullString(d.ProjectID),
		d.Published,
	).Scan(&d.CreatedAt, &d.UpdatedAt)
}

func queryGetBlogDraft(ctx context.Context, db executor, owner, id string) (*model.BlogDraft, error) {
	row := db.QueryRowContext(ctx, `
		SELECT id, owner, title, body, tags, project_id, published, created_at, updated_at
		FROM blog_drafts WHERE id = $1 AND owner = $2`, id, owner)
	return scanBlogDraft(row)
}

func queryListBlogDrafts(ctx context.Context, db executor, owner string) ([]*model.BlogDraft, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, owner, title, body, tags, project_id, published, created_at, updated_at
		FROM blog_drafts
		WHERE owner = $1
		ORDER BY updated_at DESC`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBlogDrafts(rows)
}

func queryUpdateBlogDraft(ctx context.Context, db executor, d *model.BlogDraft) error {
	return db.QueryRowContext(ctx, `
		UPDATE blog_drafts SET
			title = $3,
			body = $4,
			tags = $5,
			project_id = $6,
			published = $7,
			updated_at = NOW()
		WHERE id = $1 AND owner = $2
		RETURNING updated_at`,
		d.ID,
		d.Owner,
		d.Title,
		d.Body,
		pq.Array(d.Tags),
		nullString(d.ProjectID),
		d.Published,
	).Scan(&d.UpdatedAt)
}

func queryDeleteBlogDraft(ctx context.Context, db executor, owner, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM blog_drafts WHERE id = $1 AND owner = $2`, id, owner)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func queryMarkNotified(ctx context.Context, db executor, owner, postID string) error {
	// The primary key on post_id makes repeat marks a no-op, so the caller
	// never sends a second notification for the same post.
	_, err := db.ExecContext(ctx, `
		INSERT INTO notify_log (post_id, owner)
		VALUES ($1, $2)
		ON CONFLICT (post_id) DO NOTHING`,
		postID, owner,
	)
	return err
}

func queryClearNotified(ctx context.Context, db executor, postID string) error {
	_, err := db.ExecContext(ctx, `DELETE FROM notify_log WHERE post_id = $1`, postID)
	return err
}

func queryIsNotified(ctx context.Context, db executor, postID string) (bool, error) {
	var exists bool
	err := db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM notify_log WHERE post_id = $1)`, postID,
	).Scan(&exists)
	return exists, err
}

func queryListNotified(ctx context.Context, db executor) ([]*model.NotifyEntry, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT post_id, owner, notified_at
		FROM notify_log
		ORDER BY notified_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*model.NotifyEntry
	for rows.Next() {
		var e model.NotifyEntry
		if err := rows.Scan(&e.PostID, &e.Owner, &e.NotifiedAt); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

func querySetSetting(ctx context.Context, db executor, key string, value json.RawMessage) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO settings (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = NOW()`,
		key, []byte(value),
	)
	return err
}

func queryGetSetting(ctx context.Context, db executor, key string) (json.RawMessage, error) {
	var value []byte
	err := db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = $1`, key,
	).Scan(&value)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(value), nil
}

func queryRecordEvent(ctx context.Context, db executor, e *model.Event) error {
	return db.QueryRowContext(ctx, `
		INSERT INTO events (topic, post_id, actor, payload)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		e.Topic, e.PostID, e.Actor, []byte(e.Payload),
	).Scan(&e.ID, &e.CreatedAt)
}

func queryGetEvents(ctx context.Context, db executor, postID string) ([]*model.Event, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, topic, post_id, actor, payload, created_at
		FROM events
		WHERE post_id = $1
		ORDER BY created_at ASC`,
		postID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

func parseSortClause(sort string) string {
	if sort == "" {
		return "created_at DESC"
	}
	desc := strings.HasPrefix(sort, "-")
	col := strings.TrimPrefix(sort, "-")
	allowed := map[string]bool{
		"created_at": true, "updated_at": true, "scheduled_at": true,
		"published_at": true, "status": true, "platform": true,
	}
	if !allowed[col] {
		return "created_at DESC"
	}
	if desc {
		return col + " DESC"
	}
	return col + " ASC"
}
