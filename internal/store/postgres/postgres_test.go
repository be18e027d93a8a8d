package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/mvannatta/postqueue/internal/model"
)

// newMockDB creates a sqlmock database with automatic cleanup and expectation checking.
func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unfulfilled expectations: %v", err)
		}
		db.Close()
	})
	return db, mock
}

// postWithTotalColumns is the column list for queryListPosts results (total_count + post columns).
var postWithTotalColumns = []string{
	"total_count",
	"id", "owner", "platform", "status", "content",
	"scheduled_at", "published_at", "campaign_id", "project_id", "created_at", "updated_at",
}

// postRowColumns is the column list for scanPost results (standard post columns).
var postRowColumns = []string{
	"id", "owner", "platform", "status", "content",
	"scheduled_at", "published_at", "campaign_id", "project_id", "created_at", "updated_at",
}

// addPostWithTotalRow adds a minimal post row with a leading total_count to a sqlmock.Rows.
func addPostWithTotalRow(rows *sqlmock.Rows, total int, id, owner, platform, status string, now time.Time) *sqlmock.Rows {
	return rows.AddRow(
		total,
		id, owner, platform, status, []byte(`{"text":"hello"}`),
		nil, nil, nil, nil, now, now,
	)
}

func TestParseSortClause(t *testing.T) {
	for _, tc := range []struct {
		input string
		want  string
	}{
		{"", "created_at DESC"},
		{"scheduled_at", "scheduled_at ASC"},
		{"-scheduled_at", "scheduled_at DESC"},
		{"evil_column", "created_at DESC"},
		{"-evil_column", "created_at DESC"},
	} {
		if got := parseSortClause(tc.input); got != tc.want {
			t.Errorf("parseSortClause(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
	// All allowed columns.
	for _, col := range []string{"created_at", "updated_at", "scheduled_at", "published_at", "status", "platform"} {
		if got := parseSortClause(col); got != col+" ASC" {
			t.Errorf("parseSortClause(%q) = %q, want %q", col, got, col+" ASC")
		}
		if got := parseSortClause("-" + col); got != col+" DESC" {
			t.Errorf("parseSortClause(-%q) = %q, want %q", col, got, col+" DESC")
		}
	}
}

func TestScanHelpers(t *testing.T) {
	// nullTimePtr
	if nullTimePtr(nil).Valid {
		t.Error("nullTimePtr(nil) should be invalid")
	}
	now := time.Now()
	if nt := nullTimePtr(&now); !nt.Valid || !nt.Time.Equal(now) {
		t.Errorf("nullTimePtr(now) = %v", nt)
	}

	// nullString
	if nullString("").Valid {
		t.Error("nullString(\"\") should be invalid")
	}
	if ns := nullString("hello"); !ns.Valid || ns.String != "hello" {
		t.Errorf("nullString(\"hello\") = %v", ns)
	}
}

func TestQueryCreatePost(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now().UTC()
	post := &model.Post{
		ID: "ps-test1", Owner: "alice", Platform: model.PlatformTwitter,
		Status:  model.StatusDraft,
		Content: model.Content{Text: "hello"},
		CreatedAt: now, UpdatedAt: now,
	}
	mock.ExpectExec("INSERT INTO posts").
		WithArgs(
			"ps-test1", "alice", "twitter", "draft", []byte(`{"text":"hello"}`),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), now, now,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := queryCreatePost(context.Background(), db, post); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQueryGetPost(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now().UTC()

	rows := sqlmock.NewRows(postRowColumns).AddRow(
		"ps-test1", "alice", "twitter", "draft", []byte(`{"text":"hello"}`),
		nil, nil, nil, nil, now, now,
	)
	mock.ExpectQuery("SELECT .+ FROM posts WHERE id = \\$1 AND owner = \\$2").
		WithArgs("ps-test1", "alice").WillReturnRows(rows)

	post, err := queryGetPost(context.Background(), db, "alice", "ps-test1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post.ID != "ps-test1" || post.Content.Text != "hello" {
		t.Fatalf("got id=%q text=%q", post.ID, post.Content.Text)
	}
}

func TestQueryGetPost_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT .+ FROM posts WHERE id = \\$1 AND owner = \\$2").
		WithArgs("nonexistent", "alice").WillReturnError(sql.ErrNoRows)

	_, err := queryGetPost(context.Background(), db, "alice", "nonexistent")
	if err != sql.ErrNoRows {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestQueryGetPost_WrongOwner(t *testing.T) {
	// A post that exists under a different owner looks exactly like a
	// missing post.
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT .+ FROM posts WHERE id = \\$1 AND owner = \\$2").
		WithArgs("ps-test1", "mallory").WillReturnError(sql.ErrNoRows)

	_, err := queryGetPost(context.Background(), db, "mallory", "ps-test1")
	if err != sql.ErrNoRows {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestQueryUpdatePost(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now().UTC()
	sched := now.Add(time.Hour)
	post := &model.Post{
		ID: "ps-test1", Owner: "alice", Platform: model.PlatformTwitter,
		Status:      model.StatusScheduled,
		Content:     model.Content{Text: "updated"},
		ScheduledAt: &sched,
		CreatedAt:   now, UpdatedAt: now,
	}
	mock.ExpectQuery("UPDATE posts SET").
		WithArgs(
			"ps-test1", "alice", "twitter", "scheduled", []byte(`{"text":"updated"}`),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
		).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))

	if err := queryUpdatePost(context.Background(), db, post); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQueryUpdatePost_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	post := &model.Post{
		ID: "nonexistent", Owner: "alice", Platform: model.PlatformTwitter,
		Status: model.StatusDraft, Content: model.Content{Text: "x"},
	}
	mock.ExpectQuery("UPDATE posts SET").
		WithArgs(
			"nonexistent", "alice", "twitter", "draft", []byte(`{"text":"x"}`),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
		).
		WillReturnError(sql.ErrNoRows)

	if err := queryUpdatePost(context.Background(), db, post); err != sql.ErrNoRows {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestQueryDeletePost(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("DELETE FROM posts WHERE id = \\$1 AND owner = \\$2").
		WithArgs("ps-del1", "alice").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := queryDeletePost(context.Background(), db, "alice", "ps-del1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQueryDeletePost_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("DELETE FROM posts WHERE id = \\$1 AND owner = \\$2").
		WithArgs("nonexistent", "alice").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := queryDeletePost(context.Background(), db, "alice", "nonexistent"); err != sql.ErrNoRows {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestQueryDeleteAllPosts(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("DELETE FROM posts WHERE owner = \\$1").WithArgs("alice").
		WillReturnResult(sqlmock.NewResult(0, 7))

	n, err := queryDeleteAllPosts(context.Background(), db, "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 7 {
		t.Fatalf("expected 7 deleted, got %d", n)
	}
}

func TestQueryListPosts(t *testing.T) {
	now := time.Now().UTC()

	for _, tc := range []struct {
		name      string
		filter    model.PostFilter
		queryPat  string
		args      []driver.Value
		wantCount int
		wantTotal int
	}{
		{
			name:      "NoFilter",
			filter:    model.PostFilter{},
			queryPat:  "SELECT COUNT\\(\\*\\) OVER\\(\\) AS total_count, .+ FROM posts ORDER BY created_at DESC",
			wantCount: 2,
			wantTotal: 2,
		},
		{
			name:      "FilterByOwner",
			filter:    model.PostFilter{Owner: "alice"},
			queryPat:  "SELECT .+ FROM posts WHERE owner = \\$1 ORDER BY",
			args:      []driver.Value{"alice"},
			wantCount: 1,
			wantTotal: 1,
		},
		{
			name:      "FilterByStatus",
			filter:    model.PostFilter{Status: []model.Status{model.StatusDraft, model.StatusScheduled}},
			queryPat:  "SELECT .+ FROM posts WHERE status IN \\(\\$1, \\$2\\) ORDER BY",
			args:      []driver.Value{"draft", "scheduled"},
			wantCount: 1,
			wantTotal: 1,
		},
		{
			name:      "FilterByPlatform",
			filter:    model.PostFilter{Platform: []model.Platform{model.PlatformReddit}},
			queryPat:  "SELECT .+ FROM posts WHERE platform IN \\(\\$1\\) ORDER BY",
			args:      []driver.Value{"reddit"},
			wantCount: 1,
			wantTotal: 1,
		},
		{
			name:      "FilterByCampaign",
			filter:    model.PostFilter{CampaignID: "cp-x1"},
			queryPat:  "SELECT .+ FROM posts WHERE campaign_id = \\$1 ORDER BY",
			args:      []driver.Value{"cp-x1"},
			wantCount: 1,
			wantTotal: 1,
		},
		{
			name:      "FilterByProject",
			filter:    model.PostFilter{ProjectID: "pj-x1"},
			queryPat:  "SELECT .+ FROM posts WHERE project_id = \\$1 ORDER BY",
			args:      []driver.Value{"pj-x1"},
			wantCount: 1,
			wantTotal: 1,
		},
		{
			name:      "FilterBySearch",
			filter:    model.PostFilter{Search: "launch"},
			queryPat:  "SELECT .+ FROM posts WHERE \\(content->>'text' ILIKE .+\\) ORDER BY",
			args:      []driver.Value{"launch"},
			wantCount: 1,
			wantTotal: 1,
		},
		{
			name:      "FilterDueOnly",
			filter:    model.PostFilter{DueOnly: true},
			queryPat:  "SELECT .+ FROM posts WHERE status = 'scheduled' AND scheduled_at IS NOT NULL AND scheduled_at <= NOW\\(\\) ORDER BY",
			wantCount: 1,
			wantTotal: 1,
		},
		{
			name:      "WithLimitAndOffset",
			filter:    model.PostFilter{Limit: 10, Offset: 5},
			queryPat:  "SELECT .+ FROM posts ORDER BY .+ LIMIT \\$1 OFFSET \\$2",
			args:      []driver.Value{10, 5},
			wantCount: 1,
			wantTotal: 20,
		},
		{
			name:     "WithSort",
			filter:   model.PostFilter{Sort: "-scheduled_at"},
			queryPat: "SELECT .+ FROM posts ORDER BY scheduled_at DESC",
		},
		{
			name:      "CombinedFilters",
			filter:    model.PostFilter{Owner: "bob", Status: []model.Status{model.StatusScheduled}, Limit: 5},
			queryPat:  "SELECT .+ FROM posts WHERE owner = \\$1 AND status IN \\(\\$2\\) ORDER BY .+ LIMIT \\$3",
			args:      []driver.Value{"bob", "scheduled", 5},
			wantCount: 1,
			wantTotal: 3,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			eq := mock.ExpectQuery(tc.queryPat)
			if len(tc.args) > 0 {
				eq.WithArgs(tc.args...)
			}
			r := sqlmock.NewRows(postWithTotalColumns)
			for i := range tc.wantCount {
				addPostWithTotalRow(r, tc.wantTotal, fmt.Sprintf("ps-%d", i+1), "alice", "twitter", "draft", now)
			}
			eq.WillReturnRows(r)

			posts, total, err := queryListPosts(context.Background(), db, tc.filter)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(posts) != tc.wantCount {
				t.Fatalf("expected %d posts, got %d", tc.wantCount, len(posts))
			}
			if total != tc.wantTotal {
				t.Fatalf("expected total=%d, got %d", tc.wantTotal, total)
			}
		})
	}
}

func TestQueryMarkNotified(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("INSERT INTO notify_log").
		WithArgs("ps-due1", "alice").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := queryMarkNotified(context.Background(), db, "alice", "ps-due1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQueryMarkNotified_Repeat(t *testing.T) {
	// ON CONFLICT DO NOTHING: marking twice succeeds and stays a single entry.
	db, mock := newMockDB(t)
	mock.ExpectExec("INSERT INTO notify_log").
		WithArgs("ps-due1", "alice").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := queryMarkNotified(context.Background(), db, "alice", "ps-due1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQueryClearNotified(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("DELETE FROM notify_log WHERE post_id = \\$1").WithArgs("ps-due1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := queryClearNotified(context.Background(), db, "ps-due1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQueryIsNotified(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT EXISTS").WithArgs("ps-due1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	notified, err := queryIsNotified(context.Background(), db, "ps-due1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !notified {
		t.Fatal("expected notified=true")
	}
}

func TestQueryListNotified(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"post_id", "owner", "notified_at"}).
		AddRow("ps-a", "alice", now).
		AddRow("ps-b", "bob", now)
	mock.ExpectQuery("SELECT post_id, owner, notified_at FROM notify_log").WillReturnRows(rows)

	entries, err := queryListNotified(context.Background(), db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].PostID != "ps-a" || entries[1].Owner != "bob" {
		t.Fatalf("got entries[0].PostID=%q entries[1].Owner=%q", entries[0].PostID, entries[1].Owner)
	}
}

func TestQuerySetSetting(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("INSERT INTO settings").
		WithArgs("notifications:enabled", []byte(`true`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := querySetSetting(context.Background(), db, "notifications:enabled", json.RawMessage(`true`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQueryGetSetting(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT value FROM settings WHERE key = \\$1").WithArgs("notifications:enabled").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`false`)))

	value, err := queryGetSetting(context.Background(), db, "notifications:enabled")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(value) != `false` {
		t.Fatalf("got value=%s", value)
	}
}

func TestQueryGetSetting_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT value FROM settings WHERE key = \\$1").WithArgs("nonexistent").
		WillReturnError(sql.ErrNoRows)

	if _, err := queryGetSetting(context.Background(), db, "nonexistent"); err != sql.ErrNoRows {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestQueryRecordEvent(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now().UTC()
	event := &model.Event{
		Topic: "posts.post.created", PostID: "ps-a", Actor: "alice",
		Payload: json.RawMessage(`{"post":{"id":"ps-a"}}`),
	}
	mock.ExpectQuery("INSERT INTO events").
		WithArgs("posts.post.created", "ps-a", "alice", []byte(`{"post":{"id":"ps-a"}}`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(1, now))

	if err := queryRecordEvent(context.Background(), db, event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.ID != 1 {
		t.Fatalf("expected id=1, got %d", event.ID)
	}
}

func TestQueryGetEvents(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "topic", "post_id", "actor", "payload", "created_at"}).
		AddRow(1, "posts.post.created", "ps-a", "alice", []byte(`{}`), now).
		AddRow(2, "posts.post.scheduled", "ps-a", nil, []byte(`{}`), now)
	mock.ExpectQuery("SELECT .+ FROM events WHERE post_id = \\$1").WithArgs("ps-a").WillReturnRows(rows)

	evts, err := queryGetEvents(context.Background(), db, "ps-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(evts) != 2 {
		t.Fatalf("expected 2 events, got %d", len(evts))
	}
	if evts[0].Actor != "alice" || evts[1].Actor != "" {
		t.Fatalf("got actors=%q %q", evts[0].Actor, evts[1].Actor)
	}
}

func TestQueryCreateCampaign(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now().UTC()
	c := &model.Campaign{ID: "cp-x1", Owner: "alice", Name: "Spring launch"}
	mock.ExpectQuery("INSERT INTO campaigns").
		WithArgs("cp-x1", "alice", "Spring launch", "", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	if err := queryCreateCampaign(context.Background(), db, c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.CreatedAt.IsZero() {
		t.Fatal("expected created_at to be set")
	}
}

func TestQueryGetCampaign_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT .+ FROM campaigns WHERE id = \\$1 AND owner = \\$2").
		WithArgs("nonexistent", "alice").WillReturnError(sql.ErrNoRows)

	if _, err := queryGetCampaign(context.Background(), db, "alice", "nonexistent"); err != sql.ErrNoRows {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestQueryListCampaigns(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "owner", "name", "description", "project_id", "starts_at", "ends_at", "created_at", "updated_at"}).
		AddRow("cp-x1", "alice", "Spring launch", nil, nil, nil, nil, now, now).
		AddRow("cp-x2", "alice", "Summer push", "big one", "pj-x1", now, nil, now, now)
	mock.ExpectQuery("SELECT .+ FROM campaigns WHERE owner = \\$1").WithArgs("alice").WillReturnRows(rows)

	campaigns, err := queryListCampaigns(context.Background(), db, "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(campaigns) != 2 {
		t.Fatalf("expected 2 campaigns, got %d", len(campaigns))
	}
	if campaigns[1].ProjectID != "pj-x1" || campaigns[1].StartsAt == nil {
		t.Fatalf("got project_id=%q starts_at=%v", campaigns[1].ProjectID, campaigns[1].StartsAt)
	}
}

func TestQueryCreateProject(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now().UTC()
	p := &model.Project{ID: "pj-x1", Owner: "alice", Name: "Website"}
	mock.ExpectQuery("INSERT INTO projects").
		WithArgs("pj-x1", "alice", "Website", "").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	if err := queryCreateProject(context.Background(), db, p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQueryDeleteProject_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("DELETE FROM projects WHERE id = \\$1 AND owner = \\$2").
		WithArgs("nonexistent", "alice").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := queryDeleteProject(context.Background(), db, "alice", "nonexistent"); err != sql.ErrNoRows {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestQueryCreateBlogDraft(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now().UTC()
	d := &model.BlogDraft{ID: "bl-x1", Owner: "alice", Title: "How we ship", Tags: []string{"eng", "process"}}
	mock.ExpectQuery("INSERT INTO blog_drafts").
		WithArgs("bl-x1", "alice", "How we ship", "", sqlmock.AnyArg(), sqlmock.AnyArg(), false).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	if err := queryCreateBlogDraft(context.Background(), db, d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQueryGetBlogDraft(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "owner", "title", "body", "tags", "project_id", "published", "created_at", "updated_at"}).
		AddRow("bl-x1", "alice", "How we ship", "Body text", "{eng,process}", nil, false, now, now)
	mock.ExpectQuery("SELECT .+ FROM blog_drafts WHERE id = \\$1 AND owner = \\$2").
		WithArgs("bl-x1", "alice").WillReturnRows(rows)

	d, err := queryGetBlogDraft(context.Background(), db, "alice", "bl-x1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Title != "How we ship" || len(d.Tags) != 2 {
		t.Fatalf("got title=%q tags=%v", d.Title, d.Tags)
	}
}

func TestScanPost_WithOptionalFields(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now().UTC()
	sched := now.Add(time.Hour)
	pub := now.Add(-time.Hour)

	rows := sqlmock.NewRows(postRowColumns).AddRow(
		"ps-full", "alice", "reddit", "published",
		[]byte(`{"text":"body","title":"A title","subreddit":"golang"}`),
		sched, pub, "cp-x1", "pj-x1", now, now,
	)
	mock.ExpectQuery("SELECT").WillReturnRows(rows)

	post, err := scanPost(db.QueryRow("SELECT"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post.Content.Title != "A title" || post.Content.Subreddit != "golang" {
		t.Fatalf("got title=%q subreddit=%q", post.Content.Title, post.Content.Subreddit)
	}
	if post.CampaignID != "cp-x1" || post.ProjectID != "pj-x1" {
		t.Fatalf("got campaign_id=%q project_id=%q", post.CampaignID, post.ProjectID)
	}
	if post.ScheduledAt == nil || post.PublishedAt == nil {
		t.Fatalf("got scheduled_at=%v published_at=%v", post.ScheduledAt, post.PublishedAt)
	}
}
