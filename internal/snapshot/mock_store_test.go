package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"sort"

	"github.com/mvannatta/postqueue/internal/model"
	"github.com/mvannatta/postqueue/internal/store"
)

// mockStore is a minimal in-memory store for snapshot tests.
type mockStore struct {
	posts     map[string]*model.Post
	campaigns map[string]*model.Campaign
	projects  map[string]*model.Project
	drafts    map[string]*model.BlogDraft
	settings  map[string]json.RawMessage
	notified  map[string]string
	events    []*model.Event
}

func newMockStore() *mockStore {
	return &mockStore{
		posts:     make(map[string]*model.Post),
		campaigns: make(map[string]*model.Campaign),
		projects:  make(map[string]*model.Project),
		drafts:    make(map[string]*model.BlogDraft),
		settings:  make(map[string]json.RawMessage),
		notified:  make(map[string]string),
	}
}

func (m *mockStore) CreatePost(_ context.Context, p *model.Post) error {
	m.posts[p.ID] = p
	return nil
}

func (m *mockStore) GetPost(_ context.Context, owner, id string) (*model.Post, error) {
	p, ok := m.posts[id]
	if !ok || p.Owner != owner {
		return nil, sql.ErrNoRows
	}
	return p, nil
}

func (m *mockStore) ListPosts(_ context.Context, filter model.PostFilter) ([]*model.Post, int, error) {
	var result []*model.Post
	for _, p := range m.posts {
		if filter.Owner != "" && p.Owner != filter.Owner {
			continue
		}
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, len(result), nil
}

func (m *mockStore) UpdatePost(_ context.Context, p *model.Post) error {
	m.posts[p.ID] = p
	return nil
}

func (m *mockStore) DeletePost(_ context.Context, owner, id string) error {
	p, ok := m.posts[id]
	if !ok || p.Owner != owner {
		return sql.ErrNoRows
	}
	delete(m.posts, id)
	return nil
}

func (m *mockStore) DeleteAllPosts(_ context.Context, owner string) (int64, error) {
	var n int64
	for id, p := range m.posts {
		if p.Owner == owner {
			delete(m.posts, id)
			n++
		}
	}
	return n, nil
}

func (m *mockStore) CreateCampaign(_ context.Context, c *model.Campaign) error {
	m.campaigns[c.ID] = c
	return nil
}

func (m *mockStore) GetCampaign(_ context.Context, owner, id string) (*model.Campaign, error) {
	c, ok := m.campaigns[id]
	if !ok || c.Owner != owner {
		return nil, sql.ErrNoRows
	}
	return c, nil
}

func (m *mockStore) ListCampaigns(_ context.Context, owner string) ([]*model.Campaign, error) {
	var result []*model.Campaign
	for _, c := range m.campaigns {
		if c.Owner == owner {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (m *mockStore) UpdateCampaign(_ context.Context, c *model.Campaign) error {
	m.campaigns[c.ID] = c
	return nil
}

func (m *mockStore) DeleteCampaign(_ context.Context, owner, id string) error {
	c, ok := m.campaigns[id]
	if !ok || c.Owner != owner {
		return sql.ErrNoRows
	}
	delete(m.campaigns, id)
	return nil
}

func (m *mockStore) CreateProject(_ context.Context, p *model.Project) error {
	m.projects[p.ID] = p
	return nil
}

func (m *mockStore) GetProject(_ context.Context, owner, id string) (*model.Project, error) {
	p, ok := m.projects[id]
	if !ok || p.Owner != owner {
		return nil, sql.ErrNoRows
	}
	return p, nil
}

func (m *mockStore) ListProjects(_ context.Context, owner string) ([]*model.Project, error) {
	var result []*model.Project
	for _, p := range m.projects {
		if p.Owner == owner {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (m *mockStore) DeleteProject(_ context.Context, owner, id string) error {
	p, ok := m.projects[id]
	if !ok || p.Owner != owner {
		return sql.ErrNoRows
	}
	delete(m.projects, id)
	return nil
}

func (m *mockStore) CreateBlogDraft(_ context.Context, d *model.BlogDraft) error {
	m.drafts[d.ID] = d
	return nil
}

func (m *mockStore) GetBlogDraft(_ context.Context, owner, id string) (*model.BlogDraft, error) {
	d, ok := m.drafts[id]
	if !ok || d.Owner != owner {
		return nil, sql.ErrNoRows
	}
	return d, nil
}

func (m *mockStore) ListBlogDrafts(_ context.Context, owner string) ([]*model.BlogDraft, error) {
	var result []*model.BlogDraft
	for _, d := range m.drafts {
		if d.Owner == owner {
			result = append(result, d)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (m *mockStore) UpdateBlogDraft(_ context.Context, d *model.BlogDraft) error {
	m.drafts[d.ID] = d
	return nil
}

func (m *mockStore) DeleteBlogDraft(_ context.Context, owner, id string) error {
	d, ok := m.drafts[id]
	if !ok || d.Owner != owner {
		return sql.ErrNoRows
	}
	delete(m.drafts, id)
	return nil
}

func (m *mockStore) MarkNotified(_ context.Context, owner, postID string) error {
	if _, ok := m.notified[postID]; !ok {
		m.notified[postID] = owner
	}
	return nil
}

func (m *mockStore) ClearNotified(_ context.Context, postID string) error {
	delete(m.notified, postID)
	return nil
}

func (m *mockStore) IsNotified(_ context.Context, postID string) (bool, error) {
	_, ok := m.notified[postID]
	return ok, nil
}

func (m *mockStore) ListNotified(_ context.Context) ([]*model.NotifyEntry, error) {
	var entries []*model.NotifyEntry
	for id, owner := range m.notified {
		entries = append(entries, &model.NotifyEntry{PostID: id, Owner: owner})
	}
	return entries, nil
}

func (m *mockStore) SetSetting(_ context.Context, key string, value json.RawMessage) error {
	m.settings[key] = value
	return nil
}

func (m *mockStore) GetSetting(_ context.Context, key string) (json.RawMessage, error) {
	v, ok := m.settings[key]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return v, nil
}

func (m *mockStore) RecordEvent(_ context.Context, e *model.Event) error {
	e.ID = int64(len(m.events) + 1)
	m.events = append(m.events, e)
	return nil
}

func (m *mockStore) GetEvents(_ context.Context, postID string) ([]*model.Event, error) {
	var result []*model.Event
	for _, e := range m.events {
		if e.PostID == postID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *mockStore) RunInTransaction(_ context.Context, fn func(tx store.Store) error) error {
	return fn(m)
}

func (m *mockStore) Close() error { return nil }
