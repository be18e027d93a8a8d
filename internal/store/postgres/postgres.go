// Package postgres implements the store.Store interface backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/mvannatta/postqueue/internal/model"
	"github.com/mvannatta/postqueue/internal/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresStore implements store.Store backed by a PostgreSQL database.
type PostgresStore struct {
	db *sql.DB
}

// Compile-time check that PostgresStore implements store.Store.
var _ store.Store = (*PostgresStore)(nil)

// New opens a connection to the PostgreSQL database at the given URL,
// configures the connection pool, and runs any pending migrations.
func New(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

// Close closes the underlying database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) CreatePost(ctx context.Context, post *model.Post) error {
	return queryCreatePost(ctx, s.db, post)
}

func (s *PostgresStore) GetPost(ctx context.Context, owner, id string) (*model.Post, error) {
	return queryGetPost(ctx, s.db, owner, id)
}

func (s *PostgresStore) ListPosts(ctx context.Context, filter model.PostFilter) ([]*model.Post, int, error) {
	return queryListPosts(ctx, s.db, filter)
}

func (s *PostgresStore) UpdatePost(ctx context.Context, post *model.Post) error {
	return queryUpdatePost(ctx, s.db, post)
}

func (s *PostgresStore) DeletePost(ctx context.Context, owner, id string) error {
	return queryDeletePost(ctx, s.db, owner, id)
}

func (s *PostgresStore) DeleteAllPosts(ctx context.Context, owner string) (int64, error) {
	return queryDeleteAllPosts(ctx, s.db, owner)
}

func (s *PostgresStore) CreateCampaign(ctx context.Context, c *model.Campaign) error {
	return queryCreateCampaign(ctx, s.db, c)
}

func (s *PostgresStore) GetCampaign(ctx context.Context, owner, id string) (*model.Campaign, error) {
	return queryGetCampaign(ctx, s.db, owner, id)
}

func (s *PostgresStore) ListCampaigns(ctx context.Context, owner string) ([]*model.Campaign, error) {
	return queryListCampaigns(ctx, s.db, owner)
}

func (s *PostgresStore) UpdateCampaign(ctx context.Context, c *model.Campaign) error {
	return queryUpdateCampaign(ctx, s.db, c)
}

func (s *PostgresStore) DeleteCampaign(ctx context.Context, owner, id string) error {
	return queryDeleteCampaign(ctx, s.db, owner, id)
}

func (s *PostgresStore) CreateProject(ctx context.Context, p *model.Project) error {
	return queryCreateProject(ctx, s.db, p)
}

func (s *PostgresStore) GetProject(ctx context.Context, owner, id string) (*model.Project, error) {
	return queryGetProject(ctx, s.db, owner, id)
}

func (s *PostgresStore) ListProjects(ctx context.Context, owner string) ([]*model.Project, error) {
	return queryListProjects(ctx, s.db, owner)
}

func (s *PostgresStore) DeleteProject(ctx context.Context, owner, id string) error {
	return queryDeleteProject(ctx, s.db, owner, id)
}

func (s *PostgresStore) CreateBlogDraft(ctx context.Context, d *model.BlogDraft) error {
	return queryCreateBlogDraft(ctx, s.db, d)
}

func (s *PostgresStore) GetBlogDraft(ctx context.Context, owner, id string) (*model.BlogDraft, error) {
	return queryGetBlogDraft(ctx, s.db, owner, id)
}

func (s *PostgresStore) ListBlogDrafts(ctx context.Context, owner string) ([]*model.BlogDraft, error) {
	return queryListBlogDrafts(ctx, s.db, owner)
}

func (s *PostgresStore) UpdateBlogDraft(ctx context.Context, d *model.BlogDraft) error {
	return queryUpdateBlogDraft(ctx, s.db, d)
}

func (s *PostgresStore) DeleteBlogDraft(ctx context.Context, owner, id string) error {
	return queryDeleteBlogDraft(ctx, s.db, owner, id)
}

func (s *PostgresStore) MarkNotified(ctx context.Context, owner, postID string) error {
	return queryMarkNotified(ctx, s.db, owner, postID)
}

func (s *PostgresStore) ClearNotified(ctx context.Context, postID string) error {
	return queryClearNotified(ctx, s.db, postID)
}

func (s *PostgresStore) IsNotified(ctx context.Context, postID string) (bool, error) {
	return queryIsNotified(ctx, s.db, postID)
}

func (s *PostgresStore) ListNotified(ctx context.Context) ([]*model.NotifyEntry, error) {
	return queryListNotified(ctx, s.db)
}

func (s *PostgresStore) SetSetting(ctx context.Context, key string, value json.RawMessage) error {
	return querySetSetting(ctx, s.db, key, value)
}

func (s *PostgresStore) GetSetting(ctx context.Context, key string) (json.RawMessage, error) {
	return queryGetSetting(ctx, s.db, key)
}

func (s *PostgresStore) RecordEvent(ctx context.Context, event *model.Event) error {
	return queryRecordEvent(ctx, s.db, event)
}

func (s *PostgresStore) GetEvents(ctx context.Context, postID string) ([]*model.Event, error) {
	return queryGetEvents(ctx, s.db, postID)
}

// RunInTransaction begins a database transaction, creates a txStore that
// delegates to it, calls fn, and commits on success or rolls back on error.
func (s *PostgresStore) RunInTransaction(ctx context.Context, fn func(tx store.Store) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	txS := &txStore{tx: tx}
	if err := fn(txS); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// txStore implements store.Store using a *sql.Tx.
type txStore struct {
	tx *sql.Tx
}

// Compile-time check that txStore implements store.Store.
var _ store.Store = (*txStore)(nil)

func (s *txStore) CreatePost(ctx context.Context, post *model.Post) error {
	return queryCreatePost(ctx, s.tx, post)
}

func (s *txStore) GetPost(ctx context.Context, owner, id string) (*model.Post, error) {
	return queryGetPost(ctx, s.tx, owner, id)
}

func (s *txStore) ListPosts(ctx context.Context, filter model.PostFilter) ([]*model.Post, int, error) {
	return queryListPosts(ctx, s.tx, filter)
}

func (s *txStore) UpdatePost(ctx context.Context, post *model.Post) error {
	return queryUpdatePost(ctx, s.tx, post)
}

func (s *txStore) DeletePost(ctx context.Context, owner, id string) error {
	return queryDeletePost(ctx, s.tx, owner, id)
}

func (s *txStore) DeleteAllPosts(ctx context.Context, owner string) (int64, error) {
	return queryDeleteAllPosts(ctx, s.tx, owner)
}

func (s *txStore) CreateCampaign(ctx context.Context, c *model.Campaign) error {
	return queryCreateCampaign(ctx, s.tx, c)
}

func (s *txStore) GetCampaign(ctx context.Context, owner, id string) (*model.Campaign, error) {
	return queryGetCampaign(ctx, s.tx, owner, id)
}

func (s *txStore) ListCampaigns(ctx context.Context, owner string) ([]*model.Campaign, error) {
	return queryListCampaigns(ctx, s.tx, owner)
}

func (s *txStore) UpdateCampaign(ctx context.Context, c *model.Campaign) error {
	return queryUpdateCampaign(ctx, s.tx, c)
}

func (s *txStore) DeleteCampaign(ctx context.Context, owner, id string) error {
	return queryDeleteCampaign(ctx, s.tx, owner, id)
}

func (s *txStore) CreateProject(ctx context.Context, p *model.Project) error {
	return queryCreateProject(ctx, s.tx, p)
}

func (s *txStore) GetProject(ctx context.Context, owner, id string) (*model.Project, error) {
	return queryGetProject(ctx, s.tx, owner, id)
}

func (s *txStore) ListProjects(ctx context.Context, owner string) ([]*model.Project, error) {
	return queryListProjects(ctx, s.tx, owner)
}

func (s *txStore) DeleteProject(ctx context.Context, owner, id string) error {
	return queryDeleteProject(ctx, s.tx, owner, id)
}

func (s *txStore) CreateBlogDraft(ctx context.Context, d *model.BlogDraft) error {
	return queryCreateBlogDraft(ctx, s.tx, d)
}

func (s *txStore) GetBlogDraft(ctx context.Context, owner, id string) (*model.BlogDraft, error) {
	return queryGetBlogDraft(ctx, s.tx, owner, id)
}

func (s *txStore) ListBlogDrafts(ctx context.Context, owner string) ([]*model.BlogDraft, error) {
	return queryListBlogDrafts(ctx, s.tx, owner)
}

func (s *txStore) UpdateBlogDraft(ctx context.Context, d *model.BlogDraft) error {
	return queryUpdateBlogDraft(ctx, s.tx, d)
}

func (s *txStore) DeleteBlogDraft(ctx context.Context, owner, id string) error {
	return queryDeleteBlogDraft(ctx, s.tx, owner, id)
}

func (s *txStore) MarkNotified(ctx context.Context, owner, postID string) error {
	return queryMarkNotified(ctx, s.tx, owner, postID)
}

func (s *txStore) ClearNotified(ctx context.Context, postID string) error {
	return queryClearNotified(ctx, s.tx, postID)
}

func (s *txStore) IsNotified(ctx context.Context, postID string) (bool, error) {
	return queryIsNotified(ctx, s.tx, postID)
}

func (s *txStore) ListNotified(ctx context.Context) ([]*model.NotifyEntry, error) {
	return queryListNotified(ctx, s.tx)
}

func (s *txStore) SetSetting(ctx context.Context, key string, value json.RawMessage) error {
	return querySetSetting(ctx, s.tx, key, value)
}

func (s *txStore) GetSetting(ctx context.Context, key string) (json.RawMessage, error) {
	return queryGetSetting(ctx, s.tx, key)
}

func (s *txStore) RecordEvent(ctx context.Context, event *model.Event) error {
	return queryRecordEvent(ctx, s.tx, event)
}

func (s *txStore) GetEvents(ctx context.Context, postID string) ([]*model.Event, error) {
	return queryGetEvents(ctx, s.tx, postID)
}

// RunInTransaction on a txStore reuses the existing transaction (no nesting).
func (s *txStore) RunInTransaction(ctx context.Context, fn func(tx store.Store) error) error {
	return fn(s)
}

// Close is a no-op for a transaction store; the parent store owns the connection.
func (s *txStore) Close() error {
	return nil
}
