package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mvannatta/postqueue/internal/events"
	"github.com/mvannatta/postqueue/internal/idgen"
	"github.com/mvannatta/postqueue/internal/model"
	"github.com/mvannatta/postqueue/internal/store"
)

// createPostInput holds transport-agnostic parameters for creating a post.
type createPostInput struct {
	Platform    string        `json:"platform"`
	Content     model.Content `json:"content"`
	ScheduledAt *time.Time    `json:"scheduled_at,omitempty"`
	CampaignID  string        `json:"campaign_id,omitempty"`
	ProjectID   string        `json:"project_id,omitempty"`
}

// createPost validates input, persists a new draft post, and publishes a
// PostCreated event. Returns inputError for validation failures. A post with
// a scheduled time is still created as a draft; scheduling is a separate
// transition.
func (s *PostsServer) createPost(ctx context.Context, owner string, in createPostInput) (*model.Post, error) {
	now := time.Now().UTC()
	id, err := idgen.NewPostID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate ID: %w", err)
	}

	post := &model.Post{
		ID:          id,
		Owner:       owner,
		Platform:    model.Platform(in.Platform),
		Status:      model.StatusDraft,
		Content:     in.Content,
		ScheduledAt: in.ScheduledAt,
		CampaignID:  in.CampaignID,
		ProjectID:   in.ProjectID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := model.ValidatePost(post); err != nil {
		return nil, inputError("invalid post: " + err.Error())
	}

	if err := s.store.CreatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.recordAndPublish(ctx, events.TopicPostCreated, post.ID, owner, events.PostCreated{Post: post})

	return post, nil
}

// updatePostInput holds transport-agnostic parameters for updating a post.
// Pointer fields indicate optionality: nil means "don't change".
type updatePostInput struct {
	Content    *model.Content `json:"content,omitempty"`
	CampaignID *string        `json:"campaign_id,omitempty"`
	ProjectID  *string        `json:"project_id,omitempty"`

	// ScheduledAt edits go through the schedule/unschedule transitions, not
	// here, so a stray scheduled_at in a PATCH body is rejected up front.
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	Status      *string    `json:"status,omitempty"`
}

// updatePost applies partial updates to an existing post, persists them, and
// publishes a PostUpdated event. Status and scheduling changes are refused;
// those go through the transition endpoints.
func (s *PostsServer) updatePost(ctx context.Context, owner, id string, in updatePostInput) (*model.Post, error) {
	if in.Status != nil {
		return nil, inputError("status cannot be changed directly; use the transition endpoints")
	}
	if in.ScheduledAt != nil {
		return nil, inputError("scheduled_at cannot be changed directly; use the schedule endpoint")
	}

	post, err := s.store.GetPost(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	changes := make(map[string]any)

	if in.Content != nil {
		post.Content = *in.Content
		changes["content"] = post.Content
	}
	if in.CampaignID != nil {
		post.CampaignID = *in.CampaignID
		changes["campaign_id"] = post.CampaignID
	}
	if in.ProjectID != nil {
		post.ProjectID = *in.ProjectID
		changes["project_id"] = post.ProjectID
	}

	post.UpdatedAt = time.Now().UTC()

	if err := model.ValidatePost(post); err != nil {
		return nil, inputError("invalid post: " + err.Error())
	}

	if err := s.store.UpdatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	s.recordAndPublish(ctx, events.TopicPostUpdated, post.ID, owner, events.PostUpdated{
		Post:    post,
		Changes: changes,
	})

	return post, nil
}

// transitionTopics maps each lifecycle action to its event topic.
var transitionTopics = map[model.Action]string{
	model.ActionSchedule:   events.TopicPostScheduled,
	model.ActionUnschedule: events.TopicPostUnscheduled,
	model.ActionPublish:    events.TopicPostPublished,
	model.ActionArchive:    events.TopicPostArchived,
	model.ActionRestore:    events.TopicPostRestored,
}

// transitionPost applies a lifecycle action to a post. Illegal transitions
// return *model.ConflictError and leave the store untouched. Scheduling (and
// re-scheduling) requires scheduledAt and re-arms the post's due alert by
// clearing its ledger entry; unscheduling does the same while dropping the
// scheduled time.
func (s *PostsServer) transitionPost(ctx context.Context, owner, id string, action model.Action, scheduledAt *time.Time) (*model.Post, error) {
	post, err := s.store.GetPost(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	from := post.Status
	next, err := model.Transition(post.Status, action)
	if err != nil {
		return nil, err
	}

	clearLedger := false
	switch action {
	case model.ActionSchedule:
		if scheduledAt == nil || scheduledAt.IsZero() {
			return nil, inputError("scheduled_at is required")
		}
		t := scheduledAt.UTC()
		post.ScheduledAt = &t
		clearLedger = true
	case model.ActionUnschedule:
		post.ScheduledAt = nil
		clearLedger = true
	case model.ActionPublish:
		now := time.Now().UTC()
		post.PublishedAt = &now
	}

	post.Status = next
	post.UpdatedAt = time.Now().UTC()

	err = s.store.RunInTransaction(ctx, func(tx store.Store) error {
		if err := tx.UpdatePost(ctx, post); err != nil {
			return fmt.Errorf("failed to update post: %w", err)
		}
		if clearLedger {
			if err := tx.ClearNotified(ctx, post.ID); err != nil {
				return fmt.Errorf("failed to clear notify ledger: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recordAndPublish(ctx, transitionTopics[action], post.ID, owner, events.PostTransitioned{
		Post:   post,
		Action: string(action),
		From:   string(from),
	})

	return post, nil
}

// deletePost removes a post. The ledger entry, if any, goes with it via the
// foreign key cascade.
func (s *PostsServer) deletePost(ctx context.Context, owner, id string) error {
	if err := s.store.DeletePost(ctx, owner, id); err != nil {
		return err
	}
	s.recordAndPublish(ctx, events.TopicPostDeleted, id, owner, events.PostDeleted{PostID: id})
	return nil
}

// resetPosts deletes every post belonging to the owner and returns the count.
// The HTTP layer gates this behind allowReset.
func (s *PostsServer) resetPosts(ctx context.Context, owner string) (int64, error) {
	n, err := s.store.DeleteAllPosts(ctx, owner)
	if err != nil {
		return 0, fmt.Errorf("failed to reset posts: %w", err)
	}
	return n, nil
}

// conflictStatus reports whether err is an illegal-transition conflict.
func conflictStatus(err error) (string, bool) {
	var ce *model.ConflictError
	if errors.As(err, &ce) {
		return ce.Reason, true
	}
	return "", false
}
