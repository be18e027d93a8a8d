package notify

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mvannatta/postqueue/internal/model"
	"github.com/mvannatta/postqueue/internal/store"
)

// SettingEnabled is the settings key holding the notification on/off switch.
const SettingEnabled = "notifications:enabled"

// DueTitle is the title of every due alert.
const DueTitle = "Post is due!"

// DueFallbackBody is used when the post has no preview text to show.
const DueFallbackBody = "A scheduled post is due."

// Gate decides whether a due post may produce an alert. It combines the
// persisted enabled switch with the per-post ledger, so each post notifies
// at most once no matter how many check cycles see it due.
type Gate struct {
	store store.Store
}

func NewGate(s store.Store) *Gate {
	return &Gate{store: s}
}

// Enabled reports the persisted notification switch. A missing setting
// means notifications are on.
func (g *Gate) Enabled(ctx context.Context) (bool, error) {
	raw, err := g.store.GetSetting(ctx, SettingEnabled)
	if errors.Is(err, sql.ErrNoRows) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("read enabled setting: %w", err)
	}
	var enabled bool
	if err := json.Unmarshal(raw, &enabled); err != nil {
		return false, fmt.Errorf("parse enabled setting: %w", err)
	}
	return enabled, nil
}

// SetEnabled persists the notification switch. Turning notifications off
// does not clear the ledger: posts already notified stay notified.
func (g *Gate) SetEnabled(ctx context.Context, enabled bool) error {
	raw, err := json.Marshal(enabled)
	if err != nil {
		return err
	}
	return g.store.SetSetting(ctx, SettingEnabled, raw)
}

// ShouldNotify reports whether the post may produce an alert right now:
// the switch is on and the post has not already notified.
func (g *Gate) ShouldNotify(ctx context.Context, postID string) (bool, error) {
	enabled, err := g.Enabled(ctx)
	if err != nil {
		return false, err
	}
	if !enabled {
		return false, nil
	}
	notified, err := g.store.IsNotified(ctx, postID)
	if err != nil {
		return false, fmt.Errorf("check ledger: %w", err)
	}
	return !notified, nil
}

// Mark records that the post has notified.
func (g *Gate) Mark(ctx context.Context, owner, postID string) error {
	return g.store.MarkNotified(ctx, owner, postID)
}

// Clear removes the post's ledger entry, re-arming it for one more alert.
func (g *Gate) Clear(ctx context.Context, postID string) error {
	return g.store.ClearNotified(ctx, postID)
}

// Entries returns the full ledger, oldest first.
func (g *Gate) Entries(ctx context.Context) ([]*model.NotifyEntry, error) {
	return g.store.ListNotified(ctx)
}

// ForDuePost builds the alert for a due post. The body is the content
// preview, or a generic message when the post has no text, and the tag is
// the post ID so repeated sends for the same post collapse at the delivery
// layer.
func ForDuePost(p *model.Post) Notification {
	body := p.Content.Preview()
	if body == "" {
		body = DueFallbackBody
	}
	return Notification{
		Title: DueTitle,
		Body:  body,
		Tag:   p.ID,
		Owner: p.Owner,
	}
}
