// Package checker runs the periodic due scan over scheduled posts.
package checker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mvannatta/postqueue/internal/events"
	"github.com/mvannatta/postqueue/internal/model"
	"github.com/mvannatta/postqueue/internal/notify"
	"github.com/mvannatta/postqueue/internal/store"
)

// Checker polls for scheduled posts whose time has arrived and alerts each
// one exactly once. A post counts as due from its scheduled instant onward,
// so a tick landing exactly on the scheduled time already fires.
type Checker struct {
	store     store.Store
	gate      *notify.Gate
	notifier  notify.Notifier
	publisher events.Publisher
	interval  time.Duration
	logger    *slog.Logger

	now func() time.Time

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a checker that scans at the given interval.
func New(s store.Store, gate *notify.Gate, notifier notify.Notifier, publisher events.Publisher, interval time.Duration, logger *slog.Logger) *Checker {
	return &Checker{
		store:     s,
		gate:      gate,
		notifier:  notifier,
		publisher: publisher,
		interval:  interval,
		logger:    logger,
		now:       time.Now,
	}
}

// Start begins periodic checking. It runs an initial scan immediately, then
// on each tick.
func (c *Checker) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.run(ctx)
	}()
}

// Stop cancels the checker and waits for the current scan (if any) to finish.
func (c *Checker) Stop() {
	if c.cancel != nil {
		c.cancel()
	}
	c.wg.Wait()
}

func (c *Checker) run(ctx context.Context) {
	// Run once immediately at startup.
	c.CheckOnce(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.CheckOnce(ctx)
		}
	}
}

// CheckOnce scans all scheduled posts and alerts the due ones that have not
// alerted before. It returns the number of notifications produced this scan.
func (c *Checker) CheckOnce(ctx context.Context) int {
	// Without delivery permission the whole tick is a no-op. In particular
	// no ledger entries are written, so a post that comes due before a
	// channel is granted still alerts on the first permitted tick.
	if c.notifier.Permission() != notify.PermissionGranted {
		return 0
	}

	posts, _, err := c.store.ListPosts(ctx, model.PostFilter{
		Status: []model.Status{model.StatusScheduled},
		Sort:   "scheduled_at",
	})
	if err != nil {
		c.logger.Error("due check list failed", "err", err)
		return 0
	}

	now := c.now()
	sent := 0
	for _, post := range posts {
		if !post.Due(now) {
			continue
		}
		ok, err := c.gate.ShouldNotify(ctx, post.ID)
		if err != nil {
			c.logger.Error("due check gate failed", "post", post.ID, "err", err)
			continue
		}
		if !ok {
			continue
		}

		n := notify.ForDuePost(post)
		if err := c.notifier.Send(ctx, n); err != nil {
			// The delivery channel may be down or denied. The ledger entry
			// is written regardless so the post never alerts twice.
			c.logger.Warn("due notification send failed", "post", post.ID, "err", err)
		}

		if err := c.gate.Mark(ctx, post.Owner, post.ID); err != nil {
			c.logger.Error("due check mark failed", "post", post.ID, "err", err)
			continue
		}

		if err := c.publisher.Publish(ctx, events.TopicPostDue, events.PostDue{
			PostID:      post.ID,
			Owner:       post.Owner,
			Title:       n.Title,
			Body:        n.Body,
			ScheduledAt: post.ScheduledAt.UTC().Format(time.RFC3339),
		}); err != nil {
			c.logger.Warn("due event publish failed", "post", post.ID, "err", err)
		}

		c.logger.Info("post due", "post", post.ID, "owner", post.Owner, "scheduled_at", post.ScheduledAt)
		sent++
	}

	return sent
}
