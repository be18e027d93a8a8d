// Package digest sends each owner a daily summary of upcoming scheduled posts.
package digest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mvannatta/postqueue/internal/model"
	"github.com/mvannatta/postqueue/internal/notify"
	"github.com/mvannatta/postqueue/internal/store"
)

// lookahead is how far into the future the digest reaches.
const lookahead = 24 * time.Hour

// Digest runs on a cron schedule and sends one summary notification per
// owner listing posts scheduled within the next day. Unlike due alerts, the
// digest has no ledger: it repeats every run by design of the schedule.
type Digest struct {
	store    store.Store
	notifier notify.Notifier
	spec     string
	logger   *slog.Logger

	cron *cron.Cron
	now  func() time.Time
}

// New creates a digest on the given cron spec (standard five-field syntax,
// e.g. "0 9 * * *" for 9:00 every day).
func New(s store.Store, notifier notify.Notifier, spec string, logger *slog.Logger) *Digest {
	return &Digest{
		store:    s,
		notifier: notifier,
		spec:     spec,
		logger:   logger,
		now:      time.Now,
	}
}

// Start registers the cron entry and begins the schedule.
func (d *Digest) Start() error {
	c := cron.New()
	_, err := c.AddFunc(d.spec, func() {
		d.RunOnce(context.Background())
	})
	if err != nil {
		return fmt.Errorf("invalid digest schedule %q: %w", d.spec, err)
	}
	c.Start()
	d.cron = c
	return nil
}

// Stop halts the schedule and waits for a running digest to finish.
func (d *Digest) Stop() {
	if d.cron != nil {
		<-d.cron.Stop().Done()
	}
}

// RunOnce builds and sends the digest for every owner with upcoming posts.
// It returns the number of digests sent.
func (d *Digest) RunOnce(ctx context.Context) int {
	now := d.now()
	posts, _, err := d.store.ListPosts(ctx, model.PostFilter{
		Status: []model.Status{model.StatusScheduled},
		Sort:   "scheduled_at",
	})
	if err != nil {
		d.logger.Error("digest list failed", "err", err)
		return 0
	}

	byOwner := make(map[string][]*model.Post)
	for _, p := range posts {
		if p.ScheduledAt == nil || p.ScheduledAt.Before(now) || p.ScheduledAt.After(now.Add(lookahead)) {
			continue
		}
		byOwner[p.Owner] = append(byOwner[p.Owner], p)
	}

	sent := 0
	for owner, upcoming := range byOwner {
		n := build(owner, upcoming)
		if err := d.notifier.Send(ctx, n); err != nil {
			d.logger.Warn("digest send failed", "owner", owner, "err", err)
			continue
		}
		d.logger.Info("digest sent", "owner", owner, "posts", len(upcoming))
		sent++
	}
	return sent
}

func build(owner string, posts []*model.Post) notify.Notification {
	body := fmt.Sprintf("%d post(s) scheduled in the next 24 hours:", len(posts))
	for _, p := range posts {
		body += fmt.Sprintf("\n%s %s: %s", p.ScheduledAt.Format("15:04"), p.Platform, p.Content.Preview())
	}
	return notify.Notification{
		Title: "Upcoming posts",
		Body:  body,
		Tag:   "digest-" + owner,
		Owner: owner,
	}
}
