package server

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mvannatta/postqueue/internal/blob"
	"github.com/mvannatta/postqueue/internal/events"
	"github.com/mvannatta/postqueue/internal/model"
	"github.com/mvannatta/postqueue/internal/notify"
	"github.com/mvannatta/postqueue/internal/store"
)

// PostsServer is the HTTP service layer over the store. All handlers resolve
// the acting owner from the request and pass it down, so every store call is
// owner-scoped.
type PostsServer struct {
	store     store.Store
	publisher events.Publisher
	gate      *notify.Gate
	media     blob.Store
	logger    *slog.Logger

	environment string
	testMode    bool
}

// Options carries the optional collaborators of a PostsServer.
type Options struct {
	// Media enables POST /v1/media. Nil disables uploads (501).
	Media blob.Store
	// Environment and TestMode together gate the destructive reset endpoint:
	// it is refused unless Environment != "production" and TestMode is true.
	Environment string
	TestMode    bool
	Logger      *slog.Logger
}

// NewPostsServer returns a new PostsServer backed by the given store and publisher.
func NewPostsServer(s store.Store, p events.Publisher, g *notify.Gate, opts Options) *PostsServer {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &PostsServer{
		store:       s,
		publisher:   p,
		gate:        g,
		media:       opts.Media,
		logger:      logger,
		environment: opts.Environment,
		testMode:    opts.TestMode,
	}
}

// recordAndPublish persists an event to the store and publishes it to NATS.
// Both operations are best-effort; failures are logged but do not block the caller.
func (s *PostsServer) recordAndPublish(ctx context.Context, topic, postID, actor string, event any) {
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Warn("failed to marshal event", "topic", topic, "post_id", postID, "error", err)
		return
	}
	if err := s.store.RecordEvent(ctx, &model.Event{
		Topic:   topic,
		PostID:  postID,
		Actor:   actor,
		Payload: payload,
	}); err != nil {
		s.logger.Warn("failed to record event", "topic", topic, "post_id", postID, "error", err)
	}
	if err := s.publisher.Publish(ctx, topic, event); err != nil {
		s.logger.Warn("failed to publish event", "topic", topic, "post_id", postID, "error", err)
	}
}

// allowReset reports whether the destructive bulk delete endpoint is enabled.
// Production environments refuse it regardless of the test mode flag.
func (s *PostsServer) allowReset() bool {
	return s.environment != "production" && s.testMode
}

// inputError indicates invalid user input.
// Transport layers map this to 400.
type inputError string

func (e inputError) Error() string { return string(e) }
