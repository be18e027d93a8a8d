package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mvannatta/postqueue/internal/blob"
	"github.com/mvannatta/postqueue/internal/checker"
	"github.com/mvannatta/postqueue/internal/config"
	"github.com/mvannatta/postqueue/internal/digest"
	"github.com/mvannatta/postqueue/internal/events"
	"github.com/mvannatta/postqueue/internal/notify"
	"github.com/mvannatta/postqueue/internal/server"
	"github.com/mvannatta/postqueue/internal/snapshot"
	"github.com/mvannatta/postqueue/internal/store/postgres"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Short:   "Start the post queue server",
	GroupID: "system",
	// Override PersistentPreRunE so we don't create a client connection.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

		// Load configuration.
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		// Connect to Postgres.
		store, err := postgres.New(cfg.DatabaseURL)
		if err != nil {
			return err
		}

		// Create event publisher.
		var publisher events.Publisher
		if cfg.NATSURL != "" {
			pub, err := events.NewNATSPublisher(cfg.NATSURL)
			if err != nil {
				store.Close()
				return err
			}
			publisher = pub
			logger.Info("events enabled", "nats_url", cfg.NATSURL)
		} else {
			publisher = &events.NoopPublisher{}
			logger.Info("events disabled (POSTQUEUE_NATS_URL not set)")
		}

		// Create the due-alert delivery channel.
		var notifier notify.Notifier
		if cfg.NATSURL != "" {
			n, err := notify.NewNATSNotifier(cfg.NATSURL)
			if err != nil {
				publisher.Close()
				store.Close()
				return err
			}
			notifier = n
		} else {
			notifier = &notify.NoopNotifier{}
		}

		// Create media storage if configured.
		var media blob.Store
		if cfg.MediaS3Bucket != "" {
			s3, err := blob.NewS3Store(
				context.Background(),
				cfg.MediaS3Bucket,
				cfg.MediaS3Region,
				cfg.MediaS3Endpoint,
				cfg.MediaBaseURL,
			)
			if err != nil {
				logger.Error("failed to create media store", "err", err)
			} else {
				media = s3
				logger.Info("media uploads enabled", "bucket", cfg.MediaS3Bucket)
			}
		}

		// Create server components.
		gate := notify.NewGate(store)
		postsServer := server.NewPostsServer(store, publisher, gate, server.Options{
			Media:       media,
			Environment: cfg.Environment,
			TestMode:    cfg.TestMode,
			Logger:      logger,
		})

		// Start HTTP server.
		httpServer := &http.Server{
			Addr:    cfg.HTTPAddr,
			Handler: postsServer.NewHTTPHandler(cfg.AuthToken),
		}

		go func() {
			logger.Info("HTTP server listening", "addr", cfg.HTTPAddr)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("HTTP server error", "err", err)
			}
		}()

		// Start the due-check loop.
		var dueChecker *checker.Checker
		if cfg.CheckInterval > 0 {
			dueChecker = checker.New(store, gate, notifier, publisher, cfg.CheckInterval, logger)
			dueChecker.Start()
			logger.Info("due checker started", "interval", cfg.CheckInterval)
		}

		// Start the daily digest if scheduled.
		var dailyDigest *digest.Digest
		if cfg.DigestSpec != "" {
			dailyDigest = digest.New(store, notifier, cfg.DigestSpec, logger)
			if err := dailyDigest.Start(); err != nil {
				logger.Error("failed to start digest", "err", err)
				dailyDigest = nil
			} else {
				logger.Info("digest started", "spec", cfg.DigestSpec)
			}
		}

		// Start the snapshot scheduler if any destinations are configured.
		var snapshots *snapshot.Scheduler
		if cfg.SnapshotInterval > 0 {
			var dests []snapshot.Destination

			if cfg.SnapshotS3Bucket != "" {
				s3Dest, err := snapshot.NewS3Destination(
					context.Background(),
					cfg.SnapshotS3Bucket,
					cfg.SnapshotS3Key,
					cfg.SnapshotS3Region,
					cfg.SnapshotS3Endpoint,
				)
				if err != nil {
					logger.Error("failed to create S3 snapshot destination", "err", err)
				} else {
					dests = append(dests, s3Dest)
					logger.Info("snapshot S3 destination enabled", "bucket", cfg.SnapshotS3Bucket, "key", cfg.SnapshotS3Key)
				}
			}

			if cfg.SnapshotGitRepo != "" {
				gitDest := snapshot.NewGitDestination(cfg.SnapshotGitRepo, cfg.SnapshotGitFile, cfg.SnapshotGitBranch)
				dests = append(dests, gitDest)
				logger.Info("snapshot git destination enabled", "repo", cfg.SnapshotGitRepo, "file", cfg.SnapshotGitFile)
			}

			if len(dests) > 0 {
				snapshots = snapshot.NewScheduler(store, cfg.SnapshotOwner, dests, cfg.SnapshotInterval, logger)
				snapshots.Start()
				logger.Info("snapshot scheduler started", "interval", cfg.SnapshotInterval)
			}
		}

		logger.Info("post queue server started", "http_addr", cfg.HTTPAddr, "environment", cfg.Environment)

		// Wait for SIGINT or SIGTERM.
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)

		// Graceful shutdown.
		if snapshots != nil {
			snapshots.Stop()
			logger.Info("snapshot scheduler stopped")
		}
		if dailyDigest != nil {
			dailyDigest.Stop()
			logger.Info("digest stopped")
		}
		if dueChecker != nil {
			dueChecker.Stop()
			logger.Info("due checker stopped")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", "err", err)
		}
		logger.Info("HTTP server stopped")

		if err := notifier.Close(); err != nil {
			logger.Error("error closing notifier", "err", err)
		}
		if err := publisher.Close(); err != nil {
			logger.Error("error closing publisher", "err", err)
		}
		if err := store.Close(); err != nil {
			logger.Error("error closing store", "err", err)
		}

		logger.Info("shutdown complete")
		return nil
	},
}
