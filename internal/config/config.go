package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	DatabaseURL string // POSTQUEUE_DATABASE_URL (required)
	HTTPAddr    string // POSTQUEUE_HTTP_ADDR (default ":8080")
	NATSURL     string // POSTQUEUE_NATS_URL (optional, empty = no events)
	AuthToken   string // POSTQUEUE_AUTH_TOKEN (optional, empty = auth disabled)

	// Environment gates the destructive reset endpoint: it is only honored
	// when Environment != "production" and TestMode is set.
	Environment string // POSTQUEUE_ENV (default "development")
	TestMode    bool   // POSTQUEUE_TEST_MODE ("1" / "true")

	// Due-check loop settings.
	CheckInterval time.Duration // POSTQUEUE_CHECK_INTERVAL (default 60s; 0 = disabled)
	DigestSpec    string        // POSTQUEUE_DIGEST_SPEC (cron spec, e.g. "0 7 * * *"; empty = disabled)

	// Snapshot settings.
	SnapshotInterval   time.Duration // POSTQUEUE_SNAPSHOT_INTERVAL (default 0 = disabled)
	SnapshotOwner      string        // POSTQUEUE_SNAPSHOT_OWNER (default "default")
	SnapshotS3Bucket   string        // POSTQUEUE_SNAPSHOT_S3_BUCKET (enables S3 when set)
	SnapshotS3Endpoint string        // POSTQUEUE_SNAPSHOT_S3_ENDPOINT (custom endpoint for MinIO)
	SnapshotS3Region   string        // POSTQUEUE_SNAPSHOT_S3_REGION (default "us-east-1")
	SnapshotS3Key      string        // POSTQUEUE_SNAPSHOT_S3_KEY (default "postqueue/backup.jsonl")
	SnapshotGitRepo    string        // POSTQUEUE_SNAPSHOT_GIT_REPO (local clone path, enables git when set)
	SnapshotGitFile    string        // POSTQUEUE_SNAPSHOT_GIT_FILE (default "posts.jsonl")
	SnapshotGitBranch  string        // POSTQUEUE_SNAPSHOT_GIT_BRANCH (default "main")

	// Media storage settings.
	MediaS3Bucket   string // POSTQUEUE_MEDIA_S3_BUCKET (enables uploads when set)
	MediaS3Endpoint string // POSTQUEUE_MEDIA_S3_ENDPOINT
	MediaS3Region   string // POSTQUEUE_MEDIA_S3_REGION (default "us-east-1")
	MediaBaseURL    string // POSTQUEUE_MEDIA_BASE_URL (public URL prefix for stored objects)
}

func Load() (*Config, error) {
	c := &Config{
		DatabaseURL:        os.Getenv("POSTQUEUE_DATABASE_URL"),
		HTTPAddr:           envOrDefault("POSTQUEUE_HTTP_ADDR", ":8080"),
		NATSURL:            os.Getenv("POSTQUEUE_NATS_URL"),
		AuthToken:          os.Getenv("POSTQUEUE_AUTH_TOKEN"),
		Environment:        envOrDefault("POSTQUEUE_ENV", "development"),
		DigestSpec:         os.Getenv("POSTQUEUE_DIGEST_SPEC"),
		SnapshotS3Bucket:   os.Getenv("POSTQUEUE_SNAPSHOT_S3_BUCKET"),
		SnapshotS3Endpoint: os.Getenv("POSTQUEUE_SNAPSHOT_S3_ENDPOINT"),
		SnapshotS3Region:   envOrDefault("POSTQUEUE_SNAPSHOT_S3_REGION", "us-east-1"),
		SnapshotS3Key:      envOrDefault("POSTQUEUE_SNAPSHOT_S3_KEY", "postqueue/backup.jsonl"),
		SnapshotOwner:      envOrDefault("POSTQUEUE_SNAPSHOT_OWNER", "default"),
		SnapshotGitRepo:    os.Getenv("POSTQUEUE_SNAPSHOT_GIT_REPO"),
		SnapshotGitFile:    envOrDefault("POSTQUEUE_SNAPSHOT_GIT_FILE", "posts.jsonl"),
		SnapshotGitBranch:  envOrDefault("POSTQUEUE_SNAPSHOT_GIT_BRANCH", "main"),
		MediaS3Bucket:      os.Getenv("POSTQUEUE_MEDIA_S3_BUCKET"),
		MediaS3Endpoint:    os.Getenv("POSTQUEUE_MEDIA_S3_ENDPOINT"),
		MediaS3Region:      envOrDefault("POSTQUEUE_MEDIA_S3_REGION", "us-east-1"),
		MediaBaseURL:       os.Getenv("POSTQUEUE_MEDIA_BASE_URL"),
	}
	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("POSTQUEUE_DATABASE_URL is required")
	}

	switch os.Getenv("POSTQUEUE_TEST_MODE") {
	case "1", "true":
		c.TestMode = true
	}

	d, err := parseDurationEnv("POSTQUEUE_CHECK_INTERVAL", time.Minute)
	if err != nil {
		return nil, err
	}
	c.CheckInterval = d

	d, err = parseDurationEnv("POSTQUEUE_SNAPSHOT_INTERVAL", 0)
	if err != nil {
		return nil, err
	}
	c.SnapshotInterval = d

	return c, nil
}

func parseDurationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
