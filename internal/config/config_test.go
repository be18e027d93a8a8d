package config

import (
	"testing"
	"time"
)

// allEnvVars lists every env var Load reads, so tests start from a clean slate.
var allEnvVars = []string{
	"POSTQUEUE_DATABASE_URL", "POSTQUEUE_HTTP_ADDR", "POSTQUEUE_NATS_URL",
	"POSTQUEUE_AUTH_TOKEN", "POSTQUEUE_ENV", "POSTQUEUE_TEST_MODE",
	"POSTQUEUE_CHECK_INTERVAL", "POSTQUEUE_DIGEST_SPEC",
	"POSTQUEUE_SNAPSHOT_INTERVAL", "POSTQUEUE_SNAPSHOT_OWNER", "POSTQUEUE_SNAPSHOT_S3_BUCKET",
	"POSTQUEUE_SNAPSHOT_S3_ENDPOINT", "POSTQUEUE_SNAPSHOT_S3_REGION",
	"POSTQUEUE_SNAPSHOT_S3_KEY", "POSTQUEUE_SNAPSHOT_GIT_REPO",
	"POSTQUEUE_SNAPSHOT_GIT_FILE", "POSTQUEUE_SNAPSHOT_GIT_BRANCH",
	"POSTQUEUE_MEDIA_S3_BUCKET",
	"POSTQUEUE_MEDIA_S3_ENDPOINT", "POSTQUEUE_MEDIA_S3_REGION",
	"POSTQUEUE_MEDIA_BASE_URL",
}

func clearAllEnv(t *testing.T) {
	t.Helper()
	for _, key := range allEnvVars {
		t.Setenv(key, "")
	}
}

func TestLoad(t *testing.T) {
	for _, tc := range []struct {
		name              string
		env               map[string]string
		wantErr           bool
		wantHTTPAddr      string
		wantCheckInterval time.Duration
		wantEnvironment   string
		wantTestMode      bool
	}{
		{
			name:    "MissingDatabaseURL",
			env:     map[string]string{},
			wantErr: true,
		},
		{
			name:              "Defaults",
			env:               map[string]string{"POSTQUEUE_DATABASE_URL": "postgres://localhost/postqueue"},
			wantHTTPAddr:      ":8080",
			wantCheckInterval: time.Minute,
			wantEnvironment:   "development",
		},
		{
			name: "CustomValues",
			env: map[string]string{
				"POSTQUEUE_DATABASE_URL":   "postgres://db:5432/postqueue",
				"POSTQUEUE_HTTP_ADDR":      ":3000",
				"POSTQUEUE_CHECK_INTERVAL": "30s",
				"POSTQUEUE_ENV":            "staging",
				"POSTQUEUE_TEST_MODE":      "1",
			},
			wantHTTPAddr:      ":3000",
			wantCheckInterval: 30 * time.Second,
			wantEnvironment:   "staging",
			wantTestMode:      true,
		},
		{
			name: "BadCheckInterval",
			env: map[string]string{
				"POSTQUEUE_DATABASE_URL":   "postgres://localhost/postqueue",
				"POSTQUEUE_CHECK_INTERVAL": "soon",
			},
			wantErr: true,
		},
		{
			name: "BadSnapshotInterval",
			env: map[string]string{
				"POSTQUEUE_DATABASE_URL":      "postgres://localhost/postqueue",
				"POSTQUEUE_SNAPSHOT_INTERVAL": "whenever",
			},
			wantErr: true,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			clearAllEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.HTTPAddr != tc.wantHTTPAddr {
				t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, tc.wantHTTPAddr)
			}
			if cfg.CheckInterval != tc.wantCheckInterval {
				t.Errorf("CheckInterval = %v, want %v", cfg.CheckInterval, tc.wantCheckInterval)
			}
			if cfg.Environment != tc.wantEnvironment {
				t.Errorf("Environment = %q, want %q", cfg.Environment, tc.wantEnvironment)
			}
			if cfg.TestMode != tc.wantTestMode {
				t.Errorf("TestMode = %v, want %v", cfg.TestMode, tc.wantTestMode)
			}
		})
	}
}

func TestLoad_SnapshotDefaults(t *testing.T) {
	clearAllEnv(t)
	t.Setenv("POSTQUEUE_DATABASE_URL", "postgres://localhost/postqueue")
	t.Setenv("POSTQUEUE_SNAPSHOT_S3_BUCKET", "backups")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SnapshotS3Region != "us-east-1" {
		t.Errorf("SnapshotS3Region = %q, want us-east-1", cfg.SnapshotS3Region)
	}
	if cfg.SnapshotS3Key != "postqueue/backup.jsonl" {
		t.Errorf("SnapshotS3Key = %q", cfg.SnapshotS3Key)
	}
	if cfg.SnapshotInterval != 0 {
		t.Errorf("SnapshotInterval = %v, want 0 (disabled)", cfg.SnapshotInterval)
	}
}
