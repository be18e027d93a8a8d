package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const snapshotContentType = "application/x-ndjson"

// S3Destination writes JSONL exports to an S3-compatible bucket. Each write
// updates the configured key in place and also lands a dated copy next to
// it, so the bucket keeps one export per calendar day alongside the latest.
type S3Destination struct {
	client *s3.Client
	bucket string
	key    string

	now func() time.Time
}

// NewS3Destination creates an S3 destination. If endpoint is non-empty,
// path-style addressing is enabled (for MinIO and similar).
func NewS3Destination(ctx context.Context, bucket, key, region, endpoint string) (*S3Destination, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	var s3opts []func(*s3.Options)
	if endpoint != "" {
		s3opts = append(s3opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		})
	}

	return &S3Destination{
		client: s3.NewFromConfig(cfg, s3opts...),
		bucket: bucket,
		key:    key,
		now:    time.Now,
	}, nil
}

// Write uploads data under the latest key and the day's dated key.
func (d *S3Destination) Write(ctx context.Context, data []byte) error {
	for _, key := range []string{d.key, d.datedKey()} {
		if err := d.put(ctx, key, data); err != nil {
			return err
		}
	}
	return nil
}

func (d *S3Destination) put(ctx context.Context, key string, data []byte) error {
	_, err := d.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(d.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(snapshotContentType),
	})
	if err != nil {
		return fmt.Errorf("s3 put object %s: %w", key, err)
	}
	return nil
}

// datedKey derives the history key from the configured one by inserting the
// UTC date before the extension: postqueue/backup.jsonl becomes
// postqueue/backup-2026-03-01.jsonl.
func (d *S3Destination) datedKey() string {
	date := d.now().UTC().Format("2006-01-02")
	ext := path.Ext(d.key)
	return strings.TrimSuffix(d.key, ext) + "-" + date + ext
}
