// Package blob stores uploaded media for posts.
package blob

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Store saves media blobs and returns a stable URL for embedding in post
// content.
type Store interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// S3Store writes media to an S3-compatible bucket. Objects are keyed by
// owner so URLs cannot collide across accounts.
type S3Store struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

var _ Store = (*S3Store)(nil)

// NewS3Store creates an S3 media store. baseURL is the public prefix
// returned URLs are built from; if endpoint is non-empty, path-style
// addressing is enabled (for MinIO and similar).
func NewS3Store(ctx context.Context, bucket, region, endpoint, baseURL string) (*S3Store, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
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

	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}

	return &S3Store{
		client:  s3.NewFromConfig(cfg, s3opts...),
		bucket:  bucket,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Put uploads the blob and returns its public URL.
func (s *S3Store) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put object: %w", err)
	}
	return s.baseURL + "/" + key, nil
}
