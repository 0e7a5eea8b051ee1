package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"us-two/internal/config"
)

// BlobStore stores uploaded media in an S3-compatible bucket (MinIO in
// development). Objects are public; PublicURL returns the address written
// into domain rows.
type BlobStore struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

func NewBlobStore(ctx context.Context, cfg config.StorageConfig) (*BlobStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	return &BlobStore{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimSuffix(cfg.PublicURL, "/"),
	}, nil
}

// ObjectKey builds a time-derived unique storage key for an upload,
// keeping the original file extension for media classification.
func ObjectKey(now time.Time, filename string) string {
	ext := ""
	if i := strings.LastIndex(filename, "."); i >= 0 {
		ext = strings.ToLower(filename[i:])
	}
	return fmt.Sprintf("%d/%02d/%d_%s%s", now.Year(), now.Month(), now.UnixMilli(), uuid.New().String()[:8], ext)
}

func (s *BlobStore) Upload(ctx context.Context, key string, contentType string, body io.Reader) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload object: %w", err)
	}
	return nil
}

func (s *BlobStore) Remove(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to remove object: %w", err)
	}
	return nil
}

// PublicURL returns the externally reachable address for a stored object.
func (s *BlobStore) PublicURL(key string) string {
	return s.publicURL + "/" + key
}

// KeyFromURL extracts the object key from one of our public URLs. It
// returns false for URLs that do not point at this bucket, so deletes of
// externally hosted media never touch storage.
func (s *BlobStore) KeyFromURL(url string) (string, bool) {
	prefix := s.publicURL + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	return strings.TrimPrefix(url, prefix), true
}
