package s3

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const (
	defaultTimeout = 30 * time.Second
	copyTimeout    = 10 * time.Minute

	// permanentPrefix is where relocated blobs live. Uploads land under a
	// temporary prefix out of band and are copied here once accepted.
	permanentPrefix = "permanent"
)

// Client talks to an S3-compatible storage backend.
type Client struct {
	client    *s3.Client
	presigner *s3.PresignClient
	bucket    string
}

func NewClient(conf *Config) (*Client, error) {
	if conf == nil {
		return nil, fmt.Errorf("configuration is required")
	}

	creds := aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(
		conf.AccessKeyID,
		conf.SecretAccessKey,
		"",
	))

	client := s3.New(s3.Options{
		BaseEndpoint:     aws.String(conf.Endpoint),
		Region:           conf.Region,
		Credentials:      creds,
		RetryMode:        aws.RetryModeAdaptive,
		RetryMaxAttempts: 3,
	})

	s3Client := &Client{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    conf.Bucket,
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	_, err := s3Client.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(conf.Bucket),
	})
	if err != nil {
		return nil, fmt.Errorf("unable to access bucket %s: %w", conf.Bucket, err)
	}

	return s3Client, nil
}

// CopyFromURL copies an uploaded object from its temporary location into
// permanent storage and returns the permanent key. Each call produces a fresh
// destination; it must run at most once per logical version.
func (h *Client) CopyFromURL(ctx context.Context, sourceURL string) (string, error) {
	sourceBucket, sourceKey, err := parseObjectURL(sourceURL)
	if err != nil {
		return "", err
	}

	destination := fmt.Sprintf("%s/%s%s", permanentPrefix, uuid.New(), path.Ext(sourceKey))

	ctx, cancel := context.WithTimeout(ctx, copyTimeout)
	defer cancel()

	_, err = h.client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(h.bucket),
		Key:        aws.String(destination),
		CopySource: aws.String(url.PathEscape(sourceBucket + "/" + sourceKey)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to copy object from %s: %w", sourceURL, err)
	}

	return destination, nil
}

// PresignGetURL returns a time-limited download URL for a stored object.
func (h *Client) PresignGetURL(ctx context.Context, key string, expire time.Duration) (string, error) {
	if key == "" {
		return "", fmt.Errorf("key is required")
	}

	request, err := h.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(h.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expire))
	if err != nil {
		return "", fmt.Errorf("failed to presign get url: %w", err)
	}

	return request.URL, nil
}

func (h *Client) DeleteObject(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("key is required")
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := h.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(h.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object from S3: %w", err)
	}

	return nil
}

// parseObjectURL splits an object URL of the form
// https://endpoint/bucket/key... into its bucket and key.
func parseObjectURL(raw string) (bucket, key string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("invalid object url %q: %w", raw, err)
	}

	parts := strings.SplitN(strings.TrimPrefix(u.Path, "/"), "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid object url %q: expected /bucket/key path", raw)
	}

	return parts[0], parts[1], nil
}
