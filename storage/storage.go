package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/studionord/backend/config"
)

// Bucket names in the external object store.
const (
	BucketProjects      = "projects"
	BucketProjectImages = "project-images"
	BucketVideos        = "videos"
)

// Client wraps the S3-compatible storage endpoint (Supabase Storage exposes
// one). All objects are addressed as bucket + key; public URLs are derived
// from the configured base rather than asked of the API.
type Client struct {
	s3            *s3.Client
	publicBaseURL string
}

func NewClient(ctx context.Context, cfg map[string]string) (*Client, error) {
	endpoint := config.GetString(cfg, "STORAGE_ENDPOINT", "")
	region := config.GetString(cfg, "STORAGE_REGION", "us-east-1")
	accessKey := config.GetString(cfg, "STORAGE_ACCESS_KEY", "")
	secretKey := config.GetString(cfg, "STORAGE_SECRET_KEY", "")
	publicBaseURL := config.GetString(cfg, "STORAGE_PUBLIC_URL", "")

	if endpoint == "" || accessKey == "" || secretKey == "" || publicBaseURL == "" {
		return nil, fmt.Errorf("storage configuration incomplete")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true // Supabase Storage serves buckets path-style
	})

	return &Client{
		s3:            client,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

// Put uploads data under bucket/key. If-None-Match guards against overwriting
// an existing object with the same key.
func (c *Client) Put(ctx context.Context, bucket, key string, data []byte, contentType, cacheControl string) error {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		IfNoneMatch: aws.String("*"),
	}
	if cacheControl != "" {
		input.CacheControl = aws.String(cacheControl)
	}

	if _, err := c.s3.PutObject(ctx, input); err != nil {
		return fmt.Errorf("put %s/%s: %w", bucket, key, err)
	}
	return nil
}

// Get downloads the entire object into memory. Callers slice the buffer for
// range responses, so this is only suitable for small and medium objects.
func (c *Client) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	out, err := c.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s/%s: %w", bucket, key, err)
	}
	return data, nil
}

// Exists probes for the object through a listing on its key prefix. A listing
// distinguishes "no such object" cleanly from transport or permission
// failures, which a direct fetch folds into one error.
func (c *Client) Exists(ctx context.Context, bucket, key string) (bool, error) {
	out, err := c.s3.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(key),
	})
	if err != nil {
		return false, fmt.Errorf("list %s/%s: %w", bucket, key, err)
	}
	for _, obj := range out.Contents {
		if aws.ToString(obj.Key) == key {
			return true, nil
		}
	}
	return false, nil
}

// Delete removes the object
func (c *Client) Delete(ctx context.Context, bucket, key string) error {
	if _, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("delete %s/%s: %w", bucket, key, err)
	}
	return nil
}

// PublicURL resolves the publicly reachable URL of an object
func (c *Client) PublicURL(bucket, key string) string {
	return fmt.Sprintf("%s/%s/%s", c.publicBaseURL, bucket, key)
}
