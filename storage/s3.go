// Package storage builds object-store clients shared by the input loaders
// and the outcome archive.
package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config locates a bucket and key prefix.
type S3Config struct {
	Bucket string // required
	Prefix string
	// Region falls back to the SDK default chain when empty.
	Region string
	// Endpoint targets S3-compatible providers (R2, MinIO). It must be an
	// absolute URL.
	Endpoint     string
	UsePathStyle bool
}

// Validate reports a missing bucket or a malformed endpoint.
func (c S3Config) Validate() error {
	if c.Bucket == "" {
		return errors.New("S3 bucket is required")
	}
	if c.Endpoint != "" {
		u, err := url.Parse(c.Endpoint)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("S3 endpoint must be an absolute URL, got %q", c.Endpoint)
		}
	}
	return nil
}

// Key joins name under the prefix.
func (c S3Config) Key(name string) string {
	return path.Join(c.Prefix, name)
}

// URI renders the s3:// location of name, for messages.
func (c S3Config) URI(name string) string {
	return "s3://" + c.Bucket + "/" + c.Key(name)
}

// ParseS3Path splits "bucket", "bucket/prefix" or "s3://bucket/prefix".
func ParseS3Path(p string) (bucket, prefix string) {
	p = strings.TrimPrefix(p, "s3://")
	bucket, prefix, _ = strings.Cut(p, "/")
	return bucket, strings.Trim(prefix, "/")
}

// NewS3Client creates a client using the SDK default credential chain
// (env vars, shared config, IAM role).
func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var loadOpts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(cfg.Region))
	}
	awsConfig, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	}), nil
}
