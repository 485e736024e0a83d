package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/pithecene-io/advent/iox"
	"github.com/pithecene-io/advent/types"
)

// MinIOConfig configures a MinIO (or other S3-compatible) input bucket
// with static credentials.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
	UseSSL    bool
}

// MinIO reads inputs through the minio-go client.
type MinIO struct {
	bucket string
	prefix string
	get    func(ctx context.Context, key string) (io.ReadCloser, error)
}

// NewMinIO creates a MinIO loader from cfg.
func NewMinIO(cfg MinIOConfig) (*MinIO, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("minio endpoint is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("minio bucket is required")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	return &MinIO{
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
		get: func(ctx context.Context, key string) (io.ReadCloser, error) {
			return client.GetObject(ctx, cfg.Bucket, key, minio.GetObjectOptions{})
		},
	}, nil
}

// Load fetches the input object for id.
func (l *MinIO) Load(ctx context.Context, id types.PuzzleID, testing bool) (string, error) {
	key := path.Join(l.prefix, Name(id, testing))
	obj, err := l.get(ctx, key)
	if err != nil {
		return "", l.wrap(key, err)
	}
	defer iox.DiscardClose(obj)

	// minio reports a missing key on first read, not on GetObject.
	data, err := io.ReadAll(obj)
	if err != nil {
		return "", l.wrap(key, err)
	}
	return string(data), nil
}

func (l *MinIO) wrap(key string, err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return fmt.Errorf("%w: minio://%s/%s", ErrNotFound, l.bucket, key)
	}
	return fmt.Errorf("get minio://%s/%s: %w", l.bucket, key, err)
}
