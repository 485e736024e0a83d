package loader

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/pithecene-io/advent/iox"
	"github.com/pithecene-io/advent/storage"
	"github.com/pithecene-io/advent/types"
)

// GetObjectAPI is the slice of the S3 client the loader needs.
type GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3 reads inputs from an S3 bucket under an optional prefix.
type S3 struct {
	client GetObjectAPI
	loc    storage.S3Config
}

// NewS3 creates an S3 loader from cfg.
func NewS3(ctx context.Context, cfg storage.S3Config) (*S3, error) {
	client, err := storage.NewS3Client(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &S3{client: client, loc: cfg}, nil
}

// NewS3WithClient creates an S3 loader over an existing client.
func NewS3WithClient(client GetObjectAPI, bucket, prefix string) *S3 {
	return &S3{client: client, loc: storage.S3Config{Bucket: bucket, Prefix: prefix}}
}

// Key returns the object key for a puzzle input.
func (l *S3) Key(id types.PuzzleID, testing bool) string {
	return l.loc.Key(Name(id, testing))
}

// Load fetches the input object for id.
func (l *S3) Load(ctx context.Context, id types.PuzzleID, testing bool) (string, error) {
	name := Name(id, testing)
	out, err := l.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(l.loc.Bucket),
		Key:    aws.String(l.loc.Key(name)),
	})
	if err != nil {
		var noSuchKey *s3types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, l.loc.URI(name))
		}
		return "", fmt.Errorf("get %s: %w", l.loc.URI(name), err)
	}
	defer iox.DiscardClose(out.Body)

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", l.loc.URI(name), err)
	}
	return string(data), nil
}
