package ingest

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/ignite/adblend/internal/blending"
	cfg "github.com/ignite/adblend/internal/config"
)

// ObjectStore reads uploaded warehouse CSV objects. Uploading is handled
// by a separate surface; this repo only ever reads.
type ObjectStore interface {
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}

// NewObjectStore builds the store selected by configuration.
func NewObjectStore(ctx context.Context, c cfg.StorageConfig) (ObjectStore, error) {
	switch c.Type {
	case "s3":
		return newS3Store(ctx, c)
	case "local":
		return &LocalStore{Root: c.LocalPath}, nil
	default:
		return nil, fmt.Errorf("unknown storage type %q", c.Type)
	}
}

// S3Store reads objects from the uploads bucket.
type S3Store struct {
	client *s3.Client
	bucket string
}

func newS3Store(ctx context.Context, c cfg.StorageConfig) (*S3Store, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(c.S3Region),
	}
	if c.AWSProfile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(c.AWSProfile))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return &S3Store{client: s3.NewFromConfig(awsCfg), bucket: c.S3Bucket}, nil
}

func (s *S3Store) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	})
	if err != nil {
		return nil, fmt.Errorf("get s3://%s/%s: %w", s.bucket, key, err)
	}
	return out.Body, nil
}

// LocalStore reads objects from a directory tree; the development and
// test stand-in for S3.
type LocalStore struct {
	Root string
}

func (s *LocalStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	// Keys are slash-separated and must stay inside the root.
	clean := filepath.Clean(strings.ReplaceAll(key, "\\", "/"))
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return nil, fmt.Errorf("invalid object key %q", key)
	}
	f, err := os.Open(filepath.Join(s.Root, clean))
	if err != nil {
		return nil, fmt.Errorf("get local object %s: %w", key, err)
	}
	return f, nil
}

// FetchRows reads one object and parses it into raw rows.
func FetchRows(ctx context.Context, store ObjectStore, key string) ([]blending.RawRow, error) {
	rc, err := store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	rows, err := ParseCSV(rc)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", key, err)
	}
	return rows, nil
}
