package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinIOStorage struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

type MinIOOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicURL is the base the bucket is reachable from; defaults to the endpoint.
	PublicURL string
}

// NewMinIOStorage connects to the endpoint and creates the bucket when missing.
func NewMinIOStorage(ctx context.Context, opts MinIOOptions) (*MinIOStorage, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", opts.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", opts.Bucket, err)
		}
	}

	publicURL := opts.PublicURL
	if publicURL == "" {
		scheme := "http"
		if opts.UseSSL {
			scheme = "https"
		}
		publicURL = scheme + "://" + opts.Endpoint
	}

	return &MinIOStorage{
		client:    client,
		bucket:    opts.Bucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}, nil
}

func (s *MinIOStorage) Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}

	_, err := s.client.PutObject(ctx, s.bucket, name, r, size, minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: "public, max-age=31536000, immutable",
		UserMetadata: map[string]string{
			"uploaded-at": time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", fmt.Errorf("upload to minio: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, name), nil
}

func (s *MinIOStorage) Delete(ctx context.Context, name string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, name, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete from minio: %w", err)
	}
	return nil
}
