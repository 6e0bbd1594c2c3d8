package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// GCSStore is a Google Cloud Storage implementation of BlobStore using
// V4 signed URLs for both uploads and reads.
type GCSStore struct {
	client *storage.Client
	bucket string
	ttl    time.Duration
}

// NewGCSStore creates a GCS-backed blob store. credentialsFile may be empty,
// in which case ambient credentials are used.
func NewGCSStore(ctx context.Context, bucket, credentialsFile string) (*GCSStore, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}
	return &GCSStore{
		client: client,
		bucket: bucket,
		ttl:    15 * time.Minute,
	}, nil
}

// GenerateUploadTarget mints a fresh object ref and a signed PUT URL for it.
func (s *GCSStore) GenerateUploadTarget(ctx context.Context) (*UploadTarget, error) {
	ref := uuid.New().String()
	expires := time.Now().Add(s.ttl)
	url, err := s.client.Bucket(s.bucket).SignedURL(ref, &storage.SignedURLOptions{
		Method:  "PUT",
		Expires: expires,
		Scheme:  storage.SigningSchemeV4,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sign upload URL: %w", err)
	}
	return &UploadTarget{
		Ref:       ref,
		URL:       url,
		ExpiresAt: expires,
	}, nil
}

// ResolveURL returns a signed read URL for the ref, or "" when the ref is
// empty or the object does not exist.
func (s *GCSStore) ResolveURL(ctx context.Context, ref string) (string, error) {
	if ref == "" {
		return "", nil
	}
	_, err := s.client.Bucket(s.bucket).Object(ref).Attrs(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to stat object %s: %w", ref, err)
	}

	url, err := s.client.Bucket(s.bucket).SignedURL(ref, &storage.SignedURLOptions{
		Method:  "GET",
		Expires: time.Now().Add(s.ttl),
		Scheme:  storage.SigningSchemeV4,
	})
	if err != nil {
		return "", fmt.Errorf("failed to sign read URL for %s: %w", ref, err)
	}
	return url, nil
}

// Close releases the underlying GCS client.
func (s *GCSStore) Close() error {
	return s.client.Close()
}
