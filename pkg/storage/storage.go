package storage

import (
	"context"
	"time"
)

// UploadTarget is an opaque write handle handed to an administrator uploading
// a product image. The ref is what gets stored on the product; the URL is a
// short-lived signed PUT endpoint.
type UploadTarget struct {
	Ref       string    `json:"ref"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// BlobStore is the boundary to the external image store. The catalog never
// holds image bytes, only refs; ResolveURL turns a ref into a public URL and
// returns "" (not an error) when the ref is empty or the object is missing.
type BlobStore interface {
	GenerateUploadTarget(ctx context.Context) (*UploadTarget, error)
	ResolveURL(ctx context.Context, ref string) (string, error)
}
