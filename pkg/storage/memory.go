package storage

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory BlobStore used by tests and local runs.
// Generated refs are considered "uploaded" immediately.
type MemoryStore struct {
	refs map[string]bool
	mu   sync.RWMutex
}

// NewMemoryStore creates a new instance of MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		refs: make(map[string]bool),
	}
}

// GenerateUploadTarget mints a ref and a fake upload URL.
func (s *MemoryStore) GenerateUploadTarget(ctx context.Context) (*UploadTarget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ref := uuid.New().String()
	s.refs[ref] = true
	return &UploadTarget{
		Ref:       ref,
		URL:       "mem://uploads/" + ref,
		ExpiresAt: time.Now().Add(15 * time.Minute),
	}, nil
}

// ResolveURL returns a fake public URL for known refs, "" otherwise.
func (s *MemoryStore) ResolveURL(ctx context.Context, ref string) (string, error) {
	if ref == "" {
		return "", nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.refs[ref] {
		return "", nil
	}
	return "mem://blobs/" + ref, nil
}
