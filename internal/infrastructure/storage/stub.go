package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"sync"
	"time"

	galleryapp "github.com/lumiso/backend/internal/application/gallery"
)

var _ galleryapp.ObjectStorage = (*StubObjectStorage)(nil)

// StubObjectStorage keeps objects in memory and hands out fake download URLs.
// Used when no storage bucket is configured, e.g. in development.
type StubObjectStorage struct {
	// BaseURL prefixes generated download URLs.
	// Defaults to "https://storage.example.com".
	BaseURL string

	mu      sync.RWMutex
	objects map[string][]byte
}

// NewStubObjectStorage creates a new StubObjectStorage
func NewStubObjectStorage() *StubObjectStorage {
	return &StubObjectStorage{
		BaseURL: "https://storage.example.com",
		objects: make(map[string][]byte),
	}
}

// Upload stores the body in memory
func (s *StubObjectStorage) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	if key == "" {
		return ErrEmptyKey
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("failed to read upload body: %w", err)
	}
	s.mu.Lock()
	s.objects[key] = data
	s.mu.Unlock()
	return nil
}

// Delete drops the object if present
func (s *StubObjectStorage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	s.mu.Lock()
	delete(s.objects, key)
	s.mu.Unlock()
	return nil
}

// Exists reports whether the object was uploaded
func (s *StubObjectStorage) Exists(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, ErrEmptyKey
	}
	s.mu.RLock()
	_, ok := s.objects[key]
	s.mu.RUnlock()
	return ok, nil
}

// PresignDownload builds an unsigned URL carrying the same query a real presign would
func (s *StubObjectStorage) PresignDownload(ctx context.Context, key, fileName string, ttl time.Duration) (galleryapp.PresignedURL, error) {
	if key == "" {
		return galleryapp.PresignedURL{}, ErrEmptyKey
	}
	expiresAt := time.Now().Add(ttl)

	q := url.Values{}
	q.Set("expires", expiresAt.UTC().Format(time.RFC3339))
	if fileName != "" {
		q.Set("response-content-disposition", galleryapp.ContentDisposition(fileName))
	}
	return galleryapp.PresignedURL{
		URL:       s.BaseURL + "/download/" + key + "?" + q.Encode(),
		ExpiresAt: expiresAt,
	}, nil
}
