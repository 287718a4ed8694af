package storage

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	apperrors "github.com/samratjha96/bakbak-sub001/internal/app/errors"
)

// MockStore implements ObjectStore in memory for tests. It remembers which
// keys were uploaded and serves downloads from the original local files.
type MockStore struct {
	mu      sync.Mutex
	uploads map[string]string
	removed []string
}

var _ ObjectStore = (*MockStore)(nil)

func NewMockStore() *MockStore {
	return &MockStore{uploads: make(map[string]string)}
}

func (s *MockStore) UploadFile(ctx context.Context, localPath, key, contentType string) (*UploadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.uploads[key] = localPath
	return &UploadResult{
		Key:        key,
		URL:        "/storage/" + key,
		UploadedAt: time.Now(),
	}, nil
}

func (s *MockStore) DownloadFile(ctx context.Context, key, destPath string) error {
	s.mu.Lock()
	src, ok := s.uploads[key]
	s.mu.Unlock()

	if !ok {
		return apperrors.NewNotFoundError("object", key)
	}
	_, err := copyFile(src, destPath)
	return err
}

func (s *MockStore) PresignedPutURL(ctx context.Context, key string, expiry time.Duration) (*PresignedURL, error) {
	return &PresignedURL{
		URL:       "https://storage.test/presigned/" + key,
		Method:    http.MethodPut,
		Key:       key,
		ExpiresAt: time.Now().Add(expiry),
	}, nil
}

func (s *MockStore) PresignedGetURL(ctx context.Context, key string, expiry time.Duration) (*PresignedURL, error) {
	return &PresignedURL{
		URL:       "https://storage.test/presigned/" + key,
		Method:    http.MethodGet,
		Key:       key,
		ExpiresAt: time.Now().Add(expiry),
	}, nil
}

func (s *MockStore) ObjectURL(key string) string {
	return "/storage/" + key
}

func (s *MockStore) RemoveObject(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.uploads, key)
	s.removed = append(s.removed, key)
	return nil
}

// Uploads returns the stored keys in sorted order.
func (s *MockStore) Uploads() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(s.uploads))
	for key := range s.uploads {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Removed returns the keys deleted so far, in call order.
func (s *MockStore) Removed() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.removed...)
}
