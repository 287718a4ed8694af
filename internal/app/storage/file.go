package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	apperrors "github.com/samratjha96/bakbak-sub001/internal/app/errors"
)

// FileStore implements ObjectStore on a local directory. It backs local
// development, where the speech engine reads audio straight from disk.
type FileStore struct {
	root string
}

var _ ObjectStore = (*FileStore)(nil)

// NewFileStore creates the root directory if needed and returns a store on it.
func NewFileStore(root string) (*FileStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}
	return &FileStore{root: root}, nil
}

// Root returns the directory objects are stored under.
func (s *FileStore) Root() string {
	return s.root
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.root, filepath.FromSlash(key))
}

func (s *FileStore) UploadFile(ctx context.Context, localPath, key, contentType string) (*UploadResult, error) {
	dest := s.path(key)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create object directory: %w", err)
	}

	size, err := copyFile(localPath, dest)
	if err != nil {
		return nil, fmt.Errorf("failed to store %s: %w", key, err)
	}

	return &UploadResult{
		Key:        key,
		URL:        s.ObjectURL(key),
		Size:       size,
		UploadedAt: time.Now(),
	}, nil
}

func (s *FileStore) DownloadFile(ctx context.Context, key, destPath string) error {
	if _, err := copyFile(s.path(key), destPath); err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) PresignedPutURL(ctx context.Context, key string, expiry time.Duration) (*PresignedURL, error) {
	return nil, apperrors.New("filesystem storage does not issue presigned URLs")
}

func (s *FileStore) PresignedGetURL(ctx context.Context, key string, expiry time.Duration) (*PresignedURL, error) {
	return nil, apperrors.New("filesystem storage does not issue presigned URLs")
}

// ObjectURL returns the object's path on disk.
func (s *FileStore) ObjectURL(key string) string {
	return s.path(key)
}

func (s *FileStore) RemoveObject(ctx context.Context, key string) error {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

func copyFile(src, dest string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return 0, err
	}

	size, err := io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return size, err
}
