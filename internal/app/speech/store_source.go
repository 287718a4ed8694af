package speech

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Downloader is the slice of the object store the speech layer needs.
type Downloader interface {
	DownloadFile(ctx context.Context, key, destPath string) error
}

// StoreSource fetches audio from an object store into a temporary file so
// transcription backends that want a local path can read remote recordings.
type StoreSource struct {
	store  Downloader
	tmpDir string
}

// NewStoreSource creates a StoreSource. An empty tmpDir falls back to the
// system temp directory.
func NewStoreSource(store Downloader, tmpDir string) *StoreSource {
	return &StoreSource{store: store, tmpDir: tmpDir}
}

// Fetch implements Source. The cleanup func removes the temporary copy.
func (s *StoreSource) Fetch(ctx context.Context, location string) (string, func(), error) {
	dir := s.tmpDir
	if dir == "" {
		dir = os.TempDir()
	}

	f, err := os.CreateTemp(dir, "clip-*"+filepath.Ext(location))
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := f.Name()
	f.Close()

	if err := s.store.DownloadFile(ctx, location, tmpPath); err != nil {
		os.Remove(tmpPath)
		return "", nil, err
	}

	cleanup := func() { os.Remove(tmpPath) }
	return tmpPath, cleanup, nil
}

var _ Source = (*StoreSource)(nil)
