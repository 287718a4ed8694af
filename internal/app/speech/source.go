package speech

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Source resolves a recording's stored audio location to a local file the
// transcription backend can read. The cleanup func removes any temporary
// copy and is safe to call exactly once.
type Source interface {
	Fetch(ctx context.Context, location string) (localPath string, cleanup func(), err error)
}

// FileSource serves audio straight from the local filesystem. Relative
// locations are resolved against Root.
type FileSource struct {
	Root string
}

// NewFileSource creates a FileSource rooted at dir.
func NewFileSource(dir string) *FileSource {
	return &FileSource{Root: dir}
}

// Fetch implements Source. No copy is made, so cleanup is a no-op.
func (s *FileSource) Fetch(ctx context.Context, location string) (string, func(), error) {
	path := location
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.Root, location)
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", nil, fmt.Errorf("audio file not accessible: %w", err)
	}
	if info.IsDir() {
		return "", nil, fmt.Errorf("audio location is a directory: %s", path)
	}
	return path, func() {}, nil
}

var _ Source = (*FileSource)(nil)
