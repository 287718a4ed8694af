package speech

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDownloader struct {
	objects map[string]string
}

func (d *fakeDownloader) DownloadFile(ctx context.Context, key, destPath string) error {
	content, ok := d.objects[key]
	if !ok {
		return fmt.Errorf("no such object: %s", key)
	}
	return os.WriteFile(destPath, []byte(content), 0o644)
}

func TestStoreSourceFetchesToTempFile(t *testing.T) {
	tmpDir := t.TempDir()
	source := NewStoreSource(&fakeDownloader{
		objects: map[string]string{"recordings/rec-1.m4a": "remote audio bytes"},
	}, tmpDir)

	path, cleanup, err := source.Fetch(context.Background(), "recordings/rec-1.m4a")
	require.NoError(t, err)

	assert.Equal(t, tmpDir, filepath.Dir(path))
	assert.Equal(t, ".m4a", filepath.Ext(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "remote audio bytes", string(content))

	cleanup()
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestStoreSourceMissingObject(t *testing.T) {
	source := NewStoreSource(&fakeDownloader{objects: map[string]string{}}, t.TempDir())

	_, _, err := source.Fetch(context.Background(), "recordings/ghost.m4a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such object")
}
