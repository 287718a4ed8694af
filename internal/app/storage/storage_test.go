package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestContentTypeForFile(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"clip.m4a", "audio/mp4"},
		{"clip.MP3", "audio/mpeg"},
		{"clip.wav", "audio/wav"},
		{"clip.flac", "audio/flac"},
		{"notes.unknownext", "application/octet-stream"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ContentTypeForFile(tt.path), "path %s", tt.path)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(filepath.Join(t.TempDir(), "objects"))
	require.NoError(t, err)

	src := writeTempFile(t, "clip.m4a", "fake audio bytes")

	result, err := store.UploadFile(ctx, src, "recordings/rec-1.m4a", "audio/mp4")
	require.NoError(t, err)
	assert.Equal(t, "recordings/rec-1.m4a", result.Key)
	assert.Equal(t, int64(len("fake audio bytes")), result.Size)

	stored, err := os.ReadFile(store.ObjectURL("recordings/rec-1.m4a"))
	require.NoError(t, err)
	assert.Equal(t, "fake audio bytes", string(stored))

	dest := filepath.Join(t.TempDir(), "copy.m4a")
	require.NoError(t, store.DownloadFile(ctx, "recordings/rec-1.m4a", dest))
	copied, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "fake audio bytes", string(copied))

	require.NoError(t, store.RemoveObject(ctx, "recordings/rec-1.m4a"))
	_, err = os.Stat(store.ObjectURL("recordings/rec-1.m4a"))
	assert.True(t, os.IsNotExist(err))
}

func TestFileStoreRemoveMissingObject(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.RemoveObject(context.Background(), "recordings/never-stored.m4a"))
}

func TestFileStoreDoesNotPresign(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.PresignedPutURL(context.Background(), "recordings/rec-1.m4a", time.Hour)
	assert.Error(t, err)

	_, err = store.PresignedGetURL(context.Background(), "recordings/rec-1.m4a", time.Hour)
	assert.Error(t, err)
}

func TestMockStoreTracksUploadsAndRemovals(t *testing.T) {
	ctx := context.Background()
	store := NewMockStore()

	src := writeTempFile(t, "clip.mp3", "mp3 bytes")

	_, err := store.UploadFile(ctx, src, "recordings/rec-2.mp3", "audio/mpeg")
	require.NoError(t, err)
	assert.Equal(t, []string{"recordings/rec-2.mp3"}, store.Uploads())

	dest := filepath.Join(t.TempDir(), "copy.mp3")
	require.NoError(t, store.DownloadFile(ctx, "recordings/rec-2.mp3", dest))
	copied, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "mp3 bytes", string(copied))

	require.Error(t, store.DownloadFile(ctx, "recordings/missing.mp3", dest))

	put, err := store.PresignedPutURL(ctx, "recordings/rec-2.mp3", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "PUT", put.Method)
	assert.Contains(t, put.URL, "recordings/rec-2.mp3")

	require.NoError(t, store.RemoveObject(ctx, "recordings/rec-2.mp3"))
	assert.Empty(t, store.Uploads())
	assert.Equal(t, []string{"recordings/rec-2.mp3"}, store.Removed())
}
