package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestIsAudioFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"clip.m4a", true},
		{"CLIP.M4A", true},
		{"song.mp3", true},
		{"take.wav", true},
		{"notes.txt", false},
		{"video.mp4", false},
		{"noext", false},
	}
	for _, tt := range tests {
		if got := IsAudioFile(tt.path); got != tt.want {
			t.Errorf("IsAudioFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestListAudioFilesSortedByModTime(t *testing.T) {
	dir := t.TempDir()

	newest := filepath.Join(dir, "newest.m4a")
	oldest := filepath.Join(dir, "oldest.mp3")
	skipped := filepath.Join(dir, "notes.txt")
	for _, path := range []string{newest, oldest, skipped} {
		if err := os.WriteFile(path, []byte("data"), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}
	base := time.Now().Add(-time.Hour)
	if err := os.Chtimes(oldest, base, base); err != nil {
		t.Fatalf("failed to set mtime: %v", err)
	}

	// Subdirectories are ignored even with audio-looking names.
	if err := os.Mkdir(filepath.Join(dir, "archive.mp3"), 0o755); err != nil {
		t.Fatalf("failed to create subdir: %v", err)
	}

	found, err := ListAudioFiles(dir)
	if err != nil {
		t.Fatalf("ListAudioFiles() error = %v", err)
	}

	if len(found) != 2 {
		t.Fatalf("ListAudioFiles() returned %d files, want 2", len(found))
	}
	if found[0].Name != "oldest.mp3" || found[1].Name != "newest.m4a" {
		t.Errorf("wrong order: %s, %s", found[0].Name, found[1].Name)
	}
	if found[0].FullPath != oldest {
		t.Errorf("FullPath = %s, want %s", found[0].FullPath, oldest)
	}
}

func TestListAudioFilesMissingDir(t *testing.T) {
	if _, err := ListAudioFiles(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	if err := EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Errorf("directory was not created: %v", err)
	}
	// Idempotent.
	if err := EnsureDir(dir); err != nil {
		t.Errorf("EnsureDir() second call error = %v", err)
	}
}
