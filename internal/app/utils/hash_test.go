package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCalculateFileHash(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.m4a")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	got, err := CalculateFileHash(path)
	if err != nil {
		t.Fatalf("CalculateFileHash() error = %v", err)
	}
	// sha256("hello")
	want := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	if got != want {
		t.Errorf("CalculateFileHash() = %v, want %v", got, want)
	}
}

func TestCalculateFileHashMissingFile(t *testing.T) {
	if _, err := CalculateFileHash(filepath.Join(t.TempDir(), "ghost.m4a")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestHashStrings(t *testing.T) {
	if HashStrings("a", "b") == HashStrings("ab") {
		t.Error("part boundaries should affect the digest")
	}
	if HashStrings("a", "b") != HashStrings("a", "b") {
		t.Error("digest should be deterministic")
	}
	if len(HashStrings("x")) != 64 {
		t.Errorf("digest should be 64 hex chars, got %d", len(HashStrings("x")))
	}
}

func TestGetFileSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.m4a")
	if err := os.WriteFile(path, []byte("12345"), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	size, err := GetFileSize(path)
	if err != nil {
		t.Fatalf("GetFileSize() error = %v", err)
	}
	if size != 5 {
		t.Errorf("GetFileSize() = %d, want 5", size)
	}
}
