// Package storage stores recording audio as objects. Deployments back it
// with MinIO; local development and tests use the filesystem store.
package storage

import (
	"context"
	"mime"
	"path/filepath"
	"strings"
	"time"
)

// ObjectStore is the blob store behind recording audio. Keys are
// slash-separated paths such as "recordings/<id>.m4a".
type ObjectStore interface {
	UploadFile(ctx context.Context, localPath, key, contentType string) (*UploadResult, error)
	DownloadFile(ctx context.Context, key, destPath string) error
	PresignedPutURL(ctx context.Context, key string, expiry time.Duration) (*PresignedURL, error)
	PresignedGetURL(ctx context.Context, key string, expiry time.Duration) (*PresignedURL, error)
	ObjectURL(key string) string
	RemoveObject(ctx context.Context, key string) error
}

// UploadResult describes a stored object.
type UploadResult struct {
	Key        string    `json:"key"`
	URL        string    `json:"url"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// PresignedURL grants time-limited direct access to an object.
type PresignedURL struct {
	URL       string    `json:"url"`
	Method    string    `json:"method"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expiresAt"`
}

var audioContentTypes = map[string]string{
	".m4a":  "audio/mp4",
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".aac":  "audio/aac",
	".ogg":  "audio/ogg",
	".flac": "audio/flac",
}

// ContentTypeForFile guesses the MIME type of a file from its extension.
func ContentTypeForFile(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ct, ok := audioContentTypes[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
