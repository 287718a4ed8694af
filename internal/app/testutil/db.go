package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/samratjha96/bakbak-sub001/internal/app/model"
	"github.com/samratjha96/bakbak-sub001/internal/app/repository/sqlite"
)

// SetupTestSQLite opens a file-backed SQLite store under t.TempDir with the
// full schema applied. The store is closed automatically when the test ends.
func SetupTestSQLite(t *testing.T) *sqlite.SQLiteDB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "bakbak_test.db")
	store, err := sqlite.Open(dbPath)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Logf("failed to close test database: %v", err)
		}
	})
	return store
}

// SeedRecording inserts a recording fixture and returns it.
func SeedRecording(t *testing.T, store *sqlite.SQLiteDB, rec model.Recording) model.Recording {
	t.Helper()

	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = rec.CreatedAt
	}
	if err := store.InsertRecording(context.Background(), &rec); err != nil {
		t.Fatalf("failed to seed recording %s: %v", rec.ID, err)
	}
	return rec
}

// SeedJob inserts a transcription job fixture and returns it.
func SeedJob(t *testing.T, store *sqlite.SQLiteDB, job model.TranscriptionJob) model.TranscriptionJob {
	t.Helper()

	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}
	if job.UpdatedAt.IsZero() {
		job.UpdatedAt = job.CreatedAt
	}
	if job.Status == "" {
		job.Status = model.JobStatusPending
	}
	if err := store.InsertJob(context.Background(), &job); err != nil {
		t.Fatalf("failed to seed job %s: %v", job.ID, err)
	}
	return job
}
