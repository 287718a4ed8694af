package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/samratjha96/bakbak-sub001/internal/app/model"
	"github.com/samratjha96/bakbak-sub001/internal/app/repository"
)

func setupTestDB(t *testing.T) *SQLiteDB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "bakbak_test.db")
	sdb, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		sdb.Close()
	})
	return sdb
}

func makeJob(id, recordingID string, status model.JobStatus) *model.TranscriptionJob {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &model.TranscriptionJob{
		ID:           id,
		RecordingID:  recordingID,
		Status:       status,
		LanguageCode: "ja",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestInsertAndGetJob(t *testing.T) {
	sdb := setupTestDB(t)
	ctx := context.Background()

	job := makeJob("job-1", "rec-1", model.JobStatusPending)
	job.Metadata = map[string]interface{}{"engine": "whisper", "attempt": float64(1)}

	if err := sdb.InsertJob(ctx, job); err != nil {
		t.Fatalf("InsertJob failed: %v", err)
	}

	got, err := sdb.GetJobByID(ctx, "job-1")
	if err != nil {
		t.Fatalf("GetJobByID failed: %v", err)
	}
	if got == nil {
		t.Fatal("GetJobByID returned nil for existing job")
	}
	if got.ID != job.ID || got.RecordingID != job.RecordingID {
		t.Errorf("Got job %s/%s, want %s/%s", got.ID, got.RecordingID, job.ID, job.RecordingID)
	}
	if got.Status != model.JobStatusPending {
		t.Errorf("Got status %q, want %q", got.Status, model.JobStatusPending)
	}
	if got.LanguageCode != "ja" {
		t.Errorf("Got language %q, want %q", got.LanguageCode, "ja")
	}
	if got.CompletedAt != nil {
		t.Errorf("CompletedAt should be nil for a pending job, got %v", got.CompletedAt)
	}
	if got.ErrorMessage != "" {
		t.Errorf("ErrorMessage should be empty, got %q", got.ErrorMessage)
	}
	if got.Metadata["engine"] != "whisper" {
		t.Errorf("Metadata not round-tripped: %v", got.Metadata)
	}
}

func TestGetJobByIDNotFound(t *testing.T) {
	sdb := setupTestDB(t)

	got, err := sdb.GetJobByID(context.Background(), "does-not-exist")
	if err != nil {
		t.Fatalf("GetJobByID failed: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil for unknown id, got %+v", got)
	}
}

func TestListJobsByStatusOrdering(t *testing.T) {
	sdb := setupTestDB(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Millisecond)
	for i := 0; i < 3; i++ {
		job := makeJob(fmt.Sprintf("job-%d", i), fmt.Sprintf("rec-%d", i), model.JobStatusPending)
		job.CreatedAt = base.Add(time.Duration(i) * time.Second)
		job.UpdatedAt = job.CreatedAt
		if err := sdb.InsertJob(ctx, job); err != nil {
			t.Fatalf("InsertJob failed: %v", err)
		}
	}
	done := makeJob("job-done", "rec-done", model.JobStatusCompleted)
	if err := sdb.InsertJob(ctx, done); err != nil {
		t.Fatalf("InsertJob failed: %v", err)
	}

	pending, err := sdb.ListJobsByStatus(ctx, model.JobStatusPending)
	if err != nil {
		t.Fatalf("ListJobsByStatus failed: %v", err)
	}
	if len(pending) != 3 {
		t.Fatalf("Got %d pending jobs, want 3", len(pending))
	}
	for i, job := range pending {
		wantID := fmt.Sprintf("job-%d", i)
		if job.ID != wantID {
			t.Errorf("Position %d: got %s, want %s (oldest first)", i, job.ID, wantID)
		}
		if job.Status != model.JobStatusPending {
			t.Errorf("Non-pending job %s in pending list", job.ID)
		}
	}
}

func TestUpdateJobStatusFrom(t *testing.T) {
	sdb := setupTestDB(t)
	ctx := context.Background()

	job := makeJob("job-1", "rec-1", model.JobStatusPending)
	if err := sdb.InsertJob(ctx, job); err != nil {
		t.Fatalf("InsertJob failed: %v", err)
	}

	updated, err := sdb.UpdateJobStatusFrom(ctx, "job-1", model.JobStatusPending, repository.JobUpdate{
		Status:    model.JobStatusInProgress,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("UpdateJobStatusFrom failed: %v", err)
	}
	if !updated {
		t.Fatal("Expected update to apply when current status matches")
	}

	// The same conditional update must now miss: the row is no longer pending.
	updated, err = sdb.UpdateJobStatusFrom(ctx, "job-1", model.JobStatusPending, repository.JobUpdate{
		Status:    model.JobStatusInProgress,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("UpdateJobStatusFrom failed: %v", err)
	}
	if updated {
		t.Error("Conditional update should not apply when current status differs")
	}

	got, err := sdb.GetJobByID(ctx, "job-1")
	if err != nil {
		t.Fatalf("GetJobByID failed: %v", err)
	}
	if got.Status != model.JobStatusInProgress {
		t.Errorf("Got status %q, want %q", got.Status, model.JobStatusInProgress)
	}
}

func TestUpdateJobStatusFromTerminalFields(t *testing.T) {
	sdb := setupTestDB(t)
	ctx := context.Background()

	tests := []struct {
		name        string
		finalStatus model.JobStatus
		errMsg      string
		wantDone    bool
	}{
		{"completed sets completed_at", model.JobStatusCompleted, "", true},
		{"failed sets error_message", model.JobStatusFailed, "backend exploded", false},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := fmt.Sprintf("job-%d", i)
			job := makeJob(id, "rec-1", model.JobStatusInProgress)
			if err := sdb.InsertJob(ctx, job); err != nil {
				t.Fatalf("InsertJob failed: %v", err)
			}

			upd := repository.JobUpdate{
				Status:       tt.finalStatus,
				ErrorMessage: tt.errMsg,
				UpdatedAt:    time.Now().UTC(),
			}
			if tt.wantDone {
				now := time.Now().UTC()
				upd.CompletedAt = &now
			}

			updated, err := sdb.UpdateJobStatusFrom(ctx, id, model.JobStatusInProgress, upd)
			if err != nil {
				t.Fatalf("UpdateJobStatusFrom failed: %v", err)
			}
			if !updated {
				t.Fatal("Expected update to apply")
			}

			got, err := sdb.GetJobByID(ctx, id)
			if err != nil {
				t.Fatalf("GetJobByID failed: %v", err)
			}
			if got.Status != tt.finalStatus {
				t.Errorf("Got status %q, want %q", got.Status, tt.finalStatus)
			}
			if tt.wantDone && got.CompletedAt == nil {
				t.Error("CompletedAt should be set for a completed job")
			}
			if !tt.wantDone && got.CompletedAt != nil {
				t.Error("CompletedAt should stay nil for a failed job")
			}
			if got.ErrorMessage != tt.errMsg {
				t.Errorf("Got error message %q, want %q", got.ErrorMessage, tt.errMsg)
			}
		})
	}
}

func TestUpdateJobMetadata(t *testing.T) {
	sdb := setupTestDB(t)
	ctx := context.Background()

	job := makeJob("job-1", "rec-1", model.JobStatusPending)
	if err := sdb.InsertJob(ctx, job); err != nil {
		t.Fatalf("InsertJob failed: %v", err)
	}

	meta := map[string]interface{}{"handle": "whisper-42"}
	if err := sdb.UpdateJobMetadata(ctx, "job-1", meta); err != nil {
		t.Fatalf("UpdateJobMetadata failed: %v", err)
	}

	got, err := sdb.GetJobByID(ctx, "job-1")
	if err != nil {
		t.Fatalf("GetJobByID failed: %v", err)
	}
	if got.Metadata["handle"] != "whisper-42" {
		t.Errorf("Metadata not persisted: %v", got.Metadata)
	}
}

func TestListJobsPagination(t *testing.T) {
	sdb := setupTestDB(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Millisecond)
	for i := 0; i < 5; i++ {
		job := makeJob(fmt.Sprintf("job-%d", i), "rec-1", model.JobStatusPending)
		job.CreatedAt = base.Add(time.Duration(i) * time.Second)
		job.UpdatedAt = job.CreatedAt
		if err := sdb.InsertJob(ctx, job); err != nil {
			t.Fatalf("InsertJob failed: %v", err)
		}
	}

	page, err := sdb.ListJobs(ctx, "", 2, 0)
	if err != nil {
		t.Fatalf("ListJobs failed: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("Got %d jobs, want 2", len(page))
	}
	if page[0].ID != "job-4" {
		t.Errorf("Expected newest first, got %s", page[0].ID)
	}

	page, err = sdb.ListJobs(ctx, "", 2, 4)
	if err != nil {
		t.Fatalf("ListJobs failed: %v", err)
	}
	if len(page) != 1 {
		t.Errorf("Got %d jobs on the last page, want 1", len(page))
	}
}

func TestRecordingRoundTrip(t *testing.T) {
	sdb := setupTestDB(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Millisecond)
	rec := &model.Recording{
		ID:           "rec-1",
		Title:        "Morning practice",
		LanguageCode: "hi",
		AudioPath:    "recordings/rec-1/morning.m4a",
		DurationSec:  12.5,
		FileHash:     "deadbeef",
		FileSize:     2048,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := sdb.InsertRecording(ctx, rec); err != nil {
		t.Fatalf("InsertRecording failed: %v", err)
	}

	got, err := sdb.GetRecordingByID(ctx, "rec-1")
	if err != nil {
		t.Fatalf("GetRecordingByID failed: %v", err)
	}
	if got == nil {
		t.Fatal("GetRecordingByID returned nil for existing recording")
	}
	if got.Title != rec.Title || got.AudioPath != rec.AudioPath {
		t.Errorf("Recording fields not round-tripped: %+v", got)
	}
	if got.Transcript != "" {
		t.Errorf("Transcript should start empty, got %q", got.Transcript)
	}

	byHash, err := sdb.FindRecordingByHash(ctx, "deadbeef")
	if err != nil {
		t.Fatalf("FindRecordingByHash failed: %v", err)
	}
	if byHash == nil || byHash.ID != "rec-1" {
		t.Errorf("FindRecordingByHash got %+v, want rec-1", byHash)
	}

	missing, err := sdb.FindRecordingByHash(ctx, "cafebabe")
	if err != nil {
		t.Fatalf("FindRecordingByHash failed: %v", err)
	}
	if missing != nil {
		t.Errorf("Expected nil for unknown hash, got %+v", missing)
	}

	if err := sdb.SetTranscript(ctx, "rec-1", "some transcript"); err != nil {
		t.Fatalf("SetTranscript failed: %v", err)
	}
	if err := sdb.SetTranslation(ctx, "rec-1", "some translation"); err != nil {
		t.Fatalf("SetTranslation failed: %v", err)
	}

	got, err = sdb.GetRecordingByID(ctx, "rec-1")
	if err != nil {
		t.Fatalf("GetRecordingByID failed: %v", err)
	}
	if got.Transcript != "some transcript" || got.Translation != "some translation" {
		t.Errorf("Text fields not persisted: %+v", got)
	}
}

func TestDeleteRecordingRemovesAnnotations(t *testing.T) {
	sdb := setupTestDB(t)
	ctx := context.Background()

	now := time.Now().UTC()
	rec := &model.Recording{ID: "rec-1", Title: "t", CreatedAt: now, UpdatedAt: now}
	if err := sdb.InsertRecording(ctx, rec); err != nil {
		t.Fatalf("InsertRecording failed: %v", err)
	}
	note := &model.Note{ID: "note-1", RecordingID: "rec-1", Body: "tricky consonant", PositionSec: 3.2, CreatedAt: now}
	if err := sdb.InsertNote(ctx, note); err != nil {
		t.Fatalf("InsertNote failed: %v", err)
	}
	entry := &model.VocabularyEntry{ID: "vocab-1", RecordingID: "rec-1", Term: "naan", Reading: "naan", Meaning: "bread", CreatedAt: now}
	if err := sdb.InsertVocabulary(ctx, entry); err != nil {
		t.Fatalf("InsertVocabulary failed: %v", err)
	}

	if err := sdb.DeleteRecording(ctx, "rec-1"); err != nil {
		t.Fatalf("DeleteRecording failed: %v", err)
	}

	notes, err := sdb.ListNotesByRecording(ctx, "rec-1")
	if err != nil {
		t.Fatalf("ListNotesByRecording failed: %v", err)
	}
	if len(notes) != 0 {
		t.Errorf("Notes should be deleted with the recording, got %d", len(notes))
	}
	vocab, err := sdb.ListVocabularyByRecording(ctx, "rec-1")
	if err != nil {
		t.Fatalf("ListVocabularyByRecording failed: %v", err)
	}
	if len(vocab) != 0 {
		t.Errorf("Vocabulary should be deleted with the recording, got %d", len(vocab))
	}
}

func TestNotesOrderedByPosition(t *testing.T) {
	sdb := setupTestDB(t)
	ctx := context.Background()

	now := time.Now().UTC()
	positions := []float64{9.1, 1.5, 4.0}
	for i, pos := range positions {
		note := &model.Note{
			ID:          fmt.Sprintf("note-%d", i),
			RecordingID: "rec-1",
			Body:        "b",
			PositionSec: pos,
			CreatedAt:   now,
		}
		if err := sdb.InsertNote(ctx, note); err != nil {
			t.Fatalf("InsertNote failed: %v", err)
		}
	}

	notes, err := sdb.ListNotesByRecording(ctx, "rec-1")
	if err != nil {
		t.Fatalf("ListNotesByRecording failed: %v", err)
	}
	if len(notes) != 3 {
		t.Fatalf("Got %d notes, want 3", len(notes))
	}
	for i := 1; i < len(notes); i++ {
		if notes[i-1].PositionSec > notes[i].PositionSec {
			t.Errorf("Notes not ordered by position: %v then %v", notes[i-1].PositionSec, notes[i].PositionSec)
		}
	}
}

func TestConcurrentReads(t *testing.T) {
	sdb := setupTestDB(t)
	ctx := context.Background()

	job := makeJob("job-1", "rec-1", model.JobStatusPending)
	if err := sdb.InsertJob(ctx, job); err != nil {
		t.Fatalf("InsertJob failed: %v", err)
	}

	const readers = 10
	done := make(chan error, readers)
	for i := 0; i < readers; i++ {
		go func() {
			got, err := sdb.GetJobByID(ctx, "job-1")
			if err == nil && got == nil {
				err = fmt.Errorf("job missing")
			}
			done <- err
		}()
	}

	for i := 0; i < readers; i++ {
		if err := <-done; err != nil {
			t.Errorf("Concurrent read failed: %v", err)
		}
	}
}

func BenchmarkInsertJob(b *testing.B) {
	dbPath := filepath.Join(b.TempDir(), "bench.db")
	sdb, err := Open(dbPath)
	if err != nil {
		b.Fatalf("Failed to open database: %v", err)
	}
	defer sdb.Close()

	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		job := makeJob(fmt.Sprintf("job-%d", i), "rec-1", model.JobStatusPending)
		if err := sdb.InsertJob(ctx, job); err != nil {
			b.Fatalf("InsertJob failed: %v", err)
		}
	}
}
