package repository

import (
	"context"
	"time"

	"github.com/samratjha96/bakbak-sub001/internal/app/model"
)

// JobUpdate describes a status change applied to a job row. ErrorMessage is
// persisted only for failed jobs and CompletedAt only for completed ones.
type JobUpdate struct {
	Status       model.JobStatus
	ErrorMessage string
	UpdatedAt    time.Time
	CompletedAt  *time.Time
}

// JobRepository is the durable store for transcription jobs.
type JobRepository interface {
	InsertJob(ctx context.Context, job *model.TranscriptionJob) error

	// GetJobByID returns (nil, nil) when no job with the given id exists.
	GetJobByID(ctx context.Context, id string) (*model.TranscriptionJob, error)

	// ListJobsByStatus returns all jobs in the given status, oldest first.
	ListJobsByStatus(ctx context.Context, status model.JobStatus) ([]*model.TranscriptionJob, error)

	// ListJobs returns a page of jobs, newest first. An empty status matches
	// all jobs.
	ListJobs(ctx context.Context, status model.JobStatus, limit, offset int) ([]*model.TranscriptionJob, error)

	// UpdateJobStatusFrom applies upd only if the row's current status equals
	// from. It reports whether a row was updated.
	UpdateJobStatusFrom(ctx context.Context, id string, from model.JobStatus, upd JobUpdate) (bool, error)

	// UpdateJobMetadata replaces the job's metadata bag.
	UpdateJobMetadata(ctx context.Context, id string, metadata map[string]interface{}) error
}

// RecordingRepository is the durable store for recordings.
type RecordingRepository interface {
	InsertRecording(ctx context.Context, rec *model.Recording) error

	// GetRecordingByID returns (nil, nil) when no recording exists.
	GetRecordingByID(ctx context.Context, id string) (*model.Recording, error)

	ListRecordings(ctx context.Context, limit, offset int) ([]*model.Recording, error)
	CountRecordings(ctx context.Context) (int, error)

	// FindRecordingByHash returns (nil, nil) when no recording matches the
	// file hash. Used to skip re-importing identical audio.
	FindRecordingByHash(ctx context.Context, hash string) (*model.Recording, error)

	SetTranscript(ctx context.Context, id string, transcript string) error
	SetTranslation(ctx context.Context, id string, translation string) error
	DeleteRecording(ctx context.Context, id string) error
}

// NoteRepository stores per-recording annotations.
type NoteRepository interface {
	InsertNote(ctx context.Context, note *model.Note) error
	ListNotesByRecording(ctx context.Context, recordingID string) ([]*model.Note, error)
	DeleteNote(ctx context.Context, id string) error
}

// VocabularyRepository stores saved vocabulary entries.
type VocabularyRepository interface {
	InsertVocabulary(ctx context.Context, entry *model.VocabularyEntry) error
	ListVocabularyByRecording(ctx context.Context, recordingID string) ([]*model.VocabularyEntry, error)
	ListVocabulary(ctx context.Context, limit, offset int) ([]*model.VocabularyEntry, error)
}
