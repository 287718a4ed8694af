package services

import (
	"context"

	"github.com/samratjha96/bakbak-sub001/internal/api/v1/dto"
	"github.com/samratjha96/bakbak-sub001/internal/app/jobs"
)

// RecordingService defines the interface for recording operations
type RecordingService interface {
	CreateRecording(ctx context.Context, req *dto.CreateRecordingRequest) (*dto.RecordingResponse, error)
	GetRecording(ctx context.Context, id string) (*dto.RecordingResponse, error)
	ListRecordings(ctx context.Context, query dto.ListRecordingsQuery) (*dto.PaginatedRecordingsResponse, error)
	DeleteRecording(ctx context.Context, id string) error
	UploadURL(ctx context.Context, id string) (*dto.UploadURLResponse, error)
	TranslateRecording(ctx context.Context, id string, req *dto.TranslateRecordingRequest) (*dto.RecordingResponse, error)
}

// JobService defines the interface for transcription job operations
type JobService interface {
	Transcribe(ctx context.Context, recordingID string, req *dto.TranscribeRequest) (*dto.JobResponse, error)
	GetJob(ctx context.Context, id string) (*dto.JobResponse, error)
	ListJobs(ctx context.Context, query dto.ListJobsQuery) (*dto.JobsResponse, error)
	CancelJob(ctx context.Context, id string) (*dto.JobResponse, error)
}

// ProcessorService defines the interface for processor control operations
type ProcessorService interface {
	Status(ctx context.Context) (*dto.ProcessorStatusResponse, error)
	Configure(ctx context.Context, req *dto.ProcessorConfigRequest) (*dto.ProcessorStatusResponse, error)
	Start(ctx context.Context) (*dto.ProcessorStatusResponse, error)
	Stop(ctx context.Context) (*dto.ProcessorStatusResponse, error)
}

// LanguageService defines the interface for ad-hoc text operations
type LanguageService interface {
	TranslateText(ctx context.Context, req *dto.TranslateTextRequest) (*dto.TranslateTextResponse, error)
	RomanizeText(ctx context.Context, req *dto.RomanizeTextRequest) (*dto.RomanizeTextResponse, error)
}

// NoteService defines the interface for notes and vocabulary operations
type NoteService interface {
	CreateNote(ctx context.Context, recordingID string, req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	ListNotes(ctx context.Context, recordingID string) ([]dto.NoteResponse, error)
	DeleteNote(ctx context.Context, id string) error
	CreateVocabulary(ctx context.Context, recordingID string, req *dto.CreateVocabularyRequest) (*dto.VocabularyResponse, error)
	ListVocabulary(ctx context.Context, recordingID string) ([]dto.VocabularyResponse, error)
}

// TextTranslator is the slice of the language layer used for translations.
type TextTranslator interface {
	Translate(ctx context.Context, text, targetLanguage string) (string, error)
}

// TextRomanizer is the slice of the language layer used for romanization.
type TextRomanizer interface {
	Romanize(ctx context.Context, text, languageCode string) (string, error)
}

// ProcessorControl is the slice of the job processor the API needs.
type ProcessorControl interface {
	Start()
	Stop()
	UpdateConfig(upd jobs.ConfigUpdate)
	Config() jobs.Config
	ActiveJobCount() int
	IsRunning() bool
}
