package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/samratjha96/bakbak-sub001/internal/api/v1/dto"
)

// MockServices contains all mock services for testing
type MockServices struct {
	RecordingService *MockRecordingService
	JobService       *MockJobService
	ProcessorService *MockProcessorService
	LanguageService  *MockLanguageService
	NoteService      *MockNoteService
}

// NewMockServices creates a new instance of mock services
func NewMockServices(t *testing.T) *MockServices {
	return &MockServices{
		RecordingService: NewMockRecordingService(t),
		JobService:       NewMockJobService(t),
		ProcessorService: NewMockProcessorService(t),
		LanguageService:  NewMockLanguageService(t),
		NoteService:      NewMockNoteService(t),
	}
}

// MockRecordingService is a mock implementation of RecordingService
type MockRecordingService struct {
	mock.Mock
}

func NewMockRecordingService(t *testing.T) *MockRecordingService {
	m := &MockRecordingService{}
	m.Test(t)
	return m
}

func (m *MockRecordingService) CreateRecording(ctx context.Context, req *dto.CreateRecordingRequest) (*dto.RecordingResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RecordingResponse), args.Error(1)
}

func (m *MockRecordingService) GetRecording(ctx context.Context, id string) (*dto.RecordingResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RecordingResponse), args.Error(1)
}

func (m *MockRecordingService) ListRecordings(ctx context.Context, query dto.ListRecordingsQuery) (*dto.PaginatedRecordingsResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaginatedRecordingsResponse), args.Error(1)
}

func (m *MockRecordingService) DeleteRecording(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRecordingService) UploadURL(ctx context.Context, id string) (*dto.UploadURLResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UploadURLResponse), args.Error(1)
}

func (m *MockRecordingService) TranslateRecording(ctx context.Context, id string, req *dto.TranslateRecordingRequest) (*dto.RecordingResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RecordingResponse), args.Error(1)
}

// MockJobService is a mock implementation of JobService
type MockJobService struct {
	mock.Mock
}

func NewMockJobService(t *testing.T) *MockJobService {
	m := &MockJobService{}
	m.Test(t)
	return m
}

func (m *MockJobService) Transcribe(ctx context.Context, recordingID string, req *dto.TranscribeRequest) (*dto.JobResponse, error) {
	args := m.Called(ctx, recordingID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.JobResponse), args.Error(1)
}

func (m *MockJobService) GetJob(ctx context.Context, id string) (*dto.JobResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.JobResponse), args.Error(1)
}

func (m *MockJobService) ListJobs(ctx context.Context, query dto.ListJobsQuery) (*dto.JobsResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.JobsResponse), args.Error(1)
}

func (m *MockJobService) CancelJob(ctx context.Context, id string) (*dto.JobResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.JobResponse), args.Error(1)
}

// MockProcessorService is a mock implementation of ProcessorService
type MockProcessorService struct {
	mock.Mock
}

func NewMockProcessorService(t *testing.T) *MockProcessorService {
	m := &MockProcessorService{}
	m.Test(t)
	return m
}

func (m *MockProcessorService) Status(ctx context.Context) (*dto.ProcessorStatusResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ProcessorStatusResponse), args.Error(1)
}

func (m *MockProcessorService) Configure(ctx context.Context, req *dto.ProcessorConfigRequest) (*dto.ProcessorStatusResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ProcessorStatusResponse), args.Error(1)
}

func (m *MockProcessorService) Start(ctx context.Context) (*dto.ProcessorStatusResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ProcessorStatusResponse), args.Error(1)
}

func (m *MockProcessorService) Stop(ctx context.Context) (*dto.ProcessorStatusResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ProcessorStatusResponse), args.Error(1)
}

// MockLanguageService is a mock implementation of LanguageService
type MockLanguageService struct {
	mock.Mock
}

func NewMockLanguageService(t *testing.T) *MockLanguageService {
	m := &MockLanguageService{}
	m.Test(t)
	return m
}

func (m *MockLanguageService) TranslateText(ctx context.Context, req *dto.TranslateTextRequest) (*dto.TranslateTextResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TranslateTextResponse), args.Error(1)
}

func (m *MockLanguageService) RomanizeText(ctx context.Context, req *dto.RomanizeTextRequest) (*dto.RomanizeTextResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RomanizeTextResponse), args.Error(1)
}

// MockNoteService is a mock implementation of NoteService
type MockNoteService struct {
	mock.Mock
}

func NewMockNoteService(t *testing.T) *MockNoteService {
	m := &MockNoteService{}
	m.Test(t)
	return m
}

func (m *MockNoteService) CreateNote(ctx context.Context, recordingID string, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	args := m.Called(ctx, recordingID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.NoteResponse), args.Error(1)
}

func (m *MockNoteService) ListNotes(ctx context.Context, recordingID string) ([]dto.NoteResponse, error) {
	args := m.Called(ctx, recordingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.NoteResponse), args.Error(1)
}

func (m *MockNoteService) DeleteNote(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockNoteService) CreateVocabulary(ctx context.Context, recordingID string, req *dto.CreateVocabularyRequest) (*dto.VocabularyResponse, error) {
	args := m.Called(ctx, recordingID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.VocabularyResponse), args.Error(1)
}

func (m *MockNoteService) ListVocabulary(ctx context.Context, recordingID string) ([]dto.VocabularyResponse, error) {
	args := m.Called(ctx, recordingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.VocabularyResponse), args.Error(1)
}
