package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/samratjha96/bakbak-sub001/internal/api/errors"
	"github.com/samratjha96/bakbak-sub001/internal/api/v1/dto"
	"github.com/samratjha96/bakbak-sub001/internal/app/model"
	"github.com/samratjha96/bakbak-sub001/internal/app/repository"
)

// NoteServiceImpl implements NoteService
type NoteServiceImpl struct {
	notes      repository.NoteRepository
	vocabulary repository.VocabularyRepository
	recordings repository.RecordingRepository
}

// NewNoteService creates a new note service
func NewNoteService(
	notes repository.NoteRepository,
	vocabulary repository.VocabularyRepository,
	recordings repository.RecordingRepository,
) NoteService {
	return &NoteServiceImpl{
		notes:      notes,
		vocabulary: vocabulary,
		recordings: recordings,
	}
}

func (s *NoteServiceImpl) requireRecording(ctx context.Context, recordingID string) error {
	rec, err := s.recordings.GetRecordingByID(ctx, recordingID)
	if err != nil {
		return errors.NewInternalError("Failed to load recording")
	}
	if rec == nil {
		return errors.NewNotFoundError("recording")
	}
	return nil
}

// CreateNote pins a note to a position in a recording
func (s *NoteServiceImpl) CreateNote(ctx context.Context, recordingID string, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	if err := s.requireRecording(ctx, recordingID); err != nil {
		return nil, err
	}

	note := &model.Note{
		ID:          uuid.New().String(),
		RecordingID: recordingID,
		Body:        req.Body,
		PositionSec: req.PositionSec,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.notes.InsertNote(ctx, note); err != nil {
		return nil, errors.NewInternalError("Failed to create note")
	}

	resp := dto.ToNoteResponse(note)
	return &resp, nil
}

// ListNotes retrieves all notes on a recording ordered by position
func (s *NoteServiceImpl) ListNotes(ctx context.Context, recordingID string) ([]dto.NoteResponse, error) {
	if err := s.requireRecording(ctx, recordingID); err != nil {
		return nil, err
	}

	notes, err := s.notes.ListNotesByRecording(ctx, recordingID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to list notes")
	}

	responses := make([]dto.NoteResponse, 0, len(notes))
	for _, note := range notes {
		responses = append(responses, dto.ToNoteResponse(note))
	}
	return responses, nil
}

// DeleteNote removes a note. Deleting a note that is already gone succeeds.
func (s *NoteServiceImpl) DeleteNote(ctx context.Context, id string) error {
	if err := s.notes.DeleteNote(ctx, id); err != nil {
		return errors.NewInternalError("Failed to delete note")
	}
	return nil
}

// CreateVocabulary saves a vocabulary entry from a recording
func (s *NoteServiceImpl) CreateVocabulary(ctx context.Context, recordingID string, req *dto.CreateVocabularyRequest) (*dto.VocabularyResponse, error) {
	if err := s.requireRecording(ctx, recordingID); err != nil {
		return nil, err
	}

	entry := &model.VocabularyEntry{
		ID:          uuid.New().String(),
		RecordingID: recordingID,
		Term:        req.Term,
		Reading:     req.Reading,
		Meaning:     req.Meaning,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.vocabulary.InsertVocabulary(ctx, entry); err != nil {
		return nil, errors.NewInternalError("Failed to save vocabulary entry")
	}

	resp := dto.ToVocabularyResponse(entry)
	return &resp, nil
}

// ListVocabulary retrieves the vocabulary saved from a recording
func (s *NoteServiceImpl) ListVocabulary(ctx context.Context, recordingID string) ([]dto.VocabularyResponse, error) {
	if err := s.requireRecording(ctx, recordingID); err != nil {
		return nil, err
	}

	entries, err := s.vocabulary.ListVocabularyByRecording(ctx, recordingID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to list vocabulary")
	}

	responses := make([]dto.VocabularyResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, dto.ToVocabularyResponse(entry))
	}
	return responses, nil
}
