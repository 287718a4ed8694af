package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/samratjha96/bakbak-sub001/internal/api/errors"
	"github.com/samratjha96/bakbak-sub001/internal/api/v1/dto"
	"github.com/samratjha96/bakbak-sub001/internal/app/model"
	"github.com/samratjha96/bakbak-sub001/internal/app/repository"
	"github.com/samratjha96/bakbak-sub001/internal/app/storage"
)

const uploadURLExpiry = time.Hour

// RecordingServiceImpl implements RecordingService
type RecordingServiceImpl struct {
	recordings repository.RecordingRepository
	store      storage.ObjectStore
	translator TextTranslator
}

// NewRecordingService creates a new recording service
func NewRecordingService(
	recordings repository.RecordingRepository,
	store storage.ObjectStore,
	translator TextTranslator,
) RecordingService {
	return &RecordingServiceImpl{
		recordings: recordings,
		store:      store,
		translator: translator,
	}
}

// CreateRecording registers a recording row and reserves an audio object key
// for it. The audio itself arrives later through the upload URL.
func (s *RecordingServiceImpl) CreateRecording(ctx context.Context, req *dto.CreateRecordingRequest) (*dto.RecordingResponse, error) {
	id := uuid.New().String()

	ext := strings.ToLower(filepath.Ext(req.FileName))
	if ext == "" {
		ext = ".m4a"
	}

	now := time.Now().UTC()
	rec := &model.Recording{
		ID:           id,
		Title:        req.Title,
		LanguageCode: req.LanguageCode,
		AudioPath:    fmt.Sprintf("recordings/%s%s", id, ext),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.recordings.InsertRecording(ctx, rec); err != nil {
		return nil, errors.NewInternalError("Failed to create recording")
	}

	resp := dto.ToRecordingResponse(rec, s.store.ObjectURL(rec.AudioPath))
	return &resp, nil
}

// GetRecording retrieves a recording by ID
func (s *RecordingServiceImpl) GetRecording(ctx context.Context, id string) (*dto.RecordingResponse, error) {
	rec, err := s.recordings.GetRecordingByID(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError("Failed to load recording")
	}
	if rec == nil {
		return nil, errors.NewNotFoundError("recording")
	}

	resp := dto.ToRecordingResponse(rec, s.store.ObjectURL(rec.AudioPath))
	return &resp, nil
}

// ListRecordings retrieves a page of recordings, newest first
func (s *RecordingServiceImpl) ListRecordings(ctx context.Context, query dto.ListRecordingsQuery) (*dto.PaginatedRecordingsResponse, error) {
	offset := (query.Page - 1) * query.Limit

	recs, err := s.recordings.ListRecordings(ctx, query.Limit, offset)
	if err != nil {
		return nil, errors.NewInternalError("Failed to list recordings")
	}

	total, err := s.recordings.CountRecordings(ctx)
	if err != nil {
		return nil, errors.NewInternalError("Failed to count recordings")
	}

	responses := make([]dto.RecordingResponse, 0, len(recs))
	for _, rec := range recs {
		responses = append(responses, dto.ToRecordingResponse(rec, s.store.ObjectURL(rec.AudioPath)))
	}

	return &dto.PaginatedRecordingsResponse{
		Recordings: responses,
		Pagination: dto.NewPagination(query.Page, query.Limit, total),
	}, nil
}

// DeleteRecording removes a recording and its audio object.
func (s *RecordingServiceImpl) DeleteRecording(ctx context.Context, id string) error {
	rec, err := s.recordings.GetRecordingByID(ctx, id)
	if err != nil {
		return errors.NewInternalError("Failed to load recording")
	}
	if rec == nil {
		return errors.NewNotFoundError("recording")
	}

	if rec.AudioPath != "" {
		// The row is the source of truth; a failed object delete leaves an
		// orphan blob but must not block the API delete.
		_ = s.store.RemoveObject(ctx, rec.AudioPath)
	}

	if err := s.recordings.DeleteRecording(ctx, id); err != nil {
		return errors.NewInternalError("Failed to delete recording")
	}
	return nil
}

// UploadURL issues a presigned PUT for the recording's audio object.
func (s *RecordingServiceImpl) UploadURL(ctx context.Context, id string) (*dto.UploadURLResponse, error) {
	rec, err := s.recordings.GetRecordingByID(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError("Failed to load recording")
	}
	if rec == nil {
		return nil, errors.NewNotFoundError("recording")
	}

	presigned, err := s.store.PresignedPutURL(ctx, rec.AudioPath, uploadURLExpiry)
	if err != nil {
		return nil, errors.NewServiceUnavailableError("Storage cannot issue upload URLs right now")
	}

	return &dto.UploadURLResponse{
		URL:       presigned.URL,
		Method:    presigned.Method,
		Key:       presigned.Key,
		ExpiresAt: presigned.ExpiresAt,
	}, nil
}

// TranslateRecording translates the recording's transcript and persists the
// result on the recording row.
func (s *RecordingServiceImpl) TranslateRecording(ctx context.Context, id string, req *dto.TranslateRecordingRequest) (*dto.RecordingResponse, error) {
	rec, err := s.recordings.GetRecordingByID(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError("Failed to load recording")
	}
	if rec == nil {
		return nil, errors.NewNotFoundError("recording")
	}
	if rec.Transcript == "" {
		return nil, errors.NewConflictError("Recording has no transcript yet")
	}

	translation, err := s.translator.Translate(ctx, rec.Transcript, req.TargetLanguage)
	if err != nil {
		return nil, err
	}

	if err := s.recordings.SetTranslation(ctx, id, translation); err != nil {
		return nil, errors.NewInternalError("Failed to save translation")
	}

	rec.Translation = translation
	rec.UpdatedAt = time.Now().UTC()
	resp := dto.ToRecordingResponse(rec, s.store.ObjectURL(rec.AudioPath))
	return &resp, nil
}
