package dto

import (
	"strings"
	"time"

	"github.com/samratjha96/bakbak-sub001/internal/api/errors"
	"github.com/samratjha96/bakbak-sub001/internal/app/model"
)

// CreateRecordingRequest registers a recording before its audio is uploaded.
// FileName is only used to pick the audio object's extension.
type CreateRecordingRequest struct {
	Title        string `json:"title" binding:"required,max=200"`
	LanguageCode string `json:"language_code" binding:"required,max=35"`
	FileName     string `json:"file_name,omitempty"`
}

// Validate performs domain-specific validation
func (r *CreateRecordingRequest) Validate() error {
	validationErrors := make(map[string]string)

	if !validLanguageCode(r.LanguageCode) {
		validationErrors["language_code"] = "must be a language tag such as ko or ko-KR"
	}

	if len(validationErrors) > 0 {
		return errors.NewValidationError("Invalid recording request", validationErrors)
	}
	return nil
}

// validLanguageCode accepts BCP-47-shaped tags: a 2-3 letter primary subtag
// optionally followed by dash-separated alphanumeric subtags.
func validLanguageCode(code string) bool {
	parts := strings.Split(code, "-")
	if len(parts[0]) < 2 || len(parts[0]) > 3 {
		return false
	}
	for i, part := range parts {
		if part == "" {
			return false
		}
		for _, r := range part {
			isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
			isDigit := r >= '0' && r <= '9'
			if !isLetter && !(isDigit && i > 0) {
				return false
			}
		}
	}
	return true
}

// RecordingResponse represents a recording in API responses.
type RecordingResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	LanguageCode string    `json:"language_code"`
	AudioPath    string    `json:"audio_path,omitempty"`
	AudioURL     string    `json:"audio_url,omitempty"`
	DurationSec  float64   `json:"duration_sec,omitempty"`
	FileSize     int64     `json:"file_size,omitempty"`
	Transcript   string    `json:"transcript,omitempty"`
	Translation  string    `json:"translation,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToRecordingResponse converts a model to a response DTO. audioURL may be
// empty when the recording has no audio yet.
func ToRecordingResponse(rec *model.Recording, audioURL string) RecordingResponse {
	return RecordingResponse{
		ID:           rec.ID,
		Title:        rec.Title,
		LanguageCode: rec.LanguageCode,
		AudioPath:    rec.AudioPath,
		AudioURL:     audioURL,
		DurationSec:  rec.DurationSec,
		FileSize:     rec.FileSize,
		Transcript:   rec.Transcript,
		Translation:  rec.Translation,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	}
}

// ListRecordingsQuery represents query parameters for listing recordings.
type ListRecordingsQuery struct {
	Page  int `form:"page,default=1" binding:"min=1"`
	Limit int `form:"limit,default=20" binding:"min=1,max=100"`
}

// PaginatedRecordingsResponse is a page of recordings.
type PaginatedRecordingsResponse struct {
	Recordings []RecordingResponse `json:"recordings"`
	Pagination PaginationResponse  `json:"pagination"`
}

// UploadURLResponse grants a time-limited direct upload for a recording's
// audio object.
type UploadURLResponse struct {
	URL       string    `json:"url"`
	Method    string    `json:"method"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TranslateRecordingRequest asks for the recording's transcript to be
// translated and persisted.
type TranslateRecordingRequest struct {
	TargetLanguage string `json:"target_language" binding:"required,max=35"`
}
