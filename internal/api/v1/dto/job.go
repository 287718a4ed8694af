package dto

import (
	"time"

	"github.com/samratjha96/bakbak-sub001/internal/app/model"
)

// TranscribeRequest queues a transcription job for a recording. An empty
// language code falls back to the recording's own.
type TranscribeRequest struct {
	LanguageCode string `json:"language_code,omitempty" binding:"omitempty,max=35"`
}

// JobResponse represents a transcription job in API responses.
type JobResponse struct {
	ID           string                 `json:"id"`
	RecordingID  string                 `json:"recording_id"`
	Status       string                 `json:"status"`
	LanguageCode string                 `json:"language_code,omitempty"`
	ErrorMessage string                 `json:"error_message,omitempty"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
	CompletedAt  *time.Time             `json:"completed_at,omitempty"`
}

// ToJobResponse converts a model to a response DTO.
func ToJobResponse(job *model.TranscriptionJob) JobResponse {
	return JobResponse{
		ID:           job.ID,
		RecordingID:  job.RecordingID,
		Status:       string(job.Status),
		LanguageCode: job.LanguageCode,
		ErrorMessage: job.ErrorMessage,
		Metadata:     job.Metadata,
		CreatedAt:    job.CreatedAt,
		UpdatedAt:    job.UpdatedAt,
		CompletedAt:  job.CompletedAt,
	}
}

// ListJobsQuery represents query parameters for listing jobs. An empty
// status matches all jobs.
type ListJobsQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=pending in_progress completed failed cancelled"`
	Limit  int    `form:"limit,default=20" binding:"min=1,max=100"`
	Offset int    `form:"offset,default=0" binding:"min=0"`
}

// JobsResponse is a filtered slice of jobs.
type JobsResponse struct {
	Jobs   []JobResponse `json:"jobs"`
	Count  int           `json:"count"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}
