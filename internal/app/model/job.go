package model

import (
	"time"
)

// JobStatus is the lifecycle state of a transcription job.
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
	JobStatusCancelled  JobStatus = "cancelled"
)

// Valid reports whether s is a known job status.
func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusPending, JobStatusInProgress, JobStatusCompleted, JobStatusFailed, JobStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether s is a final state. Terminal jobs never change
// status again.
func (s JobStatus) Terminal() bool {
	switch s {
	case JobStatusCompleted, JobStatusFailed, JobStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the status may legally move from s to next.
//
//	pending     -> in_progress, cancelled
//	in_progress -> completed, failed, cancelled
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	switch s {
	case JobStatusPending:
		return next == JobStatusInProgress || next == JobStatusCancelled
	case JobStatusInProgress:
		return next == JobStatusCompleted || next == JobStatusFailed || next == JobStatusCancelled
	default:
		return false
	}
}

// TranscriptionJob tracks one transcription request against a recording.
// Jobs are created pending, picked up by the processor, and finish in exactly
// one of the terminal states.
type TranscriptionJob struct {
	ID           string                 `json:"id" db:"id"`
	RecordingID  string                 `json:"recording_id" db:"recording_id"`
	Status       JobStatus              `json:"status" db:"status"`
	LanguageCode string                 `json:"language_code" db:"language_code"`
	ErrorMessage string                 `json:"error_message" db:"error_message"`
	Metadata     map[string]interface{} `json:"metadata" db:"metadata"`
	CreatedAt    time.Time              `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at" db:"updated_at"`
	CompletedAt  *time.Time             `json:"completed_at" db:"completed_at"`
}

// TableName returns the table name for TranscriptionJob
func (TranscriptionJob) TableName() string {
	return "transcription_jobs"
}
