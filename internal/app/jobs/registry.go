// Package jobs contains the transcription job core: the durable job registry
// and the polling processor that drives pending jobs to a terminal state.
package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/samratjha96/bakbak-sub001/internal/app/errors"
	"github.com/samratjha96/bakbak-sub001/internal/app/model"
	"github.com/samratjha96/bakbak-sub001/internal/app/repository"
)

// Registry is the single source of truth for transcription jobs. All status
// changes go through UpdateJobStatus, which enforces the job state machine.
type Registry struct {
	repo repository.JobRepository
}

// NewRegistry creates a registry backed by the given repository.
func NewRegistry(repo repository.JobRepository) *Registry {
	return &Registry{repo: repo}
}

// CreateJob stores a new pending job for a recording. The language code is
// an optional hint for the transcription backend.
func (r *Registry) CreateJob(ctx context.Context, recordingID, languageCode string) (*model.TranscriptionJob, error) {
	now := time.Now().UTC()
	job := &model.TranscriptionJob{
		ID:           uuid.New().String(),
		RecordingID:  recordingID,
		Status:       model.JobStatusPending,
		LanguageCode: languageCode,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := r.repo.InsertJob(ctx, job); err != nil {
		return nil, apperrors.Wrap(err, "failed to create job")
	}
	return job, nil
}

// GetJob returns the job with the given id or a NotFoundError.
func (r *Registry) GetJob(ctx context.Context, id string) (*model.TranscriptionJob, error) {
	job, err := r.repo.GetJobByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to load job")
	}
	if job == nil {
		return nil, apperrors.NewNotFoundError("job", id)
	}
	return job, nil
}

// ListPendingJobs returns a snapshot of all pending jobs, oldest first. The
// processor consumes this as a plain work queue; the ordering is a stable
// convenience, not a priority scheme.
func (r *Registry) ListPendingJobs(ctx context.Context) ([]*model.TranscriptionJob, error) {
	jobs, err := r.repo.ListJobsByStatus(ctx, model.JobStatusPending)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list pending jobs")
	}
	return jobs, nil
}

// ListJobs returns a page of jobs, newest first, optionally filtered by
// status. An empty status matches all jobs.
func (r *Registry) ListJobs(ctx context.Context, status model.JobStatus, limit, offset int) ([]*model.TranscriptionJob, error) {
	if status != "" && !status.Valid() {
		return nil, apperrors.Newf("unknown job status %q", status)
	}
	jobs, err := r.repo.ListJobs(ctx, status, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list jobs")
	}
	return jobs, nil
}

// UpdateJobStatus moves a job to newStatus. It returns NotFoundError for an
// unknown id and InvalidTransitionError when the state machine forbids the
// move. errorMessage is recorded only when the new status is failed;
// completedAt is stamped only when the new status is completed.
func (r *Registry) UpdateJobStatus(ctx context.Context, id string, newStatus model.JobStatus, errorMessage string) (*model.TranscriptionJob, error) {
	if !newStatus.Valid() {
		return nil, apperrors.Newf("unknown job status %q", newStatus)
	}

	job, err := r.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if !job.Status.CanTransitionTo(newStatus) {
		return nil, apperrors.NewInvalidTransitionError(id, job.Status, newStatus)
	}

	upd := repository.JobUpdate{
		Status:    newStatus,
		UpdatedAt: time.Now().UTC(),
	}
	if newStatus == model.JobStatusFailed {
		upd.ErrorMessage = errorMessage
	}
	if newStatus == model.JobStatusCompleted {
		completedAt := upd.UpdatedAt
		upd.CompletedAt = &completedAt
	}

	// Conditional on the status we just observed: a concurrent transition
	// makes the update miss and we report against the fresh state.
	applied, err := r.repo.UpdateJobStatusFrom(ctx, id, job.Status, upd)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to update job status")
	}
	if !applied {
		current, err := r.repo.GetJobByID(ctx, id)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to reload job")
		}
		if current == nil {
			return nil, apperrors.NewNotFoundError("job", id)
		}
		return nil, apperrors.NewInvalidTransitionError(id, current.Status, newStatus)
	}

	job.Status = newStatus
	job.UpdatedAt = upd.UpdatedAt
	job.CompletedAt = upd.CompletedAt
	job.ErrorMessage = upd.ErrorMessage
	return job, nil
}

// UpdateJobMetadata merges kv into the job's metadata bag.
func (r *Registry) UpdateJobMetadata(ctx context.Context, id string, kv map[string]interface{}) error {
	job, err := r.GetJob(ctx, id)
	if err != nil {
		return err
	}

	merged := make(map[string]interface{}, len(job.Metadata)+len(kv))
	for k, v := range job.Metadata {
		merged[k] = v
	}
	for k, v := range kv {
		merged[k] = v
	}

	if err := r.repo.UpdateJobMetadata(ctx, id, merged); err != nil {
		return apperrors.Wrap(err, "failed to update job metadata")
	}
	return nil
}
