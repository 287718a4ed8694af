package services

import (
	"context"

	"github.com/samratjha96/bakbak-sub001/internal/api/errors"
	"github.com/samratjha96/bakbak-sub001/internal/api/v1/dto"
	"github.com/samratjha96/bakbak-sub001/internal/app/jobs"
	"github.com/samratjha96/bakbak-sub001/internal/app/model"
	"github.com/samratjha96/bakbak-sub001/internal/app/repository"
)

// JobServiceImpl implements JobService
type JobServiceImpl struct {
	registry   *jobs.Registry
	recordings repository.RecordingRepository
}

// NewJobService creates a new job service
func NewJobService(registry *jobs.Registry, recordings repository.RecordingRepository) JobService {
	return &JobServiceImpl{
		registry:   registry,
		recordings: recordings,
	}
}

// Transcribe queues a transcription job for the recording. The processor
// picks it up on its next scan.
func (s *JobServiceImpl) Transcribe(ctx context.Context, recordingID string, req *dto.TranscribeRequest) (*dto.JobResponse, error) {
	rec, err := s.recordings.GetRecordingByID(ctx, recordingID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to load recording")
	}
	if rec == nil {
		return nil, errors.NewNotFoundError("recording")
	}

	language := req.LanguageCode
	if language == "" {
		language = rec.LanguageCode
	}

	job, err := s.registry.CreateJob(ctx, recordingID, language)
	if err != nil {
		return nil, err
	}

	resp := dto.ToJobResponse(job)
	return &resp, nil
}

// GetJob retrieves a job by ID
func (s *JobServiceImpl) GetJob(ctx context.Context, id string) (*dto.JobResponse, error) {
	job, err := s.registry.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := dto.ToJobResponse(job)
	return &resp, nil
}

// ListJobs retrieves jobs filtered by status, newest first
func (s *JobServiceImpl) ListJobs(ctx context.Context, query dto.ListJobsQuery) (*dto.JobsResponse, error) {
	list, err := s.registry.ListJobs(ctx, model.JobStatus(query.Status), query.Limit, query.Offset)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.JobResponse, 0, len(list))
	for _, job := range list {
		responses = append(responses, dto.ToJobResponse(job))
	}

	return &dto.JobsResponse{
		Jobs:   responses,
		Count:  len(responses),
		Limit:  query.Limit,
		Offset: query.Offset,
	}, nil
}

// CancelJob cancels a pending or in-progress job
func (s *JobServiceImpl) CancelJob(ctx context.Context, id string) (*dto.JobResponse, error) {
	job, err := s.registry.UpdateJobStatus(ctx, id, model.JobStatusCancelled, "")
	if err != nil {
		return nil, err
	}

	resp := dto.ToJobResponse(job)
	return &resp, nil
}
