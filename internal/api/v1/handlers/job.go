package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/samratjha96/bakbak-sub001/internal/api/middleware"
	"github.com/samratjha96/bakbak-sub001/internal/api/v1/dto"
	"github.com/samratjha96/bakbak-sub001/internal/api/v1/services"
)

// JobHandler handles transcription job API endpoints
type JobHandler struct {
	service services.JobService
}

// NewJobHandler creates a new job handler
func NewJobHandler(service services.JobService) *JobHandler {
	return &JobHandler{
		service: service,
	}
}

// Transcribe handles POST /api/v1/recordings/:id/transcribe
// Queues a transcription job for the recording
//
// @Summary Queue a transcription job
// @Description Creates a pending transcription job for the recording. The background processor picks it up on its next scan.
// @Tags jobs
// @Accept json
// @Produce json
// @Param id path string true "Recording ID"
// @Param options body dto.TranscribeRequest false "Transcription options"
// @Success 202 {object} dto.JobResponse "Job queued"
// @Failure 404 {object} errors.APIError "Recording not found"
// @Failure 422 {object} errors.APIError "Validation error"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /recordings/{id}/transcribe [post]
func (h *JobHandler) Transcribe(c *gin.Context) {
	var req dto.TranscribeRequest

	// Validate request
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	// Queue job
	response, err := h.service.Transcribe(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, response)
}

// Get handles GET /api/v1/jobs/:id
// Retrieves a specific job by ID
//
// @Summary Get job by ID
// @Description Retrieves a transcription job with its status, timestamps, and error message if it failed
// @Tags jobs
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} dto.JobResponse "Job details"
// @Failure 404 {object} errors.APIError "Job not found"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /jobs/{id} [get]
func (h *JobHandler) Get(c *gin.Context) {
	response, err := h.service.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// List handles GET /api/v1/jobs
// Lists jobs with optional status filtering
//
// @Summary List jobs
// @Description Retrieves jobs ordered by creation time, newest first, optionally filtered by status
// @Tags jobs
// @Accept json
// @Produce json
// @Param status query string false "Filter by status" Enums(pending,in_progress,completed,failed,cancelled)
// @Param limit query int false "Maximum jobs to return" default(20) minimum(1) maximum(100)
// @Param offset query int false "Jobs to skip" default(0) minimum(0)
// @Success 200 {object} dto.JobsResponse "List of jobs"
// @Failure 400 {object} errors.APIError "Bad request - invalid query parameters"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Header 200 {string} X-Total-Count "Number of jobs returned"
// @Router /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	var query dto.ListJobsQuery

	// Validate query parameters
	if err := middleware.ValidateQuery(c, &query); err != nil {
		middleware.HandleError(c, err)
		return
	}

	// List jobs
	response, err := h.service.ListJobs(c.Request.Context(), query)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	// Set total count header
	c.Header("X-Total-Count", strconv.Itoa(response.Count))

	c.JSON(http.StatusOK, response)
}

// Cancel handles POST /api/v1/jobs/:id/cancel
// Cancels a pending or in-progress job
//
// @Summary Cancel a job
// @Description Moves a pending or in-progress job to cancelled. Completed and failed jobs cannot be cancelled.
// @Tags jobs
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} dto.JobResponse "Cancelled job"
// @Failure 404 {object} errors.APIError "Job not found"
// @Failure 409 {object} errors.APIError "Job is already finished"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /jobs/{id}/cancel [post]
func (h *JobHandler) Cancel(c *gin.Context) {
	response, err := h.service.CancelJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
