package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/samratjha96/bakbak-sub001/internal/api/middleware"
	"github.com/samratjha96/bakbak-sub001/internal/api/v1/dto"
	"github.com/samratjha96/bakbak-sub001/internal/api/v1/services"
)

// RecordingHandler handles recording-related API endpoints
type RecordingHandler struct {
	service services.RecordingService
}

// NewRecordingHandler creates a new recording handler
func NewRecordingHandler(service services.RecordingService) *RecordingHandler {
	return &RecordingHandler{
		service: service,
	}
}

// Create handles POST /api/v1/recordings
// Registers a new recording and reserves its audio object key
//
// @Summary Create a new recording
// @Description Registers a recording and returns it with its audio URL. Upload the audio afterwards via the upload-url endpoint.
// @Tags recordings
// @Accept json
// @Produce json
// @Param recording body dto.CreateRecordingRequest true "Recording creation data"
// @Success 201 {object} dto.RecordingResponse "Recording created successfully"
// @Failure 400 {object} errors.APIError "Bad request - invalid input data"
// @Failure 422 {object} errors.APIError "Validation error"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /recordings [post]
func (h *RecordingHandler) Create(c *gin.Context) {
	var req dto.CreateRecordingRequest

	// Validate request
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	// Create recording
	response, err := h.service.CreateRecording(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Get handles GET /api/v1/recordings/:id
// Retrieves a specific recording by ID
//
// @Summary Get recording by ID
// @Description Retrieves a recording with its transcript, translation, and audio URL
// @Tags recordings
// @Accept json
// @Produce json
// @Param id path string true "Recording ID"
// @Success 200 {object} dto.RecordingResponse "Recording details"
// @Failure 404 {object} errors.APIError "Recording not found"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /recordings/{id} [get]
func (h *RecordingHandler) Get(c *gin.Context) {
	response, err := h.service.GetRecording(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// List handles GET /api/v1/recordings
// Lists recordings with pagination, newest first
//
// @Summary List recordings with pagination
// @Description Retrieves a paginated list of recordings ordered by creation time, newest first
// @Tags recordings
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1) minimum(1)
// @Param limit query int false "Items per page" default(20) minimum(1) maximum(100)
// @Success 200 {object} dto.PaginatedRecordingsResponse "List of recordings with pagination"
// @Failure 400 {object} errors.APIError "Bad request - invalid query parameters"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Header 200 {string} X-Total-Count "Total number of recordings"
// @Router /recordings [get]
func (h *RecordingHandler) List(c *gin.Context) {
	var query dto.ListRecordingsQuery

	// Validate query parameters
	if err := middleware.ValidateQuery(c, &query); err != nil {
		middleware.HandleError(c, err)
		return
	}

	// List recordings
	response, err := h.service.ListRecordings(c.Request.Context(), query)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	// Set total count header
	c.Header("X-Total-Count", strconv.Itoa(response.Pagination.Total))

	c.JSON(http.StatusOK, response)
}

// Delete handles DELETE /api/v1/recordings/:id
// Deletes a recording and its audio object
//
// @Summary Delete a recording
// @Description Deletes a recording row and its stored audio. Jobs that already reference the recording keep their history.
// @Tags recordings
// @Accept json
// @Produce json
// @Param id path string true "Recording ID"
// @Success 204 "Recording deleted successfully"
// @Failure 404 {object} errors.APIError "Recording not found"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /recordings/{id} [delete]
func (h *RecordingHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteRecording(c.Request.Context(), c.Param("id")); err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadURL handles POST /api/v1/recordings/:id/upload-url
// Issues a presigned PUT URL for the recording's audio
//
// @Summary Get a presigned upload URL
// @Description Issues a short-lived presigned URL the client PUTs the audio file to
// @Tags recordings
// @Accept json
// @Produce json
// @Param id path string true "Recording ID"
// @Success 200 {object} dto.UploadURLResponse "Presigned upload URL"
// @Failure 404 {object} errors.APIError "Recording not found"
// @Failure 503 {object} errors.APIError "Storage backend cannot presign"
// @Router /recordings/{id}/upload-url [post]
func (h *RecordingHandler) UploadURL(c *gin.Context) {
	response, err := h.service.UploadURL(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Translate handles POST /api/v1/recordings/:id/translate
// Translates the recording's transcript
//
// @Summary Translate a recording's transcript
// @Description Translates the stored transcript into the target language and saves the translation on the recording
// @Tags recordings
// @Accept json
// @Produce json
// @Param id path string true "Recording ID"
// @Param translation body dto.TranslateRecordingRequest true "Target language"
// @Success 200 {object} dto.RecordingResponse "Recording with translation"
// @Failure 404 {object} errors.APIError "Recording not found"
// @Failure 409 {object} errors.APIError "Recording has no transcript yet"
// @Failure 422 {object} errors.APIError "Validation error"
// @Failure 502 {object} errors.APIError "Translation backend error"
// @Router /recordings/{id}/translate [post]
func (h *RecordingHandler) Translate(c *gin.Context) {
	var req dto.TranslateRecordingRequest

	// Validate request
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	// Translate transcript
	response, err := h.service.TranslateRecording(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
