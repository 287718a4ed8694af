package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/samratjha96/bakbak-sub001/internal/api/middleware"
	"github.com/samratjha96/bakbak-sub001/internal/api/v1/dto"
	"github.com/samratjha96/bakbak-sub001/internal/api/v1/services"
)

// NoteHandler handles note and vocabulary API endpoints
type NoteHandler struct {
	service services.NoteService
}

// NewNoteHandler creates a new note handler
func NewNoteHandler(service services.NoteService) *NoteHandler {
	return &NoteHandler{
		service: service,
	}
}

// CreateNote handles POST /api/v1/recordings/:id/notes
// Pins a note to a position in a recording
//
// @Summary Create a note on a recording
// @Description Pins a free-form note to a playback position in the recording
// @Tags notes
// @Accept json
// @Produce json
// @Param id path string true "Recording ID"
// @Param note body dto.CreateNoteRequest true "Note body and position"
// @Success 201 {object} dto.NoteResponse "Note created"
// @Failure 404 {object} errors.APIError "Recording not found"
// @Failure 422 {object} errors.APIError "Validation error"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /recordings/{id}/notes [post]
func (h *NoteHandler) CreateNote(c *gin.Context) {
	var req dto.CreateNoteRequest

	// Validate request
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	// Create note
	response, err := h.service.CreateNote(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// ListNotes handles GET /api/v1/recordings/:id/notes
// Lists the notes on a recording
//
// @Summary List notes on a recording
// @Description Retrieves all notes on the recording ordered by playback position
// @Tags notes
// @Accept json
// @Produce json
// @Param id path string true "Recording ID"
// @Success 200 {array} dto.NoteResponse "Notes on the recording"
// @Failure 404 {object} errors.APIError "Recording not found"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /recordings/{id}/notes [get]
func (h *NoteHandler) ListNotes(c *gin.Context) {
	response, err := h.service.ListNotes(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// DeleteNote handles DELETE /api/v1/notes/:id
// Removes a note
//
// @Summary Delete a note
// @Description Removes a note. Deleting a note that is already gone succeeds.
// @Tags notes
// @Accept json
// @Produce json
// @Param id path string true "Note ID"
// @Success 204 "Note deleted"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /notes/{id} [delete]
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	if err := h.service.DeleteNote(c.Request.Context(), c.Param("id")); err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CreateVocabulary handles POST /api/v1/recordings/:id/vocabulary
// Saves a vocabulary entry from a recording
//
// @Summary Save a vocabulary entry
// @Description Saves a word or phrase from the recording with its reading and meaning
// @Tags notes
// @Accept json
// @Produce json
// @Param id path string true "Recording ID"
// @Param entry body dto.CreateVocabularyRequest true "Term, reading, and meaning"
// @Success 201 {object} dto.VocabularyResponse "Vocabulary entry created"
// @Failure 404 {object} errors.APIError "Recording not found"
// @Failure 422 {object} errors.APIError "Validation error"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /recordings/{id}/vocabulary [post]
func (h *NoteHandler) CreateVocabulary(c *gin.Context) {
	var req dto.CreateVocabularyRequest

	// Validate request
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	// Save entry
	response, err := h.service.CreateVocabulary(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// ListVocabulary handles GET /api/v1/recordings/:id/vocabulary
// Lists the vocabulary saved from a recording
//
// @Summary List vocabulary from a recording
// @Description Retrieves the vocabulary entries saved from the recording, oldest first
// @Tags notes
// @Accept json
// @Produce json
// @Param id path string true "Recording ID"
// @Success 200 {array} dto.VocabularyResponse "Vocabulary entries"
// @Failure 404 {object} errors.APIError "Recording not found"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /recordings/{id}/vocabulary [get]
func (h *NoteHandler) ListVocabulary(c *gin.Context) {
	response, err := h.service.ListVocabulary(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
