package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/samratjha96/bakbak-sub001/internal/api/middleware"
	"github.com/samratjha96/bakbak-sub001/internal/api/v1/dto"
	"github.com/samratjha96/bakbak-sub001/internal/api/v1/services"
)

// LanguageHandler handles standalone translation and romanization endpoints
type LanguageHandler struct {
	service services.LanguageService
}

// NewLanguageHandler creates a new language handler
func NewLanguageHandler(service services.LanguageService) *LanguageHandler {
	return &LanguageHandler{
		service: service,
	}
}

// Translate handles POST /api/v1/translate
// Translates arbitrary text
//
// @Summary Translate text
// @Description Translates text into the target language without touching any recording
// @Tags language
// @Accept json
// @Produce json
// @Param translation body dto.TranslateTextRequest true "Text and target language"
// @Success 200 {object} dto.TranslateTextResponse "Translated text"
// @Failure 422 {object} errors.APIError "Validation error"
// @Failure 502 {object} errors.APIError "Translation backend error"
// @Router /translate [post]
func (h *LanguageHandler) Translate(c *gin.Context) {
	var req dto.TranslateTextRequest

	// Validate request
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	// Translate text
	response, err := h.service.TranslateText(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Romanize handles POST /api/v1/romanize
// Renders text in Latin script
//
// @Summary Romanize text
// @Description Renders text in Latin script so learners can read it aloud
// @Tags language
// @Accept json
// @Produce json
// @Param romanization body dto.RomanizeTextRequest true "Text and its language"
// @Success 200 {object} dto.RomanizeTextResponse "Romanized text"
// @Failure 422 {object} errors.APIError "Validation error"
// @Failure 502 {object} errors.APIError "Romanization backend error"
// @Router /romanize [post]
func (h *LanguageHandler) Romanize(c *gin.Context) {
	var req dto.RomanizeTextRequest

	// Validate request
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	// Romanize text
	response, err := h.service.RomanizeText(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
