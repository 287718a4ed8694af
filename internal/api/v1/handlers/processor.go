package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/samratjha96/bakbak-sub001/internal/api/middleware"
	"github.com/samratjha96/bakbak-sub001/internal/api/v1/dto"
	"github.com/samratjha96/bakbak-sub001/internal/api/v1/services"
)

// ProcessorHandler handles background processor control endpoints
type ProcessorHandler struct {
	service services.ProcessorService
}

// NewProcessorHandler creates a new processor handler
func NewProcessorHandler(service services.ProcessorService) *ProcessorHandler {
	return &ProcessorHandler{
		service: service,
	}
}

// Status handles GET /api/v1/processor/status
// Reports the processor's current state
//
// @Summary Get processor status
// @Description Reports whether the job processor is running, how many jobs are in flight, and its polling settings
// @Tags processor
// @Accept json
// @Produce json
// @Success 200 {object} dto.ProcessorStatusResponse "Processor status"
// @Router /processor/status [get]
func (h *ProcessorHandler) Status(c *gin.Context) {
	response, err := h.service.Status(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Configure handles PUT /api/v1/processor/config
// Updates the processor's polling settings
//
// @Summary Update processor configuration
// @Description Applies new polling interval or concurrency. A running processor reschedules immediately without replaying missed ticks.
// @Tags processor
// @Accept json
// @Produce json
// @Param config body dto.ProcessorConfigRequest true "Settings to change"
// @Success 200 {object} dto.ProcessorStatusResponse "Processor status after the update"
// @Failure 422 {object} errors.APIError "Validation error"
// @Router /processor/config [put]
func (h *ProcessorHandler) Configure(c *gin.Context) {
	var req dto.ProcessorConfigRequest

	// Validate request
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	// Apply settings
	response, err := h.service.Configure(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Start handles POST /api/v1/processor/start
// Starts the background processor
//
// @Summary Start the processor
// @Description Starts the job processor. Starting an already-running processor is a no-op.
// @Tags processor
// @Accept json
// @Produce json
// @Success 200 {object} dto.ProcessorStatusResponse "Processor status after starting"
// @Router /processor/start [post]
func (h *ProcessorHandler) Start(c *gin.Context) {
	response, err := h.service.Start(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Stop handles POST /api/v1/processor/stop
// Stops the background processor
//
// @Summary Stop the processor
// @Description Stops the job scheduler. Jobs already in flight run to completion.
// @Tags processor
// @Accept json
// @Produce json
// @Success 200 {object} dto.ProcessorStatusResponse "Processor status after stopping"
// @Router /processor/stop [post]
func (h *ProcessorHandler) Stop(c *gin.Context) {
	response, err := h.service.Stop(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
