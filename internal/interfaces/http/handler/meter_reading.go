package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	billingapp "github.com/kostman/backend/internal/application/billing"
	"github.com/kostman/backend/internal/interfaces/http/dto"
)

// MeterReadingHandler handles electricity meter reading API endpoints
type MeterReadingHandler struct {
	BaseHandler
	meterService *billingapp.MeterReadingService
}

// NewMeterReadingHandler creates a new MeterReadingHandler
func NewMeterReadingHandler(meterService *billingapp.MeterReadingService) *MeterReadingHandler {
	return &MeterReadingHandler{
		meterService: meterService,
	}
}

// Save handles POST /meter-readings
// Saving is an upsert keyed by room and period. A reading for a period that
// already has a bill is rejected.
func (h *MeterReadingHandler) Save(c *gin.Context) {
	var req billingapp.SaveMeterReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	reading, err := h.meterService.SaveMeterReading(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, reading)
}

// GetByRoomAndPeriod handles GET /rooms/:id/meter-readings/:period
func (h *MeterReadingHandler) GetByRoomAndPeriod(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid room ID format")
		return
	}

	period := c.Param("period")
	reading, err := h.meterService.GetMeterReading(c.Request.Context(), roomID, period)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, reading)
}

// ListByRoom handles GET /rooms/:id/meter-readings
func (h *MeterReadingHandler) ListByRoom(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid room ID format")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	readings, err := h.meterService.ListMeterReadings(c.Request.Context(), roomID, req.Page, req.PageSize)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, readings)
}

// GetLatest handles GET /rooms/:id/meter-readings/latest
func (h *MeterReadingHandler) GetLatest(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid room ID format")
		return
	}

	reading, err := h.meterService.GetLatestMeterReading(c.Request.Context(), roomID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, reading)
}

// Delete handles DELETE /meter-readings/:id
func (h *MeterReadingHandler) Delete(c *gin.Context) {
	readingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid meter reading ID format")
		return
	}

	if err := h.meterService.DeleteMeterReading(c.Request.Context(), readingID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
