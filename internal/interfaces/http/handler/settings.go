package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	billingapp "github.com/kostman/backend/internal/application/billing"
)

// SettingsHandler handles billing rate settings API endpoints
type SettingsHandler struct {
	BaseHandler
	settingsService *billingapp.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService *billingapp.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
	}
}

// Get handles GET /settings/rates
// Without a property_id query parameter the global rates are returned.
func (h *SettingsHandler) Get(c *gin.Context) {
	propertyID, err := parseOptionalPropertyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	settings, err := h.settingsService.GetSettings(c.Request.Context(), propertyID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, settings)
}

// Update handles PUT /settings/rates
func (h *SettingsHandler) Update(c *gin.Context) {
	var req billingapp.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, settings)
}

// parseOptionalPropertyID reads the property_id query parameter if present
func parseOptionalPropertyID(c *gin.Context) (*uuid.UUID, error) {
	raw := c.Query("property_id")
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
