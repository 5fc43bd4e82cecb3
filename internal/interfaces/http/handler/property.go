package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	propertyapp "github.com/kostman/backend/internal/application/property"
	"github.com/kostman/backend/internal/interfaces/http/dto"
)

// PropertyHandler handles property-related API endpoints
type PropertyHandler struct {
	BaseHandler
	propertyService *propertyapp.PropertyService
}

// NewPropertyHandler creates a new PropertyHandler
func NewPropertyHandler(propertyService *propertyapp.PropertyService) *PropertyHandler {
	return &PropertyHandler{
		propertyService: propertyService,
	}
}

// Create handles POST /properties
func (h *PropertyHandler) Create(c *gin.Context) {
	var req propertyapp.SavePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	property, err := h.propertyService.CreateProperty(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, property)
}

// GetByID handles GET /properties/:id
func (h *PropertyHandler) GetByID(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	property, err := h.propertyService.GetProperty(c.Request.Context(), propertyID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, property)
}

// List handles GET /properties
func (h *PropertyHandler) List(c *gin.Context) {
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

	properties, total, err := h.propertyService.ListProperties(c.Request.Context(), req.Page, req.PageSize)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, properties, total, req.Page, req.PageSize)
}

// Update handles PUT /properties/:id
func (h *PropertyHandler) Update(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	var req propertyapp.SavePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	property, err := h.propertyService.UpdateProperty(c.Request.Context(), propertyID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, property)
}

// Delete handles DELETE /properties/:id
func (h *PropertyHandler) Delete(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	if err := h.propertyService.DeleteProperty(c.Request.Context(), propertyID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
