package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	propertyapp "github.com/kostman/backend/internal/application/property"
	"github.com/kostman/backend/internal/interfaces/http/dto"
)

// TenantHandler handles tenant-related API endpoints
type TenantHandler struct {
	BaseHandler
	tenantService *propertyapp.TenantService
}

// NewTenantHandler creates a new TenantHandler
func NewTenantHandler(tenantService *propertyapp.TenantService) *TenantHandler {
	return &TenantHandler{
		tenantService: tenantService,
	}
}

// Create handles POST /tenants
func (h *TenantHandler) Create(c *gin.Context) {
	var req propertyapp.SaveTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tenant, err := h.tenantService.CreateTenant(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, tenant)
}

// GetByID handles GET /tenants/:id
func (h *TenantHandler) GetByID(c *gin.Context) {
	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID format")
		return
	}

	tenant, err := h.tenantService.GetTenant(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, tenant)
}

// List handles GET /tenants
func (h *TenantHandler) List(c *gin.Context) {
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

	tenants, total, err := h.tenantService.ListTenants(c.Request.Context(), req.Page, req.PageSize)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, tenants, total, req.Page, req.PageSize)
}

// Update handles PUT /tenants/:id
func (h *TenantHandler) Update(c *gin.Context) {
	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID format")
		return
	}

	var req propertyapp.SaveTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tenant, err := h.tenantService.UpdateTenant(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, tenant)
}

// Delete handles DELETE /tenants/:id
func (h *TenantHandler) Delete(c *gin.Context) {
	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID format")
		return
	}

	if err := h.tenantService.DeleteTenant(c.Request.Context(), tenantID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
