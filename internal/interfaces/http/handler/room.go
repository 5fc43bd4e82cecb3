package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	propertyapp "github.com/kostman/backend/internal/application/property"
)

// RoomHandler handles room-related API endpoints
type RoomHandler struct {
	BaseHandler
	roomService *propertyapp.RoomService
}

// NewRoomHandler creates a new RoomHandler
func NewRoomHandler(roomService *propertyapp.RoomService) *RoomHandler {
	return &RoomHandler{
		roomService: roomService,
	}
}

// Create handles POST /rooms
func (h *RoomHandler) Create(c *gin.Context) {
	var req propertyapp.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	room, err := h.roomService.CreateRoom(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, room)
}

// GetByID handles GET /rooms/:id
func (h *RoomHandler) GetByID(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid room ID format")
		return
	}

	room, err := h.roomService.GetRoom(c.Request.Context(), roomID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, room)
}

// List handles GET /rooms
func (h *RoomHandler) List(c *gin.Context) {
	var filter propertyapp.RoomListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.PageSize == 0 {
		filter.PageSize = 20
	}

	rooms, total, err := h.roomService.ListRooms(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, rooms, total, filter.Page, filter.PageSize)
}

// Update handles PUT /rooms/:id
func (h *RoomHandler) Update(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid room ID format")
		return
	}

	var req propertyapp.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	room, err := h.roomService.UpdateRoom(c.Request.Context(), roomID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, room)
}

// AssignTenant handles POST /rooms/:id/assign-tenant
func (h *RoomHandler) AssignTenant(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid room ID format")
		return
	}

	var req propertyapp.AssignTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	room, err := h.roomService.AssignTenant(c.Request.Context(), roomID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, room)
}

// Vacate handles POST /rooms/:id/vacate
func (h *RoomHandler) Vacate(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid room ID format")
		return
	}

	room, err := h.roomService.VacateRoom(c.Request.Context(), roomID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, room)
}

// Delete handles DELETE /rooms/:id
func (h *RoomHandler) Delete(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid room ID format")
		return
	}

	if err := h.roomService.DeleteRoom(c.Request.Context(), roomID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
