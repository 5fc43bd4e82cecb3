package property

import (
	"github.com/google/uuid"
	"github.com/kostman/backend/internal/domain/shared"
)

// Event types for the property domain
const (
	EventTypeTenantAssigned = "property.room.tenant_assigned"
	EventTypeRoomVacated    = "property.room.vacated"
)

// TenantAssignedEvent is raised when a tenant moves into a room
type TenantAssignedEvent struct {
	shared.BaseDomainEvent
	RoomName string    `json:"room_name"`
	TenantID uuid.UUID `json:"tenant_id"`
}

// NewTenantAssignedEvent creates a new TenantAssignedEvent
func NewTenantAssignedEvent(r *Room, tenantID uuid.UUID) *TenantAssignedEvent {
	return &TenantAssignedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTenantAssigned, "Room", r.ID),
		RoomName:        r.Name,
		TenantID:        tenantID,
	}
}

// RoomVacatedEvent is raised when a tenant moves out of a room
type RoomVacatedEvent struct {
	shared.BaseDomainEvent
	RoomName string    `json:"room_name"`
	TenantID uuid.UUID `json:"tenant_id"`
}

// NewRoomVacatedEvent creates a new RoomVacatedEvent
func NewRoomVacatedEvent(r *Room, tenantID uuid.UUID) *RoomVacatedEvent {
	return &RoomVacatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRoomVacated, "Room", r.ID),
		RoomName:        r.Name,
		TenantID:        tenantID,
	}
}
