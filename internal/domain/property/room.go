package property

import (
	"time"

	"github.com/google/uuid"
	"github.com/kostman/backend/internal/domain/shared"
	"github.com/kostman/backend/internal/domain/shared/valueobject"
)

// RoomStatus represents the occupancy status of a room
type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "AVAILABLE"
	RoomStatusOccupied    RoomStatus = "OCCUPIED"
	RoomStatusMaintenance RoomStatus = "MAINTENANCE"
)

// IsValid checks if the status is a valid RoomStatus
func (s RoomStatus) IsValid() bool {
	switch s {
	case RoomStatusAvailable, RoomStatusOccupied, RoomStatusMaintenance:
		return true
	}
	return false
}

// String returns the string representation of RoomStatus
func (s RoomStatus) String() string {
	return string(s)
}

// Room is a rentable unit within a property. Its base price, occupant count,
// trash-service flag and move-in date feed bill generation; deletion is only
// allowed once no bills reference it, which the application layer enforces.
type Room struct {
	shared.BaseAggregateRoot
	PropertyID      uuid.UUID         `json:"property_id"`
	Name            string            `json:"name"`
	BasePrice       valueobject.Money `json:"base_price"`
	Status          RoomStatus        `json:"status"`
	TenantID        *uuid.UUID        `json:"tenant_id"`
	UseTrashService bool              `json:"use_trash_service"`
	OccupantCount   int               `json:"occupant_count"`
	MoveInDate      *time.Time        `json:"move_in_date"`
	Notes           string            `json:"notes"`
}

// NewRoom creates an available room in a property
func NewRoom(propertyID uuid.UUID, name string, basePrice valueobject.Money, useTrashService bool) (*Room, error) {
	if propertyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROPERTY", "Property ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Room name cannot be empty")
	}
	if basePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Base price cannot be negative")
	}
	return &Room{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PropertyID:        propertyID,
		Name:              name,
		BasePrice:         basePrice,
		Status:            RoomStatusAvailable,
		UseTrashService:   useTrashService,
		OccupantCount:     1,
	}, nil
}

// Update replaces the mutable room attributes
func (r *Room) Update(name string, basePrice valueobject.Money, status RoomStatus, useTrashService bool, occupantCount int, notes string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Room name cannot be empty")
	}
	if basePrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Base price cannot be negative")
	}
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Invalid room status")
	}
	if occupantCount < 1 {
		return shared.NewDomainError("INVALID_OCCUPANTS", "Occupant count must be at least 1")
	}

	r.Name = name
	r.BasePrice = basePrice
	r.Status = status
	r.UseTrashService = useTrashService
	r.OccupantCount = occupantCount
	r.Notes = notes
	r.IncrementVersion()

	return nil
}

// AssignTenant moves a tenant in, stamping the move-in date and occupying
// the room
func (r *Room) AssignTenant(tenantID uuid.UUID, moveIn time.Time, occupantCount int) error {
	if tenantID == uuid.Nil {
		return shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if r.Status == RoomStatusOccupied {
		return shared.NewDomainError("INVALID_STATE", "Room is already occupied")
	}
	if r.Status == RoomStatusMaintenance {
		return shared.NewDomainError("INVALID_STATE", "Room is under maintenance")
	}
	if occupantCount < 1 {
		return shared.NewDomainError("INVALID_OCCUPANTS", "Occupant count must be at least 1")
	}

	r.TenantID = &tenantID
	r.MoveInDate = &moveIn
	r.OccupantCount = occupantCount
	r.Status = RoomStatusOccupied
	r.IncrementVersion()

	r.AddDomainEvent(NewTenantAssignedEvent(r, tenantID))

	return nil
}

// Vacate moves the tenant out and makes the room available again
func (r *Room) Vacate() error {
	if r.Status != RoomStatusOccupied {
		return shared.NewDomainError("INVALID_STATE", "Room is not occupied")
	}

	vacatedTenant := r.TenantID
	r.TenantID = nil
	r.MoveInDate = nil
	r.OccupantCount = 1
	r.Status = RoomStatusAvailable
	r.IncrementVersion()

	if vacatedTenant != nil {
		r.AddDomainEvent(NewRoomVacatedEvent(r, *vacatedTenant))
	}

	return nil
}

// IsOccupied reports whether a tenant currently lives in the room
func (r *Room) IsOccupied() bool {
	return r.Status == RoomStatusOccupied && r.TenantID != nil
}
