package property

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kostman/backend/internal/application"
	"github.com/kostman/backend/internal/domain/billing"
	"github.com/kostman/backend/internal/domain/property"
	"github.com/kostman/backend/internal/domain/shared"
	"github.com/kostman/backend/internal/domain/shared/valueobject"
	"github.com/kostman/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
)

// RoomService provides application-level room operations, including the
// tenancy lifecycle
type RoomService struct {
	roomRepo     property.RoomRepository
	propertyRepo property.PropertyRepository
	tenantRepo   property.TenantRepository
	billRepo     billing.BillRepository
}

// NewRoomService creates a new RoomService
func NewRoomService(
	roomRepo property.RoomRepository,
	propertyRepo property.PropertyRepository,
	tenantRepo property.TenantRepository,
	billRepo billing.BillRepository,
) *RoomService {
	return &RoomService{
		roomRepo:     roomRepo,
		propertyRepo: propertyRepo,
		tenantRepo:   tenantRepo,
		billRepo:     billRepo,
	}
}

// CreateRoomRequest is the input for creating a room
type CreateRoomRequest struct {
	PropertyID      uuid.UUID       `json:"property_id" binding:"required"`
	Name            string          `json:"name" binding:"required"`
	BasePrice       decimal.Decimal `json:"base_price" binding:"required"`
	UseTrashService bool            `json:"use_trash_service"`
}

// UpdateRoomRequest is the input for updating a room
type UpdateRoomRequest struct {
	Name            string          `json:"name" binding:"required"`
	BasePrice       decimal.Decimal `json:"base_price" binding:"required"`
	Status          string          `json:"status" binding:"required"`
	UseTrashService bool            `json:"use_trash_service"`
	OccupantCount   int             `json:"occupant_count" binding:"required"`
	Notes           string          `json:"notes"`
}

// AssignTenantRequest is the input for moving a tenant into a room
type AssignTenantRequest struct {
	TenantID      uuid.UUID `json:"tenant_id" binding:"required"`
	MoveInDate    time.Time `json:"move_in_date" binding:"required"`
	OccupantCount int       `json:"occupant_count"`
}

// RoomListFilter defines filtering options for room list queries
type RoomListFilter struct {
	PropertyID *uuid.UUID `form:"property_id"`
	Status     string     `form:"status"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
}

// RoomResponse represents a room in API responses
type RoomResponse struct {
	ID              uuid.UUID       `json:"id"`
	PropertyID      uuid.UUID       `json:"property_id"`
	Name            string          `json:"name"`
	BasePrice       decimal.Decimal `json:"base_price"`
	Status          string          `json:"status"`
	TenantID        *uuid.UUID      `json:"tenant_id,omitempty"`
	UseTrashService bool            `json:"use_trash_service"`
	OccupantCount   int             `json:"occupant_count"`
	MoveInDate      *time.Time      `json:"move_in_date,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func toRoomResponse(r *property.Room) *RoomResponse {
	return &RoomResponse{
		ID:              r.ID,
		PropertyID:      r.PropertyID,
		Name:            r.Name,
		BasePrice:       r.BasePrice.Amount(),
		Status:          r.Status.String(),
		TenantID:        r.TenantID,
		UseTrashService: r.UseTrashService,
		OccupantCount:   r.OccupantCount,
		MoveInDate:      r.MoveInDate,
		Notes:           r.Notes,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// CreateRoom creates a room in a property
func (s *RoomService) CreateRoom(ctx context.Context, req CreateRoomRequest) (*RoomResponse, error) {
	prop, err := s.propertyRepo.FindByID(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if prop == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Property not found")
	}

	room, err := property.NewRoom(req.PropertyID, req.Name, valueobject.NewMoneyIDR(req.BasePrice), req.UseTrashService)
	if err != nil {
		return nil, err
	}
	if err := s.roomRepo.Save(ctx, room); err != nil {
		return nil, err
	}
	return toRoomResponse(room), nil
}

// GetRoom gets a room by ID
func (s *RoomService) GetRoom(ctx context.Context, id uuid.UUID) (*RoomResponse, error) {
	room, err := s.roomRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Room not found")
	}
	return toRoomResponse(room), nil
}

// ListRooms lists rooms with filtering
func (s *RoomService) ListRooms(ctx context.Context, filter RoomListFilter) ([]RoomResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	var rooms []property.Room
	var err error
	switch {
	case filter.PropertyID != nil:
		rooms, err = s.roomRepo.FindByProperty(ctx, *filter.PropertyID, domainFilter)
	case filter.Status != "":
		status := property.RoomStatus(filter.Status)
		if !status.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_STATUS", "Invalid room status")
		}
		rooms, err = s.roomRepo.FindByStatus(ctx, status, domainFilter)
	default:
		rooms, err = s.roomRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.roomRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]RoomResponse, len(rooms))
	for i := range rooms {
		responses[i] = *toRoomResponse(&rooms[i])
	}
	return responses, total, nil
}

// UpdateRoom updates a room's attributes
func (s *RoomService) UpdateRoom(ctx context.Context, id uuid.UUID, req UpdateRoomRequest) (*RoomResponse, error) {
	room, err := s.roomRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Room not found")
	}

	err = room.Update(req.Name, valueobject.NewMoneyIDR(req.BasePrice),
		property.RoomStatus(req.Status), req.UseTrashService, req.OccupantCount, req.Notes)
	if err != nil {
		return nil, err
	}
	if err := s.roomRepo.Save(ctx, room); err != nil {
		return nil, err
	}
	return toRoomResponse(room), nil
}

// AssignTenant moves a tenant into a room
func (s *RoomService) AssignTenant(ctx context.Context, roomID uuid.UUID, req AssignTenantRequest) (*RoomResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "room", "assign_tenant")
	defer span.End()

	telemetry.SetAttributes(span,
		telemetry.SpanAttrRoomID, roomID.String(),
		telemetry.SpanAttrTenantID, req.TenantID.String(),
	)

	room, err := s.roomRepo.FindByID(ctx, roomID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if room == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Room not found")
	}

	tenant, err := s.tenantRepo.FindByID(ctx, req.TenantID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if tenant == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Tenant not found")
	}

	occupied, err := s.roomRepo.FindByTenant(ctx, req.TenantID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if occupied != nil {
		return nil, shared.NewDomainError("INVALID_STATE", "Tenant already occupies a room")
	}

	occupants := req.OccupantCount
	if occupants < 1 {
		occupants = 1
	}
	if err := room.AssignTenant(req.TenantID, billing.NormalizeDate(req.MoveInDate), occupants); err != nil {
		return nil, err
	}
	if err := s.roomRepo.Save(ctx, room); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	application.LogDomainEvents(ctx, room)
	return toRoomResponse(room), nil
}

// VacateRoom moves the current tenant out of a room
func (s *RoomService) VacateRoom(ctx context.Context, roomID uuid.UUID) (*RoomResponse, error) {
	room, err := s.roomRepo.FindByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Room not found")
	}

	if err := room.Vacate(); err != nil {
		return nil, err
	}
	if err := s.roomRepo.Save(ctx, room); err != nil {
		return nil, err
	}
	application.LogDomainEvents(ctx, room)
	return toRoomResponse(room), nil
}

// DeleteRoom deletes a room that no bills reference
func (s *RoomService) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	room, err := s.roomRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if room == nil {
		return shared.NewDomainError("NOT_FOUND", "Room not found")
	}

	billCount, err := s.billRepo.CountByRoom(ctx, id)
	if err != nil {
		return err
	}
	if billCount > 0 {
		return shared.NewDomainError("INVALID_STATE", "Room still has bills")
	}

	return s.roomRepo.Delete(ctx, id)
}
