package property

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kostman/backend/internal/domain/property"
	"github.com/kostman/backend/internal/domain/shared"
)

// TenantService provides application-level tenant operations
type TenantService struct {
	tenantRepo property.TenantRepository
	roomRepo   property.RoomRepository
}

// NewTenantService creates a new TenantService
func NewTenantService(tenantRepo property.TenantRepository, roomRepo property.RoomRepository) *TenantService {
	return &TenantService{
		tenantRepo: tenantRepo,
		roomRepo:   roomRepo,
	}
}

// SaveTenantRequest is the input for creating or updating a tenant
type SaveTenantRequest struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
	IDNumber string `json:"id_number"`
	Notes    string `json:"notes"`
}

// TenantResponse represents a tenant in API responses
type TenantResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Phone     string     `json:"phone,omitempty"`
	IDNumber  string     `json:"id_number,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	RoomID    *uuid.UUID `json:"room_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func toTenantResponse(t *property.Tenant, room *property.Room) *TenantResponse {
	resp := &TenantResponse{
		ID:        t.ID,
		Name:      t.Name,
		Phone:     t.Phone,
		IDNumber:  t.IDNumber,
		Notes:     t.Notes,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
	if room != nil {
		resp.RoomID = &room.ID
	}
	return resp
}

// CreateTenant creates a tenant
func (s *TenantService) CreateTenant(ctx context.Context, req SaveTenantRequest) (*TenantResponse, error) {
	tenant, err := property.NewTenant(req.Name, req.Phone, req.IDNumber, req.Notes)
	if err != nil {
		return nil, err
	}
	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}
	return toTenantResponse(tenant, nil), nil
}

// GetTenant gets a tenant by ID, including the room they occupy
func (s *TenantService) GetTenant(ctx context.Context, id uuid.UUID) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Tenant not found")
	}

	room, err := s.roomRepo.FindByTenant(ctx, id)
	if err != nil {
		return nil, err
	}
	return toTenantResponse(tenant, room), nil
}

// ListTenants lists tenants
func (s *TenantService) ListTenants(ctx context.Context, page, pageSize int) ([]TenantResponse, int64, error) {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}

	tenants, err := s.tenantRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.tenantRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]TenantResponse, len(tenants))
	for i := range tenants {
		responses[i] = *toTenantResponse(&tenants[i], nil)
	}
	return responses, total, nil
}

// UpdateTenant updates a tenant's details
func (s *TenantService) UpdateTenant(ctx context.Context, id uuid.UUID, req SaveTenantRequest) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Tenant not found")
	}

	if err := tenant.Update(req.Name, req.Phone, req.IDNumber, req.Notes); err != nil {
		return nil, err
	}
	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}
	return toTenantResponse(tenant, nil), nil
}

// DeleteTenant deletes a tenant who does not occupy a room
func (s *TenantService) DeleteTenant(ctx context.Context, id uuid.UUID) error {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if tenant == nil {
		return shared.NewDomainError("NOT_FOUND", "Tenant not found")
	}

	room, err := s.roomRepo.FindByTenant(ctx, id)
	if err != nil {
		return err
	}
	if room != nil {
		return shared.NewDomainError("INVALID_STATE", "Tenant still occupies a room")
	}

	return s.tenantRepo.Delete(ctx, id)
}
