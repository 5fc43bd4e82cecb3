package property

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kostman/backend/internal/domain/property"
	"github.com/kostman/backend/internal/domain/shared"
)

// PropertyService provides application-level property operations
type PropertyService struct {
	propertyRepo property.PropertyRepository
	roomRepo     property.RoomRepository
}

// NewPropertyService creates a new PropertyService
func NewPropertyService(propertyRepo property.PropertyRepository, roomRepo property.RoomRepository) *PropertyService {
	return &PropertyService{
		propertyRepo: propertyRepo,
		roomRepo:     roomRepo,
	}
}

// SavePropertyRequest is the input for creating or updating a property
type SavePropertyRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// PropertyResponse represents a property in API responses
type PropertyResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toPropertyResponse(p *property.Property) *PropertyResponse {
	return &PropertyResponse{
		ID:        p.ID,
		Name:      p.Name,
		Address:   p.Address,
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// CreateProperty creates a property. Names are unique.
func (s *PropertyService) CreateProperty(ctx context.Context, req SavePropertyRequest) (*PropertyResponse, error) {
	existing, err := s.propertyRepo.FindByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A property with this name already exists")
	}

	prop, err := property.NewProperty(req.Name, req.Address, req.Notes)
	if err != nil {
		return nil, err
	}
	if err := s.propertyRepo.Save(ctx, prop); err != nil {
		return nil, err
	}
	return toPropertyResponse(prop), nil
}

// GetProperty gets a property by ID
func (s *PropertyService) GetProperty(ctx context.Context, id uuid.UUID) (*PropertyResponse, error) {
	prop, err := s.propertyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if prop == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Property not found")
	}
	return toPropertyResponse(prop), nil
}

// ListProperties lists properties
func (s *PropertyService) ListProperties(ctx context.Context, page, pageSize int) ([]PropertyResponse, int64, error) {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}

	props, err := s.propertyRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.propertyRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PropertyResponse, len(props))
	for i := range props {
		responses[i] = *toPropertyResponse(&props[i])
	}
	return responses, total, nil
}

// UpdateProperty updates a property's details
func (s *PropertyService) UpdateProperty(ctx context.Context, id uuid.UUID, req SavePropertyRequest) (*PropertyResponse, error) {
	prop, err := s.propertyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if prop == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Property not found")
	}

	if err := prop.Update(req.Name, req.Address, req.Notes); err != nil {
		return nil, err
	}
	if err := s.propertyRepo.Save(ctx, prop); err != nil {
		return nil, err
	}
	return toPropertyResponse(prop), nil
}

// DeleteProperty deletes a property that has no rooms left
func (s *PropertyService) DeleteProperty(ctx context.Context, id uuid.UUID) error {
	prop, err := s.propertyRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if prop == nil {
		return shared.NewDomainError("NOT_FOUND", "Property not found")
	}

	filter := shared.DefaultFilter()
	filter.PageSize = 1
	rooms, err := s.roomRepo.FindByProperty(ctx, id, filter)
	if err != nil {
		return err
	}
	if len(rooms) > 0 {
		return shared.NewDomainError("INVALID_STATE", "Property still has rooms")
	}

	return s.propertyRepo.Delete(ctx, id)
}
