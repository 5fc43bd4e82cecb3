package property

import (
	"context"

	"github.com/google/uuid"
	"github.com/kostman/backend/internal/domain/shared"
)

// PropertyRepository defines the persistence operations for properties
type PropertyRepository interface {
	shared.Repository[Property]

	// FindByName retrieves a property by its exact name, or nil when absent
	FindByName(ctx context.Context, name string) (*Property, error)
}

// RoomRepository defines the persistence operations for rooms
type RoomRepository interface {
	shared.Repository[Room]

	// FindByProperty retrieves all rooms of a property
	FindByProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) ([]Room, error)

	// FindByTenant retrieves the room a tenant currently occupies, or nil
	FindByTenant(ctx context.Context, tenantID uuid.UUID) (*Room, error)

	// FindByStatus retrieves rooms in the given status
	FindByStatus(ctx context.Context, status RoomStatus, filter shared.Filter) ([]Room, error)
}

// TenantRepository defines the persistence operations for tenants
type TenantRepository interface {
	shared.Repository[Tenant]

	// FindByPhone retrieves a tenant by phone number, or nil when absent
	FindByPhone(ctx context.Context, phone string) (*Tenant, error)
}
