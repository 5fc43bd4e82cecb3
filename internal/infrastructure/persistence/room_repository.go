package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/kostman/backend/internal/domain/property"
	"github.com/kostman/backend/internal/domain/shared"
	"github.com/kostman/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormRoomRepository implements RoomRepository using GORM
type GormRoomRepository struct {
	db *gorm.DB
}

// NewGormRoomRepository creates a new GormRoomRepository
func NewGormRoomRepository(db *gorm.DB) *GormRoomRepository {
	return &GormRoomRepository{db: db}
}

// FindByID finds a room by its ID, returning nil when absent
func (r *GormRoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Room, error) {
	var model models.RoomModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all rooms with filtering
func (r *GormRoomRepository) FindAll(ctx context.Context, filter shared.Filter) ([]property.Room, error) {
	var roomModels []models.RoomModel
	query := r.db.WithContext(ctx).Model(&models.RoomModel{})
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	query = applyFilter(query, filter, RoomSortFields, "name ASC")

	if err := query.Find(&roomModels).Error; err != nil {
		return nil, err
	}
	return toRoomSlice(roomModels), nil
}

// FindByProperty finds all rooms of a property
func (r *GormRoomRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) ([]property.Room, error) {
	var roomModels []models.RoomModel
	query := r.db.WithContext(ctx).Model(&models.RoomModel{}).
		Where("property_id = ?", propertyID)
	query = applyFilter(query, filter, RoomSortFields, "name ASC")

	if err := query.Find(&roomModels).Error; err != nil {
		return nil, err
	}
	return toRoomSlice(roomModels), nil
}

// FindByTenant finds the room a tenant currently occupies, or nil
func (r *GormRoomRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) (*property.Room, error) {
	var model models.RoomModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByStatus finds rooms in the given status
func (r *GormRoomRepository) FindByStatus(ctx context.Context, status property.RoomStatus, filter shared.Filter) ([]property.Room, error) {
	var roomModels []models.RoomModel
	query := r.db.WithContext(ctx).Model(&models.RoomModel{}).
		Where("status = ?", status)
	query = applyFilter(query, filter, RoomSortFields, "name ASC")

	if err := query.Find(&roomModels).Error; err != nil {
		return nil, err
	}
	return toRoomSlice(roomModels), nil
}

// Save creates or updates a room
func (r *GormRoomRepository) Save(ctx context.Context, room *property.Room) error {
	model := models.RoomModelFromDomain(room)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a room
func (r *GormRoomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.RoomModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts rooms
func (r *GormRoomRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.RoomModel{})
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func toRoomSlice(roomModels []models.RoomModel) []property.Room {
	rooms := make([]property.Room, len(roomModels))
	for i := range roomModels {
		rooms[i] = *roomModels[i].ToDomain()
	}
	return rooms
}

// Ensure GormRoomRepository implements RoomRepository
var _ property.RoomRepository = (*GormRoomRepository)(nil)
