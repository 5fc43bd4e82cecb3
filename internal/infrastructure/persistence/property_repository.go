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

// GormPropertyRepository implements PropertyRepository using GORM
type GormPropertyRepository struct {
	db *gorm.DB
}

// NewGormPropertyRepository creates a new GormPropertyRepository
func NewGormPropertyRepository(db *gorm.DB) *GormPropertyRepository {
	return &GormPropertyRepository{db: db}
}

// FindByID finds a property by its ID, returning nil when absent
func (r *GormPropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	var model models.PropertyModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByName finds a property by its exact name, or nil when absent
func (r *GormPropertyRepository) FindByName(ctx context.Context, name string) (*property.Property, error) {
	var model models.PropertyModel
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all properties with filtering
func (r *GormPropertyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]property.Property, error) {
	var propertyModels []models.PropertyModel
	query := r.db.WithContext(ctx).Model(&models.PropertyModel{})
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR address ILIKE ?", searchPattern, searchPattern)
	}
	query = applyFilter(query, filter, PropertySortFields, "name ASC")

	if err := query.Find(&propertyModels).Error; err != nil {
		return nil, err
	}
	properties := make([]property.Property, len(propertyModels))
	for i := range propertyModels {
		properties[i] = *propertyModels[i].ToDomain()
	}
	return properties, nil
}

// Save creates or updates a property
func (r *GormPropertyRepository) Save(ctx context.Context, prop *property.Property) error {
	model := models.PropertyModelFromDomain(prop)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a property
func (r *GormPropertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PropertyModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts properties
func (r *GormPropertyRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.PropertyModel{})
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR address ILIKE ?", searchPattern, searchPattern)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormPropertyRepository implements PropertyRepository
var _ property.PropertyRepository = (*GormPropertyRepository)(nil)
