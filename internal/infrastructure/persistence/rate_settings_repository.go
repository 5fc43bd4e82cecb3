package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/kostman/backend/internal/domain/billing"
	"github.com/kostman/backend/internal/domain/shared"
	"github.com/kostman/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormRateSettingsRepository implements RateSettingsRepository using GORM
type GormRateSettingsRepository struct {
	db *gorm.DB
}

// NewGormRateSettingsRepository creates a new GormRateSettingsRepository
func NewGormRateSettingsRepository(db *gorm.DB) *GormRateSettingsRepository {
	return &GormRateSettingsRepository{db: db}
}

// FindByID finds rate settings by ID, returning nil when absent
func (r *GormRateSettingsRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.RateSettings, error) {
	var model models.RateSettingsModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindGlobal finds the global fallback row, or nil when unset
func (r *GormRateSettingsRepository) FindGlobal(ctx context.Context) (*billing.RateSettings, error) {
	var model models.RateSettingsModel
	if err := r.db.WithContext(ctx).
		Where("property_id IS NULL").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProperty finds the override row for a property, or nil when the
// property has none
func (r *GormRateSettingsRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID) (*billing.RateSettings, error) {
	var model models.RateSettingsModel
	if err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all rate settings rows
func (r *GormRateSettingsRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.RateSettings, error) {
	var settingsModels []models.RateSettingsModel
	query := r.db.WithContext(ctx).Model(&models.RateSettingsModel{})
	query = applyFilter(query, filter, CommonSortFields, "created_at DESC")

	if err := query.Find(&settingsModels).Error; err != nil {
		return nil, err
	}
	settings := make([]billing.RateSettings, len(settingsModels))
	for i := range settingsModels {
		settings[i] = *settingsModels[i].ToDomain()
	}
	return settings, nil
}

// Save creates or updates rate settings
func (r *GormRateSettingsRepository) Save(ctx context.Context, settings *billing.RateSettings) error {
	model := models.RateSettingsModelFromDomain(settings)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes rate settings
func (r *GormRateSettingsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.RateSettingsModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts rate settings rows
func (r *GormRateSettingsRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.RateSettingsModel{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormRateSettingsRepository implements RateSettingsRepository
var _ billing.RateSettingsRepository = (*GormRateSettingsRepository)(nil)
