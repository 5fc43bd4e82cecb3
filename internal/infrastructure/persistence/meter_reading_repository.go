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

// GormMeterReadingRepository implements MeterReadingRepository using GORM
type GormMeterReadingRepository struct {
	db *gorm.DB
}

// NewGormMeterReadingRepository creates a new GormMeterReadingRepository
func NewGormMeterReadingRepository(db *gorm.DB) *GormMeterReadingRepository {
	return &GormMeterReadingRepository{db: db}
}

// FindByID finds a meter reading by its ID, returning nil when absent
func (r *GormMeterReadingRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.MeterReading, error) {
	var model models.MeterReadingModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByRoomAndPeriod finds the unique reading for a room and "YYYY-MM"
// period, or nil when absent
func (r *GormMeterReadingRepository) FindByRoomAndPeriod(ctx context.Context, roomID uuid.UUID, period string) (*billing.MeterReading, error) {
	var model models.MeterReadingModel
	if err := r.db.WithContext(ctx).
		Where("room_id = ? AND period = ?", roomID, period).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByRoom finds all readings for a room, newest period first
func (r *GormMeterReadingRepository) FindByRoom(ctx context.Context, roomID uuid.UUID, filter shared.Filter) ([]billing.MeterReading, error) {
	var readingModels []models.MeterReadingModel
	query := r.db.WithContext(ctx).Model(&models.MeterReadingModel{}).
		Where("room_id = ?", roomID)
	query = applyFilter(query, filter, MeterReadingSortFields, "period DESC")

	if err := query.Find(&readingModels).Error; err != nil {
		return nil, err
	}
	return toMeterReadingSlice(readingModels), nil
}

// FindLatestByRoom finds the most recent reading for a room, or nil when the
// room has none
func (r *GormMeterReadingRepository) FindLatestByRoom(ctx context.Context, roomID uuid.UUID) (*billing.MeterReading, error) {
	var model models.MeterReadingModel
	if err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("period DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all meter readings with filtering
func (r *GormMeterReadingRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.MeterReading, error) {
	var readingModels []models.MeterReadingModel
	query := r.db.WithContext(ctx).Model(&models.MeterReadingModel{})
	query = applyFilter(query, filter, MeterReadingSortFields, "period DESC")

	if err := query.Find(&readingModels).Error; err != nil {
		return nil, err
	}
	return toMeterReadingSlice(readingModels), nil
}

// Save creates or updates a meter reading
func (r *GormMeterReadingRepository) Save(ctx context.Context, reading *billing.MeterReading) error {
	model := models.MeterReadingModelFromDomain(reading)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a meter reading
func (r *GormMeterReadingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.MeterReadingModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts meter readings
func (r *GormMeterReadingRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.MeterReadingModel{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func toMeterReadingSlice(readingModels []models.MeterReadingModel) []billing.MeterReading {
	readings := make([]billing.MeterReading, len(readingModels))
	for i := range readingModels {
		readings[i] = *readingModels[i].ToDomain()
	}
	return readings
}

// Ensure GormMeterReadingRepository implements MeterReadingRepository
var _ billing.MeterReadingRepository = (*GormMeterReadingRepository)(nil)
