package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kostman/backend/internal/domain/billing"
	"github.com/kostman/backend/internal/domain/shared"
	"github.com/kostman/backend/internal/infrastructure/persistence/models"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GormBillRepository implements BillRepository using GORM
type GormBillRepository struct {
	db *gorm.DB
}

// NewGormBillRepository creates a new GormBillRepository
func NewGormBillRepository(db *gorm.DB) *GormBillRepository {
	return &GormBillRepository{db: db}
}

// FindByID finds a bill by its ID, returning nil when absent
func (r *GormBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Bill, error) {
	var model models.BillModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByBillNumber finds a bill by its human-facing number
func (r *GormBillRepository) FindByBillNumber(ctx context.Context, billNumber string) (*billing.Bill, error) {
	var model models.BillModel
	if err := r.db.WithContext(ctx).
		Where("bill_number = ?", billNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all bills with filtering
func (r *GormBillRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Bill, error) {
	var billModels []models.BillModel
	query := r.db.WithContext(ctx).Model(&models.BillModel{})
	query = applyFilter(query, filter, BillSortFields, "period_start DESC")

	if err := query.Find(&billModels).Error; err != nil {
		return nil, err
	}
	return toBillSlice(billModels), nil
}

// FindByRoom finds all bills for a room, newest period first
func (r *GormBillRepository) FindByRoom(ctx context.Context, roomID uuid.UUID, filter shared.Filter) ([]billing.Bill, error) {
	var billModels []models.BillModel
	query := r.db.WithContext(ctx).Model(&models.BillModel{}).
		Where("room_id = ?", roomID)
	query = applyFilter(query, filter, BillSortFields, "period_start DESC")

	if err := query.Find(&billModels).Error; err != nil {
		return nil, err
	}
	return toBillSlice(billModels), nil
}

// FindOverlapping finds bills of a room whose inclusive period intersects
// [start, end], optionally excluding one bill
func (r *GormBillRepository) FindOverlapping(ctx context.Context, roomID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]billing.Bill, error) {
	var billModels []models.BillModel
	query := r.db.WithContext(ctx).Model(&models.BillModel{}).
		Where("room_id = ? AND period_start <= ? AND period_end >= ?", roomID, end, start)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	if err := query.Order("period_start ASC").Find(&billModels).Error; err != nil {
		return nil, err
	}
	return toBillSlice(billModels), nil
}

// HasBillBefore reports whether the room has any bill starting before the
// given date
func (r *GormBillRepository) HasBillBefore(ctx context.Context, roomID uuid.UUID, before time.Time) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.BillModel{}).
		Where("room_id = ? AND period_start < ?", roomID, before).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByStatus finds bills in the given statuses
func (r *GormBillRepository) FindByStatus(ctx context.Context, statuses []billing.BillStatus, filter shared.Filter) ([]billing.Bill, error) {
	var billModels []models.BillModel
	query := r.db.WithContext(ctx).Model(&models.BillModel{}).
		Where("status IN ?", statuses)
	query = applyFilter(query, filter, BillSortFields, "period_start DESC")

	if err := query.Find(&billModels).Error; err != nil {
		return nil, err
	}
	return toBillSlice(billModels), nil
}

// FindInPeriodRange finds bills whose period intersects the inclusive
// [from, to] date range
func (r *GormBillRepository) FindInPeriodRange(ctx context.Context, from, to time.Time, filter shared.Filter) ([]billing.Bill, error) {
	var billModels []models.BillModel
	query := r.db.WithContext(ctx).Model(&models.BillModel{}).
		Where("period_start <= ? AND period_end >= ?", to, from)
	query = applyFilter(query, filter, BillSortFields, "period_start DESC")

	if err := query.Find(&billModels).Error; err != nil {
		return nil, err
	}
	return toBillSlice(billModels), nil
}

// FindUnpaidDueWithin finds unpaid bills whose period end falls on or before
// the given date, soonest due first
func (r *GormBillRepository) FindUnpaidDueWithin(ctx context.Context, dueBy time.Time) ([]billing.Bill, error) {
	var billModels []models.BillModel
	if err := r.db.WithContext(ctx).
		Where("status IN ? AND period_end <= ?",
			[]billing.BillStatus{billing.BillStatusPending, billing.BillStatusPartial}, dueBy).
		Order("period_end ASC").
		Find(&billModels).Error; err != nil {
		return nil, err
	}
	return toBillSlice(billModels), nil
}

// Save creates or updates a bill without a version check
func (r *GormBillRepository) Save(ctx context.Context, bill *billing.Bill) error {
	model := models.BillModelFromDomain(bill)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves with optimistic locking. The aggregate's version was
// bumped by the mutation, so the stored row must still hold version-1.
// The full column set is written so cleared fields (a removed PaidAt after a
// payment correction) persist too.
func (r *GormBillRepository) SaveWithLock(ctx context.Context, bill *billing.Bill) error {
	model := models.BillModelFromDomain(bill)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", bill.ID, bill.Version-1).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// CreateInPeriodGuard inserts the bill inside a serializable transaction that
// re-checks for overlapping periods on the same room. The service pre-checks
// too, but only this guard holds under concurrent generation: the isolation
// level forces one of two racing inserts to fail, and the bills_room_period
// exclusion constraint backstops the count for stores that downgrade it.
func (r *GormBillRepository) CreateInPeriodGuard(ctx context.Context, bill *billing.Bill) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.BillModel{}).
			Where("room_id = ? AND period_start <= ? AND period_end >= ?",
				bill.RoomID, bill.PeriodEnd, bill.PeriodStart).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return shared.ErrPeriodOverlap
		}
		return tx.Create(models.BillModelFromDomain(bill)).Error
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
	return translateBillWriteError(err)
}

// translateBillWriteError maps constraint and serialization failures raised
// by concurrent bill generation onto domain errors
func translateBillWriteError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23P01": // exclusion constraint on the room's period range
			return shared.ErrPeriodOverlap
		case "23505": // duplicate bill number minted by a concurrent generate
			return shared.NewDomainError("ALREADY_EXISTS", "Bill number already taken, retry generation")
		case "40001": // serialization failure
			return shared.ErrConcurrencyConflict
		}
	}
	return err
}

// Delete deletes a bill
func (r *GormBillRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.BillModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts bills
func (r *GormBillRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.BillModel{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByRoom counts how many bills reference the room
func (r *GormBillRepository) CountByRoom(ctx context.Context, roomID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.BillModel{}).
		Where("room_id = ?", roomID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts bills in the given statuses
func (r *GormBillRepository) CountByStatus(ctx context.Context, statuses []billing.BillStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.BillModel{}).
		Where("status IN ?", statuses).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountInPeriodRange counts bills whose period intersects the inclusive
// [from, to] date range
func (r *GormBillRepository) CountInPeriodRange(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.BillModel{}).
		Where("period_start <= ? AND period_end >= ?", to, from).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// NextBillNumber produces the next sequential bill number for a period.
// Format: KB-YYYYMM-XXXX, numbered within the period's month.
func (r *GormBillRepository) NextBillNumber(ctx context.Context, periodStart time.Time) (string, error) {
	prefix := fmt.Sprintf("KB-%s-", periodStart.Format("200601"))

	var maxNumber string
	if err := r.db.WithContext(ctx).
		Model(&models.BillModel{}).
		Select("bill_number").
		Where("bill_number LIKE ?", prefix+"%").
		Order("bill_number DESC").
		Limit(1).
		Pluck("bill_number", &maxNumber).Error; err != nil {
		return "", err
	}

	var nextNum int
	if maxNumber != "" {
		parts := strings.Split(maxNumber, "-")
		if len(parts) == 3 {
			fmt.Sscanf(parts[2], "%d", &nextNum)
		}
	}
	nextNum++

	return fmt.Sprintf("%s%04d", prefix, nextNum), nil
}

func toBillSlice(billModels []models.BillModel) []billing.Bill {
	bills := make([]billing.Bill, len(billModels))
	for i := range billModels {
		bills[i] = *billModels[i].ToDomain()
	}
	return bills
}

// Ensure GormBillRepository implements BillRepository
var _ billing.BillRepository = (*GormBillRepository)(nil)
