package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/kostman/backend/internal/domain/expense"
	"github.com/kostman/backend/internal/domain/shared"
	"github.com/kostman/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormExpenseRepository implements ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByID finds an expense by its ID, returning nil when absent
func (r *GormExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*expense.Expense, error) {
	var model models.ExpenseModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all expenses with filtering
func (r *GormExpenseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]expense.Expense, error) {
	var expenseModels []models.ExpenseModel
	query := r.db.WithContext(ctx).Model(&models.ExpenseModel{})
	if filter.Search != "" {
		query = query.Where("description ILIKE ?", "%"+filter.Search+"%")
	}
	query = applyFilter(query, filter, ExpenseSortFields, "spent_at DESC")

	if err := query.Find(&expenseModels).Error; err != nil {
		return nil, err
	}
	return toExpenseSlice(expenseModels), nil
}

// FindByProperty finds the expenses of a property, newest first
func (r *GormExpenseRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) ([]expense.Expense, error) {
	var expenseModels []models.ExpenseModel
	query := r.db.WithContext(ctx).Model(&models.ExpenseModel{}).
		Where("property_id = ?", propertyID)
	query = applyFilter(query, filter, ExpenseSortFields, "spent_at DESC")

	if err := query.Find(&expenseModels).Error; err != nil {
		return nil, err
	}
	return toExpenseSlice(expenseModels), nil
}

// FindBySpentRange finds expenses spent within the inclusive range
func (r *GormExpenseRepository) FindBySpentRange(ctx context.Context, from, to time.Time, filter shared.Filter) ([]expense.Expense, error) {
	var expenseModels []models.ExpenseModel
	query := r.db.WithContext(ctx).Model(&models.ExpenseModel{}).
		Where("spent_at >= ? AND spent_at <= ?", from, to)
	query = applyFilter(query, filter, ExpenseSortFields, "spent_at DESC")

	if err := query.Find(&expenseModels).Error; err != nil {
		return nil, err
	}
	return toExpenseSlice(expenseModels), nil
}

// Save creates or updates an expense
func (r *GormExpenseRepository) Save(ctx context.Context, exp *expense.Expense) error {
	model := models.ExpenseModelFromDomain(exp)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes an expense
func (r *GormExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ExpenseModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts expenses
func (r *GormExpenseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ExpenseModel{})
	if filter.Search != "" {
		query = query.Where("description ILIKE ?", "%"+filter.Search+"%")
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByProperty counts the expenses booked against a property
func (r *GormExpenseRepository) CountByProperty(ctx context.Context, propertyID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ExpenseModel{}).
		Where("property_id = ?", propertyID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// CountBySpentRange counts expenses spent within the inclusive range
func (r *GormExpenseRepository) CountBySpentRange(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ExpenseModel{}).
		Where("spent_at >= ? AND spent_at <= ?", from, to).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// MonthlyTotals sums a property's spending per calendar month, oldest first
func (r *GormExpenseRepository) MonthlyTotals(ctx context.Context, propertyID uuid.UUID) ([]expense.MonthlyTotal, error) {
	var totals []expense.MonthlyTotal
	err := r.db.WithContext(ctx).Model(&models.ExpenseModel{}).
		Select("to_char(spent_at, 'YYYY-MM') AS month, SUM(amount) AS total").
		Where("property_id = ?", propertyID).
		Group("to_char(spent_at, 'YYYY-MM')").
		Order("month ASC").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return totals, nil
}

func toExpenseSlice(expenseModels []models.ExpenseModel) []expense.Expense {
	expenses := make([]expense.Expense, len(expenseModels))
	for i := range expenseModels {
		expenses[i] = *expenseModels[i].ToDomain()
	}
	return expenses
}

// Ensure GormExpenseRepository implements ExpenseRepository
var _ expense.ExpenseRepository = (*GormExpenseRepository)(nil)
