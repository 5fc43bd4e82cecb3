package expense

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kostman/backend/internal/domain/shared"
)

// ExpenseRepository defines the persistence operations for expenses
type ExpenseRepository interface {
	shared.Repository[Expense]

	// FindByProperty retrieves the expenses of a property, newest first
	FindByProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) ([]Expense, error)

	// FindBySpentRange retrieves expenses spent within the inclusive range
	FindBySpentRange(ctx context.Context, from, to time.Time, filter shared.Filter) ([]Expense, error)

	// CountByProperty counts the expenses booked against a property
	CountByProperty(ctx context.Context, propertyID uuid.UUID) (int64, error)

	// CountBySpentRange counts expenses spent within the inclusive range
	CountBySpentRange(ctx context.Context, from, to time.Time) (int64, error)

	// MonthlyTotals retrieves a property's spending summed per calendar
	// month, oldest month first
	MonthlyTotals(ctx context.Context, propertyID uuid.UUID) ([]MonthlyTotal, error)
}
