package expense

import (
	"time"

	"github.com/google/uuid"
	"github.com/kostman/backend/internal/domain/shared"
	"github.com/kostman/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ExpenseCategory classifies an operating expense
type ExpenseCategory string

const (
	CategoryMaintenance ExpenseCategory = "MAINTENANCE"
	CategoryUtility     ExpenseCategory = "UTILITY"
	CategorySalary      ExpenseCategory = "SALARY"
	CategorySupplies    ExpenseCategory = "SUPPLIES"
	CategoryOther       ExpenseCategory = "OTHER"
)

// IsValid checks if the category is a valid ExpenseCategory
func (c ExpenseCategory) IsValid() bool {
	switch c {
	case CategoryMaintenance, CategoryUtility, CategorySalary, CategorySupplies, CategoryOther:
		return true
	}
	return false
}

// Expense is an operating cost booked against a property
type Expense struct {
	shared.BaseAggregateRoot
	PropertyID  uuid.UUID         `json:"property_id"`
	Category    ExpenseCategory   `json:"category"`
	Description string            `json:"description"`
	Amount      valueobject.Money `json:"amount"`
	SpentAt     time.Time         `json:"spent_at"`
}

// MonthlyTotal is the summed spending of a property for one calendar month.
// Month uses the "YYYY-MM" layout.
type MonthlyTotal struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// NewExpense creates an expense entry
func NewExpense(propertyID uuid.UUID, category ExpenseCategory, description string, amount valueobject.Money, spentAt time.Time) (*Expense, error) {
	if propertyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROPERTY", "Property ID cannot be empty")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Invalid expense category")
	}
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Expense description cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
	}
	return &Expense{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PropertyID:        propertyID,
		Category:          category,
		Description:       description,
		Amount:            amount,
		SpentAt:           spentAt,
	}, nil
}

// Update replaces the expense details
func (e *Expense) Update(category ExpenseCategory, description string, amount valueobject.Money, spentAt time.Time) error {
	if !category.IsValid() {
		return shared.NewDomainError("INVALID_CATEGORY", "Invalid expense category")
	}
	if description == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Expense description cannot be empty")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
	}
	e.Category = category
	e.Description = description
	e.Amount = amount
	e.SpentAt = spentAt
	e.IncrementVersion()
	return nil
}
