package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/kostman/backend/internal/domain/expense"
	"github.com/kostman/backend/internal/domain/shared"
	"github.com/kostman/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ExpenseModel is the persistence model for the Expense aggregate root.
type ExpenseModel struct {
	AggregateModel
	PropertyID  uuid.UUID               `gorm:"type:uuid;not null;index"`
	Category    expense.ExpenseCategory `gorm:"type:varchar(20);not null;index"`
	Description string                  `gorm:"type:varchar(500);not null"`
	Amount      decimal.Decimal         `gorm:"type:decimal(18,2);not null"`
	SpentAt     time.Time               `gorm:"type:date;not null;index"`
}

// TableName returns the table name for GORM
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToDomain converts the persistence model to a domain Expense entity.
func (m *ExpenseModel) ToDomain() *expense.Expense {
	return &expense.Expense{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		PropertyID:  m.PropertyID,
		Category:    m.Category,
		Description: m.Description,
		Amount:      valueobject.NewMoneyIDR(m.Amount),
		SpentAt:     m.SpentAt,
	}
}

// FromDomain populates the persistence model from a domain Expense entity.
func (m *ExpenseModel) FromDomain(e *expense.Expense) {
	m.FromDomainAggregateRoot(e.BaseAggregateRoot)
	m.PropertyID = e.PropertyID
	m.Category = e.Category
	m.Description = e.Description
	m.Amount = e.Amount.Amount()
	m.SpentAt = e.SpentAt
}

// ExpenseModelFromDomain creates a new persistence model from a domain Expense.
func ExpenseModelFromDomain(e *expense.Expense) *ExpenseModel {
	m := &ExpenseModel{}
	m.FromDomain(e)
	return m
}
