package expense

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kostman/backend/internal/domain/expense"
	"github.com/kostman/backend/internal/domain/property"
	"github.com/kostman/backend/internal/domain/shared"
	"github.com/kostman/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ExpenseService provides application-level expense operations
type ExpenseService struct {
	expenseRepo  expense.ExpenseRepository
	propertyRepo property.PropertyRepository
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenseRepo expense.ExpenseRepository, propertyRepo property.PropertyRepository) *ExpenseService {
	return &ExpenseService{
		expenseRepo:  expenseRepo,
		propertyRepo: propertyRepo,
	}
}

// SaveExpenseRequest is the input for creating or updating an expense
type SaveExpenseRequest struct {
	PropertyID  uuid.UUID       `json:"property_id" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	SpentAt     time.Time       `json:"spent_at" binding:"required"`
}

// ExpenseListFilter defines filtering options for expense list queries
type ExpenseListFilter struct {
	PropertyID *uuid.UUID `form:"property_id"`
	From       *time.Time `form:"from"`
	To         *time.Time `form:"to"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID          uuid.UUID       `json:"id"`
	PropertyID  uuid.UUID       `json:"property_id"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	SpentAt     time.Time       `json:"spent_at"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func toExpenseResponse(e *expense.Expense) *ExpenseResponse {
	return &ExpenseResponse{
		ID:          e.ID,
		PropertyID:  e.PropertyID,
		Category:    string(e.Category),
		Description: e.Description,
		Amount:      e.Amount.Amount(),
		SpentAt:     e.SpentAt,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// CreateExpense books an expense against a property
func (s *ExpenseService) CreateExpense(ctx context.Context, req SaveExpenseRequest) (*ExpenseResponse, error) {
	prop, err := s.propertyRepo.FindByID(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if prop == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Property not found")
	}

	exp, err := expense.NewExpense(req.PropertyID, expense.ExpenseCategory(req.Category),
		req.Description, valueobject.NewMoneyIDR(req.Amount), req.SpentAt)
	if err != nil {
		return nil, err
	}
	if err := s.expenseRepo.Save(ctx, exp); err != nil {
		return nil, err
	}
	return toExpenseResponse(exp), nil
}

// GetExpense gets an expense by ID
func (s *ExpenseService) GetExpense(ctx context.Context, id uuid.UUID) (*ExpenseResponse, error) {
	exp, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if exp == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Expense not found")
	}
	return toExpenseResponse(exp), nil
}

// ListExpenses lists expenses with filtering
func (s *ExpenseService) ListExpenses(ctx context.Context, filter ExpenseListFilter) ([]ExpenseResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	// Each branch pairs its finder with the matching count so the pagination
	// total reflects the filter, not the whole table
	var expenses []expense.Expense
	var total int64
	var err error
	switch {
	case filter.PropertyID != nil:
		if expenses, err = s.expenseRepo.FindByProperty(ctx, *filter.PropertyID, domainFilter); err == nil {
			total, err = s.expenseRepo.CountByProperty(ctx, *filter.PropertyID)
		}
	case filter.From != nil && filter.To != nil:
		if expenses, err = s.expenseRepo.FindBySpentRange(ctx, *filter.From, *filter.To, domainFilter); err == nil {
			total, err = s.expenseRepo.CountBySpentRange(ctx, *filter.From, *filter.To)
		}
	default:
		if expenses, err = s.expenseRepo.FindAll(ctx, domainFilter); err == nil {
			total, err = s.expenseRepo.Count(ctx, domainFilter)
		}
	}
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		responses[i] = *toExpenseResponse(&expenses[i])
	}
	return responses, total, nil
}

// MonthlyTotalResponse is one month's spending total in the summary
type MonthlyTotalResponse struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// GetMonthlySummary returns a property's spending summed per calendar
// month, oldest month first
func (s *ExpenseService) GetMonthlySummary(ctx context.Context, propertyID uuid.UUID) ([]MonthlyTotalResponse, error) {
	prop, err := s.propertyRepo.FindByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if prop == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Property not found")
	}

	totals, err := s.expenseRepo.MonthlyTotals(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	responses := make([]MonthlyTotalResponse, len(totals))
	for i, t := range totals {
		responses[i] = MonthlyTotalResponse{Month: t.Month, Total: t.Total}
	}
	return responses, nil
}

// UpdateExpense updates an expense's details
func (s *ExpenseService) UpdateExpense(ctx context.Context, id uuid.UUID, req SaveExpenseRequest) (*ExpenseResponse, error) {
	exp, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if exp == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Expense not found")
	}

	err = exp.Update(expense.ExpenseCategory(req.Category), req.Description,
		valueobject.NewMoneyIDR(req.Amount), req.SpentAt)
	if err != nil {
		return nil, err
	}
	if err := s.expenseRepo.Save(ctx, exp); err != nil {
		return nil, err
	}
	return toExpenseResponse(exp), nil
}

// DeleteExpense deletes an expense
func (s *ExpenseService) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	exp, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if exp == nil {
		return shared.NewDomainError("NOT_FOUND", "Expense not found")
	}
	return s.expenseRepo.Delete(ctx, id)
}
