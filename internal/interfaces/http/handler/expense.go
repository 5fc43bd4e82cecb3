package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	expenseapp "github.com/kostman/backend/internal/application/expense"
)

// ExpenseHandler handles operating expense API endpoints
type ExpenseHandler struct {
	BaseHandler
	expenseService *expenseapp.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService *expenseapp.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
	}
}

// Create handles POST /expenses
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req expenseapp.SaveExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, expense)
}

// GetByID handles GET /expenses/:id
func (h *ExpenseHandler) GetByID(c *gin.Context) {
	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid expense ID format")
		return
	}

	expense, err := h.expenseService.GetExpense(c.Request.Context(), expenseID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, expense)
}

// List handles GET /expenses
func (h *ExpenseHandler) List(c *gin.Context) {
	var filter expenseapp.ExpenseListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.PageSize == 0 {
		filter.PageSize = 20
	}

	expenses, total, err := h.expenseService.ListExpenses(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, expenses, total, filter.Page, filter.PageSize)
}

// MonthlySummary handles GET /properties/:id/expense-summary
func (h *ExpenseHandler) MonthlySummary(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	totals, err := h.expenseService.GetMonthlySummary(c.Request.Context(), propertyID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, totals)
}

// Update handles PUT /expenses/:id
func (h *ExpenseHandler) Update(c *gin.Context) {
	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid expense ID format")
		return
	}

	var req expenseapp.SaveExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), expenseID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, expense)
}

// Delete handles DELETE /expenses/:id
func (h *ExpenseHandler) Delete(c *gin.Context) {
	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid expense ID format")
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), expenseID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
