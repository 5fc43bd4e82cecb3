package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	billingapp "github.com/kostman/backend/internal/application/billing"
)

// BillHandler handles bill-related API endpoints
type BillHandler struct {
	BaseHandler
	billingService *billingapp.BillingService
}

// NewBillHandler creates a new BillHandler
func NewBillHandler(billingService *billingapp.BillingService) *BillHandler {
	return &BillHandler{
		billingService: billingService,
	}
}

// Generate handles POST /bills
func (h *BillHandler) Generate(c *gin.Context) {
	var req billingapp.GenerateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	bill, err := h.billingService.GenerateBill(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, bill)
}

// GetByID handles GET /bills/:id
func (h *BillHandler) GetByID(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid bill ID format")
		return
	}

	bill, err := h.billingService.GetBill(c.Request.Context(), billID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, bill)
}

// List handles GET /bills
func (h *BillHandler) List(c *gin.Context) {
	var filter billingapp.BillListFilter
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

	bills, total, err := h.billingService.ListBills(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, bills, total, filter.Page, filter.PageSize)
}

// ApplyPayment handles POST /bills/:id/payments
func (h *BillHandler) ApplyPayment(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid bill ID format")
		return
	}

	var req billingapp.ApplyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	bill, err := h.billingService.ApplyPayment(c.Request.Context(), billID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, bill)
}

// MarkPaid handles POST /bills/:id/mark-paid
func (h *BillHandler) MarkPaid(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid bill ID format")
		return
	}

	var req billingapp.MarkPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	bill, err := h.billingService.MarkBillPaid(c.Request.Context(), billID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, bill)
}

// RemovePayment handles DELETE /bills/:id/payments/:paymentId
func (h *BillHandler) RemovePayment(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid bill ID format")
		return
	}

	paymentID, err := uuid.Parse(c.Param("paymentId"))
	if err != nil {
		h.BadRequest(c, "Invalid payment ID format")
		return
	}

	bill, err := h.billingService.RemovePayment(c.Request.Context(), billID, paymentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, bill)
}

// UpdatePeriod handles PUT /bills/:id/period
func (h *BillHandler) UpdatePeriod(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid bill ID format")
		return
	}

	var req billingapp.UpdateBillPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	bill, err := h.billingService.UpdateBillPeriod(c.Request.Context(), billID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, bill)
}

// UpdateDetails handles PUT /bills/:id/details
func (h *BillHandler) UpdateDetails(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid bill ID format")
		return
	}

	var req billingapp.UpdateBillDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	bill, err := h.billingService.UpdateBillDetails(c.Request.Context(), billID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, bill)
}

// Delete handles DELETE /bills/:id
func (h *BillHandler) Delete(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid bill ID format")
		return
	}

	if err := h.billingService.DeleteBill(c.Request.Context(), billID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
