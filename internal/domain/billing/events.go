package billing

import (
	"github.com/google/uuid"
	"github.com/kostman/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event types for the billing domain
const (
	EventTypeBillGenerated      = "billing.bill.generated"
	EventTypeBillPaymentApplied = "billing.bill.payment_applied"
	EventTypeBillPaid           = "billing.bill.paid"
	EventTypeBillPeriodChanged  = "billing.bill.period_changed"
	EventTypeBillDeleted        = "billing.bill.deleted"
	EventTypeMeterReadingSaved  = "billing.meter_reading.saved"
)

// BillGeneratedEvent is raised when a bill is generated for a room and period
type BillGeneratedEvent struct {
	shared.BaseDomainEvent
	BillNumber  string          `json:"bill_number"`
	RoomID      uuid.UUID       `json:"room_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// NewBillGeneratedEvent creates a new BillGeneratedEvent
func NewBillGeneratedEvent(b *Bill) *BillGeneratedEvent {
	return &BillGeneratedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBillGenerated, "Bill", b.ID),
		BillNumber:      b.BillNumber,
		RoomID:          b.RoomID,
		TotalAmount:     b.TotalAmount.Amount(),
	}
}

// BillPaymentAppliedEvent is raised when a partial payment lands on a bill
type BillPaymentAppliedEvent struct {
	shared.BaseDomainEvent
	BillNumber  string          `json:"bill_number"`
	PaymentID   uuid.UUID       `json:"payment_id"`
	Amount      decimal.Decimal `json:"amount"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// NewBillPaymentAppliedEvent creates a new BillPaymentAppliedEvent
func NewBillPaymentAppliedEvent(b *Bill, record PaymentRecord) *BillPaymentAppliedEvent {
	return &BillPaymentAppliedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBillPaymentApplied, "Bill", b.ID),
		BillNumber:      b.BillNumber,
		PaymentID:       record.ID,
		Amount:          record.Amount,
		Outstanding:     b.OutstandingAmount.Amount(),
	}
}

// BillPaidEvent is raised when a bill reaches the fully paid state
type BillPaidEvent struct {
	shared.BaseDomainEvent
	BillNumber  string          `json:"bill_number"`
	RoomID      uuid.UUID       `json:"room_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// NewBillPaidEvent creates a new BillPaidEvent
func NewBillPaidEvent(b *Bill) *BillPaidEvent {
	return &BillPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBillPaid, "Bill", b.ID),
		BillNumber:      b.BillNumber,
		RoomID:          b.RoomID,
		TotalAmount:     b.TotalAmount.Amount(),
	}
}
