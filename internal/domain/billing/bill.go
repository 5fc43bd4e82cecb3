package billing

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kostman/backend/internal/domain/shared"
	"github.com/kostman/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// BillStatus represents the payment status of a bill
type BillStatus string

const (
	BillStatusPending BillStatus = "PENDING" // Unpaid, no payments applied
	BillStatusPartial BillStatus = "PARTIAL" // Partially paid, 0 < paid < total
	BillStatusPaid    BillStatus = "PAID"    // Fully paid; bill is immutable
)

// IsValid checks if the status is a valid BillStatus
func (s BillStatus) IsValid() bool {
	switch s {
	case BillStatusPending, BillStatusPartial, BillStatusPaid:
		return true
	}
	return false
}

// String returns the string representation of BillStatus
func (s BillStatus) String() string {
	return string(s)
}

// CanApplyPayment returns true if payments can be applied in this status
func (s BillStatus) CanApplyPayment() bool {
	return s == BillStatusPending || s == BillStatusPartial
}

// PaymentRecord represents a payment applied to a bill. It is a value object
// within the Bill aggregate, stored as JSONB.
type PaymentRecord struct {
	ID        uuid.UUID       `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method,omitempty"`
	Note      string          `json:"note,omitempty"`
	AppliedAt time.Time       `json:"applied_at"`
}

// GetAmountMoney returns the amount as a Money value object
func (p *PaymentRecord) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyIDR(p.Amount)
}

// PaymentRecords is a slice of PaymentRecord implementing the GORM
// Scanner/Valuer pair for JSONB storage
type PaymentRecords []PaymentRecord

// Value implements driver.Valuer for JSONB storage
func (p PaymentRecords) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	return json.Marshal(p)
}

// Scan implements sql.Scanner for JSONB retrieval
func (p *PaymentRecords) Scan(value interface{}) error {
	if value == nil {
		*p = PaymentRecords{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan PaymentRecords: unsupported type")
	}

	if len(bytes) == 0 {
		*p = PaymentRecords{}
		return nil
	}

	return json.Unmarshal(bytes, p)
}

// BillCharges holds the itemized charge lines of a bill. Total is always the
// exact decimal sum of the five lines.
type BillCharges struct {
	RoomCharge       valueobject.Money `json:"room_charge"`
	UsageCharge      valueobject.Money `json:"usage_charge"`
	WaterCharge      valueobject.Money `json:"water_charge"`
	TrashCharge      valueobject.Money `json:"trash_charge"`
	AdditionalCharge valueobject.Money `json:"additional_charge"`
}

// Total returns the exact sum of all charge lines
func (c BillCharges) Total() valueobject.Money {
	return c.RoomCharge.
		MustAdd(c.UsageCharge).
		MustAdd(c.WaterCharge).
		MustAdd(c.TrashCharge).
		MustAdd(c.AdditionalCharge)
}

// Bill is the aggregate root for a room's charges over one billing period.
// A single bill shape carries both the rent line and the utility lines; the
// embedded payment records support partial payment accumulation.
type Bill struct {
	shared.BaseAggregateRoot
	BillNumber        string            `json:"bill_number"`
	RoomID            uuid.UUID         `json:"room_id"`
	TenantID          *uuid.UUID        `json:"tenant_id"` // Copied from the room at generation time
	PeriodStart       time.Time         `json:"period_start"`
	PeriodEnd         time.Time         `json:"period_end"`
	MonthsCovered     decimal.Decimal   `json:"months_covered"`
	MeterStart        int64             `json:"meter_start"`
	MeterEnd          int64             `json:"meter_end"`
	ProrationFactor   decimal.Decimal   `json:"proration_factor"`
	Charges           BillCharges       `json:"charges" gorm:"embedded"`
	TotalAmount       valueobject.Money `json:"total_amount"`
	PaidAmount        valueobject.Money `json:"paid_amount"`
	OutstandingAmount valueobject.Money `json:"outstanding_amount"`
	Status            BillStatus        `json:"status"`
	Payments          PaymentRecords    `json:"payments"`
	Notes             string            `json:"notes"`
	PaidAt            *time.Time        `json:"paid_at"`
	GeneratedAt       time.Time         `json:"generated_at"`
}

// NewBill creates a bill for a room and period with precomputed charges
func NewBill(
	billNumber string,
	roomID uuid.UUID,
	tenantID *uuid.UUID,
	period BillingPeriod,
	meterStart, meterEnd int64,
	prorationFactor decimal.Decimal,
	charges BillCharges,
) (*Bill, error) {
	if billNumber == "" {
		return nil, shared.NewDomainError("INVALID_BILL_NUMBER", "Bill number cannot be empty")
	}
	if roomID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ROOM", "Room ID cannot be empty")
	}
	if err := validateMeterRange(meterStart, meterEnd); err != nil {
		return nil, err
	}
	if prorationFactor.IsNegative() || prorationFactor.GreaterThan(decimal.NewFromInt(1)) {
		return nil, shared.NewDomainError("INVALID_PRORATION", "Proration factor must be within [0,1]")
	}

	total := charges.Total()
	if total.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Bill total cannot be negative")
	}

	b := &Bill{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BillNumber:        billNumber,
		RoomID:            roomID,
		TenantID:          tenantID,
		PeriodStart:       period.Start,
		PeriodEnd:         period.End,
		MonthsCovered:     period.MonthsCovered,
		MeterStart:        meterStart,
		MeterEnd:          meterEnd,
		ProrationFactor:   prorationFactor,
		Charges:           charges,
		TotalAmount:       total,
		PaidAmount:        valueobject.ZeroIDR(),
		OutstandingAmount: total,
		Status:            BillStatusPending,
		Payments:          PaymentRecords{},
		GeneratedAt:       time.Now(),
	}

	b.AddDomainEvent(NewBillGeneratedEvent(b))

	return b, nil
}

// Period returns the billing period of this bill
func (b *Bill) Period() BillingPeriod {
	return BillingPeriod{
		Start:         b.PeriodStart,
		End:           b.PeriodEnd,
		MonthsCovered: b.MonthsCovered,
	}
}

// IsPaid returns true if the bill is fully paid
func (b *Bill) IsPaid() bool {
	return b.Status == BillStatusPaid
}

// EnsureMutable returns ErrBillPaid when the bill is fully paid. Every
// mutating operation checks this before any other validation.
func (b *Bill) EnsureMutable() error {
	if b.Status == BillStatusPaid {
		return shared.ErrBillPaid
	}
	return nil
}

// ApplyPayment applies a partial or full payment to the bill. A payment that
// would exceed the outstanding balance is rejected, not clamped. Reaching the
// full total flips the bill to PAID and stamps PaidAt.
func (b *Bill) ApplyPayment(amount valueobject.Money, method, note string) (*PaymentRecord, error) {
	if err := b.EnsureMutable(); err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if exceeds, err := amount.GreaterThan(b.OutstandingAmount); err != nil || exceeds {
		if err != nil {
			return nil, shared.NewDomainError("INVALID_AMOUNT", err.Error())
		}
		return nil, shared.NewDomainError("EXCEEDS_OUTSTANDING",
			fmt.Sprintf("Payment %s exceeds outstanding balance %s", amount, b.OutstandingAmount))
	}

	record := PaymentRecord{
		ID:        uuid.New(),
		Amount:    amount.Amount(),
		Method:    method,
		Note:      note,
		AppliedAt: time.Now(),
	}
	b.Payments = append(b.Payments, record)
	b.recalculatePaymentState()

	if b.Status == BillStatusPaid {
		b.AddDomainEvent(NewBillPaidEvent(b))
	} else {
		b.AddDomainEvent(NewBillPaymentAppliedEvent(b, record))
	}

	b.Touch()
	b.IncrementVersion()

	return &record, nil
}

// MarkPaid settles the entire outstanding balance in one step. Fails with
// InvalidState when the bill is already paid (second call rejects, it does
// not no-op).
func (b *Bill) MarkPaid(method, note string) error {
	if b.Status == BillStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Bill is already paid")
	}
	if b.OutstandingAmount.IsZero() {
		// A zero-total bill has nothing to collect, settle it directly
		now := time.Now()
		b.PaidAt = &now
		b.Status = BillStatusPaid
		b.AddDomainEvent(NewBillPaidEvent(b))
		b.Touch()
		b.IncrementVersion()
		return nil
	}
	_, err := b.ApplyPayment(b.OutstandingAmount, method, note)
	return err
}

// RemovePayment deletes a payment record and re-derives the paid amount and
// status from the remaining set. This is the one mutation allowed on a paid
// bill: correcting a wrongly recorded payment reopens it, so the paid flag
// is never stale.
func (b *Bill) RemovePayment(paymentID uuid.UUID) error {
	idx := -1
	for i := range b.Payments {
		if b.Payments[i].ID == paymentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return shared.NewDomainError("NOT_FOUND", "Payment record not found")
	}

	b.Payments = append(b.Payments[:idx], b.Payments[idx+1:]...)
	b.recalculatePaymentState()

	b.Touch()
	b.IncrementVersion()

	return nil
}

// recalculatePaymentState re-derives PaidAmount, OutstandingAmount, Status
// and PaidAt from the payment records
func (b *Bill) recalculatePaymentState() {
	paid := decimal.Zero
	for i := range b.Payments {
		paid = paid.Add(b.Payments[i].Amount)
	}
	b.PaidAmount = valueobject.NewMoneyIDR(paid)
	b.OutstandingAmount = b.TotalAmount.MustSubtract(b.PaidAmount)

	switch {
	case b.OutstandingAmount.IsZero() && paid.IsPositive():
		if b.Status != BillStatusPaid {
			now := time.Now()
			b.PaidAt = &now
		}
		b.Status = BillStatusPaid
	case paid.IsPositive():
		b.Status = BillStatusPartial
		b.PaidAt = nil
	default:
		b.Status = BillStatusPending
		b.PaidAt = nil
	}
}

// ApplyPeriodChange replaces the billing period and the period-derived charge
// lines (room, water, trash) while leaving the metered usage line and the
// additional charge untouched. The caller recomputes the replacement lines
// with the calculator. Refused on paid bills.
func (b *Bill) ApplyPeriodChange(period BillingPeriod, prorationFactor decimal.Decimal, roomCharge, waterCharge, trashCharge valueobject.Money) error {
	if err := b.EnsureMutable(); err != nil {
		return err
	}

	b.PeriodStart = period.Start
	b.PeriodEnd = period.End
	b.MonthsCovered = period.MonthsCovered
	b.ProrationFactor = prorationFactor
	b.Charges.RoomCharge = roomCharge
	b.Charges.WaterCharge = waterCharge
	b.Charges.TrashCharge = trashCharge

	return b.refreshTotals()
}

// UpdateDetails edits the mutable detail fields of an unpaid bill
func (b *Bill) UpdateDetails(additionalCharge valueobject.Money, notes string) error {
	if err := b.EnsureMutable(); err != nil {
		return err
	}
	if additionalCharge.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Additional charge cannot be negative")
	}

	b.Charges.AdditionalCharge = additionalCharge
	b.Notes = notes

	return b.refreshTotals()
}

// refreshTotals recomputes the total after a charge-line change, keeping the
// already-paid amount consistent with the new total
func (b *Bill) refreshTotals() error {
	total := b.Charges.Total()
	if less, _ := total.LessThan(b.PaidAmount); less {
		return shared.NewDomainError("INVALID_AMOUNT",
			fmt.Sprintf("New total %s is below the amount already paid %s", total, b.PaidAmount))
	}

	b.TotalAmount = total
	b.recalculatePaymentState()

	b.Touch()
	b.IncrementVersion()

	return nil
}

// Usage returns the metered kWh consumption billed
func (b *Bill) Usage() int64 {
	return b.MeterEnd - b.MeterStart
}

// PaymentCount returns the number of payments applied
func (b *Bill) PaymentCount() int {
	return len(b.Payments)
}
