package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kostman/backend/internal/application"
	"github.com/kostman/backend/internal/domain/billing"
	"github.com/kostman/backend/internal/domain/property"
	"github.com/kostman/backend/internal/domain/shared"
	"github.com/kostman/backend/internal/domain/shared/valueobject"
	"github.com/kostman/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
)

// RateCardResolver resolves the effective rate card for a property
type RateCardResolver interface {
	ResolveRateCard(ctx context.Context, propertyID uuid.UUID) (billing.RateCard, error)
}

// BillingService provides application-level billing operations
type BillingService struct {
	billRepo   billing.BillRepository
	meterRepo  billing.MeterReadingRepository
	roomRepo   property.RoomRepository
	rates      RateCardResolver
	calculator *billing.BillCalculator
}

// NewBillingService creates a new BillingService
func NewBillingService(
	billRepo billing.BillRepository,
	meterRepo billing.MeterReadingRepository,
	roomRepo property.RoomRepository,
	rates RateCardResolver,
) *BillingService {
	return &BillingService{
		billRepo:   billRepo,
		meterRepo:  meterRepo,
		roomRepo:   roomRepo,
		rates:      rates,
		calculator: billing.NewBillCalculator(),
	}
}

// ===================== DTOs =====================

// GenerateBillRequest is the input for generating a bill. Callers supply
// either an explicit period_start (with optional months_covered) or a legacy
// "YYYY-MM" period covering that calendar month.
type GenerateBillRequest struct {
	RoomID           uuid.UUID       `json:"room_id" binding:"required"`
	PeriodStart      time.Time       `json:"period_start"`
	MonthsCovered    int             `json:"months_covered"`
	Period           string          `json:"period" binding:"omitempty,billing_period"`
	AdditionalCharge decimal.Decimal `json:"additional_charge"`
	Notes            string          `json:"notes"`
}

// resolveRequestPeriod builds the billing period from whichever period shape
// the request carries
func resolveRequestPeriod(req GenerateBillRequest) (billing.BillingPeriod, error) {
	if req.Period != "" {
		return billing.NewBillingPeriodFromLegacy(req.Period)
	}
	if req.PeriodStart.IsZero() {
		return billing.BillingPeriod{}, shared.NewDomainError("INVALID_INPUT", "Either period or period_start is required")
	}
	months := req.MonthsCovered
	if months < 1 {
		months = 1
	}
	return billing.NewBillingPeriodFromStart(billing.NormalizeDate(req.PeriodStart), months)
}

// ApplyPaymentRequest is the input for applying a payment to a bill
type ApplyPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Method string          `json:"method"`
	Note   string          `json:"note"`
}

// MarkPaidRequest is the input for settling a bill in full
type MarkPaidRequest struct {
	Method string `json:"method"`
	Note   string `json:"note"`
}

// UpdateBillPeriodRequest is the input for changing a bill's period
type UpdateBillPeriodRequest struct {
	PeriodStart   time.Time `json:"period_start" binding:"required"`
	MonthsCovered int       `json:"months_covered" binding:"required"`
}

// UpdateBillDetailsRequest is the input for editing an unpaid bill's details
type UpdateBillDetailsRequest struct {
	AdditionalCharge decimal.Decimal `json:"additional_charge"`
	Notes            string          `json:"notes"`
}

// BillListFilter defines filtering options for bill list queries. From and
// To select bills whose period intersects the inclusive date range.
type BillListFilter struct {
	RoomID   *uuid.UUID `form:"room_id"`
	Status   string     `form:"status"`
	From     *time.Time `form:"from" time_format:"2006-01-02"`
	To       *time.Time `form:"to" time_format:"2006-01-02"`
	Page     int        `form:"page"`
	PageSize int        `form:"page_size"`
}

// PaymentRecordResponse represents a payment record in API responses
type PaymentRecordResponse struct {
	ID        uuid.UUID       `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method,omitempty"`
	Note      string          `json:"note,omitempty"`
	AppliedAt time.Time       `json:"applied_at"`
}

// BillResponse represents a bill in API responses
type BillResponse struct {
	ID                uuid.UUID               `json:"id"`
	BillNumber        string                  `json:"bill_number"`
	RoomID            uuid.UUID               `json:"room_id"`
	TenantID          *uuid.UUID              `json:"tenant_id,omitempty"`
	PeriodStart       time.Time               `json:"period_start"`
	PeriodEnd         time.Time               `json:"period_end"`
	MonthsCovered     decimal.Decimal         `json:"months_covered"`
	MeterStart        int64                   `json:"meter_start"`
	MeterEnd          int64                   `json:"meter_end"`
	ProrationFactor   decimal.Decimal         `json:"proration_factor"`
	RoomCharge        decimal.Decimal         `json:"room_charge"`
	UsageCharge       decimal.Decimal         `json:"usage_charge"`
	WaterCharge       decimal.Decimal         `json:"water_charge"`
	TrashCharge       decimal.Decimal         `json:"trash_charge"`
	AdditionalCharge  decimal.Decimal         `json:"additional_charge"`
	TotalAmount       decimal.Decimal         `json:"total_amount"`
	PaidAmount        decimal.Decimal         `json:"paid_amount"`
	OutstandingAmount decimal.Decimal         `json:"outstanding_amount"`
	Status            string                  `json:"status"`
	Payments          []PaymentRecordResponse `json:"payments,omitempty"`
	Notes             string                  `json:"notes,omitempty"`
	PaidAt            *time.Time              `json:"paid_at,omitempty"`
	GeneratedAt       time.Time               `json:"generated_at"`
	CreatedAt         time.Time               `json:"created_at"`
	UpdatedAt         time.Time               `json:"updated_at"`
	Version           int                     `json:"version"`
}

func toBillResponse(b *billing.Bill) *BillResponse {
	payments := make([]PaymentRecordResponse, len(b.Payments))
	for i, p := range b.Payments {
		payments[i] = PaymentRecordResponse{
			ID:        p.ID,
			Amount:    p.Amount,
			Method:    p.Method,
			Note:      p.Note,
			AppliedAt: p.AppliedAt,
		}
	}
	return &BillResponse{
		ID:                b.ID,
		BillNumber:        b.BillNumber,
		RoomID:            b.RoomID,
		TenantID:          b.TenantID,
		PeriodStart:       b.PeriodStart,
		PeriodEnd:         b.PeriodEnd,
		MonthsCovered:     b.MonthsCovered,
		MeterStart:        b.MeterStart,
		MeterEnd:          b.MeterEnd,
		ProrationFactor:   b.ProrationFactor,
		RoomCharge:        b.Charges.RoomCharge.Amount(),
		UsageCharge:       b.Charges.UsageCharge.Amount(),
		WaterCharge:       b.Charges.WaterCharge.Amount(),
		TrashCharge:       b.Charges.TrashCharge.Amount(),
		AdditionalCharge:  b.Charges.AdditionalCharge.Amount(),
		TotalAmount:       b.TotalAmount.Amount(),
		PaidAmount:        b.PaidAmount.Amount(),
		OutstandingAmount: b.OutstandingAmount.Amount(),
		Status:            b.Status.String(),
		Payments:          payments,
		Notes:             b.Notes,
		PaidAt:            b.PaidAt,
		GeneratedAt:       b.GeneratedAt,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
		Version:           b.Version,
	}
}

// ===================== Operations =====================

// GenerateBill generates a bill for a room and period. The room's meter
// reading for the period's starting month supplies the electricity line, and
// overlap with existing bills of the room is rejected.
func (s *BillingService) GenerateBill(ctx context.Context, req GenerateBillRequest) (*BillResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "bill", "generate")
	defer span.End()

	telemetry.SetAttributes(span,
		telemetry.SpanAttrRoomID, req.RoomID.String(),
	)

	if req.AdditionalCharge.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Additional charge cannot be negative")
	}

	period, err := resolveRequestPeriod(req)
	if err != nil {
		return nil, err
	}
	telemetry.SetAttributes(span,
		telemetry.SpanAttrPeriod, period.Start.Format("2006-01-02"),
	)

	room, err := s.roomRepo.FindByID(ctx, req.RoomID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if room == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Room not found")
	}

	overlapping, err := s.billRepo.FindOverlapping(ctx, room.ID, period.Start, period.End, nil)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if len(overlapping) > 0 {
		return nil, shared.NewDomainError("PERIOD_OVERLAP",
			fmt.Sprintf("Room already has bill %s covering part of this period", overlapping[0].BillNumber))
	}

	meterPeriod := period.Start.Format(billing.LegacyPeriodLayout)
	reading, err := s.meterRepo.FindByRoomAndPeriod(ctx, room.ID, meterPeriod)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if reading == nil {
		return nil, shared.NewDomainError("NOT_FOUND",
			fmt.Sprintf("No meter reading recorded for room in period %s", meterPeriod))
	}

	rates, err := s.rates.ResolveRateCard(ctx, room.PropertyID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	hasEarlier, err := s.billRepo.HasBillBefore(ctx, room.ID, period.Start)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	factor := s.calculator.ResolveProrationFactor(room.MoveInDate, period, hasEarlier)

	charges, err := s.calculator.Calculate(billing.CalculationInput{
		BasePrice:        room.BasePrice,
		OccupantCount:    room.OccupantCount,
		UseTrashService:  room.UseTrashService,
		Period:           period,
		ProrationFactor:  factor,
		MeterStart:       reading.MeterStart,
		MeterEnd:         reading.MeterEnd,
		Rates:            rates,
		AdditionalCharge: valueobject.NewMoneyIDR(req.AdditionalCharge),
	})
	if err != nil {
		return nil, err
	}

	billNumber, err := s.billRepo.NextBillNumber(ctx, period.Start)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	bill, err := billing.NewBill(billNumber, room.ID, room.TenantID, period,
		reading.MeterStart, reading.MeterEnd, factor, charges)
	if err != nil {
		return nil, err
	}
	bill.Notes = req.Notes

	// The guard re-checks overlap inside the insert transaction, so two
	// concurrent generations for the same room cannot both land
	if err := s.billRepo.CreateInPeriodGuard(ctx, bill); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	application.LogDomainEvents(ctx, bill)

	telemetry.SetAttributes(span,
		telemetry.SpanAttrBillNumber, bill.BillNumber,
		telemetry.SpanAttrAmount, bill.TotalAmount.StringFixed(2),
	)

	return toBillResponse(bill), nil
}

// GetBill gets a bill by ID
func (s *BillingService) GetBill(ctx context.Context, id uuid.UUID) (*BillResponse, error) {
	bill, err := s.billRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Bill not found")
	}
	return toBillResponse(bill), nil
}

// ListBills lists bills with filtering
func (s *BillingService) ListBills(ctx context.Context, filter BillListFilter) ([]BillResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	// Each branch pairs its finder with the matching count so the pagination
	// total reflects the filter, not the whole table
	var bills []billing.Bill
	var total int64
	var err error
	switch {
	case filter.RoomID != nil:
		if bills, err = s.billRepo.FindByRoom(ctx, *filter.RoomID, domainFilter); err == nil {
			total, err = s.billRepo.CountByRoom(ctx, *filter.RoomID)
		}
	case filter.Status != "":
		status := billing.BillStatus(filter.Status)
		if !status.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_STATUS", "Invalid bill status")
		}
		statuses := []billing.BillStatus{status}
		if bills, err = s.billRepo.FindByStatus(ctx, statuses, domainFilter); err == nil {
			total, err = s.billRepo.CountByStatus(ctx, statuses)
		}
	case filter.From != nil || filter.To != nil:
		from, to, rangeErr := resolvePeriodRange(filter.From, filter.To)
		if rangeErr != nil {
			return nil, 0, rangeErr
		}
		if bills, err = s.billRepo.FindInPeriodRange(ctx, from, to, domainFilter); err == nil {
			total, err = s.billRepo.CountInPeriodRange(ctx, from, to)
		}
	default:
		if bills, err = s.billRepo.FindAll(ctx, domainFilter); err == nil {
			total, err = s.billRepo.Count(ctx, domainFilter)
		}
	}
	if err != nil {
		return nil, 0, err
	}

	responses := make([]BillResponse, len(bills))
	for i := range bills {
		responses[i] = *toBillResponse(&bills[i])
	}
	return responses, total, nil
}

// resolvePeriodRange fills in the open side of a half-bounded date range and
// rejects an inverted one
func resolvePeriodRange(from, to *time.Time) (time.Time, time.Time, error) {
	start := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
	if from != nil {
		start = billing.NormalizeDate(*from)
	}
	if to != nil {
		end = billing.NormalizeDate(*to)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, shared.NewDomainError("INVALID_INPUT", "Range end is before range start")
	}
	return start, end, nil
}

// ApplyPayment applies a partial or full payment to a bill. Concurrent
// payments against the same bill are serialized by the optimistic lock.
func (s *BillingService) ApplyPayment(ctx context.Context, billID uuid.UUID, req ApplyPaymentRequest) (*BillResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "bill", "apply_payment")
	defer span.End()

	telemetry.SetAttributes(span,
		telemetry.SpanAttrBillID, billID.String(),
		telemetry.SpanAttrAmount, req.Amount.String(),
	)

	bill, err := s.billRepo.FindByID(ctx, billID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if bill == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Bill not found")
	}

	if _, err := bill.ApplyPayment(valueobject.NewMoneyIDR(req.Amount), req.Method, req.Note); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.billRepo.SaveWithLock(ctx, bill); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	application.LogDomainEvents(ctx, bill)

	telemetry.AddEvent(span, "payment_applied",
		telemetry.SpanAttrBillStatus, bill.Status.String(),
	)

	return toBillResponse(bill), nil
}

// MarkBillPaid settles a bill's entire outstanding balance
func (s *BillingService) MarkBillPaid(ctx context.Context, billID uuid.UUID, req MarkPaidRequest) (*BillResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "bill", "mark_paid")
	defer span.End()

	bill, err := s.billRepo.FindByID(ctx, billID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if bill == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Bill not found")
	}

	if err := bill.MarkPaid(req.Method, req.Note); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.billRepo.SaveWithLock(ctx, bill); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	application.LogDomainEvents(ctx, bill)

	return toBillResponse(bill), nil
}

// RemovePayment deletes a payment record from a bill, re-deriving the paid
// state from the remaining payments
func (s *BillingService) RemovePayment(ctx context.Context, billID, paymentID uuid.UUID) (*BillResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "bill", "remove_payment")
	defer span.End()

	bill, err := s.billRepo.FindByID(ctx, billID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if bill == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Bill not found")
	}

	if err := bill.RemovePayment(paymentID); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.billRepo.SaveWithLock(ctx, bill); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	return toBillResponse(bill), nil
}

// UpdateBillPeriod changes the period of an unpaid bill. The rent, water and
// trash lines are recomputed from the room and current rates; the metered
// usage line is kept as-is.
func (s *BillingService) UpdateBillPeriod(ctx context.Context, billID uuid.UUID, req UpdateBillPeriodRequest) (*BillResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "bill", "update_period")
	defer span.End()

	bill, err := s.billRepo.FindByID(ctx, billID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if bill == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Bill not found")
	}
	if err := bill.EnsureMutable(); err != nil {
		return nil, err
	}

	room, err := s.roomRepo.FindByID(ctx, bill.RoomID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if room == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Room not found")
	}

	period, err := billing.NewBillingPeriodFromStart(billing.NormalizeDate(req.PeriodStart), req.MonthsCovered)
	if err != nil {
		return nil, err
	}

	overlapping, err := s.billRepo.FindOverlapping(ctx, bill.RoomID, period.Start, period.End, &bill.ID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if len(overlapping) > 0 {
		return nil, shared.NewDomainError("PERIOD_OVERLAP",
			fmt.Sprintf("Room already has bill %s covering part of this period", overlapping[0].BillNumber))
	}

	rates, err := s.rates.ResolveRateCard(ctx, room.PropertyID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	hasEarlier, err := s.billRepo.HasBillBefore(ctx, bill.RoomID, period.Start)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	factor := s.calculator.ResolveProrationFactor(room.MoveInDate, period, hasEarlier)

	charges, err := s.calculator.Calculate(billing.CalculationInput{
		BasePrice:        room.BasePrice,
		OccupantCount:    room.OccupantCount,
		UseTrashService:  room.UseTrashService,
		Period:           period,
		ProrationFactor:  factor,
		MeterStart:       bill.MeterStart,
		MeterEnd:         bill.MeterEnd,
		Rates:            rates,
		AdditionalCharge: bill.Charges.AdditionalCharge,
	})
	if err != nil {
		return nil, err
	}

	if err := bill.ApplyPeriodChange(period, factor, charges.RoomCharge, charges.WaterCharge, charges.TrashCharge); err != nil {
		return nil, err
	}

	if err := s.billRepo.SaveWithLock(ctx, bill); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	return toBillResponse(bill), nil
}

// UpdateBillDetails edits the additional charge and notes of an unpaid bill
func (s *BillingService) UpdateBillDetails(ctx context.Context, billID uuid.UUID, req UpdateBillDetailsRequest) (*BillResponse, error) {
	bill, err := s.billRepo.FindByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Bill not found")
	}

	if err := bill.UpdateDetails(valueobject.NewMoneyIDR(req.AdditionalCharge), req.Notes); err != nil {
		return nil, err
	}

	if err := s.billRepo.SaveWithLock(ctx, bill); err != nil {
		return nil, err
	}

	return toBillResponse(bill), nil
}

// DeleteBill deletes an unpaid bill. Paid bills are immutable and cannot be
// deleted.
func (s *BillingService) DeleteBill(ctx context.Context, billID uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "bill", "delete")
	defer span.End()

	bill, err := s.billRepo.FindByID(ctx, billID)
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	if bill == nil {
		return shared.NewDomainError("NOT_FOUND", "Bill not found")
	}
	if err := bill.EnsureMutable(); err != nil {
		return err
	}

	if err := s.billRepo.Delete(ctx, billID); err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	return nil
}
