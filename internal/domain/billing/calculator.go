package billing

import (
	"time"

	"github.com/kostman/backend/internal/domain/shared"
	"github.com/kostman/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// CalculationInput carries everything a bill calculation needs. Rates are an
// explicit part of the input so the calculation is a pure function of its
// arguments.
type CalculationInput struct {
	BasePrice        valueobject.Money
	OccupantCount    int
	UseTrashService  bool
	Period           BillingPeriod
	ProrationFactor  decimal.Decimal
	MeterStart       int64
	MeterEnd         int64
	Rates            RateCard
	AdditionalCharge valueobject.Money
}

// BillCalculator computes the itemized charge lines of a bill.
//
// The room, water and trash lines scale with months covered and the proration
// factor; the electricity line never does, it reflects the metered
// consumption directly. Each line is rounded with banker's rounding before
// summation.
type BillCalculator struct{}

// NewBillCalculator creates a bill calculator
func NewBillCalculator() *BillCalculator {
	return &BillCalculator{}
}

// Calculate produces the charge lines for the given input
func (c *BillCalculator) Calculate(input CalculationInput) (BillCharges, error) {
	if input.OccupantCount < 1 {
		return BillCharges{}, shared.NewDomainError("INVALID_OCCUPANTS", "Occupant count must be at least 1")
	}
	if err := validateMeterRange(input.MeterStart, input.MeterEnd); err != nil {
		return BillCharges{}, err
	}
	if input.BasePrice.IsNegative() {
		return BillCharges{}, shared.NewDomainError("INVALID_AMOUNT", "Base price cannot be negative")
	}
	if input.AdditionalCharge.IsNegative() {
		return BillCharges{}, shared.NewDomainError("INVALID_AMOUNT", "Additional charge cannot be negative")
	}
	if input.ProrationFactor.IsNegative() || input.ProrationFactor.GreaterThan(decimal.NewFromInt(1)) {
		return BillCharges{}, shared.NewDomainError("INVALID_PRORATION", "Proration factor must be within [0,1]")
	}

	periodScale := input.Period.MonthsCovered.Mul(input.ProrationFactor)

	roomCharge := input.BasePrice.Multiply(periodScale).RoundBank()

	usage := input.MeterEnd - input.MeterStart
	usageCharge := input.Rates.CostPerKwh.MultiplyByInt(usage).RoundBank()

	waterCharge := input.Rates.WaterFee.
		MultiplyByInt(int64(input.OccupantCount)).
		Multiply(periodScale).
		RoundBank()

	trashCharge := valueobject.ZeroIDR()
	if input.UseTrashService {
		trashCharge = input.Rates.TrashFee.Multiply(periodScale).RoundBank()
	}

	return BillCharges{
		RoomCharge:       roomCharge,
		UsageCharge:      usageCharge,
		WaterCharge:      waterCharge,
		TrashCharge:      trashCharge,
		AdditionalCharge: input.AdditionalCharge.RoundBank(),
	}, nil
}

// ResolveProrationFactor derives the proration factor for a room's period.
// Proration applies only to the first bill after move-in: the move-in date
// must fall inside the period and no earlier bill may exist for the room.
func (c *BillCalculator) ResolveProrationFactor(moveIn *time.Time, period BillingPeriod, hasEarlierBill bool) decimal.Decimal {
	if moveIn == nil || hasEarlierBill {
		return decimal.NewFromInt(1)
	}
	return ProrationFactor(*moveIn, period.Start, period.End)
}
