package billing

import (
	"github.com/kostman/backend/internal/domain/shared"
	"github.com/kostman/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// RateCard bundles the unit rates a bill is generated against. It is an
// explicit input to the calculator rather than ambient configuration, so a
// bill always records exactly which rates produced it.
type RateCard struct {
	CostPerKwh valueobject.Money `json:"cost_per_kwh"`
	WaterFee   valueobject.Money `json:"water_fee"`
	TrashFee   valueobject.Money `json:"trash_fee"`
}

// NewRateCard creates a rate card, rejecting negative rates
func NewRateCard(costPerKwh, waterFee, trashFee valueobject.Money) (RateCard, error) {
	if costPerKwh.IsNegative() {
		return RateCard{}, shared.NewDomainError("INVALID_RATE", "Cost per kWh cannot be negative")
	}
	if waterFee.IsNegative() {
		return RateCard{}, shared.NewDomainError("INVALID_RATE", "Water fee cannot be negative")
	}
	if trashFee.IsNegative() {
		return RateCard{}, shared.NewDomainError("INVALID_RATE", "Trash fee cannot be negative")
	}
	return RateCard{
		CostPerKwh: costPerKwh,
		WaterFee:   waterFee,
		TrashFee:   trashFee,
	}, nil
}

// NewRateCardFromDecimals creates a rate card from raw decimal amounts in the
// default currency
func NewRateCardFromDecimals(costPerKwh, waterFee, trashFee decimal.Decimal) (RateCard, error) {
	return NewRateCard(
		valueobject.NewMoneyIDR(costPerKwh),
		valueobject.NewMoneyIDR(waterFee),
		valueobject.NewMoneyIDR(trashFee),
	)
}
