package billing

import (
	"github.com/google/uuid"
	"github.com/kostman/backend/internal/domain/shared"
	"github.com/kostman/backend/internal/domain/shared/valueobject"
)

// RateSettings is the stored source of a RateCard. One row may be scoped to
// a property; a row with a nil PropertyID is the global fallback used for
// properties without overrides.
type RateSettings struct {
	shared.BaseAggregateRoot
	PropertyID *uuid.UUID        `json:"property_id"`
	CostPerKwh valueobject.Money `json:"cost_per_kwh"`
	WaterFee   valueobject.Money `json:"water_fee"`
	TrashFee   valueobject.Money `json:"trash_fee"`
}

// NewRateSettings creates rate settings scoped to a property, or global when
// propertyID is nil
func NewRateSettings(propertyID *uuid.UUID, costPerKwh, waterFee, trashFee valueobject.Money) (*RateSettings, error) {
	if _, err := NewRateCard(costPerKwh, waterFee, trashFee); err != nil {
		return nil, err
	}
	return &RateSettings{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PropertyID:        propertyID,
		CostPerKwh:        costPerKwh,
		WaterFee:          waterFee,
		TrashFee:          trashFee,
	}, nil
}

// Update replaces the rates after validating them
func (rs *RateSettings) Update(costPerKwh, waterFee, trashFee valueobject.Money) error {
	if _, err := NewRateCard(costPerKwh, waterFee, trashFee); err != nil {
		return err
	}
	rs.CostPerKwh = costPerKwh
	rs.WaterFee = waterFee
	rs.TrashFee = trashFee
	rs.IncrementVersion()
	return nil
}

// RateCard converts the stored settings into calculator input
func (rs *RateSettings) RateCard() RateCard {
	return RateCard{
		CostPerKwh: rs.CostPerKwh,
		WaterFee:   rs.WaterFee,
		TrashFee:   rs.TrashFee,
	}
}

// IsGlobal reports whether this row is the global fallback
func (rs *RateSettings) IsGlobal() bool {
	return rs.PropertyID == nil
}
