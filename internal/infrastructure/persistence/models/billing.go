package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/kostman/backend/internal/domain/billing"
	"github.com/kostman/backend/internal/domain/shared"
	"github.com/kostman/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// BillModel is the persistence model for the Bill aggregate root.
type BillModel struct {
	AggregateModel
	BillNumber       string                 `gorm:"type:varchar(50);not null;uniqueIndex"`
	RoomID           uuid.UUID              `gorm:"type:uuid;not null;index:idx_bills_room_period"`
	TenantID         *uuid.UUID             `gorm:"type:uuid;index"`
	PeriodStart      time.Time              `gorm:"type:date;not null;index:idx_bills_room_period"`
	PeriodEnd        time.Time              `gorm:"type:date;not null;index"`
	MonthsCovered    decimal.Decimal        `gorm:"type:decimal(8,2);not null"`
	MeterStart       int64                  `gorm:"not null"`
	MeterEnd         int64                  `gorm:"not null"`
	ProrationFactor  decimal.Decimal        `gorm:"type:decimal(10,6);not null;default:1"`
	RoomCharge       decimal.Decimal        `gorm:"type:decimal(18,2);not null"`
	UsageCharge      decimal.Decimal        `gorm:"type:decimal(18,2);not null"`
	WaterCharge      decimal.Decimal        `gorm:"type:decimal(18,2);not null"`
	TrashCharge      decimal.Decimal        `gorm:"type:decimal(18,2);not null"`
	AdditionalCharge decimal.Decimal        `gorm:"type:decimal(18,2);not null"`
	TotalAmount      decimal.Decimal        `gorm:"type:decimal(18,2);not null"`
	PaidAmount       decimal.Decimal        `gorm:"type:decimal(18,2);not null"`
	Outstanding      decimal.Decimal        `gorm:"column:outstanding_amount;type:decimal(18,2);not null;index"`
	Status           billing.BillStatus     `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	Payments         billing.PaymentRecords `gorm:"type:jsonb;default:'[]'"`
	Notes            string                 `gorm:"type:text"`
	PaidAt           *time.Time
	GeneratedAt      time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (BillModel) TableName() string {
	return "bills"
}

// ToDomain converts the persistence model to a domain Bill entity.
func (m *BillModel) ToDomain() *billing.Bill {
	return &billing.Bill{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		BillNumber:      m.BillNumber,
		RoomID:          m.RoomID,
		TenantID:        m.TenantID,
		PeriodStart:     m.PeriodStart,
		PeriodEnd:       m.PeriodEnd,
		MonthsCovered:   m.MonthsCovered,
		MeterStart:      m.MeterStart,
		MeterEnd:        m.MeterEnd,
		ProrationFactor: m.ProrationFactor,
		Charges: billing.BillCharges{
			RoomCharge:       valueobject.NewMoneyIDR(m.RoomCharge),
			UsageCharge:      valueobject.NewMoneyIDR(m.UsageCharge),
			WaterCharge:      valueobject.NewMoneyIDR(m.WaterCharge),
			TrashCharge:      valueobject.NewMoneyIDR(m.TrashCharge),
			AdditionalCharge: valueobject.NewMoneyIDR(m.AdditionalCharge),
		},
		TotalAmount:       valueobject.NewMoneyIDR(m.TotalAmount),
		PaidAmount:        valueobject.NewMoneyIDR(m.PaidAmount),
		OutstandingAmount: valueobject.NewMoneyIDR(m.Outstanding),
		Status:            m.Status,
		Payments:          m.Payments,
		Notes:             m.Notes,
		PaidAt:            m.PaidAt,
		GeneratedAt:       m.GeneratedAt,
	}
}

// FromDomain populates the persistence model from a domain Bill entity.
func (m *BillModel) FromDomain(b *billing.Bill) {
	m.FromDomainAggregateRoot(b.BaseAggregateRoot)
	m.BillNumber = b.BillNumber
	m.RoomID = b.RoomID
	m.TenantID = b.TenantID
	m.PeriodStart = b.PeriodStart
	m.PeriodEnd = b.PeriodEnd
	m.MonthsCovered = b.MonthsCovered
	m.MeterStart = b.MeterStart
	m.MeterEnd = b.MeterEnd
	m.ProrationFactor = b.ProrationFactor
	m.RoomCharge = b.Charges.RoomCharge.Amount()
	m.UsageCharge = b.Charges.UsageCharge.Amount()
	m.WaterCharge = b.Charges.WaterCharge.Amount()
	m.TrashCharge = b.Charges.TrashCharge.Amount()
	m.AdditionalCharge = b.Charges.AdditionalCharge.Amount()
	m.TotalAmount = b.TotalAmount.Amount()
	m.PaidAmount = b.PaidAmount.Amount()
	m.Outstanding = b.OutstandingAmount.Amount()
	m.Status = b.Status
	m.Payments = b.Payments
	m.Notes = b.Notes
	m.PaidAt = b.PaidAt
	m.GeneratedAt = b.GeneratedAt
}

// BillModelFromDomain creates a new persistence model from a domain Bill.
func BillModelFromDomain(b *billing.Bill) *BillModel {
	m := &BillModel{}
	m.FromDomain(b)
	return m
}

// MeterReadingModel is the persistence model for the MeterReading aggregate root.
type MeterReadingModel struct {
	AggregateModel
	RoomID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_meter_readings_room_period,priority:1"`
	Period     string    `gorm:"type:varchar(7);not null;uniqueIndex:idx_meter_readings_room_period,priority:2"`
	MeterStart int64     `gorm:"not null"`
	MeterEnd   int64     `gorm:"not null"`
	RecordedBy string    `gorm:"type:varchar(100)"`
	RecordedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (MeterReadingModel) TableName() string {
	return "meter_readings"
}

// ToDomain converts the persistence model to a domain MeterReading entity.
func (m *MeterReadingModel) ToDomain() *billing.MeterReading {
	return &billing.MeterReading{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		RoomID:     m.RoomID,
		Period:     m.Period,
		MeterStart: m.MeterStart,
		MeterEnd:   m.MeterEnd,
		RecordedBy: m.RecordedBy,
		RecordedAt: m.RecordedAt,
	}
}

// FromDomain populates the persistence model from a domain MeterReading entity.
func (m *MeterReadingModel) FromDomain(mr *billing.MeterReading) {
	m.FromDomainAggregateRoot(mr.BaseAggregateRoot)
	m.RoomID = mr.RoomID
	m.Period = mr.Period
	m.MeterStart = mr.MeterStart
	m.MeterEnd = mr.MeterEnd
	m.RecordedBy = mr.RecordedBy
	m.RecordedAt = mr.RecordedAt
}

// MeterReadingModelFromDomain creates a new persistence model from a domain MeterReading.
func MeterReadingModelFromDomain(mr *billing.MeterReading) *MeterReadingModel {
	m := &MeterReadingModel{}
	m.FromDomain(mr)
	return m
}

// RateSettingsModel is the persistence model for the RateSettings aggregate
// root. A row with a NULL property_id is the global fallback.
type RateSettingsModel struct {
	AggregateModel
	PropertyID *uuid.UUID      `gorm:"type:uuid;uniqueIndex"`
	CostPerKwh decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	WaterFee   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TrashFee   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (RateSettingsModel) TableName() string {
	return "rate_settings"
}

// ToDomain converts the persistence model to a domain RateSettings entity.
func (m *RateSettingsModel) ToDomain() *billing.RateSettings {
	return &billing.RateSettings{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		PropertyID: m.PropertyID,
		CostPerKwh: valueobject.NewMoneyIDR(m.CostPerKwh),
		WaterFee:   valueobject.NewMoneyIDR(m.WaterFee),
		TrashFee:   valueobject.NewMoneyIDR(m.TrashFee),
	}
}

// FromDomain populates the persistence model from a domain RateSettings entity.
func (m *RateSettingsModel) FromDomain(rs *billing.RateSettings) {
	m.FromDomainAggregateRoot(rs.BaseAggregateRoot)
	m.PropertyID = rs.PropertyID
	m.CostPerKwh = rs.CostPerKwh.Amount()
	m.WaterFee = rs.WaterFee.Amount()
	m.TrashFee = rs.TrashFee.Amount()
}

// RateSettingsModelFromDomain creates a new persistence model from a domain RateSettings.
func RateSettingsModelFromDomain(rs *billing.RateSettings) *RateSettingsModel {
	m := &RateSettingsModel{}
	m.FromDomain(rs)
	return m
}
