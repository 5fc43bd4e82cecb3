package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/kostman/backend/internal/domain/property"
	"github.com/kostman/backend/internal/domain/shared"
	"github.com/kostman/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PropertyModel is the persistence model for the Property aggregate root.
type PropertyModel struct {
	AggregateModel
	Name    string `gorm:"type:varchar(200);not null;uniqueIndex"`
	Address string `gorm:"type:varchar(500)"`
	Notes   string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PropertyModel) TableName() string {
	return "properties"
}

// ToDomain converts the persistence model to a domain Property entity.
func (m *PropertyModel) ToDomain() *property.Property {
	return &property.Property{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		Name:    m.Name,
		Address: m.Address,
		Notes:   m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Property entity.
func (m *PropertyModel) FromDomain(p *property.Property) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Name = p.Name
	m.Address = p.Address
	m.Notes = p.Notes
}

// PropertyModelFromDomain creates a new persistence model from a domain Property.
func PropertyModelFromDomain(p *property.Property) *PropertyModel {
	m := &PropertyModel{}
	m.FromDomain(p)
	return m
}

// RoomModel is the persistence model for the Room aggregate root.
type RoomModel struct {
	AggregateModel
	PropertyID      uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:idx_rooms_property_name,priority:1"`
	Name            string              `gorm:"type:varchar(100);not null;uniqueIndex:idx_rooms_property_name,priority:2"`
	BasePrice       decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	Status          property.RoomStatus `gorm:"type:varchar(20);not null;default:'AVAILABLE';index"`
	TenantID        *uuid.UUID          `gorm:"type:uuid;index"`
	UseTrashService bool                `gorm:"not null;default:false"`
	OccupantCount   int                 `gorm:"not null;default:1"`
	MoveInDate      *time.Time          `gorm:"type:date"`
	Notes           string              `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (RoomModel) TableName() string {
	return "rooms"
}

// ToDomain converts the persistence model to a domain Room entity.
func (m *RoomModel) ToDomain() *property.Room {
	return &property.Room{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		PropertyID:      m.PropertyID,
		Name:            m.Name,
		BasePrice:       valueobject.NewMoneyIDR(m.BasePrice),
		Status:          m.Status,
		TenantID:        m.TenantID,
		UseTrashService: m.UseTrashService,
		OccupantCount:   m.OccupantCount,
		MoveInDate:      m.MoveInDate,
		Notes:           m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Room entity.
func (m *RoomModel) FromDomain(r *property.Room) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.PropertyID = r.PropertyID
	m.Name = r.Name
	m.BasePrice = r.BasePrice.Amount()
	m.Status = r.Status
	m.TenantID = r.TenantID
	m.UseTrashService = r.UseTrashService
	m.OccupantCount = r.OccupantCount
	m.MoveInDate = r.MoveInDate
	m.Notes = r.Notes
}

// RoomModelFromDomain creates a new persistence model from a domain Room.
func RoomModelFromDomain(r *property.Room) *RoomModel {
	m := &RoomModel{}
	m.FromDomain(r)
	return m
}

// TenantModel is the persistence model for the Tenant aggregate root.
type TenantModel struct {
	AggregateModel
	Name     string `gorm:"type:varchar(200);not null;index"`
	Phone    string `gorm:"type:varchar(30);index"`
	IDNumber string `gorm:"type:varchar(50)"`
	Notes    string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts the persistence model to a domain Tenant entity.
func (m *TenantModel) ToDomain() *property.Tenant {
	return &property.Tenant{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		Name:     m.Name,
		Phone:    m.Phone,
		IDNumber: m.IDNumber,
		Notes:    m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Tenant entity.
func (m *TenantModel) FromDomain(t *property.Tenant) {
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	m.Name = t.Name
	m.Phone = t.Phone
	m.IDNumber = t.IDNumber
	m.Notes = t.Notes
}

// TenantModelFromDomain creates a new persistence model from a domain Tenant.
func TenantModelFromDomain(t *property.Tenant) *TenantModel {
	m := &TenantModel{}
	m.FromDomain(t)
	return m
}
