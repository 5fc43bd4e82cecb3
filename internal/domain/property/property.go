package property

import (
	"github.com/kostman/backend/internal/domain/shared"
)

// Property is a boarding house holding a set of rooms
type Property struct {
	shared.BaseAggregateRoot
	Name    string `json:"name"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// NewProperty creates a property
func NewProperty(name, address, notes string) (*Property, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Property name cannot be empty")
	}
	return &Property{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Address:           address,
		Notes:             notes,
	}, nil
}

// Update replaces the property details
func (p *Property) Update(name, address, notes string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Property name cannot be empty")
	}
	p.Name = name
	p.Address = address
	p.Notes = notes
	p.IncrementVersion()
	return nil
}
